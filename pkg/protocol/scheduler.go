package protocol

import (
	"context"

	"google.golang.org/grpc"
)

// SchedulerService is the client-facing front door of a scheduling server.
const SchedulerService = "confab.Scheduler"

type SchedulerClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error)
	AddDate(ctx context.Context, in *AddDateRequest, opts ...grpc.CallOption) (*AddDateResponse, error)
	Invite(ctx context.Context, in *InviteRequest, opts ...grpc.CallOption) (*InviteResponse, error)
	Vote(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error)
	Finalize(ctx context.Context, in *FinalizeRequest, opts ...grpc.CallOption) (*FinalizeResponse, error)
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error)
}

type schedulerClient struct {
	cc grpc.ClientConnInterface
}

func NewSchedulerClient(cc grpc.ClientConnInterface) SchedulerClient {
	return &schedulerClient{cc}
}

func (c *schedulerClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, "/confab.Scheduler/Register", in, opts...)
}

func (c *schedulerClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, "/confab.Scheduler/Login", in, opts...)
}

func (c *schedulerClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, "/confab.Scheduler/Logout", in, opts...)
}

func (c *schedulerClient) Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, "/confab.Scheduler/Create", in, opts...)
}

func (c *schedulerClient) AddDate(ctx context.Context, in *AddDateRequest, opts ...grpc.CallOption) (*AddDateResponse, error) {
	return invoke[AddDateResponse](ctx, c.cc, "/confab.Scheduler/AddDate", in, opts...)
}

func (c *schedulerClient) Invite(ctx context.Context, in *InviteRequest, opts ...grpc.CallOption) (*InviteResponse, error) {
	return invoke[InviteResponse](ctx, c.cc, "/confab.Scheduler/Invite", in, opts...)
}

func (c *schedulerClient) Vote(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return invoke[VoteResponse](ctx, c.cc, "/confab.Scheduler/Vote", in, opts...)
}

func (c *schedulerClient) Finalize(ctx context.Context, in *FinalizeRequest, opts ...grpc.CallOption) (*FinalizeResponse, error) {
	return invoke[FinalizeResponse](ctx, c.cc, "/confab.Scheduler/Finalize", in, opts...)
}

func (c *schedulerClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error) {
	return invoke[GetResponse](ctx, c.cc, "/confab.Scheduler/Get", in, opts...)
}

type SchedulerServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Create(context.Context, *CreateRequest) (*CreateResponse, error)
	AddDate(context.Context, *AddDateRequest) (*AddDateResponse, error)
	Invite(context.Context, *InviteRequest) (*InviteResponse, error)
	Vote(context.Context, *VoteRequest) (*VoteResponse, error)
	Finalize(context.Context, *FinalizeRequest) (*FinalizeResponse, error)
	Get(context.Context, *GetRequest) (*GetResponse, error)
}

func RegisterSchedulerServer(s grpc.ServiceRegistrar, srv SchedulerServer) {
	s.RegisterService(&schedulerServiceDesc, srv)
}

var schedulerServiceDesc = grpc.ServiceDesc{
	ServiceName: SchedulerService,
	HandlerType: (*SchedulerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler("/confab.Scheduler/Register", func(srv interface{}, ctx context.Context, req *RegisterRequest) (interface{}, error) {
			return srv.(SchedulerServer).Register(ctx, req)
		})},
		{MethodName: "Login", Handler: unaryHandler("/confab.Scheduler/Login", func(srv interface{}, ctx context.Context, req *LoginRequest) (interface{}, error) {
			return srv.(SchedulerServer).Login(ctx, req)
		})},
		{MethodName: "Logout", Handler: unaryHandler("/confab.Scheduler/Logout", func(srv interface{}, ctx context.Context, req *LogoutRequest) (interface{}, error) {
			return srv.(SchedulerServer).Logout(ctx, req)
		})},
		{MethodName: "Create", Handler: unaryHandler("/confab.Scheduler/Create", func(srv interface{}, ctx context.Context, req *CreateRequest) (interface{}, error) {
			return srv.(SchedulerServer).Create(ctx, req)
		})},
		{MethodName: "AddDate", Handler: unaryHandler("/confab.Scheduler/AddDate", func(srv interface{}, ctx context.Context, req *AddDateRequest) (interface{}, error) {
			return srv.(SchedulerServer).AddDate(ctx, req)
		})},
		{MethodName: "Invite", Handler: unaryHandler("/confab.Scheduler/Invite", func(srv interface{}, ctx context.Context, req *InviteRequest) (interface{}, error) {
			return srv.(SchedulerServer).Invite(ctx, req)
		})},
		{MethodName: "Vote", Handler: unaryHandler("/confab.Scheduler/Vote", func(srv interface{}, ctx context.Context, req *VoteRequest) (interface{}, error) {
			return srv.(SchedulerServer).Vote(ctx, req)
		})},
		{MethodName: "Finalize", Handler: unaryHandler("/confab.Scheduler/Finalize", func(srv interface{}, ctx context.Context, req *FinalizeRequest) (interface{}, error) {
			return srv.(SchedulerServer).Finalize(ctx, req)
		})},
		{MethodName: "Get", Handler: unaryHandler("/confab.Scheduler/Get", func(srv interface{}, ctx context.Context, req *GetRequest) (interface{}, error) {
			return srv.(SchedulerServer).Get(ctx, req)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "confab/protocol",
}
