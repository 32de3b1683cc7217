package protocol

import (
	"context"

	"google.golang.org/grpc"
)

// PeerService is the symmetric server-to-server coordination endpoint: the
// two-phase registration protocol, owner-routed event operations, and
// notification forwarding.
const PeerService = "confab.Peer"

type PeerClient interface {
	BeginRegister(ctx context.Context, in *BeginRegisterRequest, opts ...grpc.CallOption) (*BeginRegisterResponse, error)
	CommitRegister(ctx context.Context, in *CommitRegisterRequest, opts ...grpc.CallOption) (*CommitRegisterResponse, error)
	RollbackRegister(ctx context.Context, in *RollbackRegisterRequest, opts ...grpc.CallOption) (*RollbackRegisterResponse, error)
	BeginCreate(ctx context.Context, in *BeginCreateRequest, opts ...grpc.CallOption) (*BeginCreateResponse, error)
	CommitCreate(ctx context.Context, in *CommitCreateRequest, opts ...grpc.CallOption) (*CommitCreateResponse, error)
	RollbackCreate(ctx context.Context, in *RollbackCreateRequest, opts ...grpc.CallOption) (*RollbackCreateResponse, error)
	AddDate(ctx context.Context, in *PeerAddDateRequest, opts ...grpc.CallOption) (*PeerAddDateResponse, error)
	Invite(ctx context.Context, in *PeerInviteRequest, opts ...grpc.CallOption) (*PeerInviteResponse, error)
	Vote(ctx context.Context, in *PeerVoteRequest, opts ...grpc.CallOption) (*PeerVoteResponse, error)
	Finalize(ctx context.Context, in *PeerFinalizeRequest, opts ...grpc.CallOption) (*PeerFinalizeResponse, error)
	Get(ctx context.Context, in *PeerGetRequest, opts ...grpc.CallOption) (*PeerGetResponse, error)
	Notify(ctx context.Context, in *NotifyRequest, opts ...grpc.CallOption) (*NotifyResponse, error)
}

type peerClient struct {
	cc grpc.ClientConnInterface
}

func NewPeerClient(cc grpc.ClientConnInterface) PeerClient {
	return &peerClient{cc}
}

func (c *peerClient) BeginRegister(ctx context.Context, in *BeginRegisterRequest, opts ...grpc.CallOption) (*BeginRegisterResponse, error) {
	return invoke[BeginRegisterResponse](ctx, c.cc, "/confab.Peer/BeginRegister", in, opts...)
}

func (c *peerClient) CommitRegister(ctx context.Context, in *CommitRegisterRequest, opts ...grpc.CallOption) (*CommitRegisterResponse, error) {
	return invoke[CommitRegisterResponse](ctx, c.cc, "/confab.Peer/CommitRegister", in, opts...)
}

func (c *peerClient) RollbackRegister(ctx context.Context, in *RollbackRegisterRequest, opts ...grpc.CallOption) (*RollbackRegisterResponse, error) {
	return invoke[RollbackRegisterResponse](ctx, c.cc, "/confab.Peer/RollbackRegister", in, opts...)
}

func (c *peerClient) BeginCreate(ctx context.Context, in *BeginCreateRequest, opts ...grpc.CallOption) (*BeginCreateResponse, error) {
	return invoke[BeginCreateResponse](ctx, c.cc, "/confab.Peer/BeginCreate", in, opts...)
}

func (c *peerClient) CommitCreate(ctx context.Context, in *CommitCreateRequest, opts ...grpc.CallOption) (*CommitCreateResponse, error) {
	return invoke[CommitCreateResponse](ctx, c.cc, "/confab.Peer/CommitCreate", in, opts...)
}

func (c *peerClient) RollbackCreate(ctx context.Context, in *RollbackCreateRequest, opts ...grpc.CallOption) (*RollbackCreateResponse, error) {
	return invoke[RollbackCreateResponse](ctx, c.cc, "/confab.Peer/RollbackCreate", in, opts...)
}

func (c *peerClient) AddDate(ctx context.Context, in *PeerAddDateRequest, opts ...grpc.CallOption) (*PeerAddDateResponse, error) {
	return invoke[PeerAddDateResponse](ctx, c.cc, "/confab.Peer/AddDate", in, opts...)
}

func (c *peerClient) Invite(ctx context.Context, in *PeerInviteRequest, opts ...grpc.CallOption) (*PeerInviteResponse, error) {
	return invoke[PeerInviteResponse](ctx, c.cc, "/confab.Peer/Invite", in, opts...)
}

func (c *peerClient) Vote(ctx context.Context, in *PeerVoteRequest, opts ...grpc.CallOption) (*PeerVoteResponse, error) {
	return invoke[PeerVoteResponse](ctx, c.cc, "/confab.Peer/Vote", in, opts...)
}

func (c *peerClient) Finalize(ctx context.Context, in *PeerFinalizeRequest, opts ...grpc.CallOption) (*PeerFinalizeResponse, error) {
	return invoke[PeerFinalizeResponse](ctx, c.cc, "/confab.Peer/Finalize", in, opts...)
}

func (c *peerClient) Get(ctx context.Context, in *PeerGetRequest, opts ...grpc.CallOption) (*PeerGetResponse, error) {
	return invoke[PeerGetResponse](ctx, c.cc, "/confab.Peer/Get", in, opts...)
}

func (c *peerClient) Notify(ctx context.Context, in *NotifyRequest, opts ...grpc.CallOption) (*NotifyResponse, error) {
	return invoke[NotifyResponse](ctx, c.cc, "/confab.Peer/Notify", in, opts...)
}

type PeerServer interface {
	BeginRegister(context.Context, *BeginRegisterRequest) (*BeginRegisterResponse, error)
	CommitRegister(context.Context, *CommitRegisterRequest) (*CommitRegisterResponse, error)
	RollbackRegister(context.Context, *RollbackRegisterRequest) (*RollbackRegisterResponse, error)
	BeginCreate(context.Context, *BeginCreateRequest) (*BeginCreateResponse, error)
	CommitCreate(context.Context, *CommitCreateRequest) (*CommitCreateResponse, error)
	RollbackCreate(context.Context, *RollbackCreateRequest) (*RollbackCreateResponse, error)
	AddDate(context.Context, *PeerAddDateRequest) (*PeerAddDateResponse, error)
	Invite(context.Context, *PeerInviteRequest) (*PeerInviteResponse, error)
	Vote(context.Context, *PeerVoteRequest) (*PeerVoteResponse, error)
	Finalize(context.Context, *PeerFinalizeRequest) (*PeerFinalizeResponse, error)
	Get(context.Context, *PeerGetRequest) (*PeerGetResponse, error)
	Notify(context.Context, *NotifyRequest) (*NotifyResponse, error)
}

func RegisterPeerServer(s grpc.ServiceRegistrar, srv PeerServer) {
	s.RegisterService(&peerServiceDesc, srv)
}

var peerServiceDesc = grpc.ServiceDesc{
	ServiceName: PeerService,
	HandlerType: (*PeerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "BeginRegister", Handler: unaryHandler("/confab.Peer/BeginRegister", func(srv interface{}, ctx context.Context, req *BeginRegisterRequest) (interface{}, error) {
			return srv.(PeerServer).BeginRegister(ctx, req)
		})},
		{MethodName: "CommitRegister", Handler: unaryHandler("/confab.Peer/CommitRegister", func(srv interface{}, ctx context.Context, req *CommitRegisterRequest) (interface{}, error) {
			return srv.(PeerServer).CommitRegister(ctx, req)
		})},
		{MethodName: "RollbackRegister", Handler: unaryHandler("/confab.Peer/RollbackRegister", func(srv interface{}, ctx context.Context, req *RollbackRegisterRequest) (interface{}, error) {
			return srv.(PeerServer).RollbackRegister(ctx, req)
		})},
		{MethodName: "BeginCreate", Handler: unaryHandler("/confab.Peer/BeginCreate", func(srv interface{}, ctx context.Context, req *BeginCreateRequest) (interface{}, error) {
			return srv.(PeerServer).BeginCreate(ctx, req)
		})},
		{MethodName: "CommitCreate", Handler: unaryHandler("/confab.Peer/CommitCreate", func(srv interface{}, ctx context.Context, req *CommitCreateRequest) (interface{}, error) {
			return srv.(PeerServer).CommitCreate(ctx, req)
		})},
		{MethodName: "RollbackCreate", Handler: unaryHandler("/confab.Peer/RollbackCreate", func(srv interface{}, ctx context.Context, req *RollbackCreateRequest) (interface{}, error) {
			return srv.(PeerServer).RollbackCreate(ctx, req)
		})},
		{MethodName: "AddDate", Handler: unaryHandler("/confab.Peer/AddDate", func(srv interface{}, ctx context.Context, req *PeerAddDateRequest) (interface{}, error) {
			return srv.(PeerServer).AddDate(ctx, req)
		})},
		{MethodName: "Invite", Handler: unaryHandler("/confab.Peer/Invite", func(srv interface{}, ctx context.Context, req *PeerInviteRequest) (interface{}, error) {
			return srv.(PeerServer).Invite(ctx, req)
		})},
		{MethodName: "Vote", Handler: unaryHandler("/confab.Peer/Vote", func(srv interface{}, ctx context.Context, req *PeerVoteRequest) (interface{}, error) {
			return srv.(PeerServer).Vote(ctx, req)
		})},
		{MethodName: "Finalize", Handler: unaryHandler("/confab.Peer/Finalize", func(srv interface{}, ctx context.Context, req *PeerFinalizeRequest) (interface{}, error) {
			return srv.(PeerServer).Finalize(ctx, req)
		})},
		{MethodName: "Get", Handler: unaryHandler("/confab.Peer/Get", func(srv interface{}, ctx context.Context, req *PeerGetRequest) (interface{}, error) {
			return srv.(PeerServer).Get(ctx, req)
		})},
		{MethodName: "Notify", Handler: unaryHandler("/confab.Peer/Notify", func(srv interface{}, ctx context.Context, req *NotifyRequest) (interface{}, error) {
			return srv.(PeerServer).Notify(ctx, req)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "confab/protocol",
}
