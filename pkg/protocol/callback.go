package protocol

import (
	"context"

	"google.golang.org/grpc"
)

// CallbackService is exposed by clients; servers push notifications to it.
const CallbackService = "confab.Callback"

type CallbackClient interface {
	OnFinalization(ctx context.Context, in *OnFinalizationRequest, opts ...grpc.CallOption) (*OnFinalizationResponse, error)
	OnInvitation(ctx context.Context, in *OnInvitationRequest, opts ...grpc.CallOption) (*OnInvitationResponse, error)
}

type callbackClient struct {
	cc grpc.ClientConnInterface
}

func NewCallbackClient(cc grpc.ClientConnInterface) CallbackClient {
	return &callbackClient{cc}
}

func (c *callbackClient) OnFinalization(ctx context.Context, in *OnFinalizationRequest, opts ...grpc.CallOption) (*OnFinalizationResponse, error) {
	return invoke[OnFinalizationResponse](ctx, c.cc, "/confab.Callback/OnFinalization", in, opts...)
}

func (c *callbackClient) OnInvitation(ctx context.Context, in *OnInvitationRequest, opts ...grpc.CallOption) (*OnInvitationResponse, error) {
	return invoke[OnInvitationResponse](ctx, c.cc, "/confab.Callback/OnInvitation", in, opts...)
}

type CallbackServer interface {
	OnFinalization(context.Context, *OnFinalizationRequest) (*OnFinalizationResponse, error)
	OnInvitation(context.Context, *OnInvitationRequest) (*OnInvitationResponse, error)
}

func RegisterCallbackServer(s grpc.ServiceRegistrar, srv CallbackServer) {
	s.RegisterService(&callbackServiceDesc, srv)
}

var callbackServiceDesc = grpc.ServiceDesc{
	ServiceName: CallbackService,
	HandlerType: (*CallbackServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OnFinalization", Handler: unaryHandler("/confab.Callback/OnFinalization", func(srv interface{}, ctx context.Context, req *OnFinalizationRequest) (interface{}, error) {
			return srv.(CallbackServer).OnFinalization(ctx, req)
		})},
		{MethodName: "OnInvitation", Handler: unaryHandler("/confab.Callback/OnInvitation", func(srv interface{}, ctx context.Context, req *OnInvitationRequest) (interface{}, error) {
			return srv.(CallbackServer).OnInvitation(ctx, req)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "confab/protocol",
}
