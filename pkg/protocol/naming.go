package protocol

import (
	"context"

	"google.golang.org/grpc"
)

// NamingService is the shared name-to-address directory every process uses to
// find the others.
const NamingService = "confab.Naming"

type NamingClient interface {
	Bind(ctx context.Context, in *BindRequest, opts ...grpc.CallOption) (*BindResponse, error)
	Lookup(ctx context.Context, in *LookupRequest, opts ...grpc.CallOption) (*LookupResponse, error)
	Unbind(ctx context.Context, in *UnbindRequest, opts ...grpc.CallOption) (*UnbindResponse, error)
}

type namingClient struct {
	cc grpc.ClientConnInterface
}

func NewNamingClient(cc grpc.ClientConnInterface) NamingClient {
	return &namingClient{cc}
}

func (c *namingClient) Bind(ctx context.Context, in *BindRequest, opts ...grpc.CallOption) (*BindResponse, error) {
	return invoke[BindResponse](ctx, c.cc, "/confab.Naming/Bind", in, opts...)
}

func (c *namingClient) Lookup(ctx context.Context, in *LookupRequest, opts ...grpc.CallOption) (*LookupResponse, error) {
	return invoke[LookupResponse](ctx, c.cc, "/confab.Naming/Lookup", in, opts...)
}

func (c *namingClient) Unbind(ctx context.Context, in *UnbindRequest, opts ...grpc.CallOption) (*UnbindResponse, error) {
	return invoke[UnbindResponse](ctx, c.cc, "/confab.Naming/Unbind", in, opts...)
}

type NamingServer interface {
	Bind(context.Context, *BindRequest) (*BindResponse, error)
	Lookup(context.Context, *LookupRequest) (*LookupResponse, error)
	Unbind(context.Context, *UnbindRequest) (*UnbindResponse, error)
}

func RegisterNamingServer(s grpc.ServiceRegistrar, srv NamingServer) {
	s.RegisterService(&namingServiceDesc, srv)
}

var namingServiceDesc = grpc.ServiceDesc{
	ServiceName: NamingService,
	HandlerType: (*NamingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Bind", Handler: unaryHandler("/confab.Naming/Bind", func(srv interface{}, ctx context.Context, req *BindRequest) (interface{}, error) {
			return srv.(NamingServer).Bind(ctx, req)
		})},
		{MethodName: "Lookup", Handler: unaryHandler("/confab.Naming/Lookup", func(srv interface{}, ctx context.Context, req *LookupRequest) (interface{}, error) {
			return srv.(NamingServer).Lookup(ctx, req)
		})},
		{MethodName: "Unbind", Handler: unaryHandler("/confab.Naming/Unbind", func(srv interface{}, ctx context.Context, req *UnbindRequest) (interface{}, error) {
			return srv.(NamingServer).Unbind(ctx, req)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "confab/protocol",
}
