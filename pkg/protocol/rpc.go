package protocol

import (
	"context"

	"google.golang.org/grpc"
)

// unaryHandler adapts a typed service method to the handler shape a
// grpc.MethodDesc expects, decoding the request and threading interceptors
// through, the same way generated stubs do.
func unaryHandler[Req any](fullMethod string, call func(srv interface{}, ctx context.Context, req *Req) (interface{}, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv, ctx, req.(*Req))
		})
	}
}

// invoke performs a unary call and decodes the reply into a fresh Resp.
func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, fullMethod string, req interface{}, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, fullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
