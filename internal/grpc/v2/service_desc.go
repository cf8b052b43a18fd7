package v2

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// unaryHandler строит grpc.MethodHandler для метода с запросом Req.
func unaryHandler[Req any, Resp any](method string, newReq func() Req,
	call func(srv LinksServer, ctx context.Context, req Req) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LinksServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LinksServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc описание сервиса brevly.v2.Links.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LinksServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "List",
			Handler: unaryHandler("List", func() *structpb.Struct { return &structpb.Struct{} },
				LinksServer.List),
		},
		{
			MethodName: "Create",
			Handler: unaryHandler("Create", func() *structpb.Struct { return &structpb.Struct{} },
				LinksServer.Create),
		},
		{
			MethodName: "Resolve",
			Handler: unaryHandler("Resolve", func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} },
				LinksServer.Resolve),
		},
		{
			MethodName: "Delete",
			Handler: unaryHandler("Delete", func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} },
				LinksServer.Delete),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "brevly/v2/links.proto",
}

// LinksClient клиент сервиса brevly.v2.Links.
type LinksClient struct {
	cc grpc.ClientConnInterface
}

// NewLinksClient создаёт клиента поверх соединения.
func NewLinksClient(cc grpc.ClientConnInterface) *LinksClient {
	return &LinksClient{cc: cc}
}

func (c *LinksClient) List(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/List", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LinksClient) Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Create", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LinksClient) Resolve(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Resolve", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LinksClient) Delete(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Delete", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
