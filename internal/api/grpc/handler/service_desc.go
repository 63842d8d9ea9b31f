package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The token service is declared with well-known message types, so no
// generated code is needed on either side of the wire.
const (
	TokenServiceName = "blogauth.v1.TokenService"

	TokenService_Issue_FullMethodName  = "/blogauth.v1.TokenService/Issue"
	TokenService_Rotate_FullMethodName = "/blogauth.v1.TokenService/Rotate"
	TokenService_Revoke_FullMethodName = "/blogauth.v1.TokenService/Revoke"
)

// TokenServiceServer is the server API for the token service.
type TokenServiceServer interface {
	// Issue takes the principal id and returns a token pair.
	Issue(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// Rotate reads the refresh token from the authorization metadata.
	Rotate(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// Revoke logs out the principal of the access token in the authorization metadata.
	Revoke(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

func RegisterTokenServiceServer(s grpc.ServiceRegistrar, srv TokenServiceServer) {
	s.RegisterService(&TokenService_ServiceDesc, srv)
}

func _TokenService_Issue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenServiceServer).Issue(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TokenService_Issue_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TokenServiceServer).Issue(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _TokenService_Rotate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenServiceServer).Rotate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TokenService_Rotate_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TokenServiceServer).Rotate(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _TokenService_Revoke_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenServiceServer).Revoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TokenService_Revoke_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TokenServiceServer).Revoke(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var TokenService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: TokenServiceName,
	HandlerType: (*TokenServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Issue",
			Handler:    _TokenService_Issue_Handler,
		},
		{
			MethodName: "Rotate",
			Handler:    _TokenService_Rotate_Handler,
		},
		{
			MethodName: "Revoke",
			Handler:    _TokenService_Revoke_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blogauth/v1/token.proto",
}
