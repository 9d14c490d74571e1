package pricing

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "printshop.pricing.v1.PricingService"

// Method names, as they appear after the service name in a full method path.
const (
	MethodEvaluateQuote       = "EvaluateQuote"
	MethodEvaluateQuoteBatch  = "EvaluateQuoteBatch"
	MethodEvaluateStoredQuote = "EvaluateStoredQuote"
	MethodListRules           = "ListRules"
	MethodGetRule             = "GetRule"
	MethodCreateRule          = "CreateRule"
	MethodSetRuleActive       = "SetRuleActive"
)

// PricingServiceServer is the server API for the pricing service. Requests and
// replies are google.protobuf.Struct documents shaped like the HTTP JSON bodies.
type PricingServiceServer interface {
	EvaluateQuote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EvaluateQuoteBatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EvaluateStoredQuote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRules(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetRuleActive(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(PricingServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PricingServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(PricingServiceServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

// ServiceDesc describes the pricing service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(MethodEvaluateQuote, PricingServiceServer.EvaluateQuote),
		unaryHandler(MethodEvaluateQuoteBatch, PricingServiceServer.EvaluateQuoteBatch),
		unaryHandler(MethodEvaluateStoredQuote, PricingServiceServer.EvaluateStoredQuote),
		unaryHandler(MethodListRules, PricingServiceServer.ListRules),
		unaryHandler(MethodGetRule, PricingServiceServer.GetRule),
		unaryHandler(MethodCreateRule, PricingServiceServer.CreateRule),
		unaryHandler(MethodSetRuleActive, PricingServiceServer.SetRuleActive),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "printshop/pricing/v1/pricing.proto",
}

// RegisterPricingServiceServer registers srv on s.
func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// FullMethod returns the path of a pricing service method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}
