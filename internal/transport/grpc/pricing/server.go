package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
)

// RequestIDKey is the metadata key carrying a caller supplied request id.
const RequestIDKey = "x-request-id"

// NewServer creates a gRPC server with the pricing service and the standard
// health service registered. Reflection is registered when enabled.
func NewServer(handler PricingServiceServer, log *logger.Logger, enableReflection bool) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(requestLogger(log)))

	RegisterPricingServiceServer(srv, handler)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)

	if enableReflection {
		reflection.Register(srv)
	}
	return srv, healthSrv
}

func requestLogger(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		requestID := uuid.NewString()
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(RequestIDKey); len(ids) > 0 && ids[0] != "" {
				requestID = ids[0]
			}
		}
		ctx = log.WithRequestID(ctx, requestID)

		start := time.Now()
		resp, err := next(ctx, req)

		log.InfoFields(ctx, "grpc request", map[string]any{
			"method":      info.FullMethod,
			"code":        status.Code(err).String(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return resp, err
	}
}
