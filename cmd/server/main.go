package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/light-bringer/printshop-pricing/internal/pkg/config"
	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
	"github.com/light-bringer/printshop-pricing/internal/services"
	grpcpricing "github.com/light-bringer/printshop-pricing/internal/transport/grpc/pricing"
	httppricing "github.com/light-bringer/printshop-pricing/internal/transport/http"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		ServiceName: cfg.App.Name,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	log.InfoFields(ctx, "starting pricing service", map[string]any{
		"env":       cfg.App.Env,
		"database":  cfg.Spanner.Database(),
		"emulator":  cfg.Spanner.UsesEmulator(),
		"grpc_port": cfg.GRPC.Port,
		"http_port": cfg.HTTP.Port,
		"cache":     cfg.Redis.Enabled(),
	})

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create gRPC server with health and optional reflection
	grpcServer, healthServer := grpcpricing.NewServer(serviceOpts.PricingHandler, log, cfg.GRPC.Reflection)

	lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info(ctx, "grpc server listening on :"+cfg.GRPC.Port)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	// 4. Create HTTP server
	if !cfg.App.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      httppricing.NewRouter(serviceOpts.HTTPHandler, log),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info(ctx, "http server listening on :"+cfg.HTTP.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// 5. Wait for a signal or a server failure
	var runErr error
	select {
	case <-ctx.Done():
		log.Info(context.Background(), "shutting down gracefully")
	case runErr = <-errCh:
		log.Error(context.Background(), "server stopped unexpectedly", runErr)
	}

	healthServer.SetServingStatus(grpcpricing.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "http server shutdown error", err)
	}

	grpcServer.GracefulStop()

	return runErr
}
