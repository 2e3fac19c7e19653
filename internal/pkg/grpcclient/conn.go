package grpcclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"bidding-service/internal/pkg/config"
	"bidding-service/pkg/logger"
	retrierconfig "bidding-service/pkg/retrier"
	"bidding-service/pkg/retrier/backoff_adapter"
)

const userAgent = "bidding-service"

var keepaliveParams = keepalive.ClientParameters{
	Time:                5 * time.Minute,
	Timeout:             3 * time.Second,
	PermitWithoutStream: false,
}

// tracking-service может стартовать позже воркера
var healthRetry = retrierconfig.Config{
	InitialInterval: 1 * time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  2 * time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

// NewConnClient открывает соединение с tracking-service и ждет SERVING от grpc.health.v1.
func NewConnClient(ctx context.Context, log logger.Logger, cfg *config.TrackingService) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(
		cfg.GRPCHost,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepaliveParams),
		grpc.WithUserAgent(userAgent),
		grpc.WithChainUnaryInterceptor(TimeoutInterceptor(cfg.RequestTimeout)),
	)
	if err != nil {
		return nil, fmt.Errorf("create gRPC client: %w", err)
	}

	grpcLog := log.With(
		logger.NewField("component", "grpc-client"),
		logger.NewField("host", cfg.GRPCHost),
	)

	if err := waitServing(ctx, grpcLog, grpc_health_v1.NewHealthClient(conn)); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("gRPC connection: %w (failed to close: %w)", err, closeErr)
		}
		return nil, fmt.Errorf("gRPC connection: %w", err)
	}

	return conn, nil
}

// TimeoutInterceptor ограничивает вызов timeout-ом, если вызывающий не поставил дедлайн сам.
// Ретраи гейтвея идут внутри одного вызова Invoke, так что лимит действует на попытку.
func TimeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if _, ok := ctx.Deadline(); !ok && timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func waitServing(ctx context.Context, log logger.Logger, health grpc_health_v1.HealthClient) error {
	var attempt uint64
	err := backoff_adapter.New(healthRetry).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.Info("checking tracking-service health", logger.NewField("attempt", attempt))

		resp, err := health.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
		if err != nil {
			return err
		}
		if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
			return fmt.Errorf("tracking-service is %s", resp.GetStatus())
		}
		return nil
	})
	if err != nil {
		log.Error("tracking-service unavailable",
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		)
		return fmt.Errorf("health check: %w", err)
	}

	log.Info("tracking-service is serving", logger.NewField("attempts", attempt))
	return nil
}

// HealthPinger - одиночная проверка grpc.health.v1 для healthcheck воркера.
type HealthPinger struct {
	client grpc_health_v1.HealthClient
}

func NewHealthPinger(conn grpc.ClientConnInterface) *HealthPinger {
	return &HealthPinger{client: grpc_health_v1.NewHealthClient(conn)}
}

func (p *HealthPinger) Ping(ctx context.Context) error {
	resp, err := p.client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("tracking-service is %s", resp.GetStatus())
	}
	return nil
}
