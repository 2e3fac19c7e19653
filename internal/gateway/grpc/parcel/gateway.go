package parcel

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bidding-service/internal/entities"
	proto "bidding-service/internal/generated/proto/tracking"
	parcelService "bidding-service/internal/service/parcel"
	retrierconfig "bidding-service/pkg/retrier"
	"bidding-service/pkg/retrier/backoff_adapter"
)

// Ретраи укладываются в ProcessTimeout обработчика kafka: статус посылки
// нужен до коммита офсета, дольше ждать нет смысла.
var trackingRetry = retrierconfig.Config{
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     400 * time.Millisecond,
	MaxElapsedTime:  2 * time.Second,
	Randomization:   0.5,
	Multiplier:      2,
	MaxRetries:      4,
	ShouldRetry:     isTransient,
}

// ParcelGateway читает авторитетное состояние посылки из tracking-service.
type ParcelGateway struct {
	client client
}

func New(client client) *ParcelGateway {
	return &ParcelGateway{client: client}
}

func (g *ParcelGateway) GetParcelByTrackingID(ctx context.Context, trackingID string) (*entities.Parcel, error) {
	req := &proto.GetPackageRequest{
		TrackingId: trackingID,
	}

	var resp *proto.GetPackageResponse

	err := g.executeWithMetrics(ctx, "GetPackage", func(ctx context.Context) error {
		var err error
		resp, err = g.client.GetPackage(ctx, req)
		return err
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("gateway parcel, get package: %s: %w", trackingID, parcelService.ErrPackageNotFound)
		}
		return nil, fmt.Errorf("gateway parcel, get package: %s: %w", trackingID, err)
	}

	parcel, err := toDomain(resp)
	if err != nil {
		return nil, fmt.Errorf("gateway parcel, decode package: %s: %w", trackingID, err)
	}
	if parcel == nil {
		return nil, fmt.Errorf("gateway parcel, get package: %s: %w", trackingID, parcelService.ErrPackageNotFound)
	}

	return parcel, nil
}

// executeWithMetrics выполняет вызов с ретраями на временных кодах.
// Дедлайн одной попытки выставляет TimeoutInterceptor соединения.
func (g *ParcelGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var lastCode codes.Code

	cfg := trackingRetry
	cfg.OnRetry = func(error, time.Duration) {
		TrackingRetriesTotal.WithLabelValues(method, lastCode.String()).Inc()
	}

	start := time.Now()
	err := backoff_adapter.New(cfg).ExecuteWithContext(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		lastCode = status.Code(err)
		return err
	})
	TrackingCallDuration.WithLabelValues(method, status.Code(err).String()).Observe(time.Since(start).Seconds())

	return err
}

func isTransient(err error) bool {
	switch status.Code(err) {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded,
		codes.Aborted:
		return true
	default:
		return false
	}
}
