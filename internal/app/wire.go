//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	parcelGateway "bidding-service/internal/gateway/grpc/parcel"
	"bidding-service/internal/gateway/kafka/bid_events"
	proto "bidding-service/internal/generated/proto/tracking"
	"bidding-service/internal/handlers/rest/bid_post"
	"bidding-service/internal/handlers/rest/bid_select_post"
	"bidding-service/internal/handlers/rest/bid_withdraw_post"
	"bidding-service/internal/handlers/rest/courier_bids_get"
	"bidding-service/internal/handlers/rest/package_bids_get"
	"bidding-service/internal/handlers/rest/package_cancel_post"
	"bidding-service/internal/handlers/rest/package_events_get"
	"bidding-service/internal/handlers/rest/package_get"
	"bidding-service/internal/handlers/rest/package_post"
	"bidding-service/internal/handlers/tasks/bid_expiry"
	"bidding-service/internal/handlers/tasks/event_relay"
	"bidding-service/internal/pkg/config"
	"bidding-service/internal/pkg/factory/bid_window"
	"bidding-service/internal/pkg/factory/package_handle"
	"bidding-service/internal/pkg/hub"
	"bidding-service/internal/pkg/kafka"
	"bidding-service/internal/pkg/metrics"

	bidRepo "bidding-service/internal/repository/bid"
	eventRepo "bidding-service/internal/repository/event"
	parcelRepo "bidding-service/internal/repository/parcel"
	"bidding-service/internal/service/allocation"
	bidService "bidding-service/internal/service/bid"
	"bidding-service/internal/service/deadline"
	"bidding-service/internal/service/notification"
	parcelService "bidding-service/internal/service/parcel"

	"bidding-service/pkg/background"
	"bidding-service/pkg/logger"
	"bidding-service/pkg/querier"
	"bidding-service/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
)

// relayBatchesPerTick ограничивает сколько пачек outbox-а relay выгребает за один тик.
const relayBatchesPerTick = 10

type Application struct {
	ServicePackage    ServicePackage
	ServiceBid        ServiceBid
	ServiceAllocation ServiceAllocation
	ServiceEvents     ServiceEvents
	Hub               *hub.Hub
	BackgroundWorkers *background.Worker
}

type ServicePackage interface {
	package_post.Service
	package_get.Service
}

type ServiceBid interface {
	bid_post.Service
	bid_withdraw_post.Service
	package_bids_get.Service
	courier_bids_get.Service
}

type ServiceAllocation interface {
	bid_select_post.Service
	package_cancel_post.Service
}

type ServiceEvents interface {
	package_events_get.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer *kafka.Producer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideParcelRepository,
		provideBidRepository,
		provideEventRepository,

		provideBiddingWindowFactory,
		provideDeadlineScheduler,
		provideBidService,
		provideCoordinator,
		providePackageRegistry,

		provideHub,
		provideBidEventsPublisher,
		provideNotificationService,

		provideBidExpiryTask,
		provideEventRelayTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServicePackage), new(*parcelService.Registry)),
		wire.Bind(new(ServiceBid), new(*bidService.Service)),
		wire.Bind(new(ServiceAllocation), new(*allocation.Coordinator)),
		wire.Bind(new(ServiceEvents), new(*notification.Service)),

		wire.Bind(new(notification.Broadcaster), new(*hub.Hub)),
		wire.Bind(new(notification.Publisher), new(*bid_events.Publisher)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	ParcelService *parcelService.Service
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-package-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideParcelRepository,
		provideBidRepository,
		provideEventRepository,

		provideBiddingWindowFactory,
		provideDeadlineScheduler,
		provideCoordinator,
		providePackageRegistry,

		provideTrackingClient,
		provideParcelGateway,
		provideStatusHandlerFactory,
		provideParcelService,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool, tx.WithRetryNotify(func(error, time.Duration) {
		metrics.TxRetriesTotal.Inc()
	}))
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideParcelRepository(querier *querier.Querier) *parcelRepo.Repository {
	return parcelRepo.New(querier)
}

func provideBidRepository(querier *querier.Querier) *bidRepo.Repository {
	return bidRepo.New(querier)
}

func provideEventRepository(querier *querier.Querier) *eventRepo.Repository {
	return eventRepo.New(querier)
}

func provideBiddingWindowFactory(cfg *config.Config) *bid_window.BiddingWindowFactory {
	return bid_window.New(cfg.Bidding.Window)
}

func provideDeadlineScheduler(
	log logger.Logger,
	packageRepository *parcelRepo.Repository,
	bidRepository *bidRepo.Repository,
	eventRepository *eventRepo.Repository,
	windowFactory *bid_window.BiddingWindowFactory,
	txManager *tx.Manager,
	cfg *config.Config,
) *deadline.Scheduler {
	return deadline.New(
		packageRepository,
		bidRepository,
		eventRepository,
		windowFactory,
		txManager,
		log.With(logger.NewField("component", "deadline-scheduler")),
		cfg.Tasks.ExpiryBatchSize,
	)
}

func provideBidService(
	bidRepository *bidRepo.Repository,
	packageRepository *parcelRepo.Repository,
	scheduler *deadline.Scheduler,
	eventRepository *eventRepo.Repository,
	txManager *tx.Manager,
) *bidService.Service {
	return bidService.New(bidRepository, packageRepository, scheduler, eventRepository, txManager)
}

func provideCoordinator(
	bidRepository *bidRepo.Repository,
	packageRepository *parcelRepo.Repository,
	scheduler *deadline.Scheduler,
	eventRepository *eventRepo.Repository,
	txManager *tx.Manager,
) *allocation.Coordinator {
	return allocation.New(bidRepository, packageRepository, scheduler, eventRepository, txManager)
}

func providePackageRegistry(packageRepository *parcelRepo.Repository) *parcelService.Registry {
	return parcelService.NewRegistry(packageRepository)
}

func provideHub(log logger.Logger, cfg *config.Config) *hub.Hub {
	return hub.New(log.With(logger.NewField("component", "sse-hub")), cfg.SSE.BufferSize)
}

func provideBidEventsPublisher(producer *kafka.Producer, cfg *config.Config) *bid_events.Publisher {
	return bid_events.New(producer, cfg.Kafka.BidEventsTopic)
}

func provideNotificationService(
	eventRepository *eventRepo.Repository,
	packageRepository *parcelRepo.Repository,
	publisher notification.Publisher,
	broadcaster notification.Broadcaster,
	txManager *tx.Manager,
	cfg *config.Config,
) *notification.Service {
	return notification.New(
		eventRepository,
		packageRepository,
		publisher,
		broadcaster,
		txManager,
		cfg.Tasks.EventRelayBatchSize,
	)
}

func provideTrackingClient(conn *grpc.ClientConn) proto.PackageServiceClient {
	return proto.NewPackageServiceClient(conn)
}

func provideParcelGateway(client proto.PackageServiceClient) *parcelGateway.ParcelGateway {
	return parcelGateway.New(client)
}

func provideStatusHandlerFactory(
	registry *parcelService.Registry,
	coordinator *allocation.Coordinator,
) *package_handle.StatusHandlerFactory {
	return package_handle.NewStatusHandlerFactory(registry, coordinator)
}

// provideParcelService создает parcelService для обработки событий Kafka
func provideParcelService(
	gateway *parcelGateway.ParcelGateway,
	handlerFactory *package_handle.StatusHandlerFactory,
) *parcelService.Service {
	return parcelService.New(gateway, handlerFactory)
}

func provideBidExpiryTask(
	log logger.Logger,
	scheduler *deadline.Scheduler,
	cfg *config.Config,
) *bid_expiry.BidExpiry {
	return bid_expiry.NewBidExpiry(log, scheduler, cfg.Tasks.BidExpiryInterval)
}

func provideEventRelayTask(
	log logger.Logger,
	notificationService *notification.Service,
	cfg *config.Config,
) *event_relay.EventRelay {
	return event_relay.NewEventRelay(log, notificationService, cfg.Tasks.EventRelayInterval, relayBatchesPerTick)
}

func provideTaskList(
	bidExpiryTask *bid_expiry.BidExpiry,
	eventRelayTask *event_relay.EventRelay,
) []background.Task {
	return []background.Task{
		bidExpiryTask,
		eventRelayTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
