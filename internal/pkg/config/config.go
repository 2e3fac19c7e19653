package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

const (
	defaultBiddingWindow       = 24 * time.Hour
	defaultBatchSize           = 100
	defaultSSEBufferSize       = 16
	defaultSSEHeartbeat        = 15 * time.Second
	defaultBidEventsTopic      = "bid.events"
	defaultPackageStatusTopic  = "package.status.changed"
	defaultPackageStatusTimout = 10 * time.Second
	defaultTrackingTimeout     = 3 * time.Second
	defaultLogLevel            = "info"

	defaultMaxConns         = 10
	defaultMinConns         = 2
	defaultStatementTimeout = 5 * time.Second
)

type (
	Tasks struct {
		BidExpiryInterval   time.Duration
		ExpiryBatchSize     uint64
		EventRelayInterval  time.Duration
		EventRelayBatchSize uint64
	}

	Bidding struct {
		// Window отсчитывается от первой ставки на посылку.
		Window time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	SSE struct {
		BufferSize        int
		HeartbeatInterval time.Duration
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string

		MaxConns         int32
		MinConns         int32
		StatementTimeout time.Duration
	}

	TrackingService struct {
		GRPCHost string
		// RequestTimeout применяется к вызову, если у контекста нет своего дедлайна.
		RequestTimeout time.Duration
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		BidEventsTopic  string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		PackageStatusChanged PackageStatusChanged
	}

	PackageStatusChanged struct {
		ProcessTimeout time.Duration
	}

	Log struct {
		// Level применяется после загрузки конфига, до этого логгер пишет с info.
		Level string
	}

	Config struct {
		Log             Log
		Tasks           Tasks
		Bidding         Bidding
		Server          HTTPServer
		SSE             SSE
		Database        Database
		TrackingService TrackingService
		Kafka           Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadDatabase читает только настройки postgres, для cmd/migrator.
func LoadDatabase() (*Database, error) {
	cfg, err := loadDatabase()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := validateDatabase(&cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return &cfg, nil
}

func loadFromEnv() (*Config, error) {
	bidExpiryInterval, err := osGetEnvDuration("BACKGROUND_BID_EXPIRY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	expiryBatchSize, err := osGetUint("BACKGROUND_EXPIRY_BATCH_SIZE", defaultBatchSize)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	eventRelayInterval, err := osGetEnvDuration("BACKGROUND_EVENT_RELAY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	eventRelayBatchSize, err := osGetUint("BACKGROUND_EVENT_RELAY_BATCH_SIZE", defaultBatchSize)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	biddingWindow, err := osGetEnvDuration("BIDDING_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if biddingWindow == 0 {
		biddingWindow = defaultBiddingWindow
	}

	sseBufferSize, err := osGetInt("SSE_BUFFER_SIZE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if sseBufferSize == 0 {
		sseBufferSize = defaultSSEBufferSize
	}

	sseHeartbeat, err := osGetEnvDuration("SSE_HEARTBEAT_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if sseHeartbeat == 0 {
		sseHeartbeat = defaultSSEHeartbeat
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	packageStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_PACKAGE_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if packageStatusChangedTimeout == 0 {
		packageStatusChangedTimeout = defaultPackageStatusTimout
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	trackingTimeout, err := osGetEnvDuration("TRACKING_SERVICE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if trackingTimeout == 0 {
		trackingTimeout = defaultTrackingTimeout
	}

	database, err := loadDatabase()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Log: Log{
			Level: osGetString("LOG_LEVEL", defaultLogLevel),
		},
		Tasks: Tasks{
			BidExpiryInterval:   bidExpiryInterval,
			ExpiryBatchSize:     expiryBatchSize,
			EventRelayInterval:  eventRelayInterval,
			EventRelayBatchSize: eventRelayBatchSize,
		},
		Bidding: Bidding{
			Window: biddingWindow,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		SSE: SSE{
			BufferSize:        sseBufferSize,
			HeartbeatInterval: sseHeartbeat,
		},
		Database: database,
		TrackingService: TrackingService{
			GRPCHost:       os.Getenv("TRACKING_SERVICE_GRPC_HOST"),
			RequestTimeout: trackingTimeout,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           osGetString("KAFKA_TOPIC", defaultPackageStatusTopic),
			BidEventsTopic:  osGetString("KAFKA_BID_EVENTS_TOPIC", defaultBidEventsTopic),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				PackageStatusChanged: PackageStatusChanged{
					ProcessTimeout: packageStatusChangedTimeout,
				},
			},
		},
	}, nil
}

func loadDatabase() (Database, error) {
	maxConns, err := osGetUint("POSTGRES_MAX_CONNS", defaultMaxConns)
	if err != nil {
		return Database{}, err
	}

	minConns, err := osGetUint("POSTGRES_MIN_CONNS", defaultMinConns)
	if err != nil {
		return Database{}, err
	}

	statementTimeout, err := osGetEnvDuration("POSTGRES_STATEMENT_TIMEOUT")
	if err != nil {
		return Database{}, err
	}
	if statementTimeout == 0 {
		statementTimeout = defaultStatementTimeout
	}

	return Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),

		MaxConns:         int32(min(maxConns, math.MaxInt32)), //nolint:gosec // ограничено MaxInt32
		MinConns:         int32(min(minConns, math.MaxInt32)), //nolint:gosec // ограничено MaxInt32
		StatementTimeout: statementTimeout,
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}

	if cfg.Tasks.BidExpiryInterval == time.Duration(0) {
		return errors.New("BACKGROUND_BID_EXPIRY_INTERVAL is required")
	}
	if cfg.Tasks.EventRelayInterval == time.Duration(0) {
		return errors.New("BACKGROUND_EVENT_RELAY_INTERVAL is required")
	}
	if cfg.Tasks.ExpiryBatchSize == 0 {
		return errors.New("BACKGROUND_EXPIRY_BATCH_SIZE must be positive")
	}
	if cfg.Tasks.EventRelayBatchSize == 0 {
		return errors.New("BACKGROUND_EVENT_RELAY_BATCH_SIZE must be positive")
	}

	if cfg.Bidding.Window < time.Minute {
		return fmt.Errorf("BIDDING_WINDOW must be at least 1m, got %s", cfg.Bidding.Window)
	}

	if cfg.SSE.BufferSize < 0 {
		return errors.New("SSE_BUFFER_SIZE must be positive")
	}

	if cfg.TrackingService.GRPCHost == "" {
		return errors.New("TRACKING_SERVICE_GRPC_HOST is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Topic == cfg.Kafka.BidEventsTopic {
		return errors.New("KAFKA_TOPIC and KAFKA_BID_EVENTS_TOPIC must differ")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	return nil
}

func validateDatabase(cfg *Database) error {
	if cfg.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if cfg.MaxConns == 0 {
		return errors.New("POSTGRES_MAX_CONNS must be positive")
	}
	if cfg.MinConns > cfg.MaxConns {
		return fmt.Errorf("POSTGRES_MIN_CONNS (%d) exceeds POSTGRES_MAX_CONNS (%d)", cfg.MinConns, cfg.MaxConns)
	}
	return nil
}

func osGetString(s, fallback string) string {
	val := os.Getenv(s)
	if val == "" {
		return fallback
	}
	return val
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetUint(s string, fallback uint64) (uint64, error) {
	val := os.Getenv(s)
	if val == "" {
		return fallback, nil
	}

	res, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid uint format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
