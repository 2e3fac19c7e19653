package zap_adapter

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bidding-service/pkg/logger"
)

// ZapAdapter реализует logger.Logger. Уровень общий для всех логгеров,
// порожденных через With, и меняется на лету через SetLevel или LevelHandler.
type ZapAdapter struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

type Option func(cfg *zap.Config)

// WithService добавляет поле service в каждую запись, чтобы логи нескольких бинарей различались в одном индексе.
func WithService(name string) Option {
	return func(cfg *zap.Config) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = make(map[string]any, 1)
		}
		cfg.InitialFields["service"] = name
	}
}

// WithConsoleEncoding переключает вывод в человекочитаемый формат, для CLI.
func WithConsoleEncoding() Option {
	return func(cfg *zap.Config) {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}
}

func NewZapAdapter(opts ...Option) (*ZapAdapter, error) {
	config := zap.NewProductionConfig()

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Encoding = "json"
	config.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	config.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	for _, opt := range opts {
		opt(&config)
	}

	zapLogger, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapAdapter{logger: zapLogger, level: config.Level}, nil
}

// SetLevel меняет минимальный уровень. Пустая строка оставляет текущий.
func (z *ZapAdapter) SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	z.level.SetLevel(lvl)
	return nil
}

// LevelHandler отдает GET/PUT ручку уровня логирования, монтируется на pprof-сервер.
func (z *ZapAdapter) LevelHandler() http.Handler {
	return z.level
}

func (z *ZapAdapter) Debug(msg string, fields ...logger.Field) {
	z.logger.Debug(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Info(msg string, fields ...logger.Field) {
	z.logger.Info(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Warn(msg string, fields ...logger.Field) {
	z.logger.Warn(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Error(msg string, fields ...logger.Field) {
	z.logger.Error(msg, convertFields(fields)...)
}

func (z *ZapAdapter) With(fields ...logger.Field) logger.Logger {
	if len(fields) == 0 {
		return z
	}
	return &ZapAdapter{
		logger: z.logger.With(convertFields(fields)...),
		level:  z.level,
	}
}

func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

func convertFields(fields []logger.Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			zapFields = append(zapFields, zap.NamedError(f.Key, v))
		case time.Duration:
			zapFields = append(zapFields, zap.Duration(f.Key, v))
		case time.Time:
			zapFields = append(zapFields, zap.Time(f.Key, v))
		case fmt.Stringer:
			zapFields = append(zapFields, zap.Stringer(f.Key, v))
		default:
			zapFields = append(zapFields, zap.Any(f.Key, v))
		}
	}
	return zapFields
}
