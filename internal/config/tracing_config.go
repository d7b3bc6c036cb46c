package config

import (
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/tracing"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled включает отправку трейсов в OTLP бэкенд.
	Enabled bool `yaml:"enabled" env:"BR_TRACING_ENABLED" env-default:"false"`

	// Endpoint - URL OTLP HTTP endpoint (например, http://jaeger:4318).
	Endpoint string `yaml:"endpoint" env:"BR_TRACING_ENDPOINT"`

	// ServiceName - имя сервиса для resource attributes.
	ServiceName string `yaml:"serviceName" env:"BR_TRACING_SERVICE_NAME" env-default:"frontcheck"`

	// Environment - окружение (ci, staging, development).
	Environment string `yaml:"environment" env:"BR_TRACING_ENVIRONMENT" env-default:"ci"`

	// Insecure - HTTP вместо HTTPS для OTLP endpoint.
	Insecure bool `yaml:"insecure" env:"BR_TRACING_INSECURE" env-default:"false"`

	// Timeout - таймаут для экспорта трейсов.
	Timeout time.Duration `yaml:"timeout" env:"BR_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate - доля сэмплируемых трейсов (0.0 - ни один, 1.0 - все).
	SamplingRate float64 `yaml:"samplingRate" env:"BR_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

func loadTracingConfig(l *slog.Logger, cfg *Config) (*TracingConfig, error) {
	tracingConfig := cfg.AppConfig.Tracing
	if err := cleanenv.ReadEnv(&tracingConfig); err != nil {
		return nil, err
	}
	tc := tracingConfig.ToTracing()
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	l.Debug("Tracing конфигурация загружена",
		slog.Bool("enabled", tracingConfig.Enabled),
		slog.String("service_name", tracingConfig.ServiceName),
	)
	return &tracingConfig, nil
}

// ToTracing преобразует секцию в tracing.Config.
func (tc *TracingConfig) ToTracing() tracing.Config {
	return tracing.Config{
		Enabled:      tc.Enabled,
		Endpoint:     tc.Endpoint,
		ServiceName:  tc.ServiceName,
		Version:      constants.Version,
		Environment:  tc.Environment,
		Insecure:     tc.Insecure,
		Timeout:      tc.Timeout,
		SamplingRate: tc.SamplingRate,
	}
}
