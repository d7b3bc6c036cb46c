package config

import (
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/frontcheck/internal/pkg/metrics"
	"github.com/Kargones/frontcheck/internal/pkg/urlutil"
)

// MetricsConfig содержит настройки для Prometheus метрик.
type MetricsConfig struct {
	// Enabled - включены ли метрики (по умолчанию false).
	Enabled bool `yaml:"enabled" env:"BR_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL - URL Prometheus Pushgateway, например "http://pushgateway:9091".
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"BR_METRICS_PUSHGATEWAY_URL"`

	// JobName - имя job для группировки метрик.
	JobName string `yaml:"jobName" env:"BR_METRICS_JOB_NAME" env-default:"frontcheck"`

	// Timeout - таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration `yaml:"timeout" env:"BR_METRICS_TIMEOUT" env-default:"10s"`

	// InstanceLabel - переопределение instance label. Пусто - hostname.
	InstanceLabel string `yaml:"instanceLabel" env:"BR_METRICS_INSTANCE"`
}

func loadMetricsConfig(l *slog.Logger, cfg *Config) (*MetricsConfig, error) {
	metricsConfig := cfg.AppConfig.Metrics
	if err := cleanenv.ReadEnv(&metricsConfig); err != nil {
		return nil, err
	}
	mc := metricsConfig.ToMetrics()
	if err := mc.Validate(); err != nil {
		return nil, err
	}
	l.Debug("Metrics конфигурация загружена",
		slog.Bool("enabled", metricsConfig.Enabled),
		slog.String("pushgateway_url", urlutil.MaskURL(metricsConfig.PushgatewayURL)),
	)
	return &metricsConfig, nil
}

// ToMetrics преобразует секцию в metrics.Config.
func (mc *MetricsConfig) ToMetrics() metrics.Config {
	return metrics.Config{
		Enabled:        mc.Enabled,
		PushgatewayURL: mc.PushgatewayURL,
		JobName:        mc.JobName,
		Timeout:        mc.Timeout,
		InstanceLabel:  mc.InstanceLabel,
	}
}
