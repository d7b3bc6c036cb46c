package di

import (
	"context"
	"log/slog"

	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/pkg/metrics"
	"github.com/Kargones/frontcheck/internal/pkg/output"
	"github.com/Kargones/frontcheck/internal/pkg/tracing"
)

// ProvideLogger создаёт Logger из LoggingConfig.
// Пустые поля и отсутствующая секция заменяются logging.DefaultConfig().
func ProvideLogger(cfg *config.Config) logging.Logger {
	logCfg := logging.DefaultConfig()
	if cfg == nil || cfg.LoggingConfig == nil {
		return logging.NewLogger(logCfg)
	}

	lc := cfg.LoggingConfig.ToLogging()
	if lc.Level != "" {
		logCfg.Level = lc.Level
	}
	if lc.Format != "" {
		logCfg.Format = lc.Format
	}
	if lc.Output != "" {
		logCfg.Output = lc.Output
	}
	if lc.FilePath != "" {
		logCfg.FilePath = lc.FilePath
	}
	// Нулевые размеры для lumberjack смысла не имеют: остаются значения по умолчанию.
	if lc.MaxSize > 0 {
		logCfg.MaxSize = lc.MaxSize
	}
	if lc.MaxBackups > 0 {
		logCfg.MaxBackups = lc.MaxBackups
	}
	if lc.MaxAge > 0 {
		logCfg.MaxAge = lc.MaxAge
	}
	logCfg.Compress = lc.Compress

	return logging.NewLogger(logCfg)
}

// ProvideOutputWriter создаёт Writer по BR_OUTPUT_FORMAT.
// Формат не зависит от Config, чтобы его можно было сменить без файла конфигурации.
func ProvideOutputWriter() output.Writer {
	return output.NewWriter(output.FormatFromEnv())
}

// ProvideTraceID генерирует 32-символьный hex trace_id.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector из MetricsConfig.
// При отсутствии секции или ошибке создания возвращает NopCollector.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil || cfg.MetricsConfig == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.MetricsConfig.ToMetrics(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider инициализирует OTel TracerProvider и возвращает его shutdown.
// При отсутствии секции или ошибке инициализации возвращает nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil || cfg.TracingConfig == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(cfg.TracingConfig.ToTracing(), logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}
