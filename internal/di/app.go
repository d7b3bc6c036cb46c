// Package di собирает зависимости одного запуска frontcheck через Wire.
package di

import (
	"context"

	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/pkg/metrics"
	"github.com/Kargones/frontcheck/internal/pkg/output"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через InitializeApp.
//
// При добавлении зависимости: поле в App, провайдер в providers.go,
// провайдер в ProviderSet, затем go generate ./internal/di/...
type App struct {
	Config *config.Config

	// Logger строится из LoggingConfig и пишет только в stderr или файл.
	Logger logging.Logger

	// OutputWriter выбирается по BR_OUTPUT_FORMAT.
	OutputWriter output.Writer

	// TraceID коррелирует логи и span-ы одного запуска.
	TraceID string

	// MetricsCollector - NopCollector, если метрики отключены.
	MetricsCollector metrics.Collector

	// TracerShutdown отправляет буферизированные span-ы; nop при отключённом трейсинге.
	TracerShutdown func(context.Context) error
}
