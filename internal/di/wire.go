//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Kargones/frontcheck/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideOutputWriter,
	ProvideTraceID,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	wire.Struct(new(App), "*"),
)

// InitializeApp создаёт App из загруженного Config.
// Провайдеры вызываются в порядке зависимостей: логгер раньше метрик и трейсинга.
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
