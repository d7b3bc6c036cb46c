// Package metrics собирает метрики выполнения команд и отправляет их
// в Prometheus Pushgateway.
//
// NewCollector выбирает реализацию по конфигурации: при отключённых
// метриках возвращается NopCollector.
package metrics

import (
	"context"
	"time"
)

// Результаты проверки страницы для метки outcome.
const (
	OutcomePass      = "pass"
	OutcomeTransport = "transport_error"
	OutcomeContent   = "content_error"
)

// Collector определяет интерфейс для сбора метрик.
// Реализации: PrometheusCollector и NopCollector.
type Collector interface {
	// RecordCommandEnd записывает завершение команды с результатом.
	// project - имя проекта из манифеста, может быть пустым.
	RecordCommandEnd(command, project string, duration time.Duration, success bool)

	// RecordProbe записывает длительность HTTP-проверки и её исход.
	RecordProbe(outcome string, duration time.Duration)

	// Push отправляет метрики в Pushgateway.
	// Ошибки логируются внутри реализации; всегда возвращает nil.
	Push(ctx context.Context) error
}
