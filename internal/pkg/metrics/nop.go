package metrics

import (
	"context"
	"time"
)

// NopCollector - no-op реализация Collector.
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordCommandEnd - no-op.
func (c *NopCollector) RecordCommandEnd(_, _ string, _ time.Duration, _ bool) {}

// RecordProbe - no-op.
func (c *NopCollector) RecordProbe(_ string, _ time.Duration) {}

// Push - no-op, всегда возвращает nil.
func (c *NopCollector) Push(_ context.Context) error {
	return nil
}
