package di

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/pkg/metrics"
	"github.com/Kargones/frontcheck/internal/pkg/output"
)

func TestProvideLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "no logging section", cfg: &config.Config{}},
		{name: "json debug", cfg: &config.Config{LoggingConfig: &config.LoggingConfig{Level: "debug", Format: "json"}}},
		{name: "zero sizes keep defaults", cfg: &config.Config{LoggingConfig: &config.LoggingConfig{Output: "stderr"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := ProvideLogger(tt.cfg)
			require.NotNil(t, logger)
			_, ok := logger.(*logging.SlogAdapter)
			assert.True(t, ok)
		})
	}
}

func TestProvideOutputWriter(t *testing.T) {
	t.Setenv("BR_OUTPUT_FORMAT", "json")
	_, ok := ProvideOutputWriter().(*output.JSONWriter)
	assert.True(t, ok)

	t.Setenv("BR_OUTPUT_FORMAT", "")
	_, ok = ProvideOutputWriter().(*output.TextWriter)
	assert.True(t, ok)
}

func TestProvideTraceID(t *testing.T) {
	a := ProvideTraceID()
	b := ProvideTraceID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestProvideMetricsCollector_Disabled(t *testing.T) {
	logger := logging.NewNopLogger()

	c := ProvideMetricsCollector(nil, logger)
	assert.IsType(t, &metrics.NopCollector{}, c)

	c = ProvideMetricsCollector(&config.Config{MetricsConfig: &config.MetricsConfig{Enabled: false}}, logger)
	assert.IsType(t, &metrics.NopCollector{}, c)
}

func TestProvideMetricsCollector_InvalidFallsBackToNop(t *testing.T) {
	cfg := &config.Config{MetricsConfig: &config.MetricsConfig{
		Enabled:        true,
		PushgatewayURL: "not a url",
		JobName:        "frontcheck",
		Timeout:        time.Second,
	}}
	c := ProvideMetricsCollector(cfg, logging.NewNopLogger())
	assert.IsType(t, &metrics.NopCollector{}, c)
}

func TestProvideMetricsCollector_Enabled(t *testing.T) {
	cfg := &config.Config{MetricsConfig: &config.MetricsConfig{
		Enabled:        true,
		PushgatewayURL: "http://pushgateway:9091",
		JobName:        "frontcheck",
		Timeout:        time.Second,
	}}
	c := ProvideMetricsCollector(cfg, logging.NewNopLogger())
	assert.IsType(t, &metrics.PrometheusCollector{}, c)
}

func TestProvideTracerProvider_DisabledIsNop(t *testing.T) {
	shutdown := ProvideTracerProvider(nil, logging.NewNopLogger())
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	shutdown = ProvideTracerProvider(&config.Config{TracingConfig: &config.TracingConfig{Enabled: false}}, logging.NewNopLogger())
	assert.NoError(t, shutdown(context.Background()))
}

func TestProvideTracerProvider_InvalidFallsBackToNop(t *testing.T) {
	cfg := &config.Config{TracingConfig: &config.TracingConfig{
		Enabled:     true,
		Endpoint:    "",
		ServiceName: "frontcheck",
		Timeout:     time.Second,
	}}
	shutdown := ProvideTracerProvider(cfg, logging.NewNopLogger())
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
