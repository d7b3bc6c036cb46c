package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/pkg/urlutil"
)

const namespace = "frontcheck"

// PrometheusCollector реализует Collector с Prometheus метриками.
// Отправляет метрики в Pushgateway при вызове Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	commandDuration *prometheus.HistogramVec
	commandSuccess  *prometheus.CounterVec
	commandError    *prometheus.CounterVec
	probeDuration   *prometheus.HistogramVec

	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector. Регистрирует:
//   - frontcheck_command_duration_seconds (histogram)
//   - frontcheck_command_success_total (counter)
//   - frontcheck_command_error_total (counter)
//   - frontcheck_probe_duration_seconds (histogram)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	// Smoke-test укладывается в ~10s, валидатор в доли секунды.
	commandDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"command", "project", "status"},
	)

	commandSuccess := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_success_total",
			Help:      "Total number of successful command executions",
		},
		[]string{"command", "project"},
	)

	commandError := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_error_total",
			Help:      "Total number of failed command executions",
		},
		[]string{"command", "project"},
	)

	probeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Duration of the HTTP probe against the served build",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"outcome"},
	)

	collectors := []prometheus.Collector{commandDuration, commandSuccess, commandError, probeDuration}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:          config,
		logger:          logger,
		registry:        registry,
		commandDuration: commandDuration,
		commandSuccess:  commandSuccess,
		commandError:    commandError,
		probeDuration:   probeDuration,
		instance:        instance,
	}, nil
}

// maxLabelLength ограничивает значение label.
const maxLabelLength = 128

// sanitizeLabel обрезает значение label по рунам и заменяет
// контрольные символы, ломающие Prometheus text format.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordCommandEnd обновляет histogram длительности и counter success/error.
func (c *PrometheusCollector) RecordCommandEnd(command, project string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	command = sanitizeLabel(command)
	project = sanitizeLabel(project)

	c.commandDuration.WithLabelValues(command, project, status).Observe(duration.Seconds())
	if success {
		c.commandSuccess.WithLabelValues(command, project).Inc()
	} else {
		c.commandError.WithLabelValues(command, project).Inc()
	}

	c.logger.Debug("metrics: command ended",
		"command", command,
		"project", project,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// RecordProbe записывает длительность HTTP-проверки.
func (c *PrometheusCollector) RecordProbe(outcome string, duration time.Duration) {
	c.probeDuration.WithLabelValues(sanitizeLabel(outcome)).Observe(duration.Seconds())
}

// Push отправляет метрики в Pushgateway. Ошибка отправки только логируется.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// Registry возвращает внутренний registry. Используется в тестах.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
