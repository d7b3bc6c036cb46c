// Package smoke запускает статический сервер над production-сборкой,
// делает один GET к корню и гарантированно останавливает сервер.
package smoke

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/pkg/metrics"
	"github.com/Kargones/frontcheck/internal/pkg/progress"
	"github.com/Kargones/frontcheck/internal/pkg/tracing"
	"github.com/Kargones/frontcheck/internal/probe"
	"github.com/Kargones/frontcheck/internal/util/runner"
)

// progressTick - период перерисовки индикатора во время прогрева.
const progressTick = 100 * time.Millisecond

// Options - параметры одного прогона.
type Options struct {
	BuildDir       string
	URL            string
	Warmup         time.Duration
	WaitMode       string
	RequestTimeout time.Duration
	Budget         time.Duration
	StopGrace      time.Duration
}

// Result - итог прогона.
type Result struct {
	BuildDir string        `json:"build_dir"`
	URL      string        `json:"url"`
	WaitMode string        `json:"wait_mode"`
	Ready    *bool         `json:"ready,omitempty"`
	Probe    *probe.Report `json:"probe,omitempty"`
}

// Tester выполняет smoke-test.
type Tester struct {
	opts     Options
	launcher Launcher
	prober   *probe.Prober
	logger   logging.Logger
	metrics  metrics.Collector
	progress progress.Progress
}

// New создаёт Tester. Nil logger и collector заменяются no-op реализациями,
// нулевые таймауты - значениями по умолчанию. Нулевой Warmup допустим.
func New(opts Options, launcher Launcher, logger logging.Logger, collector metrics.Collector) *Tester {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if collector == nil {
		collector = metrics.NewNopCollector()
	}
	if opts.WaitMode == "" {
		opts.WaitMode = constants.WaitModeDelay
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = constants.DefaultRequestTimeout
	}
	if opts.Budget <= 0 {
		opts.Budget = constants.DefaultBudget
	}
	if opts.StopGrace <= 0 {
		opts.StopGrace = constants.DefaultStopGrace
	}
	return &Tester{
		opts:     opts,
		launcher: launcher,
		prober:   probe.New(nil, opts.RequestTimeout),
		logger:   logger,
		metrics:  collector,
		progress: progress.NewNoOp(),
	}
}

// WithProgress задаёт индикатор ожидания сервера и проверки.
func (t *Tester) WithProgress(p progress.Progress) *Tester {
	if p != nil {
		t.progress = p
	}
	return t
}

// CheckBuildDir проверяет, что каталог сборки существует.
func CheckBuildDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrBuildMissing,
			fmt.Sprintf("build directory %s not found; run the build first", dir), err)
	}
	if !info.IsDir() {
		return apperrors.NewAppError(apperrors.ErrBuildMissing,
			fmt.Sprintf("build path %s is not a directory", dir), nil)
	}
	return nil
}

// Run выполняет прогон. Сервер останавливается на любом пути выхода
// после успешного запуска, включая panic.
func (t *Tester) Run(ctx context.Context) (result *Result, err error) {
	result = &Result{BuildDir: t.opts.BuildDir, URL: t.opts.URL, WaitMode: t.opts.WaitMode}

	if err := CheckBuildDir(t.opts.BuildDir); err != nil {
		return result, err
	}

	ctx, cancel := context.WithTimeout(ctx, t.opts.Budget)
	defer cancel()

	t.logger.Info("Запуск статического сервера", "dir", t.opts.BuildDir, "url", t.opts.URL)
	srv, err := t.launcher.Launch(t.opts.BuildDir)
	if err != nil {
		return result, apperrors.NewAppError(apperrors.ErrServerStart,
			"failed to start static server", err)
	}
	defer func() {
		if stopErr := srv.Stop(t.opts.StopGrace); stopErr != nil {
			t.logger.Warn("Ошибка остановки сервера", "error", stopErr)
		}
		if err != nil {
			t.logger.Debug("Вывод сервера", "output", runner.TrimOut(srv.Output()))
		}
	}()

	t.progress.Start("waiting for static server")
	defer func() { t.progress.Finish(err) }()

	if err = t.warmUp(ctx, srv, result); err != nil {
		return result, err
	}

	t.progress.Update("checking " + t.opts.URL)
	probeCtx, span := tracing.StartSpan(ctx, "smoke.probe", attribute.String("url", t.opts.URL))
	result.Probe, err = t.prober.Check(probeCtx, t.opts.URL)
	tracing.EndSpan(span, err)
	t.metrics.RecordProbe(outcome(err), time.Duration(result.Probe.DurationMs)*time.Millisecond)

	if err != nil {
		return result, err
	}
	t.logger.Info("Проверка страницы пройдена",
		"status", result.Probe.StatusCode, "bytes", result.Probe.BodyBytes)
	return result, nil
}

// warmUp ждёт готовности сервера. В режиме delay - фиксированная пауза,
// в режиме poll - опрос не дольше той же паузы. Неготовый сервер
// не является ошибкой: её покажет сама проверка.
func (t *Tester) warmUp(ctx context.Context, srv Server, result *Result) error {
	if t.opts.WaitMode == constants.WaitModePoll {
		ready := probe.WaitReady(ctx, nil, t.opts.URL, t.opts.Warmup)
		result.Ready = &ready
		if !ready {
			t.logger.Warn("Сервер не ответил за время прогрева", "warmup", t.opts.Warmup)
		}
		if ctx.Err() != nil {
			return budgetExhausted(ctx)
		}
		return nil
	}

	timer := time.NewTimer(t.opts.Warmup)
	defer timer.Stop()
	tick := time.NewTicker(progressTick)
	defer tick.Stop()
	for {
		select {
		case <-timer.C:
			return nil
		case <-tick.C:
			t.progress.Update("")
		case <-srv.Exited():
			return apperrors.NewAppError(apperrors.ErrServerStart,
				"static server exited during warm-up", nil)
		case <-ctx.Done():
			return budgetExhausted(ctx)
		}
	}
}

func budgetExhausted(ctx context.Context) error {
	return apperrors.NewAppError(apperrors.ErrRequestTimeout,
		"smoke test budget exhausted during warm-up", ctx.Err())
}

func outcome(err error) string {
	switch apperrors.Category(apperrors.CodeOf(err)) {
	case apperrors.CategoryContent:
		return metrics.OutcomeContent
	case apperrors.CategoryTransport:
		return metrics.OutcomeTransport
	}
	if err != nil {
		return metrics.OutcomeTransport
	}
	return metrics.OutcomePass
}
