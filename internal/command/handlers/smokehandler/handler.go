// Package smokehandler реализует команду smoke-test: запуск статического
// сервера над сборкой и одну проверку корневой страницы.
package smokehandler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Kargones/frontcheck/internal/command"
	"github.com/Kargones/frontcheck/internal/command/handlers/shared"
	"github.com/Kargones/frontcheck/internal/compat"
	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
	"github.com/Kargones/frontcheck/internal/pkg/dryrun"
	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/pkg/metrics"
	"github.com/Kargones/frontcheck/internal/pkg/output"
	"github.com/Kargones/frontcheck/internal/pkg/progress"
	"github.com/Kargones/frontcheck/internal/pkg/urlutil"
	"github.com/Kargones/frontcheck/internal/smoke"
)

// RegisterCmd регистрирует smoke-test и старое имя test-runtime.
func RegisterCmd() error {
	return command.RegisterWithAlias(&Handler{}, constants.ActTestRuntime)
}

// Handler обрабатывает команду smoke-test.
type Handler struct {
	// launcher - nil в production, подменяется в тестах.
	launcher smoke.Launcher
}

// NewHandler создаёт Handler с заданным запуском сервера.
func NewHandler(launcher smoke.Launcher) *Handler {
	return &Handler{launcher: launcher}
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActSmokeTest
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Smoke-тест production-сборки через статический сервер"
}

// Execute выполняет smoke-test. При BR_DRY_RUN выводит план без запуска сервера.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	run := shared.Begin(ctx, constants.ActSmokeTest)
	if cfg == nil || cfg.ProjectConfig == nil || cfg.ServerConfig == nil || cfg.SmokeConfig == nil {
		return run.WriteError(shared.ConfigMissing(), "", nil)
	}

	target, err := resolveTarget(cfg)
	if err != nil {
		return run.WriteError(err, "", nil)
	}
	opts := options(cfg, target.url)

	if dryrun.IsDryRun() {
		return writePlan(run, target, opts)
	}

	log := run.Log.With(slog.String("build_dir", opts.BuildDir), slog.String("url", opts.URL))
	launcher := h.launcher
	if launcher == nil {
		launcher = &smoke.ProcessLauncher{
			Executable: target.executable,
			Args:       cfg.ServerConfig.ExpandArgs,
			Logger:     log,
		}
	}

	if !run.JSON() {
		run.Console().Info("Smoke test: serving %s at %s", opts.BuildDir, opts.URL)
	}

	tester := smoke.New(opts, launcher, logging.NewSlogAdapter(log), metrics.FromContext(ctx)).
		WithProgress(progress.NewIndeterminate())
	result, err := tester.Run(ctx)
	if err != nil {
		return run.WriteError(err, hintFor(err), result)
	}

	if !run.JSON() {
		run.Console().Success("app root element rendered without runtime errors (%d bytes)", result.Probe.BodyBytes)
		return nil
	}
	return run.WriteSuccess(result, buildSummary(result))
}

// hintFor возвращает подсказку о паре 19/17 для всех провалов, кроме
// отсутствующей сборки: там сервер не запускался.
func hintFor(err error) string {
	if apperrors.HasCode(err, apperrors.ErrBuildMissing) {
		return ""
	}
	return compat.Hint
}

type target struct {
	executable string
	args       []string
	url        string
}

func resolveTarget(cfg *config.Config) (*target, error) {
	exe, err := cfg.ServerConfig.Executable()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrServerStart,
			"cannot resolve static server executable", err)
	}
	return &target{
		executable: exe,
		args:       cfg.ServerConfig.ExpandArgs(cfg.ProjectConfig.BuildDir),
		url:        urlutil.RootURL(cfg.ServerConfig.Host, cfg.ServerConfig.Port),
	}, nil
}

func options(cfg *config.Config, url string) smoke.Options {
	return smoke.Options{
		BuildDir:       cfg.ProjectConfig.BuildDir,
		URL:            url,
		Warmup:         cfg.SmokeConfig.Warmup,
		WaitMode:       cfg.SmokeConfig.WaitMode,
		RequestTimeout: cfg.SmokeConfig.RequestTimeout,
		Budget:         cfg.SmokeConfig.Budget,
		StopGrace:      cfg.ServerConfig.StopGrace,
	}
}

func writePlan(run *shared.Run, t *target, opts smoke.Options) error {
	buildErr := smoke.CheckBuildDir(opts.BuildDir)
	buildCheck := dryrun.Step{
		Operation:  "Проверка каталога сборки",
		Parameters: map[string]any{"build_dir": opts.BuildDir, "exists": buildErr == nil},
	}

	plan := dryrun.BuildPlan(constants.ActSmokeTest,
		fmt.Sprintf("Запуск сервера и проверка %s", opts.URL),
		buildCheck,
		dryrun.Step{
			Operation: "Запуск статического сервера",
			Parameters: map[string]any{
				"command": t.executable,
				"args":    strings.Join(t.args, " "),
			},
		},
		dryrun.Step{
			Operation:  "Ожидание готовности",
			Parameters: map[string]any{"mode": opts.WaitMode, "warmup": opts.Warmup.String()},
		},
		dryrun.Step{
			Operation: "GET корневой страницы",
			Parameters: map[string]any{
				"url":     opts.URL,
				"timeout": opts.RequestTimeout.String(),
				"budget":  opts.Budget.String(),
			},
		},
		dryrun.Step{
			Operation:  "Остановка сервера",
			Parameters: map[string]any{"grace": opts.StopGrace.String()},
		},
	)
	plan.ValidationPassed = buildErr == nil

	if !run.JSON() {
		return plan.WriteText(os.Stdout)
	}
	return output.NewWriter(run.Format).Write(os.Stdout, &output.Result{
		Status:   output.StatusSuccess,
		Command:  constants.ActSmokeTest,
		DryRun:   true,
		Plan:     plan,
		Metadata: run.Metadata(),
	})
}

func buildSummary(r *smoke.Result) *output.SummaryInfo {
	s := output.NewSummaryInfo()
	s.AddMetric("status", fmt.Sprint(r.Probe.StatusCode), "")
	s.AddMetric("body", fmt.Sprint(r.Probe.BodyBytes), "bytes")
	s.AddMetric("probe", fmt.Sprint(r.Probe.DurationMs), "ms")
	if r.Ready != nil && !*r.Ready {
		s.AddWarning("server did not answer during warm-up")
	}
	return s
}
