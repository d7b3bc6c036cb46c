// Package prebuildhandler реализует команду pre-build: проверку версий и,
// если сборка уже есть, smoke-test в одном запуске.
package prebuildhandler

import (
	"context"
	"log/slog"

	"github.com/Kargones/frontcheck/internal/command"
	"github.com/Kargones/frontcheck/internal/command/handlers/shared"
	"github.com/Kargones/frontcheck/internal/compat"
	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/pkg/metrics"
	"github.com/Kargones/frontcheck/internal/pkg/progress"
	"github.com/Kargones/frontcheck/internal/pkg/tracing"
	"github.com/Kargones/frontcheck/internal/pkg/urlutil"
	"github.com/Kargones/frontcheck/internal/smoke"
)

// RegisterCmd регистрирует pre-build.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Data - payload JSON-результата.
type Data struct {
	Versions *compat.Report `json:"versions"`
	Smoke    *smoke.Result  `json:"smoke,omitempty"`
	// SmokeSkipped - причина пропуска smoke-test.
	SmokeSkipped string `json:"smoke_skipped,omitempty"`
}

// Handler обрабатывает команду pre-build.
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
	return constants.ActPreBuild
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Проверка версий, затем smoke-test, если сборка существует"
}

// Execute останавливается на первой ошибке.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	run := shared.Begin(ctx, constants.ActPreBuild)
	if cfg == nil || cfg.ProjectConfig == nil || cfg.ServerConfig == nil || cfg.SmokeConfig == nil {
		return run.WriteError(shared.ConfigMissing(), "", nil)
	}
	project := cfg.ProjectConfig
	log := logging.NewSlogAdapter(run.Log)
	data := &Data{}
	p := run.Console()

	ctx, span := tracing.StartSpan(ctx, "prebuild")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	data.Versions, err = compat.NewValidator(project.ManifestPath, project.InstalledModulesDir(), log).Run()
	if err != nil {
		return run.WriteError(err, "", data, data.Versions.FixLines()...)
	}
	if !run.JSON() {
		for _, w := range data.Versions.Warnings {
			p.Warning("%s", w)
		}
		p.Success("%s and %s versions are compatible", constants.PkgLibrary, constants.PkgRenderer)
	}

	if smoke.CheckBuildDir(project.BuildDir) != nil {
		data.SmokeSkipped = "build directory not found"
		run.Log.Info("Smoke-test пропущен: сборка не найдена", slog.String("build_dir", project.BuildDir))
		if !run.JSON() {
			p.Info("Smoke test skipped: %s does not exist yet", project.BuildDir)
			return nil
		}
		return run.WriteSuccess(data, nil)
	}

	launcher := h.launcher
	if launcher == nil {
		exe, exeErr := cfg.ServerConfig.Executable()
		if exeErr != nil {
			err = apperrors.NewAppError(apperrors.ErrServerStart, "cannot resolve static server executable", exeErr)
			return run.WriteError(err, "", data)
		}
		launcher = &smoke.ProcessLauncher{Executable: exe, Args: cfg.ServerConfig.ExpandArgs, Logger: run.Log}
	}

	opts := smoke.Options{
		BuildDir:       project.BuildDir,
		URL:            urlutil.RootURL(cfg.ServerConfig.Host, cfg.ServerConfig.Port),
		Warmup:         cfg.SmokeConfig.Warmup,
		WaitMode:       cfg.SmokeConfig.WaitMode,
		RequestTimeout: cfg.SmokeConfig.RequestTimeout,
		Budget:         cfg.SmokeConfig.Budget,
		StopGrace:      cfg.ServerConfig.StopGrace,
	}
	data.Smoke, err = smoke.New(opts, launcher, log, metrics.FromContext(ctx)).
		WithProgress(progress.NewIndeterminate()).
		Run(ctx)
	if err != nil {
		return run.WriteError(err, compat.Hint, data)
	}

	if !run.JSON() {
		p.Success("smoke test passed at %s", opts.URL)
		return nil
	}
	return run.WriteSuccess(data, nil)
}
