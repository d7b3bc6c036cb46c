// Package validatehandler реализует команду validate-versions: проверку
// совместимости react и react-dom по манифесту и установленным пакетам.
package validatehandler

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kargones/frontcheck/internal/command"
	"github.com/Kargones/frontcheck/internal/command/handlers/shared"
	"github.com/Kargones/frontcheck/internal/compat"
	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
	"github.com/Kargones/frontcheck/internal/pkg/console"
	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/pkg/output"
	"github.com/Kargones/frontcheck/internal/pkg/tracing"
)

// RegisterCmd регистрирует validate-versions и старое имя check-react.
func RegisterCmd() error {
	return command.RegisterWithAlias(&Handler{}, constants.ActCheckReact)
}

// Data - payload JSON-результата.
type Data struct {
	Manifest string `json:"manifest"`
	*compat.Report
}

// Handler обрабатывает команду validate-versions.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActValidateVersions
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Проверка совместимости версий react и react-dom"
}

// Execute запускает валидатор. Предупреждения не влияют на результат,
// несовместимая пара 19/17 и ошибки манифеста возвращают ошибку.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	run := shared.Begin(ctx, constants.ActValidateVersions)
	if cfg == nil || cfg.ProjectConfig == nil {
		return run.WriteError(shared.ConfigMissing(), "", nil)
	}
	project := cfg.ProjectConfig
	modulesDir := project.InstalledModulesDir()

	log := run.Log.With(slog.String("manifest", project.ManifestPath))
	log.Info("Проверка совместимости версий", slog.String("modules_dir", modulesDir))

	_, span := tracing.StartSpan(ctx, "compat.validate",
		attribute.String("manifest", project.ManifestPath))
	report, err := compat.NewValidator(project.ManifestPath, modulesDir, logging.NewSlogAdapter(log)).Run()
	tracing.EndSpan(span, err)

	data := &Data{Manifest: project.ManifestPath, Report: report}

	if !run.JSON() {
		writeText(run.Console(), data, err)
		return err
	}
	if err != nil {
		return run.WriteError(err, "", data)
	}
	return run.WriteSuccess(data, buildSummary(report))
}

// writeText печатает ход проверки строками со значками важности.
func writeText(p *console.Printer, d *Data, err error) {
	p.Info("Checking %s and %s compatibility in %s", constants.PkgLibrary, constants.PkgRenderer, d.Manifest)
	r := d.Report
	if r != nil && r.LibrarySpec != "" {
		p.Detail("%s: %s", constants.PkgLibrary, r.LibrarySpec)
		p.Detail("%s: %s", constants.PkgRenderer, r.RendererSpec)
	}

	if err != nil {
		msg := err.Error()
		if verdict := r.Critical(); verdict != nil {
			msg = verdict.Message
		} else if m := appMessage(err); m != "" {
			msg = m
		}
		p.Error("%s", msg)
		for _, line := range r.FixLines() {
			p.Detail("%s", line)
		}
		return
	}

	for _, w := range r.Warnings {
		p.Warning("%s", w)
	}
	if r.Installed != nil {
		p.Detail("installed: %s %s, %s %s", constants.PkgLibrary, r.Installed.Library,
			constants.PkgRenderer, r.Installed.Renderer)
	}
	p.Success("%s %s and %s %s are compatible", constants.PkgLibrary, r.Declared.Library,
		constants.PkgRenderer, r.Declared.Renderer)
}

func buildSummary(r *compat.Report) *output.SummaryInfo {
	s := output.NewSummaryInfo()
	s.AddMetric(constants.PkgLibrary, r.Declared.Library.String(), "")
	s.AddMetric(constants.PkgRenderer, r.Declared.Renderer.String(), "")
	for _, w := range r.Warnings {
		s.AddWarning(w)
	}
	return s
}

func appMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
