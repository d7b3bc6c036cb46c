package compat

import (
	"errors"
	"fmt"

	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/manifest"
	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/versioning"
)

// Report - итог проверки версий.
type Report struct {
	// LibrarySpec и RendererSpec - спецификаторы из манифеста как есть.
	LibrarySpec  string `json:"library_spec"`
	RendererSpec string `json:"renderer_spec"`

	Declared Verdict `json:"declared"`

	// Installed - вердикт по node_modules; nil если проверка пропущена.
	Installed *Verdict `json:"installed,omitempty"`

	// InstalledSkipReason объясняет почему Installed == nil.
	InstalledSkipReason string `json:"installed_skip_reason,omitempty"`

	// Warnings - нефатальные предупреждения в порядке возникновения.
	Warnings []string `json:"warnings,omitempty"`
}

// Critical возвращает вердикт, из-за которого проверка провалена, или nil.
func (r *Report) Critical() *Verdict {
	if r == nil {
		return nil
	}
	if r.Declared.Level == LevelCritical {
		return &r.Declared
	}
	if r.Installed != nil && r.Installed.Level == LevelCritical {
		return r.Installed
	}
	return nil
}

// FixLines возвращает строки "Fix: ..." для критического вердикта.
func (r *Report) FixLines() []string {
	v := r.Critical()
	if v == nil {
		return nil
	}
	lines := make([]string, 0, len(v.Remedies))
	for _, remedy := range v.Remedies {
		lines = append(lines, "Fix: "+remedy)
	}
	return lines
}

// Validator проверяет объявленные и установленные версии пары пакетов.
type Validator struct {
	manifestPath string
	modulesDir   string
	logger       logging.Logger
}

// NewValidator создаёт Validator. Пустой modulesDir отключает
// проверку установленных пакетов.
func NewValidator(manifestPath, modulesDir string, logger logging.Logger) *Validator {
	if logger == nil {
		logger = &logging.NopLogger{}
	}
	return &Validator{manifestPath: manifestPath, modulesDir: modulesDir, logger: logger}
}

// Run выполняет проверку. При фатальном результате возвращает
// заполненный (насколько возможно) Report и AppError.
// Предупреждения не считаются ошибкой.
func (v *Validator) Run() (*Report, error) {
	report := &Report{}

	m, err := manifest.Load(v.manifestPath)
	if err != nil {
		return report, err
	}
	specs, err := m.Require(constants.PkgLibrary, constants.PkgRenderer)
	if err != nil {
		return report, err
	}
	report.LibrarySpec = specs[constants.PkgLibrary]
	report.RendererSpec = specs[constants.PkgRenderer]

	lib, err := parseVersion(constants.PkgLibrary, report.LibrarySpec)
	if err != nil {
		return report, err
	}
	ren, err := parseVersion(constants.PkgRenderer, report.RendererSpec)
	if err != nil {
		return report, err
	}
	v.logger.Debug("Объявленные версии разобраны",
		"library", lib.String(), "renderer", ren.String())

	report.Declared = Evaluate(lib, ren, SourceDeclared)
	switch report.Declared.Level {
	case LevelCritical:
		return report, apperrors.NewAppError(apperrors.ErrDeclaredIncompatible, report.Declared.Message, nil)
	case LevelWarning:
		report.Warnings = append(report.Warnings, report.Declared.Message)
	}

	v.checkInstalled(report)
	if report.Installed != nil && report.Installed.Level == LevelCritical {
		return report, apperrors.NewAppError(apperrors.ErrInstalledIncompatible, report.Installed.Message, nil)
	}
	return report, nil
}

// checkInstalled повторяет проверку пары 19/17 по node_modules.
// Любая проблема чтения не влияет на результат: отсутствие файлов
// пропускается молча, ошибки чтения попадают в Warnings.
func (v *Validator) checkInstalled(report *Report) {
	if v.modulesDir == "" {
		report.InstalledSkipReason = "проверка установленных пакетов отключена"
		return
	}

	versions := make(map[string]versioning.VersionTriple, 2)
	for _, pkg := range []string{constants.PkgLibrary, constants.PkgRenderer} {
		raw, err := manifest.ReadInstalledVersion(v.modulesDir, pkg)
		if errors.Is(err, manifest.ErrNotInstalled) {
			report.InstalledSkipReason = fmt.Sprintf("%s не установлен", pkg)
			v.logger.Debug("Проверка установленных пакетов пропущена", "package", pkg, "dir", v.modulesDir)
			return
		}
		if err == nil {
			var triple versioning.VersionTriple
			triple, err = versioning.Parse(raw)
			versions[pkg] = triple
		}
		if err != nil {
			msg := fmt.Sprintf("could not verify installed %s: %v", pkg, err)
			report.InstalledSkipReason = msg
			report.Warnings = append(report.Warnings, msg)
			v.logger.Warn("Не удалось прочитать установленный пакет", "package", pkg, "error", err)
			return
		}
	}

	verdict := Evaluate(versions[constants.PkgLibrary], versions[constants.PkgRenderer], SourceInstalled)
	report.Installed = &verdict
}

func parseVersion(pkg, spec string) (versioning.VersionTriple, error) {
	triple, err := versioning.Parse(spec)
	if err != nil {
		return versioning.VersionTriple{}, apperrors.NewAppError(apperrors.ErrVersionParse,
			fmt.Sprintf("cannot parse %s version %q", pkg, spec), err)
	}
	return triple, nil
}
