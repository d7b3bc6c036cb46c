package config

import (
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/frontcheck/internal/constants"
)

const (
	envProjectRoot     = "BR_PROJECT_ROOT"
	defaultProjectRoot = "."
)

// ProjectConfig содержит пути к файлам проекта.
// Относительные пути считаются от Root.
type ProjectConfig struct {
	// Root - корень фронтенд-проекта.
	Root string `yaml:"root" env:"BR_PROJECT_ROOT" env-default:"."`

	// ManifestPath - package.json. По умолчанию <root>/package.json.
	ManifestPath string `yaml:"manifestPath" env:"BR_MANIFEST_PATH"`

	// ModulesDir - каталог установленных пакетов. По умолчанию <root>/node_modules.
	ModulesDir string `yaml:"modulesDir" env:"BR_MODULES_DIR"`

	// BuildDir - каталог production-сборки. По умолчанию <root>/build.
	BuildDir string `yaml:"buildDir" env:"BR_BUILD_DIR"`

	// SkipInstalled отключает сверку с node_modules.
	SkipInstalled bool `yaml:"skipInstalled" env:"BR_SKIP_INSTALLED" env-default:"false"`
}

// loadProjectConfig накладывает BR_* поверх секции project и
// разрешает пути относительно Root.
func loadProjectConfig(l *slog.Logger, cfg *Config) (*ProjectConfig, error) {
	projectConfig := cfg.AppConfig.Project
	if err := cleanenv.ReadEnv(&projectConfig); err != nil {
		return nil, err
	}

	root := projectConfig.Root
	projectConfig.ManifestPath = resolvePath(root, projectConfig.ManifestPath, constants.DefaultManifestFile)
	projectConfig.ModulesDir = resolvePath(root, projectConfig.ModulesDir, constants.DefaultModulesDir)
	projectConfig.BuildDir = resolvePath(root, projectConfig.BuildDir, constants.DefaultBuildDir)

	l.Debug("Project конфигурация загружена",
		slog.String("manifest", projectConfig.ManifestPath),
		slog.String("build_dir", projectConfig.BuildDir),
	)
	return &projectConfig, nil
}

// InstalledModulesDir возвращает каталог для сверки установленных пакетов
// или "", если сверка отключена.
func (p *ProjectConfig) InstalledModulesDir() string {
	if p.SkipInstalled {
		return ""
	}
	return p.ModulesDir
}
