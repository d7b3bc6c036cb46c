// Package config загружает конфигурацию frontcheck из переменных окружения
// BR_* и необязательного YAML-файла приложения.
//
// Приоритет источников: переменные окружения, затем YAML, затем значения
// по умолчанию из тегов env-default.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
)

// Config - итоговая конфигурация одного запуска.
type Config struct {
	// Command - имя команды (BR_COMMAND или первый аргумент CLI).
	Command string `env:"BR_COMMAND" env-default:""`

	// ConfigFile - путь к YAML-конфигурации. Пусто - frontcheck.yaml
	// в корне проекта, если файл существует.
	ConfigFile string `env:"BR_CONFIG_FILE" env-default:""`

	// Args - позиционные аргументы после имени команды.
	Args []string

	// Logger - bootstrap-логгер загрузки конфигурации.
	Logger *slog.Logger

	// AppConfig - содержимое YAML-файла (пустой, если файла нет).
	AppConfig *AppConfig

	ProjectConfig *ProjectConfig
	ServerConfig  *ServerConfig
	SmokeConfig   *SmokeConfig
	LoggingConfig *LoggingConfig
	MetricsConfig *MetricsConfig
	TracingConfig *TracingConfig
}

// Load читает конфигурацию. command и args переопределяют BR_COMMAND,
// если command не пуст.
func Load(command string, args []string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать переменные окружения", err)
	}
	if command != "" {
		cfg.Command = command
	}
	cfg.Args = args

	l := bootstrapLogger()
	cfg.Logger = l

	var err error
	if cfg.AppConfig, err = loadAppConfig(l, &cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"ошибка загрузки конфигурации приложения", err)
	}

	if cfg.ProjectConfig, err = loadProjectConfig(l, &cfg); err != nil {
		return nil, wrapSection("project", err)
	}
	if cfg.ServerConfig, err = loadServerConfig(l, &cfg); err != nil {
		return nil, wrapSection("server", err)
	}
	if cfg.SmokeConfig, err = loadSmokeConfig(l, &cfg); err != nil {
		return nil, wrapSection("smoke", err)
	}
	if cfg.LoggingConfig, err = loadLoggingConfig(l, &cfg); err != nil {
		return nil, wrapSection("logging", err)
	}
	if cfg.MetricsConfig, err = loadMetricsConfig(l, &cfg); err != nil {
		return nil, wrapSection("metrics", err)
	}
	if cfg.TracingConfig, err = loadTracingConfig(l, &cfg); err != nil {
		return nil, wrapSection("tracing", err)
	}

	return &cfg, nil
}

func wrapSection(section string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewAppError(apperrors.ErrConfigLoad,
		fmt.Sprintf("некорректная секция %s", section), err)
}

// bootstrapLogger пишет в stderr только предупреждения: полноценный
// логгер строится позже из LoggingConfig.
func bootstrapLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// resolvePath возвращает path, если он задан, иначе root/def.
// Относительный path считается от root.
func resolvePath(root, path, def string) string {
	if path == "" {
		path = def
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
