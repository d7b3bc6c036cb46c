package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Kargones/frontcheck/internal/constants"
)

// AppConfig - структура YAML-файла frontcheck.yaml.
//
//	project:
//	  root: web
//	server:
//	  port: 3000
//	smoke:
//	  waitMode: poll
type AppConfig struct {
	Project ProjectConfig `yaml:"project"`
	Server  ServerConfig  `yaml:"server"`
	Smoke   SmokeConfig   `yaml:"smoke"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`

	// path - файл, из которого прочитана конфигурация; пусто, если файла нет.
	path string
}

// Path возвращает путь к прочитанному файлу или "".
func (a *AppConfig) Path() string {
	return a.path
}

// loadAppConfig читает YAML-файл. Явно заданный, но отсутствующий файл -
// ошибка; отсутствие файла по умолчанию - нет.
func loadAppConfig(l *slog.Logger, cfg *Config) (*AppConfig, error) {
	path := cfg.ConfigFile
	explicit := path != ""
	if !explicit {
		root := os.Getenv(envProjectRoot)
		if root == "" {
			root = defaultProjectRoot
		}
		path = filepath.Join(root, constants.DefaultAppConfigFile)
	}

	data, err := os.ReadFile(path) //nolint:gosec // путь задаётся оператором
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			l.Debug("Файл конфигурации не найден, используются переменные окружения", slog.String("path", path))
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
	}

	appConfig, err := parseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}
	appConfig.path = path
	return appConfig, nil
}

// parseAppConfig декодирует YAML; неизвестные ключи считаются ошибкой.
func parseAppConfig(data []byte) (*AppConfig, error) {
	var appConfig AppConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&appConfig); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &appConfig, nil
}
