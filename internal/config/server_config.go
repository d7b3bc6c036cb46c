package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/frontcheck/internal/constants"
	templateprocessor "github.com/Kargones/frontcheck/internal/util"
)

// DefaultServerArgs - аргументы встроенного сервера, аналог `serve -s {dir} -l {port}`.
const DefaultServerArgs = constants.ActServe + " -s " + templateprocessor.PlaceholderDir + " -l " + templateprocessor.PlaceholderPort

// ServerConfig описывает статический сервер, который запускает smoke-test.
type ServerConfig struct {
	// Command - исполняемый файл. Пусто - текущий бинарник frontcheck.
	Command string `yaml:"command" env:"BR_SERVER_COMMAND"`

	// Args - аргументы через пробел с плейсхолдерами {dir} и {port}.
	Args string `yaml:"args" env:"BR_SERVER_ARGS"`

	// Host - хост, по которому идёт проверка.
	Host string `yaml:"host" env:"BR_SERVER_HOST" env-default:"localhost"`

	// Port - фиксированный порт сервера.
	Port int `yaml:"port" env:"BR_SERVER_PORT" env-default:"3000"`

	// StopGrace - ожидание после interrupt перед kill.
	StopGrace time.Duration `yaml:"stopGrace" env:"BR_SERVER_STOP_GRACE" env-default:"3s"`
}

func loadServerConfig(l *slog.Logger, cfg *Config) (*ServerConfig, error) {
	serverConfig := cfg.AppConfig.Server
	if err := cleanenv.ReadEnv(&serverConfig); err != nil {
		return nil, err
	}
	// Свои аргументы имеют смысл только со своим бинарником.
	if serverConfig.Args == "" && serverConfig.Command == "" {
		serverConfig.Args = DefaultServerArgs
	}
	if err := validateServerConfig(&serverConfig); err != nil {
		return nil, err
	}

	l.Debug("Server конфигурация загружена",
		slog.String("command", serverConfig.Command),
		slog.Int("port", serverConfig.Port),
	)
	return &serverConfig, nil
}

func validateServerConfig(sc *ServerConfig) error {
	if sc.Port <= 0 || sc.Port > 65535 {
		return fmt.Errorf("server: port вне диапазона 1-65535: %d", sc.Port)
	}
	if sc.Host == "" {
		return fmt.Errorf("server: host обязателен")
	}
	if sc.StopGrace <= 0 {
		return fmt.Errorf("server: stopGrace должен быть положительным")
	}
	return nil
}

// Executable возвращает путь к исполняемому файлу сервера.
func (s *ServerConfig) Executable() (string, error) {
	if s.Command != "" {
		return s.Command, nil
	}
	return os.Executable()
}

// ExpandArgs подставляет каталог и порт в аргументы сервера.
func (s *ServerConfig) ExpandArgs(dir string) []string {
	return templateprocessor.ExpandArgs(s.Args, templateprocessor.ServerRules(dir, s.Port))
}
