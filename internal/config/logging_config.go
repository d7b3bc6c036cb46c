package config

import (
	"fmt"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/frontcheck/internal/pkg/logging"
)

// LoggingConfig содержит настройки логирования.
// Значения по умолчанию совпадают с logging.DefaultXxx.
type LoggingConfig struct {
	// Level - уровень логирования (debug, info, warn, error)
	Level string `yaml:"level" env:"BR_LOG_LEVEL" env-default:"info"`

	// Format - формат логов (json, text)
	Format string `yaml:"format" env:"BR_LOG_FORMAT" env-default:"text"`

	// Output - вывод логов (stderr, file)
	Output string `yaml:"output" env:"BR_LOG_OUTPUT" env-default:"stderr"`

	// FilePath - путь к файлу логов (если output=file)
	FilePath string `yaml:"filePath" env:"BR_LOG_FILE_PATH" env-default:"/var/log/frontcheck.log"`

	// MaxSize - максимальный размер файла лога в MB
	MaxSize int `yaml:"maxSize" env:"BR_LOG_MAX_SIZE" env-default:"20"`

	// MaxBackups - максимальное количество backup файлов
	MaxBackups int `yaml:"maxBackups" env:"BR_LOG_MAX_BACKUPS" env-default:"3"`

	// MaxAge - максимальный возраст backup файлов в днях
	MaxAge int `yaml:"maxAge" env:"BR_LOG_MAX_AGE" env-default:"7"`

	// Compress - сжимать ли backup файлы.
	// TODO: env-default:"true" перекрывает compress: false из YAML, так как
	// false - нулевое значение; перейти на *bool.
	Compress bool `yaml:"compress" env:"BR_LOG_COMPRESS" env-default:"true"`
}

func loadLoggingConfig(l *slog.Logger, cfg *Config) (*LoggingConfig, error) {
	loggingConfig := cfg.AppConfig.Logging
	if err := cleanenv.ReadEnv(&loggingConfig); err != nil {
		return nil, err
	}
	if err := validateLoggingConfig(&loggingConfig); err != nil {
		return nil, err
	}
	l.Debug("Logging конфигурация загружена",
		slog.String("level", loggingConfig.Level),
		slog.String("format", loggingConfig.Format),
	)
	return &loggingConfig, nil
}

func validateLoggingConfig(lc *LoggingConfig) error {
	switch lc.Output {
	case logging.OutputStderr, logging.OutputFile:
	default:
		return fmt.Errorf("logging: output должен быть %q или %q, получено %q",
			logging.OutputStderr, logging.OutputFile, lc.Output)
	}
	switch lc.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("logging: неизвестный format %q", lc.Format)
	}
	return nil
}

// ToLogging преобразует секцию в logging.Config.
func (lc *LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:      lc.Level,
		Format:     lc.Format,
		Output:     lc.Output,
		FilePath:   lc.FilePath,
		MaxSize:    lc.MaxSize,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAge,
		Compress:   lc.Compress,
	}
}
