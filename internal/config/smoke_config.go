package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/frontcheck/internal/constants"
)

// SmokeConfig содержит тайминги smoke-теста.
type SmokeConfig struct {
	// Warmup - пауза перед запросом (или предел опроса в режиме poll).
	Warmup time.Duration `yaml:"warmup" env:"BR_SMOKE_WARMUP" env-default:"2s"`

	// WaitMode - delay (фиксированная пауза) или poll (опрос до готовности).
	WaitMode string `yaml:"waitMode" env:"BR_SMOKE_WAIT_MODE" env-default:"delay"`

	// RequestTimeout - таймаут одного GET.
	RequestTimeout time.Duration `yaml:"requestTimeout" env:"BR_SMOKE_REQUEST_TIMEOUT" env-default:"5s"`

	// Budget - общий лимит от запуска сервера до ответа.
	Budget time.Duration `yaml:"budget" env:"BR_SMOKE_BUDGET" env-default:"10s"`
}

func loadSmokeConfig(l *slog.Logger, cfg *Config) (*SmokeConfig, error) {
	smokeConfig := cfg.AppConfig.Smoke
	if err := cleanenv.ReadEnv(&smokeConfig); err != nil {
		return nil, err
	}
	if err := validateSmokeConfig(&smokeConfig); err != nil {
		return nil, err
	}
	l.Debug("Smoke конфигурация загружена",
		slog.Duration("warmup", smokeConfig.Warmup),
		slog.String("wait_mode", smokeConfig.WaitMode),
		slog.Duration("budget", smokeConfig.Budget),
	)
	return &smokeConfig, nil
}

func validateSmokeConfig(sc *SmokeConfig) error {
	if sc.WaitMode != constants.WaitModeDelay && sc.WaitMode != constants.WaitModePoll {
		return fmt.Errorf("smoke: waitMode должен быть %q или %q, получено %q",
			constants.WaitModeDelay, constants.WaitModePoll, sc.WaitMode)
	}
	if sc.Warmup < 0 {
		return fmt.Errorf("smoke: warmup не может быть отрицательным")
	}
	if sc.RequestTimeout <= 0 {
		return fmt.Errorf("smoke: requestTimeout должен быть положительным")
	}
	if sc.Budget < sc.Warmup+sc.RequestTimeout {
		return fmt.Errorf("smoke: budget %s меньше warmup+requestTimeout (%s)",
			sc.Budget, sc.Warmup+sc.RequestTimeout)
	}
	return nil
}
