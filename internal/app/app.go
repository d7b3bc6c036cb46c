// Package app связывает загрузку конфигурации, DI и реестр команд
// в один запуск frontcheck с кодом завершения.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kargones/frontcheck/internal/command"
	"github.com/Kargones/frontcheck/internal/command/handlers"
	"github.com/Kargones/frontcheck/internal/command/handlers/shared"
	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/di"
	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
	"github.com/Kargones/frontcheck/internal/pkg/logging"
	"github.com/Kargones/frontcheck/internal/pkg/metrics"
	"github.com/Kargones/frontcheck/internal/pkg/tracing"
)

// tracerShutdownTimeout ограничивает отправку span-ов при выходе.
const tracerShutdownTimeout = 5 * time.Second

var (
	registerOnce sync.Once
	registerErr  error
)

// register регистрирует обработчики один раз на процесс.
func register() error {
	registerOnce.Do(func() {
		registerErr = handlers.RegisterAll()
	})
	return registerErr
}

// Run выполняет команду и возвращает код завершения процесса.
// Пустая команда означает BR_COMMAND, а если и она пуста - help.
func Run(ctx context.Context, cmd string, args []string) int {
	if err := register(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка регистрации команд: %v\n", err)
		return constants.ExitFailure
	}

	cfg, err := config.Load(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return constants.ExitFailure
	}
	if cfg.Command == "" {
		cfg.Command = constants.ActHelp
	}

	application, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка инициализации приложения: %v\n", err)
		return constants.ExitFailure
	}
	if sa, ok := application.Logger.(*logging.SlogAdapter); ok {
		slog.SetDefault(sa.Slog())
	}
	l := slog.Default()
	l.Debug("Информация о сборке",
		slog.String("version", constants.Version),
		slog.String("commit_hash", constants.PreCommitHash),
	)

	traceID := application.TraceID
	ctx = tracing.WithTraceID(ctx, traceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)
	ctx = metrics.WithCollector(ctx, application.MetricsCollector)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := application.TracerShutdown(shutdownCtx); err != nil {
			l.Error("ошибка завершения tracing",
				slog.String("error", err.Error()),
				slog.String("trace_id", traceID),
				slog.String("command", cfg.Command),
			)
		}
	}()

	handler, ok := command.Get(cfg.Command)
	if !ok {
		return unknownCommand(ctx, cfg.Command)
	}

	ctx, span := tracing.StartSpan(ctx, cfg.Command,
		attribute.String("command", cfg.Command),
		attribute.String("trace_id", traceID),
	)

	start := time.Now()
	execErr := handler.Execute(ctx, cfg)
	tracing.EndSpan(span, execErr)
	recordMetrics(ctx, application.MetricsCollector, cfg, start, execErr == nil)

	if execErr != nil {
		l.Error("Ошибка выполнения команды",
			slog.String("command", cfg.Command),
			slog.String("error", execErr.Error()),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
		return constants.ExitFailure
	}
	return constants.ExitOK
}

// unknownCommand сообщает о неизвестной команде в выбранном формате вывода.
func unknownCommand(ctx context.Context, name string) int {
	err := apperrors.NewAppError(apperrors.ErrCommandNotFound,
		fmt.Sprintf("unknown command %q", name), nil)
	_ = shared.Begin(ctx, name).WriteError(err, "run 'frontcheck help' to list commands", nil)
	return constants.ExitUnknownCommand
}

// recordMetrics записывает результат команды и отправляет метрики в Pushgateway.
func recordMetrics(ctx context.Context, collector metrics.Collector, cfg *config.Config, start time.Time, success bool) {
	collector.RecordCommandEnd(cfg.Command, projectName(cfg), time.Since(start), success)
	_ = collector.Push(ctx)
}

// projectName - имя каталога проекта для метки project.
func projectName(cfg *config.Config) string {
	if cfg.ProjectConfig == nil || cfg.ProjectConfig.Root == "" {
		return ""
	}
	abs, err := filepath.Abs(cfg.ProjectConfig.Root)
	if err != nil {
		return filepath.Base(cfg.ProjectConfig.Root)
	}
	return filepath.Base(abs)
}
