// Package shared содержит общий для обработчиков команд вывод результата
// и ошибок в формате BR_OUTPUT_FORMAT.
package shared

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
	"github.com/Kargones/frontcheck/internal/pkg/console"
	"github.com/Kargones/frontcheck/internal/pkg/output"
	"github.com/Kargones/frontcheck/internal/pkg/tracing"
)

// codeUnknown - код для ошибок вне таксономии apperrors.
const codeUnknown = "UNKNOWN.ERROR"

// Run - состояние одного выполнения команды, нужное для вывода.
type Run struct {
	Command string
	Format  string
	TraceID string
	Start   time.Time
	Log     *slog.Logger
}

// Begin фиксирует время старта, формат вывода и trace_id.
// Если trace_id нет в контексте, генерируется новый.
func Begin(ctx context.Context, command string) *Run {
	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}
	return &Run{
		Command: command,
		Format:  output.FormatFromEnv(),
		TraceID: traceID,
		Start:   time.Now(),
		Log:     slog.Default().With(slog.String("trace_id", traceID), slog.String("command", command)),
	}
}

// Console возвращает Printer для текущего os.Stdout.
func (r *Run) Console() *console.Printer {
	return console.New(os.Stdout)
}

// JSON сообщает, что результат пишется как output.Result.
func (r *Run) JSON() bool {
	return r.Format == output.FormatJSON
}

// Metadata собирает метаданные результата.
func (r *Run) Metadata() *output.Metadata {
	return &output.Metadata{
		DurationMs: time.Since(r.Start).Milliseconds(),
		TraceID:    r.TraceID,
		APIVersion: constants.APIVersion,
	}
}

// WriteSuccess пишет успешный Result в stdout.
func (r *Run) WriteSuccess(data any, summary *output.SummaryInfo) error {
	return output.NewWriter(r.Format).Write(os.Stdout, &output.Result{
		Status:   output.StatusSuccess,
		Command:  r.Command,
		Data:     data,
		Metadata: r.Metadata(),
		Summary:  summary,
	})
}

// WriteError выводит ошибку и возвращает err без изменений.
// В текстовом формате печатается строка ❌, строки details и подсказка,
// в JSON - Result со status=error и data, если она есть (details там уже
// содержатся в data).
func (r *Run) WriteError(err error, hint string, data any, details ...string) error {
	code := apperrors.CodeOf(err)
	if code == "" {
		code = codeUnknown
	}
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	r.Log.Error("Команда завершилась ошибкой",
		slog.String("code", code), slog.String("error", err.Error()))

	if !r.JSON() {
		p := r.Console()
		p.Error("%s", message)
		for _, d := range details {
			p.Detail("%s", d)
		}
		if hint != "" {
			p.Detail("Hint: %s", hint)
		}
		return err
	}

	result := &output.Result{
		Status:  output.StatusError,
		Command: r.Command,
		Data:    data,
		Error: &output.ErrorInfo{
			Code:     code,
			Category: apperrors.Category(code),
			Message:  message,
			Hint:     hint,
		},
		Metadata: r.Metadata(),
	}
	if writeErr := output.NewWriter(r.Format).Write(os.Stdout, result); writeErr != nil {
		r.Log.Error("Не удалось записать JSON-ответ об ошибке", slog.String("error", writeErr.Error()))
	}
	return err
}

// ConfigMissing - ошибка вызова обработчика без загруженной конфигурации.
func ConfigMissing() error {
	return apperrors.NewAppError(apperrors.ErrConfigLoad, "конфигурация не загружена", nil)
}
