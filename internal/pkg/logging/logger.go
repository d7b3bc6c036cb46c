// Package logging предоставляет интерфейс и реализации структурированного логирования.
package logging

// Logger определяет интерфейс структурированного логирования.
// Реализации: SlogAdapter (log/slog) и NopLogger.
//
//	logger.Info("Сервер запущен", "port", 3000, "pid", pid)
//
// ВАЖНО: Logger пишет только в stderr или файл, никогда в stdout.
// stdout зарезервирован за результатами команд (text/JSON).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	//
	//	logger.With("trace_id", traceID).Info("Проверка началась")
	With(args ...any) Logger
}
