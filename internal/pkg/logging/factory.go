package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Kargones/frontcheck/internal/constants"
)

// NewLogger создаёт Logger по конфигурации.
//
// Output:
//   - "stderr" или "": os.Stderr
//   - "file": файл с ротацией через lumberjack
//
// Неизвестный Output приводит к fallback на stderr с предупреждением.
func NewLogger(config Config) Logger {
	var w io.Writer
	switch config.Output {
	case OutputFile:
		w = newRotatingWriter(config)
	case OutputStderr, "":
		w = os.Stderr
	default:
		fmt.Fprintf(os.Stderr, "WARNING: неизвестный logging output %q, используется stderr\n", config.Output)
		w = os.Stderr
	}
	return NewLoggerWithWriter(config, w)
}

// newRotatingWriter создаёт lumberjack writer, предварительно создавая каталог.
// При пустом FilePath или ошибке создания каталога возвращает os.Stderr.
func newRotatingWriter(config Config) io.Writer {
	if config.FilePath == "" {
		fmt.Fprintln(os.Stderr, "WARNING: logging output=file, но путь к файлу пуст, используется stderr")
		return os.Stderr
	}

	if dir := filepath.Dir(config.FilePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: не удалось создать каталог логов %q: %v, используется stderr\n", dir, err)
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}

// NewLoggerWithWriter создаёт Logger, пишущий в w.
// Используется в тестах и там, где writer выбран заранее.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

// parseLevel конвертирует строковый уровень в slog.Level.
// Неизвестное значение трактуется как info.
func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
