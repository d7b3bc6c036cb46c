// Package progress показывает ход ожиданий с неизвестной длительностью
// (прогрев статического сервера, HTTP-проверка) в stderr.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Progress отображает ход операции.
type Progress interface {
	// Start начинает отображение с сообщением.
	Start(message string)
	// Update меняет сообщение (если не пусто) и перерисовывает индикатор.
	Update(message string)
	// Finish завершает отображение; err != nil означает неуспех.
	Finish(err error)
}

// Options конфигурирует Progress.
type Options struct {
	// Output - куда выводить, по умолчанию os.Stderr.
	Output io.Writer
	// ThrottleInterval - минимальный интервал между перерисовками.
	ThrottleInterval time.Duration
}

// IsTTY проверяет, является ли writer терминалом.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatDuration форматирует duration в читаемый вид (5m 30s, 45s, 1.5s).
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "0s"
	}
	if d < 10*time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if seconds == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
