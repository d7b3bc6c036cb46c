// Package console печатает строки статуса с эмодзи-маркерами важности.
// Вывод предназначен человеку; машиночитаемый результат пишет пакет output.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Маркеры важности.
const (
	MarkInfo    = "ℹ️"
	MarkSuccess = "✅"
	MarkWarning = "⚠️"
	MarkError   = "❌"
)

// Printer печатает строки статуса в w.
type Printer struct {
	w io.Writer
}

// New создаёт Printer. Nil w заменяется на os.Stdout.
func New(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

func (p *Printer) print(symbol, message string, attr color.Attribute) {
	c := color.New(attr)
	_, _ = fmt.Fprintf(p.w, "%s %s\n", c.Sprint(symbol), message)
}

// Info печатает информационное сообщение.
func (p *Printer) Info(format string, args ...any) {
	p.print(MarkInfo, fmt.Sprintf(format, args...), color.FgCyan)
}

// Success печатает сообщение об успехе.
func (p *Printer) Success(format string, args ...any) {
	p.print(MarkSuccess, fmt.Sprintf(format, args...), color.FgGreen)
}

// Warning печатает предупреждение.
func (p *Printer) Warning(format string, args ...any) {
	p.print(MarkWarning, fmt.Sprintf(format, args...), color.FgYellow)
}

// Error печатает сообщение об ошибке.
func (p *Printer) Error(format string, args ...any) {
	p.print(MarkError, fmt.Sprintf(format, args...), color.FgRed)
}

// Detail печатает строку с отступом под предыдущим сообщением.
func (p *Printer) Detail(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "   %s\n", fmt.Sprintf(format, args...))
}
