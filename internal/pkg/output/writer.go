package output

import "io"

// Writer определяет интерфейс форматирования результатов команд.
// Реализации: JSONWriter, TextWriter.
type Writer interface {
	// Write форматирует result и записывает в w.
	Write(w io.Writer, result *Result) error
}
