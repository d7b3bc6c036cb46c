package output

import (
	"os"
	"strings"
)

// FormatJSON и FormatText - поддерживаемые форматы вывода.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// EnvOutputFormat - переменная окружения с форматом вывода.
const EnvOutputFormat = "BR_OUTPUT_FORMAT"

// NewWriter создаёт Writer по формату (case-insensitive).
// При неизвестном формате возвращает TextWriter.
func NewWriter(format string) Writer {
	if strings.EqualFold(format, FormatJSON) {
		return NewJSONWriter()
	}
	return NewTextWriter()
}

// FormatFromEnv возвращает нормализованный формат из BR_OUTPUT_FORMAT.
// Всё, кроме "json", считается текстом.
func FormatFromEnv() string {
	if strings.EqualFold(os.Getenv(EnvOutputFormat), FormatJSON) {
		return FormatJSON
	}
	return FormatText
}
