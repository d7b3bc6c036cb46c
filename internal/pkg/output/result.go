// Package output предоставляет структуры и интерфейсы для форматирования
// результатов команд в JSON и текстовом формате.
package output

// StatusSuccess и StatusError - возможные значения поля Status в Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result представляет структурированный результат выполнения команды.
// Сериализуется в JSON (BR_OUTPUT_FORMAT=json) или выводится текстом.
type Result struct {
	// Status - "success" или "error".
	Status string `json:"status"`

	// Command - имя выполненной команды.
	Command string `json:"command"`

	// Data - command-specific payload.
	Data any `json:"data,omitempty"`

	// Error заполняется только при status="error".
	Error *ErrorInfo `json:"error,omitempty"`

	// Metadata - метаданные выполнения.
	Metadata *Metadata `json:"metadata,omitempty"`

	// DryRun указывает что результат - план, а не реальное выполнение.
	DryRun bool `json:"dry_run,omitempty"`

	// Plan - план операций dry-run режима.
	Plan *DryRunPlan `json:"plan,omitempty"`

	// Summary не сериализуется напрямую: JSONWriter копирует его
	// в Metadata.Summary.
	Summary *SummaryInfo `json:"-"`
}

// ErrorInfo содержит информацию об ошибке в структурированном виде.
type ErrorInfo struct {
	// Code - машиночитаемый код, например "CONTENT.ROOT_MISSING".
	Code string `json:"code"`
	// Category - категория таксономии, например "ContentError".
	Category string `json:"category,omitempty"`
	// Message - человекочитаемое описание.
	Message string `json:"message"`
	// Hint - подсказка оператору.
	Hint string `json:"hint,omitempty"`
}

// Metadata содержит метаданные выполнения команды.
type Metadata struct {
	// DurationMs - время выполнения в миллисекундах.
	DurationMs int64 `json:"duration_ms"`

	// TraceID - идентификатор трассировки для корреляции логов.
	TraceID string `json:"trace_id,omitempty"`

	// APIVersion - версия формата вывода.
	APIVersion string `json:"api_version"`

	// Summary - сводка для JSON output, копия Result.Summary.
	Summary *SummaryInfo `json:"summary,omitempty"`
}
