package output

import (
	"fmt"
	"io"
	"sort"
)

// DryRunPlan содержит план операций dry-run режима.
type DryRunPlan struct {
	// Command - имя команды.
	Command string `json:"command"`
	// Steps - шаги плана по порядку.
	Steps []PlanStep `json:"steps"`
	// Summary - краткое описание плана.
	Summary string `json:"summary,omitempty"`
	// ValidationPassed - прошла ли предварительная проверка.
	ValidationPassed bool `json:"validation_passed"`
}

// PlanStep описывает один шаг плана.
type PlanStep struct {
	Order      int            `json:"order"`
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters"`
	Skipped    bool           `json:"skipped,omitempty"`
	SkipReason string         `json:"skip_reason,omitempty"`
}

// WriteText выводит план в человекочитаемом формате.
func (p *DryRunPlan) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n=== DRY RUN ===\nКоманда: %s\n", p.Command); err != nil {
		return err
	}
	status := "пройдена"
	if !p.ValidationPassed {
		status = "НЕ пройдена"
	}
	if _, err := fmt.Fprintf(w, "Валидация: %s\n", status); err != nil {
		return err
	}
	if p.Summary != "" {
		if _, err := fmt.Fprintf(w, "Описание: %s\n", p.Summary); err != nil {
			return err
		}
	}

	for _, step := range p.Steps {
		line := fmt.Sprintf("  %d. %s", step.Order, step.Operation)
		if step.Skipped {
			line += fmt.Sprintf(" [пропущен: %s]", step.SkipReason)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		// Детерминированный порядок параметров
		keys := make([]string, 0, len(step.Parameters))
		for k := range step.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "       %s: %v\n", k, step.Parameters[k]); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "=== END DRY RUN ===")
	return err
}
