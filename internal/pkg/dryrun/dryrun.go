// Package dryrun предоставляет функции для работы с dry-run режимом.
// В dry-run режиме команды возвращают план действий без реального выполнения.
package dryrun

import (
	"os"
	"strings"

	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/output"
)

// IsDryRun возвращает true если BR_DRY_RUN равен "true" (без учёта регистра) или "1".
func IsDryRun() bool {
	val := os.Getenv(constants.EnvDryRun)
	return strings.EqualFold(val, "true") || val == "1"
}

// Step описывает шаг плана до нумерации.
type Step struct {
	Operation  string
	Parameters map[string]any
	// SkipReason непустой - шаг помечается пропущенным.
	SkipReason string
}

// BuildPlan нумерует шаги с 1 и собирает план.
func BuildPlan(command, summary string, steps ...Step) *output.DryRunPlan {
	planSteps := make([]output.PlanStep, 0, len(steps))
	for i, s := range steps {
		params := s.Parameters
		if params == nil {
			params = map[string]any{}
		}
		planSteps = append(planSteps, output.PlanStep{
			Order:      i + 1,
			Operation:  s.Operation,
			Parameters: params,
			Skipped:    s.SkipReason != "",
			SkipReason: s.SkipReason,
		})
	}
	return &output.DryRunPlan{
		Command:          command,
		Steps:            planSteps,
		Summary:          summary,
		ValidationPassed: true,
	}
}
