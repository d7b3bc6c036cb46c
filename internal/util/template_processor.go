// Package templateprocessor содержит утилиты для подстановки плейсхолдеров
// в командные строки.
package templateprocessor

import (
	"strconv"
	"strings"
)

// Плейсхолдеры команды запуска сервера.
const (
	PlaceholderDir  = "{dir}"
	PlaceholderPort = "{port}"
)

// ReplacementRule определяет правило замены строк
type ReplacementRule struct {
	SearchString      string // Строка, которую необходимо найти
	ReplacementString string // Строка, на которую будет заменена SearchString
}

// ServerRules возвращает правила подстановки каталога и порта сервера.
func ServerRules(dir string, port int) []ReplacementRule {
	return []ReplacementRule{
		{SearchString: PlaceholderDir, ReplacementString: dir},
		{SearchString: PlaceholderPort, ReplacementString: strconv.Itoa(port)},
	}
}

// Process применяет правила замены к строке по порядку.
func Process(template string, rules []ReplacementRule) string {
	result := template
	for _, rule := range rules {
		result = strings.ReplaceAll(result, rule.SearchString, rule.ReplacementString)
	}
	return result
}

// ExpandArgs разбивает строку аргументов по пробелам и применяет
// правила к каждому аргументу отдельно. Значение каталога с пробелами
// остаётся одним аргументом.
func ExpandArgs(args string, rules []ReplacementRule) []string {
	fields := strings.Fields(args)
	result := make([]string, 0, len(fields))
	for _, f := range fields {
		result = append(result, Process(f, rules))
	}
	return result
}
