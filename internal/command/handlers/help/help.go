// Package help реализует команду help: список зарегистрированных команд
// и переменных окружения, которые на них влияют.
package help

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Kargones/frontcheck/internal/command"
	"github.com/Kargones/frontcheck/internal/command/handlers/shared"
	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/constants"
)

// RegisterCmd регистрирует help.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Data содержит список команд.
type Data struct {
	Commands []CommandInfo `json:"commands"`
}

// CommandInfo описывает одну команду или её старое имя.
type CommandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	NewName     string `json:"new_name,omitempty"`
}

// envHelp - переменные окружения в порядке вывода.
var envHelp = [][2]string{
	{"BR_COMMAND", "Имя команды, если не передано аргументом"},
	{"BR_PROJECT_ROOT", "Корень фронтенд-проекта"},
	{"BR_MANIFEST_PATH", "Путь к package.json"},
	{"BR_BUILD_DIR", "Каталог production-сборки"},
	{"BR_SERVER_COMMAND", "Внешний статический сервер вместо встроенного"},
	{"BR_SERVER_ARGS", "Аргументы сервера с {dir} и {port}"},
	{"BR_SERVER_PORT", "Порт сервера (3000)"},
	{"BR_SMOKE_WAIT_MODE", "delay или poll"},
	{"BR_CONFIG_FILE", "YAML-конфигурация (frontcheck.yaml)"},
	{"BR_OUTPUT_FORMAT=json", "Машиночитаемый вывод"},
	{"BR_DRY_RUN=true", "Показать план smoke-test без запуска"},
}

// Handler обрабатывает команду help.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод списка доступных команд"
}

// Execute выводит список команд.
func (h *Handler) Execute(ctx context.Context, _ *config.Config) error {
	run := shared.Begin(ctx, constants.ActHelp)
	data := buildData()

	if !run.JSON() {
		return data.writeText(os.Stdout)
	}
	return run.WriteSuccess(data, nil)
}

func buildData() *Data {
	data := &Data{}
	for name, handler := range command.All() {
		info := CommandInfo{Name: name, Description: handler.Description()}
		if dep, ok := handler.(command.Deprecatable); ok && dep.IsDeprecated() {
			info.Deprecated = true
			info.NewName = dep.NewName()
		}
		data.Commands = append(data.Commands, info)
	}
	sort.Slice(data.Commands, func(i, j int) bool {
		return data.Commands[i].Name < data.Commands[j].Name
	})
	return data
}

func (d *Data) writeText(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("frontcheck — проверки фронтенда перед сборкой\n\nКоманды:\n")

	maxLen := 0
	for _, cmd := range d.Commands {
		maxLen = max(maxLen, len(cmd.Name))
	}
	for _, cmd := range d.Commands {
		desc := cmd.Description
		if cmd.Deprecated {
			desc = fmt.Sprintf("[deprecated → %s] %s", cmd.NewName, desc)
		}
		fmt.Fprintf(&sb, "  %-*s  %s\n", maxLen, cmd.Name, desc)
	}

	sb.WriteString("\nПеременные окружения:\n")
	for _, e := range envHelp {
		fmt.Fprintf(&sb, "  %-22s %s\n", e[0], e[1])
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}
