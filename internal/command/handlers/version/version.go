// Package version реализует команду version: версия сборки frontcheck
// и соответствие команд их старым именам скриптов.
package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/Kargones/frontcheck/internal/command"
	"github.com/Kargones/frontcheck/internal/command/handlers/shared"
	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/constants"
)

// RegisterCmd регистрирует version.
func RegisterCmd() error {
	return command.Register(&VersionHandler{})
}

// VersionData содержит информацию о версии приложения.
type VersionData struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit"`

	// Aliases - старые имена скриптов для команд, у которых они есть.
	Aliases []AliasEntry `json:"aliases"`
}

// AliasEntry связывает команду с её старым именем.
type AliasEntry struct {
	Command string `json:"command"`
	Alias   string `json:"alias"`
}

func (d *VersionData) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "frontcheck version %s\n  Go:     %s\n  Commit: %s\n",
		d.Version, d.GoVersion, d.Commit); err != nil {
		return err
	}
	if len(d.Aliases) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nСтарые имена команд:"); err != nil {
		return err
	}
	for _, a := range d.Aliases {
		if _, err := fmt.Fprintf(w, "  %-20s → %s\n", a.Alias, a.Command); err != nil {
			return err
		}
	}
	return nil
}

// buildVersionData подставляет "dev" и "unknown" вместо пустых значений.
func buildVersionData(version, commit string) *VersionData {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	aliases := make([]AliasEntry, 0)
	for _, info := range command.ListAllWithAliases() {
		if info.DeprecatedAlias != "" {
			aliases = append(aliases, AliasEntry{Command: info.Name, Alias: info.DeprecatedAlias})
		}
	}
	return &VersionData{
		Version:   version,
		GoVersion: runtime.Version(),
		Commit:    commit,
		Aliases:   aliases,
	}
}

// VersionHandler обрабатывает команду version.
type VersionHandler struct{}

// Name возвращает имя команды.
func (h *VersionHandler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *VersionHandler) Description() string {
	return "Вывод информации о версии приложения"
}

// Execute выводит версию. Текстовый формат компактный, без metadata.
func (h *VersionHandler) Execute(ctx context.Context, _ *config.Config) error {
	run := shared.Begin(ctx, constants.ActVersion)
	data := buildVersionData(constants.Version, constants.PreCommitHash)

	if !run.JSON() {
		return data.writeText(os.Stdout)
	}
	return run.WriteSuccess(data, nil)
}
