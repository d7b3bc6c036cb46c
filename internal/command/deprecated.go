package command

import (
	"context"
	"os"

	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/pkg/console"
)

// Deprecatable реализуют обработчики, зарегистрированные под старым именем.
// Используется командой help.
type Deprecatable interface {
	IsDeprecated() bool
	NewName() string
}

var (
	_ Handler      = (*DeprecatedBridge)(nil)
	_ Deprecatable = (*DeprecatedBridge)(nil)
)

// DeprecatedBridge выполняет команду под старым именем скрипта
// (check-react, test-runtime) и предупреждает о новом имени.
// Предупреждение идёт в stderr, чтобы не ломать JSON в stdout.
type DeprecatedBridge struct {
	actual     Handler
	deprecated string
	newName    string
}

// Name возвращает старое имя.
func (b *DeprecatedBridge) Name() string {
	return b.deprecated
}

// Description берётся у основного обработчика.
func (b *DeprecatedBridge) Description() string {
	return b.actual.Description()
}

// IsDeprecated всегда true.
func (b *DeprecatedBridge) IsDeprecated() bool {
	return true
}

// NewName возвращает основное имя команды.
func (b *DeprecatedBridge) NewName() string {
	return b.newName
}

// Execute печатает предупреждение и делегирует основному обработчику.
// Отменённый ctx возвращается сразу, без предупреждения.
func (b *DeprecatedBridge) Execute(ctx context.Context, cfg *config.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	console.New(os.Stderr).Warning("command '%s' is deprecated, use '%s' instead", b.deprecated, b.newName)
	return b.actual.Execute(ctx, cfg)
}
