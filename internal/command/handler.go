// Package command содержит интерфейс обработчика команды frontcheck и
// реестр, в котором обработчики регистрируются явно через RegisterCmd.
package command

import (
	"context"

	"github.com/Kargones/frontcheck/internal/config"
)

// Handler - обработчик одной команды.
type Handler interface {
	// Name - имя команды в реестре, одна из констант constants.Act*.
	Name() string

	// Description - однострочное описание для help.
	Description() string

	// Execute выполняет команду. Ненулевая ошибка означает код выхода 1.
	Execute(ctx context.Context, cfg *config.Config) error
}
