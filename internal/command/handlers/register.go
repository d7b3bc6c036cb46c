// Package handlers регистрирует все обработчики команд frontcheck.
// Регистрация явная, без init(): main вызывает RegisterAll один раз.
package handlers

import (
	"github.com/Kargones/frontcheck/internal/command/handlers/help"
	"github.com/Kargones/frontcheck/internal/command/handlers/prebuildhandler"
	"github.com/Kargones/frontcheck/internal/command/handlers/servehandler"
	"github.com/Kargones/frontcheck/internal/command/handlers/smokehandler"
	"github.com/Kargones/frontcheck/internal/command/handlers/validatehandler"
	"github.com/Kargones/frontcheck/internal/command/handlers/version"
)

// RegisterAll регистрирует обработчики в глобальном реестре.
// Возвращает первую ошибку регистрации.
func RegisterAll() error {
	for _, register := range []func() error{
		validatehandler.RegisterCmd,
		smokehandler.RegisterCmd,
		prebuildhandler.RegisterCmd,
		servehandler.RegisterCmd,
		version.RegisterCmd,
		help.RegisterCmd,
	} {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
