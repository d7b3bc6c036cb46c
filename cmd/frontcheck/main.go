// Package main - точка входа frontcheck: проверки фронтенд-проекта перед сборкой.
//
// Команда берётся из первого аргумента, иначе из BR_COMMAND:
//
//	frontcheck validate-versions
//	frontcheck smoke-test
//	BR_COMMAND=pre-build frontcheck
package main

import (
	"context"
	"os"
	"strings"

	"github.com/Kargones/frontcheck/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run вынесена из main, чтобы os.Exit вызывался после всех defer.
func run(args []string) int {
	cmd, rest := dispatch(args)
	return app.Run(context.Background(), cmd, rest)
}

// dispatch отделяет имя команды от её аргументов.
// Флаг на первом месте означает, что команда задана через BR_COMMAND.
func dispatch(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", args
	}
	return args[0], args[1:]
}
