// Package main - отдельный бинарник smoke-теста production сборки.
// Эквивалент `frontcheck smoke-test`.
//
// По умолчанию smoke-test запускает в качестве сервера собственный бинарник
// с аргументами `serve -s {dir} -l {port}`, поэтому serve обрабатывается здесь же.
package main

import (
	"context"
	"os"

	"github.com/Kargones/frontcheck/internal/app"
	"github.com/Kargones/frontcheck/internal/constants"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd, rest := dispatch(args)
	return app.Run(context.Background(), cmd, rest)
}

// dispatch выбирает serve для дочернего процесса сервера, иначе smoke-test.
func dispatch(args []string) (string, []string) {
	if len(args) > 0 && args[0] == constants.ActServe {
		return constants.ActServe, args[1:]
	}
	return constants.ActSmokeTest, args
}
