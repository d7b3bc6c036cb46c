// Package main - отдельный бинарник проверки совместимости react и react-dom.
// Эквивалент `frontcheck validate-versions`.
package main

import (
	"context"
	"os"

	"github.com/Kargones/frontcheck/internal/app"
	"github.com/Kargones/frontcheck/internal/constants"
)

func main() {
	os.Exit(app.Run(context.Background(), constants.ActValidateVersions, os.Args[1:]))
}
