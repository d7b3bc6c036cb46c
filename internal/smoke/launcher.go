package smoke

import (
	"log/slog"
	"time"

	"github.com/Kargones/frontcheck/internal/util/runner"
)

// Server - запущенный статический сервер.
type Server interface {
	// Stop завершает сервер; повторный вызов безопасен.
	Stop(grace time.Duration) error
	// Output возвращает накопленный stdout/stderr.
	Output() []byte
	// Exited закрывается при завершении сервера.
	Exited() <-chan struct{}
}

// Launcher запускает сервер над каталогом сборки.
type Launcher interface {
	Launch(dir string) (Server, error)
}

// ProcessLauncher запускает сервер отдельным процессом.
type ProcessLauncher struct {
	Executable string
	// Args строит аргументы по каталогу сборки.
	Args   func(dir string) []string
	Env    []string
	Logger *slog.Logger
}

// Launch запускает процесс сервера.
func (p *ProcessLauncher) Launch(dir string) (Server, error) {
	var args []string
	if p.Args != nil {
		args = p.Args(dir)
	}
	r := &runner.Runner{
		RunString: p.Executable,
		Params:    args,
		Env:       p.Env,
	}
	proc, err := r.Start(p.Logger)
	if err != nil {
		return nil, err
	}
	return proc, nil
}
