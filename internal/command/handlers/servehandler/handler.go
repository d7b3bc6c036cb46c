// Package servehandler реализует команду serve: встроенный статический
// сервер с поддержкой SPA, совместимый по аргументам с `serve -s <dir> -l <port>`.
package servehandler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Kargones/frontcheck/internal/command"
	"github.com/Kargones/frontcheck/internal/command/handlers/shared"
	"github.com/Kargones/frontcheck/internal/config"
	"github.com/Kargones/frontcheck/internal/constants"
	"github.com/Kargones/frontcheck/internal/pkg/apperrors"
	"github.com/Kargones/frontcheck/internal/staticserver"
)

// RegisterCmd регистрирует serve.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Options - разобранные аргументы serve.
type Options struct {
	Dir  string
	SPA  bool
	Addr string
}

// ParseArgs разбирает аргументы. Флаги и позиционный каталог могут идти
// в любом порядке. -l принимает порт, host:port или tcp://host:port.
func ParseArgs(args []string, defaultDir string) (Options, error) {
	fs := pflag.NewFlagSet(constants.ActServe, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts Options
	var listen string
	fs.BoolVarP(&opts.SPA, "single", "s", false, "отдавать index.html для неизвестных путей")
	fs.StringVarP(&listen, "listen", "l", strconv.Itoa(constants.DefaultServerPort), "порт или адрес")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	switch fs.NArg() {
	case 0:
		opts.Dir = defaultDir
	case 1:
		opts.Dir = fs.Arg(0)
	default:
		return Options{}, fmt.Errorf("ожидается один каталог, получено %d: %v", fs.NArg(), fs.Args())
	}

	addr, err := listenAddr(listen)
	if err != nil {
		return Options{}, err
	}
	opts.Addr = addr
	return opts, nil
}

func listenAddr(listen string) (string, error) {
	listen = strings.TrimPrefix(listen, "tcp://")
	if port, err := strconv.Atoi(listen); err == nil {
		if port < 0 || port > 65535 {
			return "", fmt.Errorf("некорректный порт %d", port)
		}
		return ":" + listen, nil
	}
	if !strings.Contains(listen, ":") {
		return "", fmt.Errorf("некорректный адрес %q", listen)
	}
	return listen, nil
}

// Handler обрабатывает команду serve.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActServe
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Статический сервер каталога сборки (serve -s <dir> -l <port>)"
}

// Execute обслуживает запросы до SIGINT/SIGTERM или отмены ctx.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	run := shared.Begin(ctx, constants.ActServe)

	var args []string
	defaultDir := "."
	if cfg != nil {
		args = cfg.Args
		if cfg.ProjectConfig != nil {
			defaultDir = cfg.ProjectConfig.BuildDir
		}
	}

	opts, err := ParseArgs(args, defaultDir)
	if err != nil {
		return run.WriteError(apperrors.NewAppError(apperrors.ErrConfigLoad,
			"некорректные аргументы serve", err), "", nil)
	}

	srv, err := staticserver.New(opts.Dir, opts.Addr, opts.SPA, run.Log)
	if err != nil {
		return run.WriteError(apperrors.NewAppError(apperrors.ErrBuildMissing, err.Error(), err), "", nil)
	}
	if err := srv.Listen(); err != nil {
		return run.WriteError(apperrors.NewAppError(apperrors.ErrServerStart, err.Error(), err), "", nil)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	run.Log.Info("Раздача каталога", slog.String("dir", opts.Dir), slog.Bool("spa", opts.SPA))
	if !run.JSON() {
		run.Console().Info("Serving %s at http://%s", opts.Dir, srv.Addr())
	}

	if err := srv.Serve(ctx); err != nil {
		return run.WriteError(apperrors.NewAppError(apperrors.ErrServerStart, "static server failed", err), "", nil)
	}
	return nil
}
