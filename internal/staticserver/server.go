// Package staticserver раздаёт production-сборку фронтенда.
// В режиме SPA неизвестные пути отдают index.html.
package staticserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/Kargones/frontcheck/internal/constants"
)

const shutdownTimeout = 5 * time.Second

// Handler возвращает обработчик для каталога dir.
// При spa=true пути без соответствующего файла отдают корневой документ,
// а при его отсутствии - 404 вместо листинга каталога.
func Handler(dir string, spa bool) http.Handler {
	root := http.Dir(dir)
	files := http.FileServer(root)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if spa && (r.Method == http.MethodGet || r.Method == http.MethodHead) && !exists(root, r.URL.Path) {
			if !exists(root, constants.IndexDocument) {
				http.NotFound(w, r)
				return
			}
			// FileServer перенаправляет запросы к /index.html на "/",
			// поэтому fallback идёт через корень каталога.
			r2 := r.Clone(r.Context())
			r2.URL.Path = "/"
			files.ServeHTTP(w, r2)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func exists(root http.FileSystem, urlPath string) bool {
	f, err := root.Open(path.Clean("/" + urlPath))
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Server - HTTP-сервер над каталогом сборки.
type Server struct {
	server   *http.Server
	listener net.Listener
	logger   *slog.Logger
}

// New проверяет каталог и создаёт сервер на addr.
func New(dir, addr string, spa bool, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("каталог %s недоступен: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s не является каталогом", dir)
	}

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           Handler(dir, spa),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}, nil
}

// Listen открывает сокет. После Listen Addr возвращает фактический адрес.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr возвращает адрес сокета или настроенный адрес до Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Serve обслуживает запросы до отмены ctx, затем корректно завершает сервер.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(s.listener)
	}()
	s.logger.Info("Статический сервер запущен", slog.String("addr", s.Addr()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("Статический сервер остановлен")
	return nil
}
