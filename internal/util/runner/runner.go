// Package runner запускает внешние процессы и управляет их жизненным циклом.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	maxConsoleOut = 2048
	pipeWaitDelay = time.Second
)

// Runner описывает команду для запуска фонового процесса.
type Runner struct {
	RunString string
	Params    []string
	WorkDir   string
	// Env - дополнительные переменные KEY=VALUE поверх окружения родителя.
	Env []string
}

// validateParams проверяет корректность исполняемого файла и параметров.
// Процесс запускается без оболочки, поэтому ; & | в параметрах передаются как есть.
func (r *Runner) validateParams() error {
	if r.RunString == "" {
		return errors.New("executable path is empty")
	}
	for _, param := range r.Params {
		if strings.ContainsRune(param, 0) {
			return fmt.Errorf("parameter contains NUL byte: %q", param)
		}
	}
	return nil
}

// Start запускает процесс и сразу возвращает управление.
// stdout и stderr процесса собираются в общий буфер.
// Вызывающий обязан вызвать Stop, обычно через defer сразу после Start.
func (r *Runner) Start(l *slog.Logger) (*Process, error) {
	if l == nil {
		l = slog.Default()
	}
	if err := r.validateParams(); err != nil {
		return nil, err
	}

	l.Info("Параметры запуска",
		slog.String("Исполняемый файл", r.RunString),
		slog.String("WorkDir", r.WorkDir),
		slog.String("Параметры", fmt.Sprint(r.Params)),
	)

	// #nosec G204 - parameters are validated above
	cmd := exec.Command(r.RunString, r.Params...)
	cmd.Dir = r.WorkDir
	// Потомки сервера могут держать pipe открытым после его завершения.
	cmd.WaitDelay = pipeWaitDelay
	if len(r.Env) > 0 {
		cmd.Env = appendEnviron(r.Env...)
	}

	p := &Process{
		cmd:    cmd,
		out:    &syncBuffer{},
		exited: make(chan struct{}),
		logger: l,
	}
	cmd.Stdout = p.out
	cmd.Stderr = p.out

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", r.RunString, err)
	}

	go func() {
		p.waitErr = cmd.Wait()
		close(p.exited)
	}()

	l.Debug("Процесс запущен", slog.Int("pid", cmd.Process.Pid))
	return p, nil
}

// Process - запущенный фоновый процесс.
type Process struct {
	cmd     *exec.Cmd
	out     *syncBuffer
	exited  chan struct{}
	waitErr error
	logger  *slog.Logger

	stopOnce sync.Once
	stopErr  error
}

// Pid возвращает идентификатор процесса.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Exited закрывается после завершения процесса.
func (p *Process) Exited() <-chan struct{} {
	return p.exited
}

// ExitErr возвращает результат Wait. Валиден только после закрытия Exited.
func (p *Process) ExitErr() error {
	select {
	case <-p.exited:
		return p.waitErr
	default:
		return nil
	}
}

// Output возвращает копию накопленного stdout/stderr.
func (p *Process) Output() []byte {
	return p.out.Bytes()
}

// Stop завершает процесс: сначала interrupt, затем kill по истечении grace.
// Повторные вызовы возвращают результат первого.
func (p *Process) Stop(grace time.Duration) error {
	p.stopOnce.Do(func() {
		p.stopErr = p.terminate(grace)
	})
	return p.stopErr
}

func (p *Process) terminate(grace time.Duration) error {
	select {
	case <-p.exited:
		p.logger.Debug("Процесс уже завершился", slog.Int("pid", p.Pid()))
		return nil
	default:
	}

	// На Windows os.Interrupt не поддерживается: сразу kill.
	if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
		p.logger.Debug("Не удалось отправить interrupt", slog.String("error", err.Error()))
		return p.kill()
	}

	select {
	case <-p.exited:
		p.logger.Debug("Процесс завершён по interrupt", slog.Int("pid", p.Pid()))
		return nil
	case <-time.After(grace):
		p.logger.Warn("Процесс не ответил на interrupt, принудительное завершение",
			slog.Int("pid", p.Pid()), slog.Duration("grace", grace))
		return p.kill()
	}
}

func (p *Process) kill() error {
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to kill process %d: %w", p.Pid(), err)
	}
	<-p.exited
	return nil
}

// syncBuffer - bytes.Buffer, безопасный для записи из горутин os/exec.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

func appendEnviron(kv ...string) []string {
	env := os.Environ()
	for _, newVar := range kv {
		eqIndex := strings.Index(newVar, "=")
		if eqIndex == -1 {
			continue
		}
		key := newVar[:eqIndex]
		found := false
		for i, v := range env {
			if strings.HasPrefix(v, key+"=") {
				env[i] = newVar
				found = true
				break
			}
		}
		if !found {
			env = append(env, newVar)
		}
	}
	return env
}

// TrimOut обрезает вывод команды.
func TrimOut(b []byte) string {
	if len(b) < maxConsoleOut {
		return string(b)
	}
	return string(b[:1020]) + "\n********\n" + string(b[len(b)-1020:])
}
