package progress

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// spinnerFrames - кадры анимации (braille).
var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// SpinnerProgress рисует spinner в терминале. Вне терминала пишет
// начало и конец операции в slog.
type SpinnerProgress struct {
	mu         sync.Mutex
	opts       Options
	startTime  time.Time
	message    string
	frameIndex int
	lastDraw   time.Time
	isTTY      bool
	log        *slog.Logger
}

// NewSpinnerProgress создаёт spinner.
func NewSpinnerProgress(opts Options) *SpinnerProgress {
	return &SpinnerProgress{
		opts:  opts,
		isTTY: IsTTY(opts.Output),
		log:   slog.Default(),
	}
}

// Start запоминает время начала и рисует первый кадр.
func (p *SpinnerProgress) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.message = message
	p.frameIndex = 0
	p.lastDraw = time.Time{}

	if p.isTTY {
		p.draw()
		return
	}
	p.log.Info("Операция начата", slog.String("message", message))
}

// Update перерисовывает spinner не чаще ThrottleInterval.
func (p *SpinnerProgress) Update(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if message != "" {
		p.message = message
	}
	if !p.isTTY {
		return
	}
	if p.opts.ThrottleInterval > 0 && time.Since(p.lastDraw) < p.opts.ThrottleInterval {
		return
	}
	p.lastDraw = time.Now()
	p.frameIndex = (p.frameIndex + 1) % len(spinnerFrames)
	p.draw()
}

// Finish очищает строку spinner и выводит итог.
func (p *SpinnerProgress) Finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := FormatDuration(time.Since(p.startTime))
	if !p.isTTY {
		if err != nil {
			p.log.Info("Операция прервана", slog.String("duration", elapsed), slog.String("error", err.Error()))
			return
		}
		p.log.Info("Операция завершена", slog.String("duration", elapsed))
		return
	}

	mark := '✓'
	if err != nil {
		mark = '✗'
	}
	_, _ = fmt.Fprintf(p.opts.Output, "\r%c %s (%s)\033[K\n", mark, p.message, elapsed) //nolint:errcheck // terminal output
}

// draw рисует текущий кадр: ⠋ waiting for server (время: 1.2s)
func (p *SpinnerProgress) draw() {
	elapsed := FormatDuration(time.Since(p.startTime))
	frame := spinnerFrames[p.frameIndex]
	_, _ = fmt.Fprintf(p.opts.Output, "\r%c %s (время: %s)\033[K", frame, p.message, elapsed) //nolint:errcheck // terminal output
}
