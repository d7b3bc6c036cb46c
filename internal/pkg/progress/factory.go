package progress

import (
	"os"
	"strings"
	"time"
)

// DefaultThrottleInterval - интервал перерисовки по умолчанию.
const DefaultThrottleInterval = 100 * time.Millisecond

// EnvShowProgress отключает индикатор при значении "false".
const EnvShowProgress = "BR_SHOW_PROGRESS"

// New выбирает реализацию по окружению:
//  1. BR_SHOW_PROGRESS=false → NoopProgress
//  2. BR_OUTPUT_FORMAT=json → NoopProgress, чтобы не смешивать текст с JSON
//  3. иначе → SpinnerProgress
func New(opts Options) Progress {
	if opts.ThrottleInterval == 0 {
		opts.ThrottleInterval = DefaultThrottleInterval
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	if os.Getenv(EnvShowProgress) == "false" {
		return NewNoOp()
	}
	if strings.EqualFold(os.Getenv("BR_OUTPUT_FORMAT"), "json") {
		return NewNoOp()
	}
	return NewSpinnerProgress(opts)
}

// NewIndeterminate создаёт Progress в stderr с настройками по умолчанию.
func NewIndeterminate() Progress {
	return New(Options{Output: os.Stderr})
}
