package progress

// NoopProgress ничего не выводит.
// Используется при BR_SHOW_PROGRESS=false и в JSON-режиме.
type NoopProgress struct{}

// NewNoOp создаёт NoopProgress.
func NewNoOp() Progress {
	return &NoopProgress{}
}

// Start ничего не делает.
func (p *NoopProgress) Start(_ string) {}

// Update ничего не делает.
func (p *NoopProgress) Update(_ string) {}

// Finish ничего не делает.
func (p *NoopProgress) Finish(_ error) {}
