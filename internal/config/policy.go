package config

import "sync/atomic"

// TestPolicy publishes the attempt policy knobs to request handlers.
// The config watcher swaps snapshots while handlers read them, so
// access goes through an atomic pointer.
type TestPolicy struct {
	current atomic.Pointer[TestConfig]
}

func NewTestPolicy(cfg TestConfig) *TestPolicy {
	p := &TestPolicy{}
	p.current.Store(&cfg)
	return p
}

// Replace swaps in a new snapshot. The value is copied, so later
// edits to the caller's struct do not reach readers.
func (p *TestPolicy) Replace(cfg TestConfig) {
	p.current.Store(&cfg)
}

func (p *TestPolicy) AllowRetake() bool {
	return p.current.Load().AllowRetake
}

func (p *TestPolicy) RequireAllAnswered() bool {
	return p.current.Load().RequireAllAnswered
}
