package utils

import (
	"context"
	"math/rand"
	"time"
)

// Pacer imposes a politeness pause of Interval plus a random extra of up
// to Jitter before every request except the first. The pause does not
// shrink when the previous request was slow. Calls are expected from one
// goroutine.
type Pacer struct {
	interval time.Duration
	jitter   time.Duration
	started  bool
	rnd      *rand.Rand
}

// NewPacer creates a Pacer. The first Wait returns immediately.
func NewPacer(interval, jitter time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		jitter:   jitter,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks for the politeness pause or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if !p.started {
		p.started = true
		return nil
	}

	pause := p.interval
	if p.jitter > 0 {
		pause += time.Duration(p.rnd.Int63n(int64(p.jitter)))
	}
	if pause <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
