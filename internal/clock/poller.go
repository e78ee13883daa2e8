// Package clock polls the device clock and pushes each reading to a display.
package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/khapa77/gong-dullabha/pkg/models"
)

const DefaultInterval = time.Second

type TimeSource interface {
	GetTime(ctx context.Context) (models.ServerTime, error)
}

type Display interface {
	ShowTime(t models.ServerTime)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(t models.ServerTime)

func (f DisplayFunc) ShowTime(t models.ServerTime) { f(t) }

// Poller fetches the time on a fixed interval. A failed poll leaves the
// display as it was; there is no retry or backoff.
type Poller struct {
	source   TimeSource
	display  Display
	interval time.Duration
	log      *zap.Logger

	busy atomic.Bool

	mu     sync.RWMutex
	latest models.ServerTime
	seen   bool
}

func NewPoller(source TimeSource, display Display, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{source: source, display: display, interval: interval, log: log}
}

// Run polls immediately and then on every tick until ctx is done. A tick
// that fires while the previous poll is still outstanding is skipped.
func (p *Poller) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	poll := func() {
		if !p.busy.CompareAndSwap(false, true) {
			p.log.Debug("clock poll still in flight, skipping tick")
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer p.busy.Store(false)
			p.poll(ctx)
		}()
	}

	poll()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			poll()
		}
	}
}

// Latest returns the last successful reading.
func (p *Poller) Latest() (models.ServerTime, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, p.seen
}

func (p *Poller) poll(ctx context.Context) {
	t, err := p.source.GetTime(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Debug("clock poll failed", zap.Error(err))
		}
		return
	}

	p.mu.Lock()
	p.latest = t
	p.seen = true
	p.mu.Unlock()

	if p.display != nil {
		p.display.ShowTime(t)
	}
}

// Format renders a reading the way the status bar shows it.
func Format(t models.ServerTime) string {
	if t.Time == "" {
		return "—"
	}
	switch {
	case t.Date != "":
		return t.Time + " " + t.Date
	case t.ISO != "":
		if ts, err := time.Parse("2006-01-02T15:04:05", t.ISO); err == nil {
			return t.Time + " " + ts.Format("02.01.2006")
		}
	}
	return t.Time
}
