// Package poll drives status modules: render a payload, write it when it
// changed, wait for the next tick.
package poll

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/payload"
)

// RenderFunc produces one payload. ok=false means nothing should be shown
// this cycle.
type RenderFunc func(ctx context.Context) (p payload.Payload, ok bool)

// Emitter writes payload lines, suppressing repeats of the last line
type Emitter struct {
	mu   sync.Mutex
	w    io.Writer
	last string
	sent bool
}

// NewEmitter creates an emitter over w
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes p unless its encoding equals the last line written. It
// reports whether anything was written.
func (e *Emitter) Emit(p payload.Payload) (bool, error) {
	line, err := p.Marshal()
	if err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sent && line == e.last {
		return false, nil
	}
	if _, err := io.WriteString(e.w, line+"\n"); err != nil {
		return false, err
	}
	e.last = line
	e.sent = true
	return true, nil
}

// Blank writes the empty payload when something visible was written
// before, so a module that goes hidden clears its old text once.
func (e *Emitter) Blank() (bool, error) {
	e.mu.Lock()
	sent := e.sent
	e.mu.Unlock()
	if !sent {
		return false, nil
	}
	return e.Emit(payload.Empty())
}

// Loop renders on a fixed interval until its context is cancelled
type Loop struct {
	Interval time.Duration
	Render   RenderFunc
	Emitter  *Emitter
}

// Run renders once immediately and then on every tick. It returns
// ctx.Err() when cancelled, or the first write error.
func (l *Loop) Run(ctx context.Context) error {
	logger := logging.GetLogger("poll")
	interval := l.Interval
	if interval <= 0 {
		interval = time.Second
	}
	logger.Debug().Dur("interval", interval).Msg("Starting poll loop")

	if err := l.cycle(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("Poll loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := l.cycle(ctx); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) cycle(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	p, ok := l.Render(ctx)
	if !ok {
		_, err := l.Emitter.Blank()
		return err
	}
	_, err := l.Emitter.Emit(p)
	return err
}

// Once renders a single payload to w. Nothing is written when the render
// asks to hide.
func Once(ctx context.Context, w io.Writer, render RenderFunc) error {
	p, ok := render(ctx)
	if !ok {
		return nil
	}
	_, err := NewEmitter(w).Emit(p)
	return err
}
