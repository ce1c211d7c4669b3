// Package notify sends desktop notifications for interactive commands
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/logging"
)

// Notifier delivers a short message to the user
type Notifier interface {
	Notify(ctx context.Context, title, body string)
}

// Desktop sends notifications through notify-send
type Desktop struct {
	Runner  execx.Runner
	Command string
	App     string
	Timeout time.Duration
}

// NewDesktop creates a notify-send notifier tagged with app
func NewDesktop(r execx.Runner, app string) *Desktop {
	return &Desktop{Runner: r, Command: "notify-send", App: app, Timeout: 2 * time.Second}
}

// Notify implements Notifier. Delivery failures are logged and dropped.
func (d *Desktop) Notify(ctx context.Context, title, body string) {
	args := []string{}
	if d.App != "" {
		args = append(args, "-a", d.App)
	}
	if title != "" {
		args = append(args, title)
	}
	args = append(args, body)

	res := d.Runner.Run(ctx, execx.Command{Name: d.Command, Args: args, Timeout: d.Timeout})
	if !res.Available() {
		logger := logging.GetLogger("notify")
		logger.Debug().
			Err(res.Err).
			Int("exit", res.ExitCode).
			Str("body", body).
			Msg("Notification not delivered")
	}
}

// Message is one recorded notification
type Message struct {
	Title string
	Body  string
}

// Recorder collects notifications in memory
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
}

// Notify implements Notifier
func (r *Recorder) Notify(_ context.Context, title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Message{Title: title, Body: body})
}

// Bodies returns the recorded bodies in order
func (r *Recorder) Bodies() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Messages))
	for i, m := range r.Messages {
		out[i] = m.Body
	}
	return out
}
