// Package tasks counts pending task-tracker entries and adds recurring
// chores on schedule.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/polka-dots/polka/pkg/payload"
)

// Config holds the tasks module settings
type Config struct {
	Command         string         `koanf:"command" toml:"command"`
	Timeout         time.Duration  `koanf:"timeout" toml:"timeout"`
	Interval        time.Duration  `koanf:"interval" toml:"interval"`
	CriticalUrgency float64        `koanf:"critical_urgency" toml:"critical_urgency"`
	Bullet          string         `koanf:"bullet" toml:"bullet"`
	Recurring       []IntervalTask `koanf:"recurring" toml:"recurring"`
	Dated           []DatedTask    `koanf:"dated" toml:"dated"`
}

// Task is the subset of an exported task this module reads
type Task struct {
	Description string  `json:"description"`
	Urgency     float64 `json:"urgency"`
}

// ParseExport decodes a JSON export. Entries that fail to decode are
// skipped rather than failing the whole list.
func ParseExport(data string) []Task {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &raw); err != nil {
		return nil
	}
	tasks := make([]Task, 0, len(raw))
	for _, r := range raw {
		var t Task
		if err := json.Unmarshal(r, &t); err != nil {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// Format renders the count payload. No tasks blanks the module.
func Format(tasks []Task, cfg Config) payload.Payload {
	if len(tasks) == 0 {
		return payload.Empty()
	}

	urgent := false
	lines := []string{fmt.Sprintf("Active:%d", len(tasks))}
	for _, t := range tasks {
		lines = append(lines, cfg.Bullet+t.Description)
		if t.Urgency >= cfg.CriticalUrgency {
			urgent = true
		}
	}

	class := "todo"
	if urgent {
		class = "critical"
	}
	return payload.Payload{
		Text:    fmt.Sprint(len(tasks)),
		Tooltip: strings.Join(lines, "\n"),
		Class:   class,
	}
}

// Module is the pending tasks status module
type Module struct {
	cfg    Config
	runner execx.Runner
}

// New creates the module
func New(cfg Config, r execx.Runner) *Module {
	if cfg.Command == "" {
		cfg.Command = "task"
	}
	return &Module{cfg: cfg, runner: r}
}

// Render exports pending tasks and formats the count
func (m *Module) Render(ctx context.Context) (payload.Payload, bool) {
	out, ok := execx.Query(ctx, m.runner, m.cfg.Timeout, m.cfg.Command, "status:pending", "export")
	if !ok {
		logger := logging.GetLogger("tasks")
		logger.Debug().Msg("Task export unavailable")
		return payload.Empty(), true
	}
	return Format(ParseExport(out), m.cfg), true
}
