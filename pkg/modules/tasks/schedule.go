package tasks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/logging"
)

// IntervalTask is added again Every days after it was last entered
type IntervalTask struct {
	Description string `koanf:"description" toml:"description"`
	Every       int    `koanf:"every" toml:"every"`
	DueDays     int    `koanf:"due_days" toml:"due_days"`
}

// DatedTask is added on fixed calendar days, given as "MM-DD"
type DatedTask struct {
	Description string   `koanf:"description" toml:"description"`
	Dates       []string `koanf:"dates" toml:"dates"`
	DueDays     int      `koanf:"due_days" toml:"due_days"`
}

// Scheduler adds recurring tasks that are due and not already pending
type Scheduler struct {
	cfg    Config
	runner execx.Runner
	now    func() time.Time
}

// NewScheduler creates a scheduler
func NewScheduler(cfg Config, r execx.Runner) *Scheduler {
	if cfg.Command == "" {
		cfg.Command = "task"
	}
	return &Scheduler{cfg: cfg, runner: r, now: time.Now}
}

// WithClock replaces the time source
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Run adds every due task and returns the descriptions added
func (s *Scheduler) Run(ctx context.Context) ([]string, error) {
	logger := logging.GetLogger("tasks")
	today := dateOf(s.now())
	var added []string

	for _, t := range s.cfg.Recurring {
		next := today
		if last, ok := s.lastEntered(ctx, t.Description); ok {
			next = last.AddDate(0, 0, t.Every)
		}
		if today.Before(next) || s.pending(ctx, t.Description) {
			continue
		}
		if err := s.add(ctx, t.Description, t.DueDays); err != nil {
			return added, err
		}
		added = append(added, t.Description)
	}

	for _, t := range s.cfg.Dated {
		if !matchesDay(t.Dates, today) || s.pending(ctx, t.Description) {
			continue
		}
		if err := s.add(ctx, t.Description, t.DueDays); err != nil {
			return added, err
		}
		added = append(added, t.Description)
	}

	logger.Info().Strs("added", added).Msg("Task schedule run")
	return added, nil
}

func (s *Scheduler) pending(ctx context.Context, desc string) bool {
	out, ok := execx.Query(ctx, s.runner, s.cfg.Timeout, s.cfg.Command,
		"description.is:"+desc, "status:pending", "count")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	return err == nil && n > 0
}

func (s *Scheduler) lastEntered(ctx context.Context, desc string) (time.Time, bool) {
	out, ok := execx.Query(ctx, s.runner, s.cfg.Timeout, s.cfg.Command,
		"description.is:"+desc,
		"status:pending,completed",
		"limit:1",
		"rc.report.minimal.columns:entry",
		"rc.report.minimal.labels:",
		"minimal",
	)
	if !ok || out == "" {
		return time.Time{}, false
	}
	return ParseEntryDate(out)
}

func (s *Scheduler) add(ctx context.Context, desc string, dueDays int) error {
	args := []string{"add", desc}
	if dueDays > 0 {
		args = append(args, fmt.Sprintf("due:%dd", dueDays))
	}
	res := s.runner.Run(ctx, execx.Command{Name: s.cfg.Command, Args: args, Timeout: s.cfg.Timeout})
	if !res.Available() {
		return errors.Newf(errors.ErrCommandFailed, "failed to add task %q", desc).
			WithDetail("exit", res.ExitCode).
			WithDetail("stderr", strings.TrimSpace(res.Stderr))
	}
	return nil
}

// ParseEntryDate reads the date part of an entry column value, either
// "2026-10-03" or "20261003T101500Z" style.
func ParseEntryDate(out string) (time.Time, bool) {
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	day, _, _ := strings.Cut(fields[0], "T")
	for _, layout := range []string{"2006-01-02", "20060102"} {
		if t, err := time.ParseInLocation(layout, day, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func matchesDay(dates []string, today time.Time) bool {
	for _, d := range dates {
		t, err := time.Parse("01-02", strings.TrimSpace(d))
		if err != nil {
			continue
		}
		if t.Month() == today.Month() && t.Day() == today.Day() {
			return true
		}
	}
	return false
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
