// Package procscan answers "is a process with this name running?"
package procscan

import (
	"context"
	"strings"

	"github.com/polka-dots/polka/pkg/logging"
	"github.com/shirou/gopsutil/v4/process"
)

// Scanner reports running processes by name
type Scanner interface {
	// Running reports whether any process name contains substr,
	// case-insensitively.
	Running(ctx context.Context, substr string) bool
}

// System scans the process table through gopsutil
type System struct{}

// NewSystem returns the live process scanner
func NewSystem() *System {
	return &System{}
}

// Running implements Scanner. A failed scan counts as not running.
func (s *System) Running(ctx context.Context, substr string) bool {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		logger := logging.GetLogger("procscan")
		logger.Debug().Err(err).Msg("Process scan failed")
		return false
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// processes can exit mid-scan
			continue
		}
		if matches(name, substr) {
			return true
		}
	}
	return false
}

// Static is a fixed process list
type Static []string

// Running implements Scanner
func (s Static) Running(_ context.Context, substr string) bool {
	for _, name := range s {
		if matches(name, substr) {
			return true
		}
	}
	return false
}

func matches(name, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(substr))
}
