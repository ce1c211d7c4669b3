package execx

import (
	"context"
	"errors"
	"sync"
)

// ErrNotScripted is returned by Fake for commands it has no response for
var ErrNotScripted = errors.New("execx: command not scripted")

// Fake is a scripted Runner for tests. Responses are keyed by the full
// command line as rendered by Command.String.
type Fake struct {
	mu        sync.Mutex
	responses map[string][]Result
	Calls     []Command
}

// NewFake returns an empty Fake
func NewFake() *Fake {
	return &Fake{responses: make(map[string][]Result)}
}

// On queues a successful response with the given stdout
func (f *Fake) On(cmdline, stdout string) *Fake {
	return f.OnResult(cmdline, Result{Stdout: stdout})
}

// OnFail queues a failed response with the given exit code
func (f *Fake) OnFail(cmdline string, exitCode int) *Fake {
	return f.OnResult(cmdline, Result{ExitCode: exitCode})
}

// OnResult queues an arbitrary response. The last queued response for a
// command line repeats once the queue drains.
func (f *Fake) OnResult(cmdline string, res Result) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = append(f.responses[cmdline], res)
	return f
}

// Run implements Runner
func (f *Fake) Run(_ context.Context, cmd Command) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, cmd)
	queue, ok := f.responses[cmd.String()]
	if !ok || len(queue) == 0 {
		return Result{ExitCode: -1, Err: ErrNotScripted}
	}
	res := queue[0]
	if len(queue) > 1 {
		f.responses[cmd.String()] = queue[1:]
	}
	return res
}

// Called reports whether cmdline was run at least once
func (f *Fake) Called(cmdline string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if c.String() == cmdline {
			return true
		}
	}
	return false
}
