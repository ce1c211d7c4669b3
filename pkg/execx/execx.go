package execx

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/logging"
)

// DefaultTimeout bounds a child process when a Command carries none
const DefaultTimeout = 3 * time.Second

// Command describes one invocation of an external program
type Command struct {
	Name    string
	Args    []string
	Timeout time.Duration
	// Stdin is fed to the child when non-empty (menus read options here)
	Stdin string
	// Env entries are appended to the current environment
	Env []string
}

// String renders the command line, used as the key by Fake
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is the captured outcome of a Command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Available reports whether the collaborator produced usable output
func (r Result) Available() bool {
	return r.Err == nil && r.ExitCode == 0
}

// TimedOut reports whether the child was killed by its deadline
func (r Result) TimedOut() bool {
	return errors.Is(r.Err, context.DeadlineExceeded)
}

// Runner executes commands
type Runner interface {
	Run(ctx context.Context, cmd Command) Result
}

// Exec runs commands as real child processes
type Exec struct {
	// DefaultTimeout applies to commands without their own timeout;
	// zero means DefaultTimeout.
	DefaultTimeout time.Duration
}

// New returns an OS runner with the given default timeout
func New(timeout time.Duration) *Exec {
	return &Exec{DefaultTimeout: timeout}
}

// Run executes cmd once. It never retries.
func (e *Exec) Run(ctx context.Context, cmd Command) Result {
	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = e.DefaultTimeout
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logging.LogCommand(cmd.Name, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if ctxErr := ctx.Err(); ctxErr != nil {
			res.Err = ctxErr
			res.ExitCode = -1
		} else if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.Err = err
			res.ExitCode = -1
		}
	}
	return res
}

// Query runs name with args and returns trimmed stdout, or ok=false when
// the collaborator is unavailable for any reason.
func Query(ctx context.Context, r Runner, timeout time.Duration, name string, args ...string) (string, bool) {
	res := r.Run(ctx, Command{Name: name, Args: args, Timeout: timeout})
	if !res.Available() {
		return "", false
	}
	return strings.TrimSpace(res.Stdout), true
}

// LookPath reports whether an executable named file is on PATH
func LookPath(file string) bool {
	_, err := exec.LookPath(file)
	return err == nil
}
