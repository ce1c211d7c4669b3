package execx

import (
	"os/exec"
	"syscall"

	"github.com/polka-dots/polka/pkg/logging"
)

// Launcher starts long-lived programs without waiting for them
type Launcher interface {
	Launch(name string, args ...string) error
}

// Detached starts programs in their own session so they outlive polka
type Detached struct{}

// Launch implements Launcher
func (Detached) Launch(name string, args ...string) error {
	logging.LogCommand(name, args)

	c := exec.Command(name, args...)
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := c.Start(); err != nil {
		return err
	}
	return c.Process.Release()
}

// Launched records launches for tests
type Launched struct {
	Commands []Command
	Err      error
}

// Launch implements Launcher
func (l *Launched) Launch(name string, args ...string) error {
	l.Commands = append(l.Commands, Command{Name: name, Args: args})
	return l.Err
}
