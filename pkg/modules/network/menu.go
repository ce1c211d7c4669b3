package network

import (
	"context"
	"fmt"
	"strings"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/execx"
	"github.com/polka-dots/polka/pkg/format"
	"github.com/polka-dots/polka/pkg/paths"
)

// Menu asks the user to pick one of options. A dismissed menu returns an
// ErrCancelled error.
type Menu interface {
	Choose(ctx context.Context, options []string) (string, error)
}

// Prompt asks for a secret
type Prompt interface {
	Password(ctx context.Context, title string) (string, error)
}

// Fuzzel is a dmenu-style Menu
type Fuzzel struct {
	Runner execx.Runner
	Binary string
	Config string
}

// Choose implements Menu
func (f Fuzzel) Choose(ctx context.Context, options []string) (string, error) {
	width := 0
	for _, o := range options {
		width = max(width, format.RuneLen(o))
	}

	args := []string{"--dmenu", "--hide-prompt", fmt.Sprintf("--width=%d", width+1), "--lines", fmt.Sprint(len(options))}
	if f.Config != "" {
		args = append(args, "--config", paths.ExpandHome(f.Config))
	}
	bin := f.Binary
	if bin == "" {
		bin = "fuzzel"
	}

	// The menu waits on the user, so it runs without a deadline of its own.
	res := f.Runner.Run(ctx, execx.Command{
		Name:    bin,
		Args:    args,
		Stdin:   strings.Join(options, "\n"),
		Timeout: interactiveTimeout,
	})
	choice := strings.TrimSpace(res.Stdout)
	if !res.Available() || choice == "" {
		return "", errors.New(errors.ErrCancelled, "menu dismissed")
	}
	return choice, nil
}

// Zenity is a graphical password Prompt
type Zenity struct {
	Runner execx.Runner
}

// Password implements Prompt
func (z Zenity) Password(ctx context.Context, title string) (string, error) {
	res := z.Runner.Run(ctx, execx.Command{
		Name:    "zenity",
		Args:    []string{"--password", "--title=" + title},
		Timeout: interactiveTimeout,
	})
	pw := strings.TrimSpace(res.Stdout)
	if !res.Available() || pw == "" {
		return "", errors.New(errors.ErrCancelled, "password entry cancelled")
	}
	return pw, nil
}
