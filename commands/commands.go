// Package commands provides the command set of the terminal: filesystem
// commands backed by the session's filesystem, session builtins, a few text
// utilities and a collection of simulated system tools.
package commands

import (
	"context"
	"errors"
	"time"

	"termsim/fs"
	"termsim/shell"
)

// Options tune the simulated commands.
type Options struct {
	// PingDelay is how long ping waits per packet. Zero answers at once.
	PingDelay time.Duration
	// Now is the clock behind date, uptime and who.
	Now func() time.Time
}

type builtins struct {
	reg  *shell.Registry
	opts Options
}

// Register adds every command to reg.
func Register(reg *shell.Registry, opts Options) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	b := &builtins{reg: reg, opts: opts}

	b.registerInfo()
	b.registerSession()
	b.registerFiles()
	b.registerText()
	b.registerSimulated()
	b.registerManuals()
}

func (b *builtins) handle(name, short string, fn shell.CommandFunc) {
	b.reg.Register(name, fn, shell.Meta{Short: short})
}

// static is a command whose output ignores its arguments.
type static string

func (c static) Run(context.Context, *shell.Session, []string) (string, error) {
	return string(c), nil
}

// reason extracts the user-facing cause from a filesystem error.
func reason(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}

// splitFlags separates leading-dash tokens from operands.
func splitFlags(args []string) (flags map[rune]bool, operands []string) {
	flags = make(map[rune]bool)
	for _, a := range args {
		if len(a) > 1 && a[0] == '-' {
			for _, r := range a[1:] {
				flags[r] = true
			}
			continue
		}
		operands = append(operands, a)
	}
	return flags, operands
}
