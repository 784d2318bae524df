package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"termsim/metrics"
)

// Command is the handler behind a command name. It returns the text to
// show and may change the session or its filesystem. Returning a *Failure
// shows the failure text; any other error is reported as a fault.
type Command interface {
	Run(ctx context.Context, s *Session, args []string) (string, error)
}

// CommandFunc adapts a function to Command.
type CommandFunc func(ctx context.Context, s *Session, args []string) (string, error)

func (f CommandFunc) Run(ctx context.Context, s *Session, args []string) (string, error) {
	return f(ctx, s, args)
}

// Meta is the help text attached to a command.
type Meta struct {
	Short string
	Man   string
}

type Descriptor struct {
	Name    string
	Command Command
	Meta
}

// Registry maps command names to descriptors. It is filled once at startup.
type Registry struct {
	cmds map[string]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Descriptor)}
}

// Register stores cmd under name, replacing any earlier registration.
func (r *Registry) Register(name string, cmd Command, meta Meta) {
	r.cmds[name] = &Descriptor{Name: name, Command: cmd, Meta: meta}
}

// HandleFunc registers a function as a command.
func (r *Registry) HandleFunc(name string, fn func(ctx context.Context, s *Session, args []string) (string, error), meta Meta) {
	r.Register(name, CommandFunc(fn), meta)
}

func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.cmds[name]
	return d, ok
}

// SetManual attaches a manual page to an already registered command.
func (r *Registry) SetManual(name, man string) bool {
	d, ok := r.cmds[name]
	if ok {
		d.Man = man
	}
	return ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named command and renders its result as text. Unknown
// names, failures and faults all come back as text; the only error
// returned is ErrExit.
func (r *Registry) Dispatch(ctx context.Context, s *Session, name string, args []string) (string, error) {
	out, _, err := r.dispatch(ctx, s, name, args)
	return out, err
}

func (r *Registry) dispatch(ctx context.Context, s *Session, name string, args []string) (out, outcome string, err error) {
	d, ok := r.Lookup(name)
	if !ok {
		return name + ": command not found", metrics.OutcomeNotFound, nil
	}

	defer func() {
		if p := recover(); p != nil {
			out, outcome, err = fmt.Sprintf("Error executing %s: %v", name, p), metrics.OutcomeFault, nil
		}
	}()

	out, err = d.Command.Run(ctx, s, args)
	if err == nil {
		return out, metrics.OutcomeOK, nil
	}
	if errors.Is(err, ErrExit) {
		return out, metrics.OutcomeExit, err
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Error(), metrics.OutcomeFailure, nil
	}
	return fmt.Sprintf("Error executing %s: %v", name, err), metrics.OutcomeFault, nil
}
