package shell

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"termsim/fs"
	"termsim/metrics"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.HandleFunc("b", func(context.Context, *Session, []string) (string, error) { return "b", nil }, Meta{Short: "bee"})
	reg.HandleFunc("a", func(context.Context, *Session, []string) (string, error) { return "a", nil }, Meta{})

	if diff := cmp.Diff([]string{"a", "b"}, reg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	d, ok := reg.Lookup("b")
	if !ok || d.Short != "bee" || d.Name != "b" {
		t.Errorf("Lookup(b) = %+v, %v", d, ok)
	}
	if _, ok := reg.Lookup("c"); ok {
		t.Error("Lookup(c) should fail")
	}

	if !reg.SetManual("a", "A(1)") {
		t.Error("SetManual(a) = false")
	}
	if reg.SetManual("c", "C(1)") {
		t.Error("SetManual(c) = true for unknown command")
	}
	if d, _ := reg.Lookup("a"); d.Man != "A(1)" {
		t.Errorf("Man = %q", d.Man)
	}

	reg.HandleFunc("a", func(context.Context, *Session, []string) (string, error) { return "a2", nil }, Meta{})
	out, err := reg.Dispatch(testContext(t), nil, "a", nil)
	if err != nil || out != "a2" {
		t.Errorf("Dispatch(a) = %q, %v; want replaced handler", out, err)
	}
}

func TestDispatchOutcomes(t *testing.T) {
	reg := NewRegistry()
	reg.HandleFunc("ok", func(context.Context, *Session, []string) (string, error) { return "fine", nil }, Meta{})
	reg.HandleFunc("usage", func(context.Context, *Session, []string) (string, error) { return "", Usage("usage <x>") }, Meta{})
	reg.HandleFunc("wrapped", func(context.Context, *Session, []string) (string, error) {
		return "", fmt.Errorf("context: %w", Failf("wrapped: failed"))
	}, Meta{})
	reg.HandleFunc("fault", func(context.Context, *Session, []string) (string, error) { return "", errors.New("bad") }, Meta{})
	reg.HandleFunc("panic", func(context.Context, *Session, []string) (string, error) {
		var m map[string]int
		m["x"]++
		return "", nil
	}, Meta{})
	reg.HandleFunc("bye", func(context.Context, *Session, []string) (string, error) { return "", ErrExit }, Meta{})

	s := NewSession(fs.Boot())
	tests := []struct {
		name        string
		wantOut     string
		wantOutcome string
		wantErr     error
	}{
		{"ok", "fine", metrics.OutcomeOK, nil},
		{"usage", "Usage: usage <x>", metrics.OutcomeFailure, nil},
		{"wrapped", "wrapped: failed", metrics.OutcomeFailure, nil},
		{"fault", "Error executing fault: bad", metrics.OutcomeFault, nil},
		{"panic", "Error executing panic: assignment to entry in nil map", metrics.OutcomeFault, nil},
		{"bye", "", metrics.OutcomeExit, ErrExit},
		{"missing", "missing: command not found", metrics.OutcomeNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, outcome, err := reg.dispatch(testContext(t), s, tt.name, nil)
			if out != tt.wantOut {
				t.Errorf("out = %q, want %q", out, tt.wantOut)
			}
			if outcome != tt.wantOutcome {
				t.Errorf("outcome = %q, want %q", outcome, tt.wantOutcome)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
