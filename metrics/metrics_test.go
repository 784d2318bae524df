package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// counter reads the current value of one labelled counter from the default
// registry. Missing series read as zero.
func counter(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matches(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matches(m *dto.Metric, labels map[string]string) bool {
	if len(m.GetLabel()) != len(labels) {
		return false
	}
	for _, lp := range m.GetLabel() {
		if labels[lp.GetName()] != lp.GetValue() {
			return false
		}
	}
	return true
}

func TestRecordCommand(t *testing.T) {
	ok := map[string]string{"command": "ls", "outcome": OutcomeOK}
	unknown := map[string]string{"command": "unknown", "outcome": OutcomeNotFound}
	beforeOK, beforeUnknown := counter(t, "termsim_commands_total", ok), counter(t, "termsim_commands_total", unknown)

	RecordCommand("ls", OutcomeOK, time.Millisecond)
	RecordCommand("ls", OutcomeOK, time.Millisecond)
	RecordCommand("frobnicate", OutcomeNotFound, 0)
	RecordCommand("xyzzy", OutcomeNotFound, 0)

	if got := counter(t, "termsim_commands_total", ok) - beforeOK; got != 2 {
		t.Errorf("ls ok delta = %v, want 2", got)
	}
	if got := counter(t, "termsim_commands_total", unknown) - beforeUnknown; got != 2 {
		t.Errorf("unknown delta = %v, want 2", got)
	}
	if got := counter(t, "termsim_commands_total", map[string]string{"command": "frobnicate", "outcome": OutcomeNotFound}); got != 0 {
		t.Errorf("unknown names should not get their own series, got %v", got)
	}
}

func TestRecordRedirectAndLogin(t *testing.T) {
	appendErr := map[string]string{"mode": "append", "status": "error"}
	before := counter(t, "termsim_redirects_total", appendErr)
	RecordRedirect(true, errors.New("not a directory"))
	if got := counter(t, "termsim_redirects_total", appendErr) - before; got != 1 {
		t.Errorf("append/error delta = %v, want 1", got)
	}

	loginOK := map[string]string{"kind": "login", "status": "ok"}
	before = counter(t, "termsim_logins_total", loginOK)
	RecordLogin("login", nil)
	if got := counter(t, "termsim_logins_total", loginOK) - before; got != 1 {
		t.Errorf("login/ok delta = %v, want 1", got)
	}
}

func TestServeStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
