package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "termsim.toml")
	data := `
[terminal]
hostname = "devbox"
color = false

[latency]
enabled = true
ping_delay_ms = 40

[logging]
level = "debug"

[metrics]
addr = "127.0.0.1:9464"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Terminal.Hostname = "devbox"
	want.Terminal.Color = false
	want.Latency = LatencyConfig{Enabled: true, PingDelayMsec: 40}
	want.Logging.Level = "debug"
	want.Metrics.Addr = "127.0.0.1:9464"
	want.File = path
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	if got := cfg.PingDelay(); got != 40*time.Millisecond {
		t.Errorf("PingDelay() = %v, want 40ms", got)
	}
	if got, want := cfg.AccountsPath(), filepath.Join(dir, "accounts.toml"); got != want {
		t.Errorf("AccountsPath() = %q, want %q", got, want)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() of a missing explicit file should fail")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[terminal\nhostname ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed file should fail")
	}
}

func TestLoadSearchFallsBackToDefaults(t *testing.T) {
	testChdir(t, t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.File != "" {
		// A termsim.toml next to the test binary would be picked up first.
		t.Skipf("found %s on the search path", cfg.File)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if cfg.PingDelay() != 0 {
		t.Errorf("PingDelay() = %v with latency disabled", cfg.PingDelay())
	}
	if cfg.AccountsPath() != "accounts.toml" {
		t.Errorf("AccountsPath() = %q", cfg.AccountsPath())
	}
}

func TestLoadSearchFindsWorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	if err := os.WriteFile(FileName, []byte("[terminal]\nhostname = \"wd\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Terminal.Hostname != "wd" {
		t.Errorf("Hostname = %q, want wd", cfg.Terminal.Hostname)
	}
}
