package scenario

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"termsim/commands"
	"termsim/fs"
	"termsim/shell"
)

func newTerminal() *shell.Interpreter {
	reg := shell.NewRegistry()
	commands.Register(reg, commands.Options{})
	return shell.NewInterpreter(reg, shell.NewSession(fs.Boot()))
}

func TestValidateOutput(t *testing.T) {
	tests := []struct {
		actual, expected string
		mode             ValidationMode
		want             bool
	}{
		{"  /home/guest\n", "/home/guest", ExactMatch, true},
		{"/home/guest/x", "/home/guest", ExactMatch, false},
		{"Hello World", "hello", Contains, true},
		{"beta", "alpha | beta", Contains, true},
		{"gamma", "alpha|beta", Contains, false},
		{"anything", "", Contains, true},
		{"up 12 seconds", `^up \d+ seconds$`, RegexMatch, true},
		{"up x seconds", `^up \d+ seconds$`, RegexMatch, false},
		{"abc", `(`, RegexMatch, false},
		{"", "", NoError, true},
		{"hello", "", NoError, true},
		{"cat: x: No such file or directory", "", NoError, false},
		{"Usage: cat <file>", "", HasError, true},
		{"rm: refusing to remove '/'", "refusing", HasError, true},
		{"rm: refusing to remove '/'", "not empty", HasError, false},
		{"fine", "", HasError, false},
		{"x", "x", ValidationMode(99), false},
	}
	for _, tt := range tests {
		if got := ValidateOutput(tt.actual, tt.expected, tt.mode); got != tt.want {
			t.Errorf("ValidateOutput(%q, %q, %v) = %v, want %v", tt.actual, tt.expected, tt.mode, got, tt.want)
		}
	}
}

func TestValidationModeText(t *testing.T) {
	for mode, name := range modeNames {
		text, err := mode.MarshalText()
		if err != nil || string(text) != name {
			t.Errorf("MarshalText(%d) = %q, %v", int(mode), text, err)
		}
		var back ValidationMode
		if err := back.UnmarshalText(text); err != nil || back != mode {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}
	var m ValidationMode
	if err := m.UnmarshalText([]byte("fuzzy")); err == nil {
		t.Error("UnmarshalText(fuzzy) should fail")
	}
}

func TestBuiltinSuitePasses(t *testing.T) {
	var log bytes.Buffer
	r := &Runner{NewTerminal: newTerminal, Out: &log}
	summary := r.Run(testContext(t), GetAllTestCases(DefaultTimeout))

	if summary.TotalTests == 0 {
		t.Fatal("no built-in cases")
	}
	for _, res := range summary.Results {
		if !res.Passed {
			t.Errorf("%s %s: %s", res.TestCase.ID, res.TestCase.Description, res.Error)
		}
	}
	if summary.PassRate != 100 {
		t.Errorf("PassRate = %v", summary.PassRate)
	}
	if got := strings.Count(log.String(), "[PASS]"); got != summary.TotalTests {
		t.Errorf("logged %d passes for %d cases", got, summary.TotalTests)
	}
}

func TestLoadFile(t *testing.T) {
	cases, err := LoadFile(filepath.Join("testdata", "smoke.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("loaded %d cases, want 3", len(cases))
	}

	want := TestCase{
		ID:          "s.1",
		Category:    "Smoke",
		Description: "Write and read back",
		Commands:    []string{"echo hello > /tmp/out.txt", "echo world >> /tmp/out.txt", "cat /tmp/out.txt"},
		Expected:    []string{"", "", "hello\nworld"},
		Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		Timeout:     5 * time.Second,
	}
	if diff := cmp.Diff(want, cases[0]); diff != "" {
		t.Errorf("case s.1 mismatch (-want +got):\n%s", diff)
	}
	if cases[2].Timeout != time.Second {
		t.Errorf("case s.3 timeout = %v, want 1s", cases[2].Timeout)
	}

	summary := (&Runner{NewTerminal: newTerminal}).Run(testContext(t), cases)
	for _, res := range summary.Results {
		if !res.Passed {
			t.Errorf("%s: %s", res.TestCase.ID, res.Error)
		}
	}
}

func TestLoadFileRejectsMismatchedModes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	data := `
[[case]]
id = "b.1"
commands = ["pwd"]
expected = ["/", "/"]
validation = ["exact"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should reject mismatched expectations")
	}
}

func TestRunTestCaseFailure(t *testing.T) {
	color.NoColor = true
	tc := TestCase{
		ID:          "f.1",
		Category:    "Failing",
		Description: "Wrong expectation",
		Commands:    []string{"pwd", "whoami"},
		Expected:    []string{"/tmp", "guest"},
		Validation:  []ValidationMode{ExactMatch, ExactMatch},
	}
	res := RunTestCase(testContext(t), newTerminal(), tc)
	if res.Passed {
		t.Fatal("case should fail")
	}
	if !strings.Contains(res.Error, "command 1") {
		t.Errorf("Error = %q", res.Error)
	}
	if diff := cmp.Diff([]string{"/home/guest", "guest"}, res.Output); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}

	var log bytes.Buffer
	LogTestProgress(&log, res)
	if !strings.Contains(log.String(), "[FAIL] Failing.f.1 - Wrong expectation") || !strings.Contains(log.String(), "Error:") {
		t.Errorf("log = %q", log.String())
	}

	summary := CalculateSummary([]TestResult{res, {Passed: true}})
	if summary.TotalPassed != 1 || summary.TotalFailed != 1 || summary.PassRate != 50 {
		t.Errorf("summary = %+v", summary)
	}
	var out bytes.Buffer
	PrintSummary(&out, summary)
	if !strings.Contains(out.String(), "Failing") || !strings.Contains(out.String(), "Pass rate: 50.0%") {
		t.Errorf("PrintSummary output:\n%s", out.String())
	}
}

func TestHTMLReport(t *testing.T) {
	summary := CalculateSummary([]TestResult{
		{TestCase: TestCase{ID: "a.1", Category: "Alpha", Description: "first"}, Passed: true},
		{TestCase: TestCase{ID: "a.2", Category: "Alpha", Description: "<second>"}, Error: "boom"},
		{TestCase: TestCase{ID: "b.1", Category: "Beta"}, Passed: true},
	})

	want := []CategorySummary{
		{Name: "Alpha", TotalTests: 2, PassedTests: 1, FailedTests: 1, PassRate: 50},
		{Name: "Beta", TotalTests: 1, PassedTests: 1, PassRate: 100},
	}
	if diff := cmp.Diff(want, Categories(summary)); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "reports", "report.html")
	if err := GenerateHTMLReport(summary, path); err != nil {
		t.Fatalf("GenerateHTMLReport() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, s := range []string{"2/3 passed", "<td>Beta</td>", "&lt;second&gt;", "<pre>boom</pre>"} {
		if !strings.Contains(html, s) {
			t.Errorf("report missing %q", s)
		}
	}
}

func TestRunTestCaseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()
	res := RunTestCase(ctx, newTerminal(), TestCase{ID: "c.1", Commands: []string{"pwd"}})
	if res.Passed || !strings.Contains(res.Error, "context canceled") {
		t.Errorf("result = %+v", res)
	}
}
