package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"termsim/shell"
)

// TestResult represents the result of a single test case
type TestResult struct {
	TestCase  TestCase
	Passed    bool
	Output    []string
	Expected  []string
	Error     string
	Duration  time.Duration
	Timestamp time.Time
}

// Summary holds the outcome of a whole run
type Summary struct {
	Results       []TestResult
	TotalTests    int
	TotalPassed   int
	TotalFailed   int
	TotalDuration time.Duration
	PassRate      float64
}

// Factory builds a fresh terminal for each case.
type Factory func() *shell.Interpreter

// Runner executes cases, each against its own terminal.
type Runner struct {
	NewTerminal Factory
	Out         io.Writer // progress log; nil discards it
}

// Run executes every case in order and summarizes the results.
func (r *Runner) Run(ctx context.Context, cases []TestCase) Summary {
	results := make([]TestResult, 0, len(cases))
	for _, tc := range cases {
		result := RunTestCase(ctx, r.NewTerminal(), tc)
		results = append(results, result)
		if r.Out != nil {
			LogTestProgress(r.Out, result)
		}
	}
	return CalculateSummary(results)
}

// RunTestCase executes a single test case against a terminal.
func RunTestCase(ctx context.Context, in *shell.Interpreter, testCase TestCase) TestResult {
	result := TestResult{
		TestCase:  testCase,
		Expected:  testCase.Expected,
		Timestamp: time.Now(),
	}

	startTime := time.Now()
	defer func() {
		result.Duration = time.Since(startTime)
	}()

	if testCase.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, testCase.Timeout)
		defer cancel()
	}

	for _, setupCmd := range testCase.Setup {
		if _, err := execute(ctx, in, setupCmd); err != nil {
			result.Error = fmt.Sprintf("Setup command failed: %v", err)
			return result
		}
	}

	result.Output = make([]string, 0, len(testCase.Commands))
	for _, cmd := range testCase.Commands {
		output, err := execute(ctx, in, cmd)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Output = append(result.Output, output)
	}

	result.Passed = true
	for i, output := range result.Output {
		if i >= len(testCase.Expected) || i >= len(testCase.Validation) {
			break
		}
		expected, validation := testCase.Expected[i], testCase.Validation[i]
		if !ValidateOutput(output, expected, validation) {
			result.Passed = false
			result.Error = fmt.Sprintf("Validation failed for command %d (%s): expected '%s', got '%s'", i+1, validation, expected, output)
			break
		}
	}

	// Cleanup errors are ignored.
	for _, cleanupCmd := range testCase.Cleanup {
		_, _ = execute(ctx, in, cleanupCmd)
	}

	return result
}

// execute runs one line the way the front end would show it: a redirect
// failure becomes the visible output and exit ends nothing.
func execute(ctx context.Context, in *shell.Interpreter, line string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("command %q: %w", line, err)
	}
	out, err := in.Run(ctx, line)
	var re *shell.RedirectError
	switch {
	case err == nil, errors.Is(err, shell.ErrExit):
		return out, nil
	case errors.As(err, &re):
		return re.Error(), nil
	default:
		return "", err
	}
}

// CalculateSummary totals a set of results.
func CalculateSummary(results []TestResult) Summary {
	summary := Summary{Results: results, TotalTests: len(results)}
	for _, r := range results {
		if r.Passed {
			summary.TotalPassed++
		} else {
			summary.TotalFailed++
		}
		summary.TotalDuration += r.Duration
	}
	if summary.TotalTests > 0 {
		summary.PassRate = float64(summary.TotalPassed) / float64(summary.TotalTests) * 100
	}
	return summary
}

// LogTestProgress logs one result.
func LogTestProgress(w io.Writer, result TestResult) {
	status := color.GreenString("[PASS]")
	if !result.Passed {
		status = color.RedString("[FAIL]")
	}
	tc := result.TestCase
	fmt.Fprintf(w, "%s %s.%s - %s (%v)\n",
		status,
		tc.Category,
		tc.ID,
		tc.Description,
		result.Duration.Truncate(time.Millisecond))

	if !result.Passed && result.Error != "" {
		fmt.Fprintf(w, "    Error: %s\n", result.Error)
	}
}

// PrintSummary writes the totals and, per category, the pass counts.
func PrintSummary(w io.Writer, summary Summary) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, " SCENARIO SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	for _, c := range Categories(summary) {
		fmt.Fprintf(w, "  %-20s %d/%d\n", c.Name, c.PassedTests, c.TotalTests)
	}

	line := fmt.Sprintf("Total: %d  Passed: %d  Failed: %d  Pass rate: %.1f%%  (%v)",
		summary.TotalTests, summary.TotalPassed, summary.TotalFailed, summary.PassRate,
		summary.TotalDuration.Truncate(time.Millisecond))
	if summary.TotalFailed > 0 {
		fmt.Fprintln(w, color.RedString(line))
	} else {
		fmt.Fprintln(w, color.GreenString(line))
	}
}
