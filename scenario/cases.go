// Package scenario runs scripted command sequences against a fresh terminal
// and checks the output of every line.
package scenario

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ValidationMode defines how to validate command output
type ValidationMode int

const (
	ExactMatch ValidationMode = iota
	Contains
	RegexMatch
	NoError
	HasError
)

var modeNames = map[ValidationMode]string{
	ExactMatch: "exact",
	Contains:   "contains",
	RegexMatch: "regex",
	NoError:    "no_error",
	HasError:   "has_error",
}

func (m ValidationMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ValidationMode(%d)", int(m))
}

func (m ValidationMode) MarshalText() ([]byte, error) {
	name, ok := modeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown validation mode %d", int(m))
	}
	return []byte(name), nil
}

func (m *ValidationMode) UnmarshalText(text []byte) error {
	for mode, name := range modeNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown validation mode %q", text)
}

// TestCase represents a single scripted scenario
type TestCase struct {
	ID          string           `toml:"id"`
	Category    string           `toml:"category"`
	Description string           `toml:"description"`
	Commands    []string         `toml:"commands"`
	Expected    []string         `toml:"expected"`
	Validation  []ValidationMode `toml:"validation"`
	Setup       []string         `toml:"setup"`   // Commands to run before the case
	Cleanup     []string         `toml:"cleanup"` // Commands to run after the case
	Timeout     time.Duration    `toml:"timeout"`
}

type suiteFile struct {
	Timeout time.Duration `toml:"timeout"`
	Cases   []TestCase    `toml:"case"`
}

// LoadFile reads scenarios from a TOML file with one [[case]] table per
// scenario. A top-level timeout applies to cases that set none.
func LoadFile(path string) ([]TestCase, error) {
	var suite suiteFile
	if _, err := toml.DecodeFile(path, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	for i := range suite.Cases {
		tc := &suite.Cases[i]
		if tc.Timeout == 0 {
			tc.Timeout = suite.Timeout
		}
		if err := tc.check(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return suite.Cases, nil
}

func (tc *TestCase) check() error {
	if len(tc.Commands) == 0 {
		return fmt.Errorf("case %s: no commands", tc.ID)
	}
	if len(tc.Expected) != len(tc.Validation) {
		return fmt.Errorf("case %s: %d expectations but %d validation modes", tc.ID, len(tc.Expected), len(tc.Validation))
	}
	if len(tc.Expected) > len(tc.Commands) {
		return fmt.Errorf("case %s: more expectations than commands", tc.ID)
	}
	return nil
}

var errorKeywords = []string{
	"error", "not found", "no such", "cannot", "failed", "refusing",
	"usage:", "invalid", "not a directory", "is a directory", "not empty",
}

// ValidateOutput checks one command's output against expected.
func ValidateOutput(actual, expected string, mode ValidationMode) bool {
	actual = strings.TrimSpace(actual)
	expected = strings.TrimSpace(expected)

	switch mode {
	case ExactMatch:
		return actual == expected
	case Contains:
		if expected == "" {
			return true
		}
		// Alternatives are separated by |
		for _, pattern := range strings.Split(expected, "|") {
			pattern = strings.TrimSpace(pattern)
			if strings.Contains(strings.ToLower(actual), strings.ToLower(pattern)) {
				return true
			}
		}
		return false
	case RegexMatch:
		re, err := regexp.Compile(expected)
		if err != nil {
			return false
		}
		return re.MatchString(actual)
	case NoError:
		return !hasErrorKeyword(actual)
	case HasError:
		if expected != "" {
			return strings.Contains(strings.ToLower(actual), strings.ToLower(expected))
		}
		return hasErrorKeyword(actual)
	default:
		return false
	}
}

func hasErrorKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, keyword := range errorKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
