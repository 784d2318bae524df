package commands

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"termsim/shell"
)

// JavaScript's Date.toString layout.
const dateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

var arithmetic = regexp.MustCompile(`^[0-9+\-*/().\s]+$`)

func (b *builtins) registerInfo() {
	b.handle("help", "Show this help", b.help)
	b.handle("helpfull", "Extended help", func(context.Context, *shell.Session, []string) (string, error) {
		return fmt.Sprintf("This is an extended help: %d commands available.", len(b.reg.Names())), nil
	})
	b.handle("man", "Show manual for command", b.man)
	b.handle("date", "Show current date/time", func(context.Context, *shell.Session, []string) (string, error) {
		return b.opts.Now().Format(dateLayout), nil
	})
	b.handle("uptime", "Show how long system has been up", func(_ context.Context, s *shell.Session, _ []string) (string, error) {
		up := b.opts.Now().Sub(s.Booted)
		return fmt.Sprintf("up %d seconds", int64(up/time.Second)), nil
	})
	b.handle("who", "Show who is logged on", func(_ context.Context, s *shell.Session, _ []string) (string, error) {
		return fmt.Sprintf("%s pts/0 %s", s.Username(), s.Booted.Format(time.DateOnly)), nil
	})
	b.handle("calc", "Simple arithmetic", calc)
}

func (b *builtins) help(context.Context, *shell.Session, []string) (string, error) {
	names := b.reg.Names()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		d, _ := b.reg.Lookup(name)
		line := fmt.Sprintf("%-12s", name)
		if d.Short != "" {
			line += " - " + d.Short
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (b *builtins) man(_ context.Context, _ *shell.Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", shell.Usage("man <command>")
	}
	d, ok := b.reg.Lookup(args[0])
	if !ok {
		return "", shell.Failf("No manual entry for %s", args[0])
	}
	if d.Man == "" {
		return args[0] + " — no manual available.", nil
	}
	return d.Man, nil
}

// calc evaluates an arithmetic expression with the HCL expression engine.
func calc(_ context.Context, _ *shell.Session, args []string) (string, error) {
	expr := strings.Join(args, " ")
	if expr == "" {
		return "", shell.Usage("calc <expression>")
	}
	if !arithmetic.MatchString(expr) {
		return "", shell.Failf("calc: invalid characters")
	}

	parsed, diags := hclsyntax.ParseExpression([]byte(expr), "calc", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return "", shell.Failf("calc: error")
	}
	val, diags := parsed.Value(nil)
	if diags.HasErrors() || val.IsNull() || !val.IsKnown() || val.Type() != cty.Number {
		return "", shell.Failf("calc: error")
	}
	f, _ := val.AsBigFloat().Float64()
	switch {
	case math.IsInf(f, 1):
		return "Infinity", nil
	case math.IsInf(f, -1):
		return "-Infinity", nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
