package shell

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"

	"termsim/logging"
	"termsim/metrics"
)

var (
	appendRe    = regexp.MustCompile(`^(.*)>>\s*(\S+)$`)
	overwriteRe = regexp.MustCompile(`^(.*)>\s*(\S+)$`)
)

// Redirect is a trailing "> file" or ">> file" on a command line.
type Redirect struct {
	Target string
	Append bool
}

// Interpreter runs command lines against one session. Lines are handled one
// at a time; concurrent callers of Run wait their turn.
type Interpreter struct {
	mu       sync.Mutex
	registry *Registry
	session  *Session
}

func NewInterpreter(reg *Registry, s *Session) *Interpreter {
	return &Interpreter{registry: reg, session: s}
}

func (in *Interpreter) Session() *Session { return in.session }

func (in *Interpreter) Registry() *Registry { return in.registry }

// Run interprets one raw line. It returns the text to display, which is
// empty when the output went to a redirect target. The error is either a
// *RedirectError or ErrExit; command failures are part of the text.
func (in *Interpreter) Run(ctx context.Context, line string) (string, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	s := in.session
	if strings.TrimSpace(line) != "" {
		s.History = append(s.History, line)
	}

	base, redirect := ParseRedirect(ExpandAlias(line, s.Aliases))
	fields := strings.Fields(base)
	if len(fields) == 0 {
		return "", nil
	}
	name, args := fields[0], fields[1:]

	start := time.Now()
	out, outcome, err := in.registry.dispatch(ctx, s, name, args)
	elapsed := time.Since(start)
	metrics.RecordCommand(name, outcome, elapsed)
	logging.L().Debug("dispatch",
		zap.String("command", name),
		zap.Int("args", len(args)),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	)
	if outcome == metrics.OutcomeFault {
		logging.L().Warn("command fault", zap.String("command", name), zap.String("output", out))
	}
	if err != nil {
		return "", err
	}

	if redirect == nil {
		return out, nil
	}
	werr := s.FS.WriteFile(s.Abs(redirect.Target), out+"\n", redirect.Append, s.Owner())
	metrics.RecordRedirect(redirect.Append, werr)
	if werr != nil {
		logging.L().Info("redirect failed", zap.String("target", redirect.Target), zap.Error(werr))
		return "", &RedirectError{Target: redirect.Target, Err: werr}
	}
	return "", nil
}

// Complete returns the command and alias names starting with prefix.
func (in *Interpreter) Complete(prefix string) []string {
	in.mu.Lock()
	defer in.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range in.registry.Names() {
		add(name)
	}
	for name := range in.session.Aliases {
		add(name)
	}
	sort.Strings(out)
	return out
}

// ExpandAlias replaces the leading token of line with its alias text. The
// result is not expanded again.
func ExpandAlias(line string, aliases map[string]string) string {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	if end == 0 {
		return line
	}
	repl, ok := aliases[rest[:end]]
	if !ok {
		return line
	}
	return repl + rest[end:]
}

// ParseRedirect splits a trailing output redirection off line. ">>" wins
// over ">" when both could apply.
func ParseRedirect(line string) (string, *Redirect) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	if m := appendRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), &Redirect{Target: m[2], Append: true}
	}
	if m := overwriteRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), &Redirect{Target: m[2]}
	}
	return line, nil
}
