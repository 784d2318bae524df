package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"termsim/fs"
	"termsim/shell"
)

func (b *builtins) registerSession() {
	b.handle("cd", "Change directory", cd)
	b.handle("pwd", "Print working directory", func(_ context.Context, s *shell.Session, _ []string) (string, error) {
		return s.Cwd, nil
	})
	b.handle("whoami", "Show current user", func(_ context.Context, s *shell.Session, _ []string) (string, error) {
		return s.Username(), nil
	})
	b.handle("echo", "Echo arguments", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		return strings.Join(args, " "), nil
	})
	b.handle("alias", "Create alias", alias)
	b.handle("unalias", "Remove alias", func(_ context.Context, s *shell.Session, args []string) (string, error) {
		for _, a := range args {
			delete(s.Aliases, a)
		}
		return "", nil
	})
	b.handle("env", "Show environment variables", func(_ context.Context, s *shell.Session, _ []string) (string, error) {
		return formatPairs(s.Env, "%s=%s"), nil
	})
	b.handle("export", "Set environment variables", export)
	b.handle("history", "Show command history", func(_ context.Context, s *shell.Session, _ []string) (string, error) {
		return strings.Join(s.History, "\n"), nil
	})
	b.handle("clear", "Clear the screen", static("\033[2J\033[H").Run)
	b.handle("exit", "Leave the terminal", exit)
	b.handle("logout", "Log out of the terminal", exit)
}

func cd(_ context.Context, s *shell.Session, args []string) (string, error) {
	dest := s.Home()
	if len(args) > 0 {
		dest = args[0]
	}
	err := s.Chdir(dest)
	switch {
	case err == nil:
		return "", nil
	case errors.Is(err, fs.ErrNotDir):
		return "", shell.Failf("cd: %s: Not a directory", dest)
	default:
		return "", shell.Failf("cd: %s: No such file or directory", dest)
	}
}

func exit(context.Context, *shell.Session, []string) (string, error) {
	return "", shell.ErrExit
}

func alias(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) == 0 {
		return formatPairs(s.Aliases, "%s='%s'"), nil
	}
	for _, def := range joinQuoted(args) {
		name, value, _ := strings.Cut(def, "=")
		if name == "" {
			continue
		}
		s.Aliases[name] = unquote(value)
	}
	return "", nil
}

func export(_ context.Context, s *shell.Session, args []string) (string, error) {
	for _, def := range joinQuoted(args) {
		key, value, _ := strings.Cut(def, "=")
		if key == "" {
			continue
		}
		s.Env[key] = unquote(value)
	}
	return "", nil
}

// joinQuoted rejoins definitions like ll='ls -la' that tokenizing split
// across several arguments.
func joinQuoted(args []string) []string {
	var defs []string
	for i := 0; i < len(args); i++ {
		def := args[i]
		_, value, _ := strings.Cut(def, "=")
		if q := openQuote(value); q != 0 {
			for i+1 < len(args) && !strings.HasSuffix(def, string(q)) {
				i++
				def += " " + args[i]
			}
		}
		defs = append(defs, def)
	}
	return defs
}

// openQuote reports the quote character value starts with when the value
// does not also close it.
func openQuote(value string) byte {
	if value == "" || (value[0] != '\'' && value[0] != '"') {
		return 0
	}
	q := value[0]
	if len(value) > 1 && value[len(value)-1] == q {
		return 0
	}
	return q
}

func unquote(v string) string {
	for _, q := range []string{"'", `"`} {
		v = strings.TrimPrefix(v, q)
		v = strings.TrimSuffix(v, q)
	}
	return v
}

func formatPairs(m map[string]string, format string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf(format, k, m[k])
	}
	return strings.Join(lines, "\n")
}
