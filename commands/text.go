package commands

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"termsim/shell"
)

const defaultLines = 10

func (b *builtins) registerText() {
	b.handle("grep", "Search file for pattern", grep)
	b.handle("head", "Print first lines of file", func(_ context.Context, s *shell.Session, args []string) (string, error) {
		return slice(s, "head", args, func(lines []string, n int) []string {
			return lines[:min(n, len(lines))]
		})
	})
	b.handle("tail", "Print last lines", func(_ context.Context, s *shell.Session, args []string) (string, error) {
		return slice(s, "tail", args, func(lines []string, n int) []string {
			return lines[max(0, len(lines)-n):]
		})
	})
	b.handle("wc", "Word/line/byte count", wc)
	b.handle("sort", "Sort lines", func(_ context.Context, s *shell.Session, args []string) (string, error) {
		lines, err := readLines(s, "sort", args)
		if err != nil {
			return "", err
		}
		sort.Strings(lines)
		return strings.Join(lines, "\n"), nil
	})
	b.handle("uniq", "Filter duplicate lines", func(_ context.Context, s *shell.Session, args []string) (string, error) {
		lines, err := readLines(s, "uniq", args)
		if err != nil {
			return "", err
		}
		seen := make(map[string]bool, len(lines))
		out := lines[:0]
		for _, l := range lines {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
		return strings.Join(out, "\n"), nil
	})
}

func grep(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) < 2 {
		return "", shell.Usage("grep <pattern> <file>")
	}
	pattern, file := args[0], args[1]
	n, err := s.FS.Node(s.Abs(file))
	if err != nil {
		return "", shell.Failf("grep: %s: No such file", file)
	}
	if n.IsDir() {
		return "", shell.Failf("grep: %s: Is a directory", file)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	var matched []string
	for _, l := range strings.Split(n.Content, "\n") {
		if re.MatchString(l) {
			matched = append(matched, l)
		}
	}
	return strings.Join(matched, "\n"), nil
}

// slice implements head and tail: "-n N" picks the line count.
func slice(s *shell.Session, name string, args []string, pick func([]string, int) []string) (string, error) {
	count := defaultLines
	var file string
	for i := 0; i < len(args); i++ {
		if args[i] == "-n" && i+1 < len(args) {
			v, err := strconv.Atoi(args[i+1])
			if err != nil || v < 0 {
				return "", shell.Failf("%s: invalid number of lines: '%s'", name, args[i+1])
			}
			count = v
			i++
			continue
		}
		file = args[i]
	}

	n, err := s.FS.Node(s.Abs(file))
	if file == "" || err != nil {
		return "", shell.Usage(name + " <file>")
	}
	if n.IsDir() {
		return "", shell.Failf("%s: Not a file", name)
	}
	return strings.Join(pick(strings.Split(n.Content, "\n"), count), "\n"), nil
}

func wc(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", shell.Usage("wc <file>")
	}
	n, err := s.FS.Node(s.Abs(args[0]))
	if err != nil || n.IsDir() {
		return "", shell.Failf("wc: %s: No such file", args[0])
	}
	lines := len(strings.Split(n.Content, "\n"))
	words := len(strings.Fields(n.Content))
	return fmt.Sprintf("%d %d %d %s", lines, words, len(n.Content), args[0]), nil
}

func readLines(s *shell.Session, name string, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, shell.Usage(name + " <file>")
	}
	n, err := s.FS.Node(s.Abs(args[0]))
	if err != nil || n.IsDir() {
		return nil, shell.Failf("%s: %s: No such file", name, args[0])
	}
	return strings.Split(n.Content, "\n"), nil
}
