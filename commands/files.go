package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"termsim/fs"
	"termsim/shell"
)

func (b *builtins) registerFiles() {
	b.handle("ls", "List directory", b.ls)
	b.handle("ll", "List directory in long format", func(ctx context.Context, s *shell.Session, args []string) (string, error) {
		return b.ls(ctx, s, append([]string{"-l"}, args...))
	})
	b.handle("la", "List directory including hidden entries", func(ctx context.Context, s *shell.Session, args []string) (string, error) {
		return b.ls(ctx, s, append([]string{"-a"}, args...))
	})
	b.handle("cat", "Concatenate and print files", cat)
	b.handle("touch", "Create empty file / update timestamp", touch)
	b.handle("mkdir", "Make directories", mkdir)
	b.handle("rmdir", "Remove empty directory", rmdir)
	b.handle("rm", "Remove files or directories", rm)
	b.handle("mv", "Move/rename files", mv)
	b.handle("cp", "Copy files and directories", cp)
	b.handle("chmod", "Change file mode bits", chmod)
	b.handle("chown", "Change file owner (simulated)", chown)
	b.handle("stat", "Display file status", stat)
	b.handle("du", "Estimate file space usage", du)
}

func (b *builtins) ls(_ context.Context, s *shell.Session, args []string) (string, error) {
	flags, paths := splitFlags(args)
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var sections []string
	var failed []string
	for _, p := range paths {
		listing, err := listPath(s, p, flags['l'], flags['a'])
		if err != nil {
			failed = append(failed, fmt.Sprintf("ls: cannot access '%s': No such directory", p))
			continue
		}
		if len(paths) > 1 {
			listing = p + ":\n" + listing
		}
		sections = append(sections, listing)
	}
	if len(failed) > 0 && len(sections) == 0 {
		return "", &shell.Failure{Msg: strings.Join(failed, "\n")}
	}
	return strings.Join(append(failed, sections...), "\n"), nil
}

func listPath(s *shell.Session, p string, long, all bool) (string, error) {
	abs := s.Abs(p)
	n, err := s.FS.Node(abs)
	if err != nil {
		return "", err
	}
	if !n.IsDir() {
		if long {
			return longLine(fs.Base(abs), n), nil
		}
		return fs.Base(abs), nil
	}

	entries, err := s.FS.List(abs)
	if err != nil {
		return "", err
	}
	var lines []string
	for _, e := range entries {
		if !all && strings.HasPrefix(e.Name, ".") {
			continue
		}
		switch {
		case long:
			lines = append(lines, longLine(e.Name, n.Children[e.Name]))
		case e.Type == fs.Directory:
			lines = append(lines, e.Name+"/")
		default:
			lines = append(lines, e.Name)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func longLine(name string, n *fs.Node) string {
	if n.IsDir() {
		name += "/"
	}
	return fmt.Sprintf("%s 1 %-8s %-8s %6d %s %s",
		fs.ModeString(n.Permissions, n.IsDir()), n.Owner, n.Owner, n.Size(),
		n.ModTime.Format("Jan 02 15:04"), name)
}

func cat(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", shell.Usage("cat <file>")
	}
	var sb strings.Builder
	for _, p := range args {
		n, err := s.FS.Node(s.Abs(p))
		if err != nil {
			return "", shell.Failf("cat: %s: No such file or directory", p)
		}
		if n.IsDir() {
			return "", shell.Failf("cat: %s: Is a directory", p)
		}
		sb.WriteString(n.Content)
	}
	return sb.String(), nil
}

func touch(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", shell.Usage("touch <file>")
	}
	for _, p := range args {
		if err := s.FS.Touch(s.Abs(p), s.Owner()); err != nil {
			return "", shell.Failf("touch: cannot touch '%s': %s", p, reason(err))
		}
	}
	return "", nil
}

func mkdir(_ context.Context, s *shell.Session, args []string) (string, error) {
	_, paths := splitFlags(args)
	if len(paths) == 0 {
		return "", shell.Usage("mkdir <dir>")
	}
	for _, p := range paths {
		if err := s.FS.Mkdir(s.Abs(p), s.Owner()); err != nil {
			return "", shell.Failf("mkdir: cannot create directory '%s': %s", p, reason(err))
		}
	}
	return "", nil
}

func rmdir(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", shell.Usage("rmdir <dir>")
	}
	for _, p := range args {
		err := s.FS.Rmdir(s.Abs(p))
		switch {
		case errors.Is(err, fs.ErrRoot):
			return "", shell.Failf("rmdir: refusing to remove root")
		case err != nil:
			return "", shell.Failf("rmdir: failed to remove '%s': %s", p, reason(err))
		}
	}
	return "", nil
}

func rm(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", shell.Usage("rm <file>")
	}
	recursive := false
	var paths []string
	for _, a := range args {
		switch a {
		case "-r", "-rf", "-fr":
			recursive = true
		default:
			paths = append(paths, a)
		}
	}
	if len(paths) == 0 {
		return "", shell.Usage("rm <file>")
	}

	var msgs []string
	for _, p := range paths {
		err := s.FS.Remove(s.Abs(p), recursive)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrRoot):
			msgs = append(msgs, "rm: refusing to remove '/'")
		default:
			msgs = append(msgs, fmt.Sprintf("rm: cannot remove '%s': %s", p, reason(err)))
		}
	}
	if len(msgs) > 0 {
		return "", &shell.Failure{Msg: strings.Join(msgs, "\n")}
	}
	return "", nil
}

func mv(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) < 2 {
		return "", shell.Usage("mv <source> <dest>")
	}
	src, dst := args[0], args[1]
	err := s.FS.Move(s.Abs(src), s.Abs(dst))
	switch {
	case err == nil:
		return "", nil
	case errors.Is(err, fs.ErrNotExist):
		return "", shell.Failf("mv: cannot stat '%s': No such file or directory", src)
	case errors.Is(err, fs.ErrRoot):
		return "", shell.Failf("mv: cannot move '/'")
	case errors.Is(err, fs.ErrInvalid):
		return "", shell.Failf("mv: cannot move '%s' to a subdirectory of itself, '%s'", src, dst)
	default:
		return "", shell.Failf("mv: cannot move '%s' to '%s': %s", src, dst, reason(err))
	}
}

func cp(_ context.Context, s *shell.Session, args []string) (string, error) {
	_, operands := splitFlags(args)
	if len(operands) < 2 {
		return "", shell.Usage("cp <source> <dest>")
	}
	src, dst := operands[0], operands[1]
	err := s.FS.Copy(s.Abs(src), s.Abs(dst))
	switch {
	case err == nil:
		return "", nil
	case errors.Is(err, fs.ErrNotExist):
		return "", shell.Failf("cp: cannot stat '%s': No such file or directory", src)
	default:
		return "", shell.Failf("cp: cannot copy '%s' to '%s': %s", src, dst, reason(err))
	}
}

func chmod(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) < 2 {
		return "", shell.Usage("chmod <mode> <file>")
	}
	p := s.Abs(args[1])
	n, err := s.FS.Node(p)
	if err != nil {
		return "", shell.Failf("chmod: cannot access '%s': No such file", args[1])
	}
	mode, err := strconv.ParseUint(args[0], 8, 32)
	if err != nil || mode == 0 {
		mode = uint64(n.Permissions)
	}
	if err := s.FS.Chmod(p, uint32(mode)); err != nil {
		return "", shell.Failf("chmod: cannot access '%s': No such file", args[1])
	}
	return "", nil
}

func chown(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) < 2 {
		return "", shell.Usage("chown <owner> <file>")
	}
	if err := s.FS.Chown(s.Abs(args[1]), args[0]); err != nil {
		return "", shell.Failf("chown: cannot access '%s': No such file", args[1])
	}
	return "", nil
}

func stat(_ context.Context, s *shell.Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", shell.Usage("stat <file>")
	}
	p := s.Abs(args[0])
	n, err := s.FS.Node(p)
	if err != nil {
		return "", shell.Failf("stat: cannot stat '%s': No such file or directory", args[0])
	}
	kind := "regular file"
	if n.IsDir() {
		kind = "directory"
	}
	return fmt.Sprintf("  File: %s\n  Size: %-10d Type: %s\n Mode: (%04o/%s)  Owner: %s\nModify: %s",
		p, n.Size(), kind, n.Permissions, fs.ModeString(n.Permissions, n.IsDir()), n.Owner,
		n.ModTime.Format("2006-01-02 15:04:05")), nil
}

// du prints the size of every directory below the target in 1K blocks,
// children before their parents.
func du(_ context.Context, s *shell.Session, args []string) (string, error) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	root := s.Abs(target)

	var order []string
	sizes := make(map[string]int64)
	err := s.FS.Walk(root, func(path string, n *fs.Node) error {
		if n.IsDir() || path == root {
			order = append(order, path)
			sizes[path] = 0
		}
		for dir := path; ; dir, _ = fs.Split(dir) {
			if _, ok := sizes[dir]; ok {
				sizes[dir] += n.Size()
			}
			if dir == root || dir == "/" {
				break
			}
		}
		return nil
	})
	if err != nil {
		return "", shell.Failf("du: cannot access '%s': No such file or directory", target)
	}

	lines := make([]string, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		blocks := (sizes[order[i]] + 1023) / 1024
		lines = append(lines, fmt.Sprintf("%d\t%s", blocks, order[i]))
	}
	return strings.Join(lines, "\n"), nil
}
