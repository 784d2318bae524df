package shell

import (
	"fmt"
	"strings"
	"time"

	"termsim/fs"
)

const (
	GuestUser = "guest"
	GuestHome = "/home/guest"
	Hostname  = "simhost"
)

// Session is the mutable state of one terminal run. Commands read and
// change it; the interpreter records history into it.
type Session struct {
	FS      *fs.FileSystem
	Cwd     string
	User    string // empty until someone logs in
	Host    string
	Env     map[string]string
	Aliases map[string]string
	History []string
	Booted  time.Time
}

// NewSession returns a guest session rooted in the guest home directory.
func NewSession(fsys *fs.FileSystem) *Session {
	return &Session{
		FS:   fsys,
		Cwd:  GuestHome,
		Host: Hostname,
		Env: map[string]string{
			"PATH": "/bin:/usr/bin",
			"USER": GuestUser,
			"HOME": GuestHome,
			"TERM": "xterm-256color",
		},
		Aliases: make(map[string]string),
		Booted:  time.Now(),
	}
}

// Login switches the session to user, creating home when it is missing.
func (s *Session) Login(user, home string) error {
	if home == "" {
		home = "/home/" + user
	}
	home = fs.Resolve("/", home)
	if err := s.FS.Mkdir(home, user); err != nil {
		return fmt.Errorf("create home %s: %w", home, err)
	}
	s.User = user
	s.Env["USER"] = user
	s.Env["HOME"] = home
	s.Cwd = home
	return nil
}

// Username is the logged in user, or guest.
func (s *Session) Username() string {
	if s.User == "" {
		return GuestUser
	}
	return s.User
}

// Owner is the owner recorded on nodes the session creates.
func (s *Session) Owner() string {
	if s.User == "" {
		return "root"
	}
	return s.User
}

// Home is $HOME, falling back to the root.
func (s *Session) Home() string {
	if h := s.Env["HOME"]; h != "" {
		return h
	}
	return "/"
}

// Abs resolves p against the working directory. A leading "~" stands for
// the home directory.
func (s *Session) Abs(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		p = s.Home() + p[1:]
	}
	return fs.Resolve(s.Cwd, p)
}

// Chdir changes the working directory to p, which must be a directory.
func (s *Session) Chdir(p string) error {
	target := s.Abs(p)
	n, err := s.FS.Node(target)
	if err != nil {
		return err
	}
	if !n.IsDir() {
		return &fs.PathError{Op: "cd", Path: target, Err: fs.ErrNotDir}
	}
	s.Cwd = target
	return nil
}

// Prompt renders user@host:cwd$ with the home directory shown as ~.
func (s *Session) Prompt() string {
	cwd := s.Cwd
	if home := s.Home(); home != "/" && fs.Within(cwd, home) {
		cwd = "~" + strings.TrimPrefix(cwd, home)
	}
	return fmt.Sprintf("%s@%s:%s$", s.Username(), s.Host, cwd)
}
