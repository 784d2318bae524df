package accounts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/bcrypt"

	"termsim/fs"
	"termsim/shell"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.toml")
	s, err := Open(path, WithCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, path
}

func TestOpenSeedsDemoAccount(t *testing.T) {
	s, path := openTestStore(t)
	if diff := cmp.Diff([]string{DemoUser}, s.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("store file not written: %v", err)
	}
	if !strings.Contains(string(data), "[users."+DemoUser+"]") {
		t.Errorf("store file missing demo user:\n%s", data)
	}
	if strings.Contains(string(data), DemoPassword) {
		t.Error("store file contains the plain password")
	}
}

func TestDemoLogin(t *testing.T) {
	s, _ := openTestStore(t)
	sess := shell.NewSession(fs.Boot())

	if err := s.Login(sess, DemoUser, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if err := s.Login(sess, "nobody", DemoPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(unknown user) error = %v, want ErrInvalidCredentials", err)
	}
	if sess.Username() != shell.GuestUser {
		t.Fatalf("failed logins changed user to %q", sess.Username())
	}

	if err := s.Login(sess, DemoUser, DemoPassword); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.Cwd != "/home/sparkpacket" || sess.Env["HOME"] != "/home/sparkpacket" || sess.Env["USER"] != DemoUser {
		t.Errorf("session after login: cwd=%q env=%v", sess.Cwd, sess.Env)
	}
	if got, _ := sess.FS.ReadFile("/home/sparkpacket/readme.txt"); got == "" {
		t.Error("demo home lost its readme")
	}
}

func TestSignup(t *testing.T) {
	s, path := openTestStore(t)
	sess := shell.NewSession(fs.Boot())

	if err := s.Signup(sess, "alice", "s3cret"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if sess.Username() != "alice" || sess.Cwd != "/home/alice" {
		t.Errorf("session after signup: user=%q cwd=%q", sess.Username(), sess.Cwd)
	}
	n, err := sess.FS.Node("/home/alice/welcome.txt")
	if err != nil {
		t.Fatal(err)
	}
	if n.Content != "Welcome alice!\n" || n.Owner != "alice" {
		t.Errorf("welcome file = %+v", n)
	}

	reopened, err := Open(path, WithCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if diff := cmp.Diff([]string{"alice", DemoUser}, reopened.Names()); diff != "" {
		t.Errorf("reopened Names() mismatch (-want +got):\n%s", diff)
	}
	u, err := reopened.Authenticate("alice", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate() after reopen error = %v", err)
	}
	if u.Home != "/home/alice" {
		t.Errorf("Home = %q", u.Home)
	}
}

func TestSignupRejects(t *testing.T) {
	s, _ := openTestStore(t)
	tests := []struct {
		name, user, password string
		want                 error
	}{
		{"empty user", "", "pw", ErrEmpty},
		{"empty password", "bob", "", ErrEmpty},
		{"existing user", DemoUser, "pw", ErrExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := shell.NewSession(fs.Boot())
			if err := s.Signup(sess, tt.user, tt.password); !errors.Is(err, tt.want) {
				t.Errorf("Signup() error = %v, want %v", err, tt.want)
			}
			if sess.Username() != shell.GuestUser {
				t.Errorf("rejected signup logged in as %q", sess.Username())
			}
		})
	}
}

func TestInMemoryStore(t *testing.T) {
	s, err := Open("", WithCost(bcrypt.MinCost))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Authenticate(DemoUser, DemoPassword); err != nil {
		t.Errorf("Authenticate(demo) error = %v", err)
	}
}

func TestOpenMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.toml")
	if err := os.WriteFile(path, []byte("[users.x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Open() of malformed store should fail")
	}
}
