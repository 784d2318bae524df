// Package accounts stores terminal users in a TOML file and signs them in
// to a session.
package accounts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"termsim/fs"
	"termsim/logging"
	"termsim/metrics"
	"termsim/shell"
)

// The demo account is created with every new store.
const (
	DemoUser     = fs.DemoUser
	DemoPassword = "win32"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExists             = errors.New("user already exists")
	ErrEmpty              = errors.New("username and password are required")
)

// User is one stored account.
type User struct {
	PasswordHash string `toml:"password_hash"`
	Home         string `toml:"home"`
}

type document struct {
	Users map[string]User `toml:"users"`
}

// Store holds the accounts. With an empty path it lives only in memory.
type Store struct {
	mu    sync.Mutex
	path  string
	cost  int
	users map[string]User
}

type Option func(*Store)

// WithCost sets the bcrypt cost for new password hashes.
func WithCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// Open loads the store at path. A missing file is created holding the demo
// account.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, cost: bcrypt.DefaultCost, users: make(map[string]User)}
	for _, opt := range opts {
		opt(s)
	}

	if path != "" {
		var doc document
		_, err := toml.DecodeFile(path, &doc)
		switch {
		case err == nil:
			for name, u := range doc.Users {
				s.users[name] = u
			}
			return s, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read accounts %s: %w", path, err)
		}
	}

	if err := s.add(DemoUser, DemoPassword, "/home/"+DemoUser); err != nil {
		return nil, fmt.Errorf("seed demo account: %w", err)
	}
	logging.L().Info("accounts store created", zap.String("path", path))
	return s, nil
}

// Names returns the stored user names in sorted order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Authenticate checks name and password against the store.
func (s *Store) Authenticate(name, password string) (User, error) {
	s.mu.Lock()
	u, ok := s.users[name]
	s.mu.Unlock()
	if !ok {
		logging.L().Warn("login failed: unknown user", zap.String("username", name))
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		logging.L().Warn("login failed: invalid password", zap.String("username", name))
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates name and switches sess to that user.
func (s *Store) Login(sess *shell.Session, name, password string) error {
	u, err := s.Authenticate(name, password)
	if err == nil {
		err = sess.Login(name, u.Home)
	}
	metrics.RecordLogin("login", err)
	return err
}

// Signup creates the account, gives it a home with a welcome file and
// logs sess in as the new user.
func (s *Store) Signup(sess *shell.Session, name, password string) error {
	err := s.signup(sess, name, password)
	metrics.RecordLogin("signup", err)
	return err
}

func (s *Store) signup(sess *shell.Session, name, password string) error {
	if name == "" || password == "" {
		return ErrEmpty
	}
	home := "/home/" + name
	if err := s.add(name, password, home); err != nil {
		return err
	}
	if err := sess.Login(name, home); err != nil {
		return err
	}
	welcome := home + "/welcome.txt"
	if err := sess.FS.WriteFile(welcome, "Welcome "+name+"!\n", false, name); err != nil {
		return fmt.Errorf("write %s: %w", welcome, err)
	}
	logging.L().Info("user created", zap.String("username", name))
	return nil
}

func (s *Store) add(name, password, home string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[name]; ok {
		return ErrExists
	}
	s.users[name] = User{PasswordHash: string(hashed), Home: home}
	if err := s.save(); err != nil {
		delete(s.users, name)
		return err
	}
	return nil
}

// save writes the store atomically. Callers hold s.mu.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(document{Users: s.users}); err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create accounts dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace accounts: %w", err)
	}
	return nil
}
