// Package localstore persists shopper state as JSON files in a directory.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/client/cart"
)

const (
	cartFile     = "cart.json"
	sessionFile  = "session.json"
	checkoutFile = "checkout.json"
)

// Session is the signed-in shopper.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

type Store struct {
	mu  sync.Mutex
	dir string
}

var _ cart.Store = (*Store)(nil)

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadCart() ([]cart.Line, error) {
	var lines []cart.Line
	ok, err := s.read(cartFile, &lines)
	if err != nil || !ok {
		return nil, err
	}
	return lines, nil
}

func (s *Store) SaveCart(lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	return s.write(cartFile, lines)
}

// LoadPendingCheckout returns nil when no submission is outstanding.
func (s *Store) LoadPendingCheckout() (*cart.PendingCheckout, error) {
	var p cart.PendingCheckout
	ok, err := s.read(checkoutFile, &p)
	if err != nil || !ok || p.Key == "" {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SavePendingCheckout(p *cart.PendingCheckout) error {
	if p == nil {
		return s.remove(checkoutFile)
	}
	return s.write(checkoutFile, p)
}

// LoadSession returns nil when nobody is signed in.
func (s *Store) LoadSession() (*Session, error) {
	var sess Session
	ok, err := s.read(sessionFile, &sess)
	if err != nil || !ok {
		return nil, err
	}
	if sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) SaveSession(sess Session) error {
	return s.write(sessionFile, sess)
}

func (s *Store) ClearSession() error {
	return s.remove(sessionFile)
}

func (s *Store) remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// read reports false for a missing or corrupt file; both start fresh.
func (s *Store) read(name string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, nil
	}
	return true, nil
}

// write replaces the file atomically through a temp file in the same dir.
func (s *Store) write(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, name+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
