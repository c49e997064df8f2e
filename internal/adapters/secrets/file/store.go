package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
)

const (
	storeDirMode   = 0o700
	secretFileMode = 0o600
)

// Store keeps one token per file below root. Keys are relative slash paths
// such as "invscan/default/token".
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Put replaces the token atomically so a crashed write never leaves a
// truncated file behind.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	path, err := s.locate(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".token-*")
	if err != nil {
		return fmt.Errorf("write token %q: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(secretFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write token %q: %w", key, err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write token %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write token %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace token %q: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	path, err := s.locate(ctx, key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()

	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("token %q: %w", key, domain.ErrSecretNotFound)
	case err != nil:
		return "", fmt.Errorf("read token %q: %w", key, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// Delete is a no-op for a missing token.
func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.locate(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = os.Remove(path)
	s.mu.Unlock()

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete token %q: %w", key, err)
	}
	return nil
}

func (s *Store) locate(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("secret key is empty")
	}
	rel := filepath.Clean(filepath.FromSlash(key))
	if rel == "." || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("invalid secret key %q", key)
	}
	return filepath.Join(s.root, rel), nil
}
