package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
)

var (
	ErrUnavailable = errors.New("pass command unavailable")
	// ErrInvalid marks a key or token no backend should accept.
	ErrInvalid = errors.New("invalid token entry")
)

const notInStore = "is not in the password store"

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

type Options struct {
	// Binary replaces the pass executable looked up on PATH.
	Binary string
	// Dir is exported as PASSWORD_STORE_DIR when set.
	Dir string
}

// Store keeps API tokens in the user's password-store, one entry per
// profile with the token on the first line.
type Store struct {
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(opts Options) *Store {
	return &Store{run: commandRunner(opts)}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}
	token := strings.TrimSpace(value)
	if token == "" {
		return fmt.Errorf("pass put %q: token is empty: %w", key, ErrInvalid)
	}

	_, stderr, err := s.run(ctx, token+"\n", "insert", "-m", "-f", key)
	return classify("put", key, err, stderr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := checkKey(ctx, key); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", key)
	if err := classify("get", key, err, stderr); err != nil {
		return "", err
	}

	token, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(token, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "-f", key)
	return classify("delete", key, err, stderr)
}

func checkKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid token key %q: %w", key, ErrInvalid)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return fmt.Errorf("invalid token key %q: %w", key, ErrInvalid)
		}
	}
	return nil
}

func classify(op string, key string, err error, stderr string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnavailable):
		return err
	case strings.Contains(stderr, notInStore):
		return fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
	case stderr == "":
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	default:
		return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	}
}

func commandRunner(opts Options) runFunc {
	binary := opts.Binary
	if binary == "" {
		binary = "pass"
	}

	return func(ctx context.Context, input string, args ...string) (string, string, error) {
		path, err := exec.LookPath(binary)
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return "", "", ErrUnavailable
			}
			return "", "", fmt.Errorf("locate pass command: %w", err)
		}

		cmd := exec.CommandContext(ctx, path, args...)
		if opts.Dir != "" {
			cmd.Env = append(os.Environ(), "PASSWORD_STORE_DIR="+opts.Dir)
		}
		if input != "" {
			cmd.Stdin = strings.NewReader(input)
		}

		var stdout bytes.Buffer
		var stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err = cmd.Run()
		return stdout.String(), strings.TrimSpace(stderr.String()), err
	}
}
