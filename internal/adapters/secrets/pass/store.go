package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/alexis-agent/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, env []string, input string, args ...string) (stdout string, stderr string, err error)

// Store shells out to pass(1). An empty storeDir uses the user's default
// password store.
type Store struct {
	run      runFunc
	storeDir string
}

var _ ports.SecretStore = (*Store)(nil)

type Option func(*Store)

// WithStoreDir points pass at a dedicated password store directory.
func WithStoreDir(dir string) Option {
	return func(s *Store) { s.storeDir = strings.TrimSpace(dir) }
}

func NewStore(opts ...Option) *Store {
	s := &Store{run: runPassCommand}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, s.env(), value+"\n", "insert", "-m", "-f", key)
	if err != nil {
		return formatError("put", key, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, s.env(), "", "show", key)
	if err != nil {
		if isNotInStore(stderr) {
			return "", fmt.Errorf("pass get %q: %w", key, ports.ErrSecretNotFound)
		}
		return "", formatError("get", key, err, stderr)
	}

	// pass show prints the secret on the first line; anything after is metadata.
	first, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(first, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, s.env(), "", "rm", "-f", key)
	if err != nil && !isNotInStore(stderr) {
		return formatError("delete", key, err, stderr)
	}

	return nil
}

func (s *Store) env() []string {
	if s.storeDir == "" {
		return nil
	}
	return []string{"PASSWORD_STORE_DIR=" + s.storeDir}
}

func isNotInStore(stderr string) bool {
	return strings.Contains(stderr, "is not in the password store")
}

func runPassCommand(ctx context.Context, env []string, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
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

func formatError(op string, key string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
}
