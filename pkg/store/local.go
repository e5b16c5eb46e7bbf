package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalConfig configures LocalStore.
type LocalConfig struct {
	Dir string `env:"BIOPASS_STORE_DIR" envDefault:".biopass"` // Dir holds one file per key.
}

// LocalStore stores each key as a file under a base directory. Writes go
// through a temp file and rename so readers never see a partial value.
// Keys may not escape the base directory.
type LocalStore struct {
	baseDir string
}

// NewLocalStore resolves dir to an absolute path and creates it (0700).
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidConfig)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &LocalStore{baseDir: abs}, nil
}

func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return data, nil
}

func (s *LocalStore) Set(ctx context.Context, key string, value []byte) error {
	path, err := s.resolvePath(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.baseDir, ".slot-*")
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("store: write %s: %w", key, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Remove(ctx context.Context, key string) error {
	path, err := s.resolvePath(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: remove %s: %w", key, err)
	}
	return nil
}

// Ping checks that the base directory is still there.
func (s *LocalStore) Ping(context.Context) error {
	info, err := os.Stat(s.baseDir)
	if err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrHealthcheckFailed, s.baseDir)
	}
	return nil
}

func (s *LocalStore) Close() error { return nil }

// resolvePath maps a key to a file directly inside baseDir.
func (s *LocalStore) resolvePath(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	path := filepath.Join(s.baseDir, key)
	if filepath.Dir(path) != s.baseDir {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return path, nil
}
