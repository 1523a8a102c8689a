package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mini-instagram/internal/utils"

	"go.uber.org/zap"
)

type LocalBackend struct {
	basePath  string
	urlPrefix string
}

func NewLocalBackend(basePath, urlPrefix string) (*LocalBackend, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalBackend{basePath: basePath, urlPrefix: urlPrefix}, nil
}

func (b *LocalBackend) Put(_ context.Context, name string, data []byte, _ string) error {
	fullPath := filepath.Join(b.basePath, name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	utils.Logger.Debug("file stored", zap.String("path", fullPath), zap.Int("bytes", len(data)))
	return nil
}

func (b *LocalBackend) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(b.basePath, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return f, err
}

func (b *LocalBackend) Remove(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(b.basePath, name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrObjectNotFound
	}
	return err
}

func (b *LocalBackend) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(b.basePath)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (b *LocalBackend) URL(name string) string {
	return publicURL(b.urlPrefix, name)
}
