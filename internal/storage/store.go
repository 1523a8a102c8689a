package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"mini-instagram/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SavedObject struct {
	ID       string
	URL      string
	Filename string
}

type FileMeta struct {
	Size     int64
	MimeType string
}

type Validation struct {
	Valid bool
	Error string
}

// Store assigns UUIDs to uploads and keeps an id -> filename index over a Backend.
type Store struct {
	backend Backend

	mu    sync.RWMutex
	index map[string]string
}

func New(backend Backend) *Store {
	return &Store{backend: backend, index: make(map[string]string)}
}

// Warm loads every existing object into the index.
func (s *Store) Warm(ctx context.Context) error {
	names, err := s.backend.List(ctx, "")
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		s.index[stem(name)] = name
	}
	utils.Logger.Info("media index warmed", zap.Int("objects", len(names)))
	return nil
}

func (s *Store) Save(ctx context.Context, data []byte, mimeType string) (SavedObject, error) {
	id := uuid.NewString()
	name := id + MimeExtension(mimeType)

	if err := s.backend.Put(ctx, name, data, mimeType); err != nil {
		return SavedObject{}, fmt.Errorf("store media: %w", err)
	}

	s.mu.Lock()
	s.index[id] = name
	s.mu.Unlock()

	return SavedObject{ID: id, URL: s.backend.URL(name), Filename: name}, nil
}

// Delete reports false when no object exists for id.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	name, ok, err := s.lookup(ctx, id)
	if err != nil || !ok {
		return false, err
	}

	err = s.backend.Remove(ctx, name)
	s.mu.Lock()
	delete(s.index, id)
	s.mu.Unlock()

	if errors.Is(err, ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ResolveURL(ctx context.Context, id string) (string, bool) {
	name, ok, err := s.lookup(ctx, id)
	if err != nil {
		utils.Logger.Warn("media lookup failed", zap.String("id", id), zap.Error(err))
		return "", false
	}
	if !ok {
		return "", false
	}
	return s.backend.URL(name), true
}

// Open streams a stored object by filename. Names with path components are rejected.
func (s *Store) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return nil, ErrObjectNotFound
	}
	return s.backend.Open(ctx, filename)
}

func (s *Store) Validate(meta *FileMeta) Validation {
	if meta == nil {
		return Validation{Error: "No file provided"}
	}
	if meta.Size > MaxFileSize {
		return Validation{Error: "File size exceeds 50MB"}
	}
	if !isAllowed(meta.MimeType) {
		return Validation{Error: "File type not allowed. Allowed types: " + strings.Join(AllowedMimeTypes, ", ")}
	}
	return Validation{Valid: true}
}

// lookup consults the index, then falls back to a prefix scan of the backend.
// The scan covers objects written by other instances.
func (s *Store) lookup(ctx context.Context, id string) (string, bool, error) {
	if id == "" {
		return "", false, nil
	}

	s.mu.RLock()
	name, ok := s.index[id]
	s.mu.RUnlock()
	if ok {
		return name, true, nil
	}

	names, err := s.backend.List(ctx, id)
	if err != nil {
		return "", false, err
	}
	for _, n := range names {
		if stem(n) != id {
			continue
		}
		s.mu.Lock()
		s.index[id] = n
		s.mu.Unlock()
		return n, true, nil
	}
	return "", false, nil
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
