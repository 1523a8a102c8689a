package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	b, err := NewLocalBackend(dir, "/uploads")
	require.NoError(t, err)
	return New(b), dir
}

func TestSaveWritesFileAndResolves(t *testing.T) {
	ctx := context.Background()
	s, dir := newLocalStore(t)

	obj, err := s.Save(ctx, []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	assert.Len(t, obj.ID, 36)
	assert.Equal(t, obj.ID+".png", obj.Filename)
	assert.Equal(t, "/uploads/"+obj.Filename, obj.URL)

	data, err := os.ReadFile(filepath.Join(dir, obj.Filename))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	url, ok := s.ResolveURL(ctx, obj.ID)
	assert.True(t, ok)
	assert.Equal(t, obj.URL, url)
}

func TestSaveUnknownMimeDefaultsToJpg(t *testing.T) {
	s, _ := newLocalStore(t)

	obj, err := s.Save(context.Background(), []byte("x"), "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(obj.Filename, ".jpg"))
}

func TestSaveAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newLocalStore(t)

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			obj, err := s.Save(ctx, []byte("x"), "video/mp4")
			assert.NoError(t, err)
			ids[i] = obj.ID
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, dir := newLocalStore(t)

	obj, err := s.Save(ctx, []byte("x"), "video/quicktime")
	require.NoError(t, err)
	assert.Equal(t, ".mov", filepath.Ext(obj.Filename))

	ok, err := s.Delete(ctx, obj.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, statErr := os.Stat(filepath.Join(dir, obj.Filename))
	assert.True(t, os.IsNotExist(statErr))

	_, found := s.ResolveURL(ctx, obj.ID)
	assert.False(t, found)

	ok, err = s.Delete(ctx, obj.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupFallsBackToScan(t *testing.T) {
	ctx := context.Background()
	s, dir := newLocalStore(t)

	// written by another instance, so not in this store's index
	id := "3b241101-e2bb-4255-8caf-4136c566a962"
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".webm"), []byte("v"), 0o644))

	url, ok := s.ResolveURL(ctx, id)
	assert.True(t, ok)
	assert.Equal(t, "/uploads/"+id+".webm", url)

	_, ok = s.ResolveURL(ctx, "3b241101")
	assert.False(t, ok, "a partial id must not resolve")

	_, ok = s.ResolveURL(ctx, "")
	assert.False(t, ok)
}

func TestWarm(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.gif"), []byte("g"), 0o644))

	b, err := NewLocalBackend(dir, "/media")
	require.NoError(t, err)
	s := New(b)
	require.NoError(t, s.Warm(ctx))

	assert.Equal(t, "abc.gif", s.index["abc"])
	url, ok := s.ResolveURL(ctx, "abc")
	assert.True(t, ok)
	assert.Equal(t, "/media/abc.gif", url)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, _ := newLocalStore(t)

	obj, err := s.Save(ctx, []byte("hello"), "image/jpeg")
	require.NoError(t, err)

	rc, err := s.Open(ctx, obj.Filename)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	_, err = s.Open(ctx, "../secret.jpg")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, err = s.Open(ctx, "missing.jpg")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestValidate(t *testing.T) {
	s, _ := newLocalStore(t)

	assert.Equal(t, Validation{Error: "No file provided"}, s.Validate(nil))
	assert.Equal(t, Validation{Error: "File size exceeds 50MB"},
		s.Validate(&FileMeta{Size: MaxFileSize + 1, MimeType: "image/png"}))
	assert.True(t, s.Validate(&FileMeta{Size: MaxFileSize, MimeType: "image/png"}).Valid)

	v := s.Validate(&FileMeta{Size: 10, MimeType: "application/zip"})
	assert.False(t, v.Valid)
	assert.True(t, strings.HasPrefix(v.Error, "File type not allowed. Allowed types: image/jpeg, image/jpg"))
}

func TestMimeHelpers(t *testing.T) {
	assert.Equal(t, ".jpg", MimeExtension("image/jpeg"))
	assert.Equal(t, ".avi", MimeExtension("video/x-msvideo"))
	assert.Equal(t, ".wmv", MimeExtension("video/x-ms-wmv"))
	assert.Equal(t, ".jpg", MimeExtension(""))

	assert.Equal(t, "video", MediaKind("video/webm"))
	assert.Equal(t, "image", MediaKind("image/gif"))

	assert.Equal(t, "video/mp4", ContentTypeForFile("a.mp4"))
	assert.Equal(t, "video/quicktime", ContentTypeForFile("a.MOV"))
	assert.Equal(t, "application/octet-stream", ContentTypeForFile("a.bin"))
}
