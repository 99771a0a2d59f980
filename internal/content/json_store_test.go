package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	date := time.Date(2024, 3, 15, 8, 0, 0, 0, time.FixedZone("CET", 3600))
	require.NoError(t, store.Save("posts", []Entry{
		{ID: "one", Data: Data{Title: "One", PostDate: date}, Body: "hi"},
	}))

	raw, err := os.ReadFile(filepath.Join(dir, "posts.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"postDate": "2024-03-15T08:00:00+01:00"`)

	entries, err := store.LoadCollection(context.Background(), "posts")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "one", entries[0].ID)
	assert.Equal(t, "posts", entries[0].Collection)
	assert.True(t, date.Equal(entries[0].Data.PostDate))
	assert.Equal(t, "hi", entries[0].Body)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestJSONStore_MissingAndEmpty(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	_, err := store.LoadCollection(context.Background(), "posts")
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.json"), nil, 0o644))
	entries, err := store.LoadCollection(context.Background(), "posts")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, store.Save("posts", nil))
	entries, err = store.LoadCollection(context.Background(), "posts")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestJSONStore_Malformed(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.json"), []byte(`{"not":"a list"}`), 0o644))
	_, err := store.LoadCollection(context.Background(), "posts")
	assert.ErrorIs(t, err, ErrMalformedEntry)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.json"), []byte(`[{"id":"x","data":{"title":"no date"}}]`), 0o644))
	_, err = store.LoadCollection(context.Background(), "posts")
	assert.ErrorIs(t, err, ErrMalformedEntry)
}

func TestJSONStore_DuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	raw := `[{"id":"a","data":{"postDate":"2024-01-01T00:00:00Z"}},{"id":"a","data":{"postDate":"2024-02-01T00:00:00Z"}}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.json"), []byte(raw), 0o644))

	_, err := store.LoadCollection(context.Background(), "posts")
	assert.ErrorIs(t, err, ErrMalformedEntry)
	assert.ErrorContains(t, err, "duplicate id")
}
