package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"markdown": KindMarkdown,
		" SQLite ": KindSQLite,
		"json":     KindJSON,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("postgres")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dataDir := t.TempDir()

	loader, closer, err := Open(Source{Kind: KindSQLite, DataDir: dataDir}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, loader)
	require.NoError(t, closer.Close())
	_, err = os.Stat(DatabasePath(dataDir))
	assert.NoError(t, err)

	loader, closer, err = Open(Source{Kind: KindJSON, DataDir: dataDir}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, loader)
	assert.NoError(t, closer.Close())

	loader, _, err = Open(Source{Kind: KindMarkdown, ContentDir: filepath.Join(dataDir, "content")}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &MarkdownLoader{}, loader)

	_, _, err = Open(Source{Kind: "ftp"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestCopy_MarkdownIntoSQLite(t *testing.T) {
	ctx := context.Background()
	from := newMemLoader(t, map[string]string{
		"/content/posts/a.md": "---\ntitle: A\npostDate: 2024-01-01\n---\nalpha\n",
		"/content/posts/b.md": "---\ntitle: B\npostDate: 2024-02-01\n---\nbeta\n",
	})
	to := newTestSQLiteStore(t)

	res, err := Copy(ctx, from, to, "posts")
	require.NoError(t, err)
	assert.Equal(t, CopyResult{Copied: 2}, res)

	entries, err := to.LoadCollection(ctx, "posts")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "alpha\n", entries[0].Body)
	assert.Equal(t, "B", entries[1].Data.Title)
}

func TestCopy_PropagatesLoadError(t *testing.T) {
	from := NewMarkdownLoader(afero.NewMemMapFs(), "/content", zerolog.Nop())

	res, err := Copy(context.Background(), from, newTestSQLiteStore(t), "posts")
	assert.Zero(t, res)
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestCopy_EmptySourceRegistersCollection(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/content/posts", 0o755))
	from := NewMarkdownLoader(fs, "/content", zerolog.Nop())
	to := newTestSQLiteStore(t)

	res, err := Copy(ctx, from, to, "posts")
	require.NoError(t, err)
	assert.Equal(t, CopyResult{}, res)

	entries, err := to.LoadCollection(ctx, "posts")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestCopy_RemovesEntriesGoneFromSource(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/content/posts", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/content/posts/keep.md", []byte("---\npostDate: 2024-01-01\n---\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/content/posts/drop.md", []byte("---\npostDate: 2024-02-01\n---\n"), 0o644))
	from := NewMarkdownLoader(fs, "/content", zerolog.Nop())
	to := newTestSQLiteStore(t)

	res, err := Copy(ctx, from, to, "posts")
	require.NoError(t, err)
	assert.Equal(t, CopyResult{Copied: 2}, res)

	require.NoError(t, fs.Remove("/content/posts/drop.md"))
	res, err = Copy(ctx, from, to, "posts")
	require.NoError(t, err)
	assert.Equal(t, CopyResult{Copied: 1, Removed: 1}, res)

	entries, err := to.LoadCollection(ctx, "posts")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].ID)
}
