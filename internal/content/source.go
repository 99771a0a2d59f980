package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Kind selects the backend a Source reads from.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindSQLite   Kind = "sqlite"
	KindJSON     Kind = "json"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMarkdown, KindSQLite, KindJSON:
		return k, nil
	default:
		return "", fmt.Errorf("unknown content source %q (want markdown, sqlite or json)", s)
	}
}

type Source struct {
	Kind       Kind
	ContentDir string
	DataDir    string
}

func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, "content.db")
}

func SnapshotDir(dataDir string) string {
	return filepath.Join(dataDir, "snapshots")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the loader for src. The returned closer releases whatever the
// loader holds and must be called once the loader is no longer used.
func Open(src Source, log zerolog.Logger) (Loader, io.Closer, error) {
	switch src.Kind {
	case KindMarkdown:
		return NewMarkdownLoader(afero.NewOsFs(), src.ContentDir, log), nopCloser{}, nil
	case KindSQLite:
		store, err := NewSQLiteStore(DatabasePath(src.DataDir), log)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store, nil
	case KindJSON:
		return NewJSONStore(SnapshotDir(src.DataDir)), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown content source %q", src.Kind)
	}
}

// CopyResult reports what Copy changed in the destination.
type CopyResult struct {
	Copied  int
	Removed int
}

// Copy makes collection in to mirror collection in from: every source entry
// is written, and destination entries whose IDs no longer exist in the
// source are deleted. The collection is registered in to even when the
// source is empty.
func Copy(ctx context.Context, from Loader, to Store, collection string) (CopyResult, error) {
	var res CopyResult

	entries, err := from.LoadCollection(ctx, collection)
	if err != nil {
		return res, err
	}
	if err := to.CreateCollection(ctx, collection); err != nil {
		return res, fmt.Errorf("create collection %s: %w", collection, err)
	}
	existing, err := to.LoadCollection(ctx, collection)
	if err != nil {
		return res, err
	}

	keep := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		e.Collection = collection
		if err := to.Put(ctx, e); err != nil {
			return res, fmt.Errorf("copy %s/%s: %w", collection, e.ID, err)
		}
		keep[e.ID] = struct{}{}
		res.Copied++
	}

	for _, e := range existing {
		if _, ok := keep[e.ID]; ok {
			continue
		}
		if err := to.Delete(ctx, collection, e.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return res, fmt.Errorf("remove %s/%s: %w", collection, e.ID, err)
		}
		res.Removed++
	}
	return res, nil
}
