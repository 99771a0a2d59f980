package content

import "context"

// Loader returns every entry of a named collection. Each call returns a
// fresh slice owned by the caller, in no meaningful order.
type Loader interface {
	LoadCollection(ctx context.Context, name string) ([]Entry, error)
}

// Writer stores entries, replacing any entry with the same collection and ID.
type Writer interface {
	CreateCollection(ctx context.Context, name string) error
	Put(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, collection, id string) error
}

// Store is a backend that can be both read and written, such as SQLiteStore.
type Store interface {
	Loader
	Writer
}
