// Package posts returns the entries of the posts collection newest first.
package posts

import (
	"context"
	"sort"

	"postshelf/internal/content"
)

// Collection is the content collection holding blog posts.
const Collection = "posts"

// CollectionLoader is the content source the posts are read from.
type CollectionLoader interface {
	LoadCollection(ctx context.Context, name string) ([]content.Entry, error)
}

// Sorted loads every entry of the posts collection and orders it by
// descending PostDate. Entries sharing a PostDate keep the loader's order.
// Loader errors are returned as is.
func Sorted(ctx context.Context, loader CollectionLoader) ([]content.Entry, error) {
	entries, err := loader.LoadCollection(ctx, Collection)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return []content.Entry{}, nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Data.PostDate.After(entries[j].Data.PostDate)
	})
	return entries, nil
}

// Service serves the sorted posts collection from a fixed loader.
type Service struct {
	loader CollectionLoader
}

// NewService returns a Service reading posts through loader.
func NewService(loader CollectionLoader) *Service {
	return &Service{loader: loader}
}

// Sorted is Sorted applied to the Service's loader.
func (s *Service) Sorted(ctx context.Context) ([]content.Entry, error) {
	return Sorted(ctx, s.loader)
}
