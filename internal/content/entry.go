package content

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrMalformedEntry     = errors.New("malformed entry")
	ErrNotFound           = errors.New("entry not found")
	ErrInvalidID          = errors.New("entry id is required")
	ErrInvalidCollection  = errors.New("invalid collection name")
)

// Entry is one content item of a collection.
type Entry struct {
	ID         string `json:"id"`
	Collection string `json:"collection,omitempty"`
	Data       Data   `json:"data"`
	Body       string `json:"body,omitempty"`
}

// Data is the front matter payload of an entry. PostDate is required.
type Data struct {
	Title    string    `json:"title,omitempty" yaml:"title"`
	Summary  string    `json:"summary,omitempty" yaml:"summary"`
	Category string    `json:"category,omitempty" yaml:"category"`
	Tags     []string  `json:"tags,omitempty" yaml:"tags"`
	PostDate time.Time `json:"postDate" yaml:"postDate"`
}

func (e Entry) validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrInvalidID
	}
	if e.Data.PostDate.IsZero() {
		return fmt.Errorf("%w: %s: missing postDate", ErrMalformedEntry, e.ID)
	}
	return nil
}

func validateCollection(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	return nil
}
