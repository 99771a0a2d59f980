package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// MarkdownLoader reads collections laid out as <root>/<collection>/**/*.md,
// each file carrying YAML front matter.
type MarkdownLoader struct {
	fs   afero.Fs
	root string
	log  zerolog.Logger
}

func NewMarkdownLoader(fs afero.Fs, root string, log zerolog.Logger) *MarkdownLoader {
	return &MarkdownLoader{
		fs:   fs,
		root: root,
		log:  log.With().Str("component", "markdown-loader").Logger(),
	}
}

func (l *MarkdownLoader) LoadCollection(ctx context.Context, name string) ([]Entry, error) {
	if err := validateCollection(name); err != nil {
		return nil, err
	}

	dir := filepath.Join(l.root, name)
	info, err := l.fs.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}

	entries := []Entry{}
	seen := map[string]string{}
	err = afero.Walk(l.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() || !isMarkdown(path) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		raw, err := afero.ReadFile(l.fs, path)
		if err != nil {
			return err
		}
		data, body, err := parseMarkdown(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedEntry, rel, err)
		}

		entry := Entry{
			ID:         strings.TrimSuffix(rel, filepath.Ext(rel)),
			Collection: name,
			Data:       data,
			Body:       body,
		}
		if err := entry.validate(); err != nil {
			return err
		}
		if first, dup := seen[entry.ID]; dup {
			return fmt.Errorf("%w: %s: duplicate id %q (also %s)", ErrMalformedEntry, rel, entry.ID, first)
		}
		seen[entry.ID] = rel
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Debug().Str("collection", name).Int("entries", len(entries)).Msg("collection loaded")
	return entries, nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// parseMarkdown splits a document into its decoded front matter and body.
func parseMarkdown(raw []byte) (Data, string, error) {
	text := strings.TrimPrefix(string(raw), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.SplitAfter(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelim {
		return Data{}, "", errors.New("missing front matter")
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != frontMatterDelim {
			continue
		}
		var data Data
		if err := yaml.Unmarshal([]byte(strings.Join(lines[1:i], "")), &data); err != nil {
			return Data{}, "", fmt.Errorf("front matter: %w", err)
		}
		return data, strings.TrimLeft(strings.Join(lines[i+1:], ""), "\n"), nil
	}
	return Data{}, "", errors.New("unterminated front matter")
}
