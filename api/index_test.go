package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ServesSortedPosts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "a.md"), []byte("---\npostDate: 2021-01-01\n---\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "b.md"), []byte("---\npostDate: 2022-01-01\n---\n"), 0o644))
	t.Setenv("CONTENT_DIR", dir)
	t.Setenv("CONTENT_SOURCE", "markdown")
	t.Setenv("LOG_LEVEL", "error")

	w := httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}
