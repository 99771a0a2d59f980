package handler

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"postshelf/internal/config"
	"postshelf/internal/content"
	"postshelf/internal/logging"
	"postshelf/internal/posts"
	"postshelf/internal/web"
)

var (
	handler http.Handler
	once    sync.Once
)

// initApp builds the handler on the first request. Serverless file systems
// are read-only, so the default source is the Markdown tree shipped with the
// deployment.
func initApp() {
	if _, ok := os.LookupEnv("CONTENT_SOURCE"); !ok {
		os.Setenv("CONTENT_SOURCE", string(content.KindMarkdown))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		handler = unavailable()
		return
	}
	log := logging.New(cfg.LogLevel, "json")

	// The loader lives as long as the function instance, so the closer is
	// never called.
	loader, _, err := content.Open(cfg.Source(), log)
	if err != nil {
		log.Error().Err(err).Msg("open content source")
		handler = unavailable()
		return
	}

	handler = web.NewServer(cfg, posts.NewService(loader), log).Routes()
}

func unavailable() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})
}

// Handler is the entry point for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(initApp)
	handler.ServeHTTP(w, r)
}
