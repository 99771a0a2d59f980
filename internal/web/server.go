package web

import (
	"github.com/rs/zerolog"

	"postshelf/internal/config"
	"postshelf/internal/posts"
)

type Server struct {
	Config *config.Config
	Posts  *posts.Service
	log    zerolog.Logger
}

func NewServer(cfg *config.Config, svc *posts.Service, log zerolog.Logger) *Server {
	return &Server{
		Config: cfg,
		Posts:  svc,
		log:    log.With().Str("component", "web").Logger(),
	}
}
