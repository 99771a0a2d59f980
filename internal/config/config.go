package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"postshelf/internal/content"
)

type Config struct {
	PublicAddr      string        `env:"PUBLIC_ADDR" envDefault:":8084"`
	SiteBaseURL     string        `env:"SITE_BASE_URL"`
	SiteTitle       string        `env:"SITE_TITLE" envDefault:"Posts"`
	SiteDescription string        `env:"SITE_DESCRIPTION"`
	ContentSource   string        `env:"CONTENT_SOURCE" envDefault:"markdown"`
	ContentDir      string        `env:"CONTENT_DIR" envDefault:"content"`
	DataDir         string        `env:"DATA_DIR" envDefault:"data"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.SiteBaseURL = strings.TrimRight(strings.TrimSpace(cfg.SiteBaseURL), "/")
	if cfg.SiteBaseURL == "" {
		cfg.SiteBaseURL = baseURLFromAddr(cfg.PublicAddr)
	}
	if _, err := content.ParseKind(cfg.ContentSource); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Source describes the content backend selected by the configuration.
func (c *Config) Source() content.Source {
	kind, _ := content.ParseKind(c.ContentSource)
	return content.Source{
		Kind:       kind,
		ContentDir: c.ContentDir,
		DataDir:    c.DataDir,
	}
}

func baseURLFromAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimRight(addr, "/")
	}

	host := ""
	port := ""
	if strings.HasPrefix(addr, ":") {
		host = "localhost"
		port = strings.TrimPrefix(addr, ":")
	} else {
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			port = p
		} else {
			host = addr
		}
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	if port != "" {
		return "http://" + net.JoinHostPort(host, port)
	}
	return "http://" + host
}
