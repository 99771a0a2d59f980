package web

import (
	"net/http"
	"time"

	"github.com/gorilla/feeds"
)

const feedSize = 20

func (s *Server) RSS(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Posts.Sorted(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	siteURL := s.Config.SiteBaseURL

	feed := &feeds.Feed{
		Title:       s.Config.SiteTitle,
		Link:        &feeds.Link{Href: siteURL},
		Description: s.Config.SiteDescription,
		Created:     time.Now(),
	}
	if len(entries) > 0 {
		feed.Updated = entries[0].Data.PostDate
	}
	if len(entries) > feedSize {
		entries = entries[:feedSize]
	}

	for _, e := range entries {
		title := e.Data.Title
		if title == "" {
			title = e.ID
		}
		link := postURL(siteURL, e.ID)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       title,
			Link:        &feeds.Link{Href: link},
			Description: e.Data.Summary,
			Created:     e.Data.PostDate,
			Content:     renderMarkdown(e.Body),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	if err := feed.WriteRss(w); err != nil {
		s.log.Error().Err(err).Msg("write rss")
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
	}
}
