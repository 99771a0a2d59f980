package web

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"strings"
)

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []URL    `xml:"url"`
}

func (s *Server) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Posts.Sorted(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	baseURL := s.Config.SiteBaseURL

	urls := []URL{{
		Loc:        baseURL + "/posts",
		ChangeFreq: "daily",
		Priority:   "1.0",
	}}
	for _, e := range entries {
		urls = append(urls, URL{
			Loc:        postURL(baseURL, e.ID),
			LastMod:    e.Data.PostDate.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(URLSet{URLs: urls}); err != nil {
		s.log.Error().Err(err).Msg("write sitemap")
	}
}

// postURL is the public link of the post with the given ID. IDs keep their
// directory separators; every segment is escaped on its own.
func postURL(base, id string) string {
	segs := strings.Split(id, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return base + "/posts/" + strings.Join(segs, "/")
}
