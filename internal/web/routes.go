package web

import "net/http"

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.Index)
	mux.HandleFunc("/posts", s.PostsList)
	mux.HandleFunc("/posts/", s.PostDetail)
	mux.HandleFunc("/feed", s.RSS)
	mux.HandleFunc("/sitemap.xml", s.Sitemap)

	return readOnly(mux)
}

// readOnly rejects every method other than GET and HEAD.
func readOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}
