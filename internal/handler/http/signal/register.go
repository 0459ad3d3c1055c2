package signal

import "net/http"

// Register registers the read and export routes with mux.
func Register(mux *http.ServeMux, svc Querier) {
	mux.Handle("GET /articles", ArticlesHandler{svc})
	mux.Handle("GET /research", ResearchHandler{svc})
	mux.Handle("GET /events", EventsHandler{svc})
	mux.Handle("GET /startups", StartupsHandler{svc})
	mux.Handle("GET /startups/featured", FeaturedHandler{svc})
	mux.Handle("GET /export/csv", ExportHandler{svc})
}
