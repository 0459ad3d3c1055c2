package overlay

import "net/http"

// Register registers every overlay route with mux.
func Register(mux *http.ServeMux, svc Service) {
	for path, set := range map[string]refSet{
		"/pins":      pinSet(svc),
		"/dismissed": dismissedSet(svc),
	} {
		mux.Handle("GET "+path, ListRefsHandler{set})
		mux.Handle("POST "+path, AddRefHandler{set})
		mux.Handle("DELETE "+path, RemoveRefHandler{set})
	}

	mux.Handle("GET /starred", StarredHandler{svc})
	mux.Handle("POST /star", StarHandler{svc})
	mux.Handle("DELETE /star", UnstarHandler{svc})

	mux.Handle("GET /notifications/startups", SubscriptionsHandler{svc})
	mux.Handle("POST /notifications/startups", SubscribeHandler{svc})
	mux.Handle("DELETE /notifications/startups", UnsubscribeHandler{svc})

	mux.Handle("GET /notifications/preferences", GetPreferencesHandler{svc})
	mux.Handle("PUT /notifications/preferences", PutPreferencesHandler{svc})
}
