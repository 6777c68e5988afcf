package orders

import "net/http"

// RegisterRoutes adds the direct-CSV read endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, snapshot *Snapshot) {
	h := &Handler{snapshot: snapshot}

	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /orders", h.List)
}
