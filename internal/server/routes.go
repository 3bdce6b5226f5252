package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Liveness.
	mux.HandleFunc("GET /{$}", s.handleRoot)

	// JSON reads.
	mux.HandleFunc("GET /api/bin/{id}", s.handleGetBinJSON)
	mux.HandleFunc("GET /api/bins", s.handleListBins)

	// Bin page and metadata upsert.
	mux.HandleFunc("GET /bin/{id}", s.handleGetBinPage)
	mux.HandleFunc("POST /bin/{id}", s.handleUpsertBin)

	// Photo payloads.
	mux.HandleFunc("GET /bin/{id}/photo", s.handleGetPhoto)
	mux.HandleFunc("POST /bin/{id}/photo", s.handleUploadPhoto)

	return s.withRequestLogging(mux)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("bintrack ok\n"))
}
