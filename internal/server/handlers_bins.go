package server

import (
	"net/http"

	"bintrack/internal/api"
)

const defaultListLimit = 100

func (s *Server) handleGetBinJSON(w http.ResponseWriter, r *http.Request) {
	binID, ok := s.pathBinIDOrBadRequest(w, r)
	if !ok {
		return
	}

	bin, err := s.store.GetBin(r.Context(), binID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if bin == nil {
		s.writeBinNotFound(w, r, binID, "no record for bin "+binID)
		return
	}

	s.writeJSON(w, http.StatusOK, binToResponse(bin))
}

func (s *Server) handleListBins(w http.ResponseWriter, r *http.Request) {
	limit, err := queryIntDefault(r, "limit", defaultListLimit)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	offset, err := queryIntDefault(r, "offset", 0)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	bins, err := s.store.ListBins(r.Context(), limit, offset)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	total, err := s.store.CountBins(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	resp := api.BinListResponse{Status: "ok", Bins: make([]api.BinResponse, 0, len(bins)), Total: total}
	for i := range bins {
		resp.Bins = append(resp.Bins, binToResponse(&bins[i]))
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpsertBin(w http.ResponseWriter, r *http.Request) {
	binID, ok := s.pathBinIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var update api.BinUpdate
	if !s.decodeJSONReq(w, r, &update) {
		return
	}

	bin, err := s.service.Upsert(r.Context(), binID, update)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.UpsertResponse{Status: "ok", Bin: binToResponse(bin)})
}
