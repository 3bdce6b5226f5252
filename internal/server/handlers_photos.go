package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"bintrack/internal/api"
	"bintrack/internal/blobstore"
)

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	binID, ok := s.pathBinIDOrBadRequest(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.photoMaxUploadBytes)

	bin, key, err := s.service.AttachPhoto(
		r.Context(),
		binID,
		r.Body,
		r.ContentLength,
		r.Header.Get("Content-Type"),
		r.Header.Get("Cache-Control"),
	)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, r, http.StatusBadRequest, badRequest(fmt.Errorf("request body too large")))
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.PhotoUploadResponse{
		Status:   "ok",
		PhotoKey: key,
		PhotoURL: photoURL(binID),
		Bin:      binToResponse(bin),
	})
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	binID, ok := s.pathBinIDOrBadRequest(w, r)
	if !ok {
		return
	}

	rc, info, err := s.service.OpenPhoto(r.Context(), binID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBinNotFound):
			s.writeBinNotFound(w, r, binID, "no record for bin "+binID)
		case errors.Is(err, ErrNoPhoto):
			s.writeBinNotFound(w, r, binID, "bin "+binID+" has no photo")
		case errors.Is(err, blobstore.ErrBlobNotFound):
			s.writeBinNotFound(w, r, binID, "photo for bin "+binID+" is missing from storage")
		default:
			s.writeServiceError(w, r, err)
		}
		return
	}
	defer rc.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = s.defaultPhotoContentType
	}
	w.Header().Set("Content-Type", contentType)
	if info.CacheControl != "" {
		w.Header().Set("Cache-Control", info.CacheControl)
	}
	if info.Digest != "" {
		w.Header().Set("ETag", `"`+info.Digest+`"`)
	}
	if info.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.SizeBytes, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		s.log().Error("stream photo", "method", r.Method, "path", r.URL.Path, "bin_id", binID, "error", err)
	}
}
