package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"bintrack/internal/api"
	"bintrack/internal/models"
)

const (
	defaultJSONMaxBody        = 1 << 20 // 1 MiB
	defaultPhotoUploadMaxBody = 25 << 20
	defaultPhotoContentType   = "image/jpeg"
	maxBinIDLength            = 128
)

type apiError struct {
	status int
	code   string
	err    error
}

func (e apiError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e apiError) Unwrap() error {
	return e.err
}

func makeAPIError(status int, code string, err error) error {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	var existing apiError
	if errors.As(err, &existing) {
		if existing.status != 0 {
			return existing
		}
	}

	return apiError{status: status, code: code, err: err}
}

func badRequest(err error) error {
	return makeAPIError(http.StatusBadRequest, "invalid_argument", err)
}

func notFound(err error) error {
	return makeAPIError(http.StatusNotFound, "not_found", err)
}

func storeFailure(err error) error {
	return makeAPIError(http.StatusInternalServerError, "internal", err)
}

func httpStatusFromError(err error) int {
	var apiErr apiError
	if errors.As(err, &apiErr) {
		return apiErr.status
	}
	return http.StatusInternalServerError
}

func errorCode(status int, err error) string {
	var apiErr apiError
	if errors.As(err, &apiErr) && apiErr.code != "" {
		return apiErr.code
	}
	switch status {
	case http.StatusBadRequest:
		return "invalid_argument"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusInternalServerError:
		return "internal"
	default:
		return ""
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	code := errorCode(status, err)
	message := err.Error()

	fields := []any{"status", status, "code", code, "error", err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	}

	switch {
	case status >= 500:
		s.log().Error("request error", fields...)
		message = "internal error"
	case status >= 400:
		s.log().Debug("request rejected", fields...)
	}

	s.writeJSON(w, status, api.ErrorResponse{Status: "error", Code: code, Message: message})
}

// writeBinNotFound emits the not-found read shape for a missing bin or photo.
func (s *Server) writeBinNotFound(w http.ResponseWriter, r *http.Request, binID, message string) {
	s.log().Debug("bin not found", "method", r.Method, "path", r.URL.Path, "bin_id", binID)
	s.writeJSON(w, http.StatusNotFound, api.ErrorResponse{
		Status:  "not_found",
		BinID:   binID,
		Message: message,
	})
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, httpStatusFromError(err), err)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, http.StatusInternalServerError, storeFailure(err))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, int64(defaultJSONMaxBody))
	return json.NewDecoder(r.Body).Decode(dst)
}

func classifyDecodeJSONError(err error) error {
	if err == nil {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return badRequest(fmt.Errorf("request body too large"))
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return badRequest(fmt.Errorf("invalid JSON payload"))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return badRequest(fmt.Errorf("invalid JSON payload"))
	}

	var unmarshalErr *json.UnmarshalTypeError
	if errors.As(err, &unmarshalErr) {
		return badRequest(err)
	}

	return badRequest(err)
}

func (s *Server) decodeJSONReq(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		s.writeError(w, r, http.StatusBadRequest, classifyDecodeJSONError(err))
		return false
	}
	return true
}

func (s *Server) pathBinIDOrBadRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	binID, err := requireBinID(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return "", false
	}
	return binID, true
}

func requireBinID(r *http.Request) (string, error) {
	binID := strings.TrimSpace(r.PathValue("id"))
	if !validateBinID(binID) {
		return "", badRequest(fmt.Errorf("invalid bin id"))
	}
	return binID, nil
}

// validateBinID accepts printed label identifiers: non-empty, bounded, and
// free of path separators so ids embed cleanly in URLs and blob keys.
func validateBinID(binID string) bool {
	if binID == "" || len(binID) > maxBinIDLength {
		return false
	}
	return !strings.ContainsAny(binID, "/\\")
}

func queryIntDefault(r *http.Request, key string, def int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, badRequest(fmt.Errorf("invalid %s", key))
	}
	if parsed < 0 {
		return 0, badRequest(fmt.Errorf("%s must be >= 0", key))
	}
	return parsed, nil
}

// binToResponse maps a record to the JSON read shape. photo_url is derived
// from photo_key presence; the key itself stays internal.
func binToResponse(bin *models.Bin) api.BinResponse {
	resp := api.BinResponse{
		Status:    "ok",
		BinID:     bin.BinID,
		CaseCode:  bin.CaseCode,
		BinType:   bin.BinType,
		Notes:     bin.Notes,
		UpdatedAt: bin.UpdatedAt,
	}
	if bin.HasPhoto() {
		url := photoURL(bin.BinID)
		resp.PhotoURL = &url
	}
	return resp
}

func photoURL(binID string) string {
	return "/bin/" + binID + "/photo"
}
