package server

import (
	"embed"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/bin.html
var templateFS embed.FS

var binPageTemplate = template.Must(template.ParseFS(templateFS, "templates/bin.html"))

// binPageData feeds the bin detail template. All field values pass through
// html/template escaping.
type binPageData struct {
	BinID     string
	Found     bool
	CaseCode  string
	BinType   string
	Notes     string
	HasPhoto  bool
	PhotoURL  string
	UpdatedAt string
}

func (s *Server) handleGetBinPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "json" {
		s.handleGetBinJSON(w, r)
		return
	}

	binID, ok := s.pathBinIDOrBadRequest(w, r)
	if !ok {
		return
	}

	bin, err := s.store.GetBin(r.Context(), binID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	data := binPageData{BinID: binID}
	status := http.StatusNotFound
	if bin != nil {
		status = http.StatusOK
		data.Found = true
		data.CaseCode = stringOrEmpty(bin.CaseCode)
		data.BinType = stringOrEmpty(bin.BinType)
		data.Notes = stringOrEmpty(bin.Notes)
		data.UpdatedAt = time.UnixMilli(bin.UpdatedAt).UTC().Format(time.RFC3339)
		if bin.HasPhoto() {
			data.HasPhoto = true
			data.PhotoURL = photoURL(binID)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := binPageTemplate.Execute(w, data); err != nil {
		s.log().Error("render bin page", "bin_id", binID, "error", err)
	}
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
