package api

// BinResponse is the JSON read shape for one bin.
//
// Optional fields stay null until they are first written; photo_url is
// derived and non-null exactly when the record references a photo.
type BinResponse struct {
	Status    string  `json:"status"`
	BinID     string  `json:"bin_id"`
	CaseCode  *string `json:"case_code"`
	BinType   *string `json:"bin_type"`
	Notes     *string `json:"notes"`
	PhotoURL  *string `json:"photo_url"`
	UpdatedAt int64   `json:"updated_at"`
}

// BinUpdate is a partial metadata update. A nil field was not sent and
// preserves the stored value; a pointer to "" explicitly clears it.
type BinUpdate struct {
	CaseCode *string `json:"case_code,omitempty"`
	BinType  *string `json:"bin_type,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	PhotoKey *string `json:"photo_key,omitempty"`
}

// HasFields reports whether the update carries at least one field.
func (u BinUpdate) HasFields() bool {
	return u.CaseCode != nil || u.BinType != nil || u.Notes != nil || u.PhotoKey != nil
}

// UpsertResponse wraps the resolved record after a metadata upsert.
type UpsertResponse struct {
	Status string      `json:"status"`
	Bin    BinResponse `json:"bin"`
}

// PhotoUploadResponse echoes the stored key and the resolved record.
type PhotoUploadResponse struct {
	Status   string      `json:"status"`
	PhotoKey string      `json:"photo_key"`
	PhotoURL string      `json:"photo_url"`
	Bin      BinResponse `json:"bin"`
}

// BinListResponse is the supplement list shape.
type BinListResponse struct {
	Status string        `json:"status"`
	Bins   []BinResponse `json:"bins"`
	Total  int           `json:"total"`
}

// ErrorResponse is the JSON error wrapper. Status is "error" for request
// faults and "not_found" for missing bins or photos.
type ErrorResponse struct {
	Status  string `json:"status"`
	BinID   string `json:"bin_id,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
