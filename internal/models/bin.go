package models

// Bin is one tracked physical storage bin.
//
// BinID is assigned externally (it is printed on the bin label) and never
// changes. Optional fields are pointers so that "never set" (nil) stays
// distinct from "explicitly set to empty" across partial updates.
type Bin struct {
	BinID            string  `json:"bin_id"`
	CaseCode         *string `json:"case_code"`
	BinType          *string `json:"bin_type"`
	Notes            *string `json:"notes"`
	PhotoKey         *string `json:"photo_key,omitempty"`
	PhotoContentType *string `json:"photo_content_type,omitempty"`
	UpdatedAt        int64   `json:"updated_at"`
}

// HasPhoto reports whether the bin references a stored photo.
func (b *Bin) HasPhoto() bool {
	return b != nil && b.PhotoKey != nil && *b.PhotoKey != ""
}
