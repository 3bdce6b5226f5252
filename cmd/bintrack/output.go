package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"bintrack/internal/api"
	"bintrack/internal/format"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeBinDetail(bin api.BinResponse) error {
	lines := []string{
		fmt.Sprintf("bin_id: %s", bin.BinID),
		fmt.Sprintf("case_code: %s", valueOrDash(bin.CaseCode)),
		fmt.Sprintf("bin_type: %s", valueOrDash(bin.BinType)),
		fmt.Sprintf("notes: %s", valueOrDash(bin.Notes)),
		fmt.Sprintf("updated_at: %s", formatUpdatedAt(bin.UpdatedAt)),
	}
	if bin.PhotoURL != nil {
		lines = append(lines, fmt.Sprintf("photo_url: %s", *bin.PhotoURL))
	}
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatBinLine(bin api.BinResponse) string {
	parts := []string{bin.BinID}
	if bin.CaseCode != nil && *bin.CaseCode != "" {
		parts = append(parts, "case="+*bin.CaseCode)
	}
	if bin.BinType != nil && *bin.BinType != "" {
		parts = append(parts, "type="+*bin.BinType)
	}
	if bin.PhotoURL != nil {
		parts = append(parts, "photo")
	}
	parts = append(parts, formatUpdatedAt(bin.UpdatedAt))
	return strings.Join(parts, "  ")
}

func formatUpdatedAt(millis int64) string {
	if millis <= 0 {
		return "-"
	}
	return time.UnixMilli(millis).UTC().Format(time.RFC3339)
}

func valueOrDash(value *string) string {
	if value == nil || *value == "" {
		return "-"
	}
	return *value
}
