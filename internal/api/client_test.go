package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientGetBin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bin/A-001" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		caseCode := "CASE-1"
		_ = json.NewEncoder(w).Encode(BinResponse{Status: "ok", BinID: "A-001", CaseCode: &caseCode, UpdatedAt: 123})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	bin, err := client.GetBin(context.Background(), "A-001")
	if err != nil {
		t.Fatalf("get bin: %v", err)
	}
	if bin.BinID != "A-001" {
		t.Fatalf("expected bin_id 'A-001', got %q", bin.BinID)
	}
	if bin.CaseCode == nil || *bin.CaseCode != "CASE-1" {
		t.Fatalf("expected case_code 'CASE-1', got %v", bin.CaseCode)
	}
}

func TestClientGetBinNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Status: "not_found", BinID: "A-404", Message: "no record for bin A-404"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetBin(context.Background(), "A-404")
	if err == nil {
		t.Fatal("expected error for missing bin")
	}
	if !strings.Contains(err.Error(), "no record for bin A-404") {
		t.Fatalf("expected server message in error, got %q", err)
	}
}

func TestClientUpsertBinSendsOnlyChangedFields(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(UpsertResponse{Status: "ok", Bin: BinResponse{Status: "ok", BinID: "A-001"}})
	}))
	defer srv.Close()

	notes := ""
	client := NewClient(srv.URL)
	resp, err := client.UpsertBin(context.Background(), "A-001", BinUpdate{Notes: &notes})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("expected status 'ok', got %q", resp.Status)
	}

	if _, ok := received["notes"]; !ok {
		t.Fatal("explicitly cleared notes should be present in payload")
	}
	if received["notes"] != "" {
		t.Fatalf("expected empty notes, got %v", received["notes"])
	}
	if _, ok := received["case_code"]; ok {
		t.Fatal("unset case_code should be omitted from payload")
	}
}

func TestClientUploadAndDownloadPhoto(t *testing.T) {
	payload := []byte("jpeg bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			if !bytes.Equal(body, payload) {
				t.Fatalf("upload body mismatch: %q", body)
			}
			if ct := r.Header.Get("Content-Type"); ct != "image/jpeg" {
				t.Fatalf("expected image/jpeg, got %q", ct)
			}
			_ = json.NewEncoder(w).Encode(PhotoUploadResponse{Status: "ok", PhotoKey: "bins/A-001/1", PhotoURL: "/bin/A-001/photo"})
		case http.MethodGet:
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(payload)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.UploadPhoto(context.Background(), "A-001", bytes.NewReader(payload), "image/jpeg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.PhotoKey != "bins/A-001/1" {
		t.Fatalf("unexpected photo_key: %q", resp.PhotoKey)
	}

	var buf bytes.Buffer
	contentType, err := client.DownloadPhoto(context.Background(), "A-001", &buf)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if contentType != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", contentType)
	}
	if !bytes.Equal(buf.Bytes(), payload) {
		t.Fatalf("download bytes mismatch: %q", buf.Bytes())
	}
}

func TestClientListBinsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Fatalf("expected limit=10, got %q", got)
		}
		if got := r.URL.Query().Get("offset"); got != "20" {
			t.Fatalf("expected offset=20, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(BinListResponse{Status: "ok", Bins: []BinResponse{}, Total: 0})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.ListBins(context.Background(), 10, 20); err != nil {
		t.Fatalf("list: %v", err)
	}
}

func TestHTTPTimeoutFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", defaultHTTPTimeout},
		{"5s", 5 * time.Second},
		{"30", 30 * time.Second},
		{"garbage", defaultHTTPTimeout},
		{"-5", defaultHTTPTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(httpTimeoutEnvKey, tt.value)
			if got := httpTimeoutFromEnv(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
