package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "BINTRACK_HTTP_TIMEOUT"
)

// Client is a simple HTTP client for the bintrack API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil, nil)
}

// GetBin fetches one bin's JSON read shape.
func (c *Client) GetBin(ctx context.Context, binID string) (BinResponse, error) {
	var resp BinResponse
	err := c.do(ctx, http.MethodGet, "/api/bin/"+url.PathEscape(binID), nil, nil, &resp)
	return resp, err
}

// ListBins fetches a page of bins, newest first.
func (c *Client) ListBins(ctx context.Context, limit, offset int) (BinListResponse, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	var resp BinListResponse
	err := c.do(ctx, http.MethodGet, "/api/bins", query, nil, &resp)
	return resp, err
}

// UpsertBin sends a partial metadata update for one bin.
func (c *Client) UpsertBin(ctx context.Context, binID string, update BinUpdate) (UpsertResponse, error) {
	var resp UpsertResponse
	err := c.do(ctx, http.MethodPost, "/bin/"+url.PathEscape(binID), nil, update, &resp)
	return resp, err
}

// UploadPhoto uploads raw photo bytes for one bin.
func (c *Client) UploadPhoto(ctx context.Context, binID string, r io.Reader, contentType string) (PhotoUploadResponse, error) {
	var resp PhotoUploadResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bin/"+url.PathEscape(binID)+"/photo", r)
	if err != nil {
		return resp, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return resp, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		return resp, decodeError(httpResp)
	}
	err = json.NewDecoder(httpResp.Body).Decode(&resp)
	return resp, err
}

// DownloadPhoto streams one bin's photo to w and returns its content type.
func (c *Client) DownloadPhoto(ctx context.Context, binID string, w io.Writer) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bin/"+url.PathEscape(binID)+"/photo", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", decodeError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", err
	}
	return resp.Header.Get("Content-Type"), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
		if errResp.Code != "" {
			return fmt.Errorf("%s: %s", errResp.Code, errResp.Message)
		}
		return fmt.Errorf("%s", errResp.Message)
	}
	return fmt.Errorf("api error: %s", resp.Status)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
