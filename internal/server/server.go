package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"bintrack/internal/blobstore"
	"bintrack/internal/store"
)

const (
	allowRemoteEnvKey = "BINTRACK_ALLOW_REMOTE"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
)

// Options carries tunables applied at construction.
type Options struct {
	PhotoMaxUploadBytes     int64
	DefaultPhotoContentType string
}

// Server wraps HTTP handlers for the bintrack API.
type Server struct {
	addr    string
	store   store.BinStore
	service *BinService
	logger  *slog.Logger

	photoMaxUploadBytes     int64
	defaultPhotoContentType string
}

// New creates a new server instance.
func New(addr string, binStore store.BinStore, blobs blobstore.BlobStore, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PhotoMaxUploadBytes <= 0 {
		opts.PhotoMaxUploadBytes = defaultPhotoUploadMaxBody
	}
	if strings.TrimSpace(opts.DefaultPhotoContentType) == "" {
		opts.DefaultPhotoContentType = defaultPhotoContentType
	}

	return &Server{
		addr:                    addr,
		store:                   binStore,
		service:                 NewBinService(binStore, blobs),
		logger:                  logger,
		photoMaxUploadBytes:     opts.PhotoMaxUploadBytes,
		defaultPhotoContentType: opts.DefaultPhotoContentType,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
