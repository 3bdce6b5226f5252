package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("expected default api url, got %q", cfg.APIURL)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
	if cfg.Photos.MaxUploadBytes != DefaultPhotoMaxUploadBytes {
		t.Fatalf("expected default upload limit, got %d", cfg.Photos.MaxUploadBytes)
	}
	if cfg.Blob.Backend != "local" {
		t.Fatalf("expected local backend, got %q", cfg.Blob.Backend)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(apiURLEnvKey, "")
	t.Setenv(dbPathEnvKey, "")
	t.Setenv(logLevelEnvKey, "")

	content := `api_url = "http://127.0.0.1:9999"
db_path = "/tmp/custom.db"
log_level = "debug"

[photos]
max_upload_bytes = 1048576

[blob]
backend = "s3"

[blob.s3]
endpoint = "minio.local:9000"
bucket = "photos"
`
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:9999" {
		t.Fatalf("expected file api url, got %q", cfg.APIURL)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("expected file db path, got %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected file log level, got %q", cfg.LogLevel)
	}
	if cfg.Photos.MaxUploadBytes != 1048576 {
		t.Fatalf("expected file upload limit, got %d", cfg.Photos.MaxUploadBytes)
	}
	if cfg.Blob.Backend != "s3" {
		t.Fatalf("expected s3 backend, got %q", cfg.Blob.Backend)
	}
	if cfg.Blob.S3.Endpoint != "minio.local:9000" {
		t.Fatalf("expected s3 endpoint, got %q", cfg.Blob.S3.Endpoint)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(configDirEnvKey, t.TempDir())
	t.Setenv(apiURLEnvKey, "http://127.0.0.1:7777")
	t.Setenv(dbPathEnvKey, "/tmp/env.db")
	t.Setenv(logLevelEnvKey, "warn")
	t.Setenv(s3AccessKeyEnvKey, "env-access")
	t.Setenv(s3SecretKeyEnvKey, "env-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:7777" {
		t.Fatalf("env api url not applied, got %q", cfg.APIURL)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("env db path not applied, got %q", cfg.DBPath)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("env log level not applied, got %q", cfg.LogLevel)
	}
	if cfg.Blob.S3.AccessKey != "env-access" || cfg.Blob.S3.SecretKey != "env-secret" {
		t.Fatal("env s3 credentials not applied")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(configDirEnvKey, t.TempDir())
	t.Setenv(apiURLEnvKey, "")
	t.Setenv(dbPathEnvKey, "")
	t.Setenv(logLevelEnvKey, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("expected default api url, got %q", cfg.APIURL)
	}
	if cfg.DBPath == "" {
		t.Fatal("expected db path to be defaulted")
	}
}

func TestSetKeyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configDirEnvKey, dir)
	t.Setenv(apiURLEnvKey, "")
	t.Setenv(dbPathEnvKey, "")
	t.Setenv(logLevelEnvKey, "")
	path := filepath.Join(dir, configFileName)

	if err := SetKey(path, "api_url", "http://127.0.0.1:8888"); err != nil {
		t.Fatalf("set api_url: %v", err)
	}
	if err := SetKey(path, "blob.s3.bucket", "my-bucket"); err != nil {
		t.Fatalf("set nested key: %v", err)
	}
	if err := SetKey(path, "photos.max_upload_bytes", "2048"); err != nil {
		t.Fatalf("set int key: %v", err)
	}
	if err := SetKey(path, "blob.s3.use_ssl", "true"); err != nil {
		t.Fatalf("set bool key: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:8888" {
		t.Fatalf("api_url did not round-trip, got %q", cfg.APIURL)
	}
	if cfg.Blob.S3.Bucket != "my-bucket" {
		t.Fatalf("nested key did not round-trip, got %q", cfg.Blob.S3.Bucket)
	}
	if cfg.Photos.MaxUploadBytes != 2048 {
		t.Fatalf("int key did not round-trip, got %d", cfg.Photos.MaxUploadBytes)
	}
	if !cfg.Blob.S3.UseSSL {
		t.Fatal("bool key did not round-trip")
	}
}

func TestSetKeyValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)

	if err := SetKey(path, "bogus_key", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if err := SetKey(path, "photos.max_upload_bytes", "-5"); err == nil {
		t.Fatal("expected error for negative upload limit")
	}
	if err := SetKey(path, "blob.backend", "ftp"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if err := SetKey(path, "blob.s3.use_ssl", "maybe"); err == nil {
		t.Fatal("expected error for non-bool use_ssl")
	}
}

func TestGetKnownKeys(t *testing.T) {
	cfg := Default()
	for _, key := range AllowedKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestIsAllowedKey(t *testing.T) {
	if !IsAllowedKey("api_url") {
		t.Fatal("api_url should be allowed")
	}
	if IsAllowedKey("secret_sauce") {
		t.Fatal("unknown key should not be allowed")
	}
}
