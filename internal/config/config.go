package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL     = "http://127.0.0.1:7380"
	DefaultDBFileName = ".bintrack.db"
	DefaultLogLevel   = "info"

	DefaultPhotoMaxUploadBytes   int64 = 25 * 1024 * 1024
	DefaultPhotoContentType            = "image/jpeg"
	DefaultBlobBackend                 = "local"
	DefaultS3Bucket                    = "bintrack-photos"

	configFileName  = ".bintrack.toml"
	configDirEnvKey = "BINTRACK_CONFIG_DIR"

	apiURLEnvKey      = "BINTRACK_API_URL"
	dbPathEnvKey      = "BINTRACK_DB"
	logLevelEnvKey    = "BINTRACK_LOG_LEVEL"
	s3AccessKeyEnvKey = "BINTRACK_S3_ACCESS_KEY"
	s3SecretKeyEnvKey = "BINTRACK_S3_SECRET_KEY"
)

// PhotoConfig defines runtime configuration for photo handling.
type PhotoConfig struct {
	MaxUploadBytes     int64  `toml:"max_upload_bytes"`
	DefaultContentType string `toml:"default_content_type"`
}

// S3Config holds settings for the S3-compatible blob backend.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"use_ssl"`
}

// BlobConfig selects and configures the photo blob backend.
type BlobConfig struct {
	Backend   string   `toml:"backend"`
	LocalRoot string   `toml:"local_root"`
	S3        S3Config `toml:"s3"`
}

// Config defines runtime configuration for bintrack.
type Config struct {
	APIURL   string      `toml:"api_url"`
	DBPath   string      `toml:"db_path"`
	LogLevel string      `toml:"log_level"`
	Photos   PhotoConfig `toml:"photos"`
	Blob     BlobConfig  `toml:"blob"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		DBPath:   "",
		LogLevel: DefaultLogLevel,
		Photos: PhotoConfig{
			MaxUploadBytes:     DefaultPhotoMaxUploadBytes,
			DefaultContentType: DefaultPhotoContentType,
		},
		Blob: BlobConfig{
			Backend: DefaultBlobBackend,
			S3: S3Config{
				Bucket: DefaultS3Bucket,
			},
		},
	}
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"log_level",
	"photos.max_upload_bytes",
	"photos.default_content_type",
	"blob.backend",
	"blob.local_root",
	"blob.s3.endpoint",
	"blob.s3.access_key",
	"blob.s3.secret_key",
	"blob.s3.bucket",
	"blob.s3.region",
	"blob.s3.use_ssl",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "photos.max_upload_bytes":
		return strconv.FormatInt(c.Photos.MaxUploadBytes, 10), nil
	case "photos.default_content_type":
		return c.Photos.DefaultContentType, nil
	case "blob.backend":
		return c.Blob.Backend, nil
	case "blob.local_root":
		return c.Blob.LocalRoot, nil
	case "blob.s3.endpoint":
		return c.Blob.S3.Endpoint, nil
	case "blob.s3.access_key":
		return c.Blob.S3.AccessKey, nil
	case "blob.s3.secret_key":
		return c.Blob.S3.SecretKey, nil
	case "blob.s3.bucket":
		return c.Blob.S3.Bucket, nil
	case "blob.s3.region":
		return c.Blob.S3.Region, nil
	case "blob.s3.use_ssl":
		return strconv.FormatBool(c.Blob.S3.UseSSL), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// Load reads config from the config file and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if loadErr := loadFileIfExists(path, &cfg); loadErr != nil {
			return nil, loadErr
		}
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}

	if apiURL := os.Getenv(apiURLEnvKey); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv(dbPathEnvKey); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if level := os.Getenv(logLevelEnvKey); level != "" {
		cfg.LogLevel = level
	}
	if accessKey := os.Getenv(s3AccessKeyEnvKey); accessKey != "" {
		cfg.Blob.S3.AccessKey = accessKey
	}
	if secretKey := os.Getenv(s3SecretKeyEnvKey); secretKey != "" {
		cfg.Blob.S3.SecretKey = secretKey
	}

	cfg.normalizeDefaults()

	return &cfg, nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

func loadFileIfExists(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "photos.max_upload_bytes":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "blob.s3.use_ssl":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", key)
		}
		return parsed, nil
	case "blob.backend":
		switch value {
		case "local", "s3":
			return value, nil
		default:
			return nil, fmt.Errorf("%s must be local or s3", key)
		}
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func (c *Config) normalizeDefaults() {
	if c.Photos.MaxUploadBytes <= 0 {
		c.Photos.MaxUploadBytes = DefaultPhotoMaxUploadBytes
	}
	if strings.TrimSpace(c.Photos.DefaultContentType) == "" {
		c.Photos.DefaultContentType = DefaultPhotoContentType
	}
	if strings.TrimSpace(c.Blob.Backend) == "" {
		c.Blob.Backend = DefaultBlobBackend
	}
	if strings.TrimSpace(c.Blob.S3.Bucket) == "" {
		c.Blob.S3.Bucket = DefaultS3Bucket
	}
}
