// Package config loads plottwister settings: built-in defaults, then an
// optional YAML file, then PLOTTWISTER_* environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GIVandez/plot-twister/internal/imagestore"
	"github.com/GIVandez/plot-twister/internal/timeline"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable consulted when no --config flag is given.
const EnvConfigPath = "PLOTTWISTER_CONFIG"

// Config holds all runtime settings.
type Config struct {
	ListenAddr     string   `yaml:"listen_addr"`
	DBPath         string   `yaml:"db_path"`
	UploadDir      string   `yaml:"upload_dir"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	APIKey         string   `yaml:"api_key"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	LogUseCases bool   `yaml:"log_use_cases"`

	ReorderPolicy string `yaml:"reorder_policy"`
	DeletePolicy  string `yaml:"delete_policy"`
}

// Default returns a Config with sensible defaults. The database lives in
// ~/.plottwister unless the home directory cannot be resolved.
func Default() Config {
	dbPath := filepath.Join(".plottwister", "plottwister.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, dbPath)
	}
	return Config{
		ListenAddr:     ":8080",
		DBPath:         dbPath,
		UploadDir:      "uploads",
		MaxUploadBytes: imagestore.DefaultMaxBytes,
		LogLevel:       "info",
		LogFormat:      "text",
		LogUseCases:    true,
		ReorderPolicy:  timeline.PolicySlot,
		DeletePolicy:   timeline.PolicyOwn,
	}
}

// Load builds the effective configuration. path may be empty, in which case
// PLOTTWISTER_CONFIG is consulted. Without either, only defaults and the
// environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PLOTTWISTER_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("PLOTTWISTER_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PLOTTWISTER_UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("PLOTTWISTER_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("PLOTTWISTER_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("PLOTTWISTER_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("PLOTTWISTER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PLOTTWISTER_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("PLOTTWISTER_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogUseCases = b
		}
	}
	if v := os.Getenv("PLOTTWISTER_REORDER_POLICY"); v != "" {
		c.ReorderPolicy = v
	}
	if v := os.Getenv("PLOTTWISTER_DELETE_POLICY"); v != "" {
		c.DeletePolicy = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate rejects settings the rest of the program cannot act on.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("upload_dir must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if _, err := timeline.PolicyByName(c.ReorderPolicy); err != nil {
		return fmt.Errorf("reorder_policy: %w", err)
	}
	if _, err := timeline.PolicyByName(c.DeletePolicy); err != nil {
		return fmt.Errorf("delete_policy: %w", err)
	}
	return nil
}

// Policies resolves the configured reorder and delete duration policies.
func (c Config) Policies() (reorder, del timeline.DurationPolicy, err error) {
	if reorder, err = timeline.PolicyByName(c.ReorderPolicy); err != nil {
		return nil, nil, err
	}
	if del, err = timeline.PolicyByName(c.DeletePolicy); err != nil {
		return nil, nil, err
	}
	return reorder, del, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// NewLogger builds the process logger writing to w.
func NewLogger(c Config, w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
