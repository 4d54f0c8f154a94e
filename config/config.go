// Package config loads service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/podiumlabs/arena/types"
)

// Defaults applied when the config file omits a value.
const (
	DefaultListenAddr   = ":8080"
	DefaultAuthBaseURL  = "https://bananaboom-api-242273127238.asia-east1.run.app/api"
	DefaultTurnDelay    = time.Second
	DefaultGuestQuota   = 10
	DefaultSnapshotPath = "arena-data"
	DefaultRedisPrefix  = "arena"
)

// Provider kinds.
const (
	ProviderGemini   = "gemini"
	ProviderScripted = "scripted"
)

// Snapshot backend kinds.
const (
	SnapshotFile   = "file"
	SnapshotMemory = "memory"
	SnapshotRedis  = "redis"
)

// Config is the full service configuration.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `yaml:"listen_addr"`

	// Provider selects the content provider: "gemini" or "scripted".
	Provider string `yaml:"provider"`

	// GeminiAPIKey authenticates generateContent and TTS calls.
	// Overridden by the GEMINI_API_KEY environment variable.
	GeminiAPIKey string `yaml:"gemini_api_key"`

	// AuthBaseURL is the account service base URL.
	AuthBaseURL string `yaml:"auth_base_url"`

	// Snapshot selects the snapshot backend: "file", "memory" or "redis".
	Snapshot string `yaml:"snapshot"`

	// SnapshotPath is the directory used by the file backend.
	SnapshotPath string `yaml:"snapshot_path"`

	// RedisAddr is the redis address used by the redis backend.
	RedisAddr string `yaml:"redis_addr"`

	// RedisPrefix namespaces redis keys.
	RedisPrefix string `yaml:"redis_prefix"`

	// TurnDelay is the pause between consecutive debate turns.
	TurnDelay time.Duration `yaml:"turn_delay"`

	// GuestQuota is the number of AI turns allowed before guests must
	// authenticate.
	GuestQuota int `yaml:"guest_quota"`

	// Language is the default content language ("en" or "zh").
	Language types.Language `yaml:"language"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		ListenAddr:   DefaultListenAddr,
		Provider:     ProviderGemini,
		AuthBaseURL:  DefaultAuthBaseURL,
		Snapshot:     SnapshotFile,
		SnapshotPath: DefaultSnapshotPath,
		RedisPrefix:  DefaultRedisPrefix,
		TurnDelay:    DefaultTurnDelay,
		GuestQuota:   DefaultGuestQuota,
		Language:     types.LangEN,
	}
}

// Load reads the YAML config at path, applies defaults for omitted fields
// and environment overrides, and validates the result. An empty path
// returns the defaults (plus environment overrides).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	fillDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("ARENA_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("ARENA_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("ARENA_AUTH_URL"); v != "" {
		cfg.AuthBaseURL = v
	}
}

func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.Provider == "" {
		cfg.Provider = def.Provider
	}
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = def.AuthBaseURL
	}
	if cfg.Snapshot == "" {
		cfg.Snapshot = def.Snapshot
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = def.SnapshotPath
	}
	if cfg.RedisPrefix == "" {
		cfg.RedisPrefix = def.RedisPrefix
	}
	if cfg.TurnDelay <= 0 {
		cfg.TurnDelay = def.TurnDelay
	}
	if cfg.GuestQuota <= 0 {
		cfg.GuestQuota = def.GuestQuota
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
}

// Validate checks enum fields and cross-field requirements.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderScripted:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	switch c.Snapshot {
	case SnapshotFile, SnapshotMemory, SnapshotRedis:
	default:
		return fmt.Errorf("unknown snapshot backend %q", c.Snapshot)
	}

	if c.Snapshot == SnapshotRedis && c.RedisAddr == "" {
		return fmt.Errorf("snapshot backend %q requires redis_addr", c.Snapshot)
	}

	if c.Provider == ProviderGemini && c.GeminiAPIKey == "" {
		return fmt.Errorf("provider %q requires gemini_api_key or GEMINI_API_KEY", c.Provider)
	}

	switch c.Language {
	case types.LangEN, types.LangZH:
	default:
		return fmt.Errorf("unknown language %q", c.Language)
	}

	return nil
}
