// Package config loads valence settings from YAML, an optional .env file and
// VALENCE_* environment variables, in increasing order of precedence.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/valence/pkg/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VALENCE_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the full valence configuration, loaded from defaults, an
// optional YAML file and VALENCE_ environment overrides.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	History   HistoryConfig   `yaml:"history"`
	Awareness AwarenessConfig `yaml:"awareness"`
	Store     StoreConfig     `yaml:"store"`
	HTTP      HTTPConfig      `yaml:"http"`
}

// LogConfig selects the log level and the text or json format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	MaxSize int `yaml:"max_size"`
}

// AwarenessConfig sets the proximity distance used by overlap detection.
type AwarenessConfig struct {
	Distance float64 `yaml:"distance"`
}

// StoreConfig selects the document backend and its persistence middleware.
type StoreConfig struct {
	Backend       string        `yaml:"backend"`
	Path          string        `yaml:"path"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	RedisPrefix   string        `yaml:"redis_prefix"`
	RedisTTL      time.Duration `yaml:"redis_ttl"`

	// EncryptionKey is a base64 AES-256 key. When set, node data is
	// encrypted at rest. FallbackKeys are tried on load after it.
	EncryptionKey string   `yaml:"encryption_key"`
	FallbackKeys  []string `yaml:"fallback_keys"`
	// MaskKeys are regular expressions; matching node data keys are
	// masked before saving.
	MaskKeys []string `yaml:"mask_keys"`
}

// Keys decodes the encryption keys. active is nil when encryption is off.
func (s StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		return nil, nil, nil
	}
	decode := func(name, v string) ([]byte, error) {
		k, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(k) != 32 {
			return nil, fmt.Errorf("%s must decode to 32 bytes, got %d", name, len(k))
		}
		return k, nil
	}
	if active, err = decode("store.encryption_key", s.EncryptionKey); err != nil {
		return nil, nil, err
	}
	for i, v := range s.FallbackKeys {
		k, err := decode(fmt.Sprintf("store.fallback_keys[%d]", i), v)
		if err != nil {
			return nil, nil, err
		}
		fallback = append(fallback, k)
	}
	return active, fallback, nil
}

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:       LogConfig{Level: "info", Format: "text"},
		History:   HistoryConfig{MaxSize: domain.DefaultMaxHistory},
		Awareness: AwarenessConfig{Distance: domain.DefaultAwarenessDistance},
		Store:     StoreConfig{Backend: BackendFile, Path: ".valence/documents", RedisAddr: "localhost:6379"},
		HTTP:      HTTPConfig{Addr: ":8080"},
	}
}

// Load reads path (optional, empty skips it) and ".env" from the working
// directory, then applies the process environment.
func Load(path string) (Config, error) {
	return LoadFrom(path, ".env", os.LookupEnv)
}

// LoadFrom is Load with an explicit env file and lookup. Real environment
// values win over the env file.
func LoadFrom(path, envFile string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = values
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[EnvPrefix+key]
		return v, ok
	}
	if err := cfg.applyEnv(get); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(get func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("STORE_BACKEND", &c.Store.Backend)
	str("STORE_PATH", &c.Store.Path)
	str("REDIS_ADDR", &c.Store.RedisAddr)
	str("REDIS_PASSWORD", &c.Store.RedisPassword)
	str("REDIS_PREFIX", &c.Store.RedisPrefix)
	str("HTTP_ADDR", &c.HTTP.Addr)
	str("STORE_ENCRYPTION_KEY", &c.Store.EncryptionKey)

	list := func(key string, dst *[]string) {
		if v, ok := get(key); ok {
			*dst = nil
			for _, item := range strings.Split(v, ",") {
				if item = strings.TrimSpace(item); item != "" {
					*dst = append(*dst, item)
				}
			}
		}
	}
	list("STORE_FALLBACK_KEYS", &c.Store.FallbackKeys)
	list("STORE_MASK_KEYS", &c.Store.MaskKeys)

	if v, ok := get("HISTORY_MAX_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sHISTORY_MAX_SIZE: %w", EnvPrefix, err)
		}
		c.History.MaxSize = n
	}
	if v, ok := get("AWARENESS_DISTANCE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sAWARENESS_DISTANCE: %w", EnvPrefix, err)
		}
		c.Awareness.Distance = f
	}
	if v, ok := get("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		c.Store.RedisDB = n
	}
	if v, ok := get("REDIS_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_TTL: %w", EnvPrefix, err)
		}
		c.Store.RedisTTL = d
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.History.MaxSize < 1 {
		return fmt.Errorf("history.max_size must be at least 1, got %d", c.History.MaxSize)
	}
	if c.Awareness.Distance < 0 {
		return fmt.Errorf("awareness.distance must not be negative, got %v", c.Awareness.Distance)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return err
	}
	for _, p := range c.Store.MaskKeys {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("store.mask_keys: %w", err)
		}
	}
	return nil
}
