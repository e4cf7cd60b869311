package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"lookforjob/internal/domain"
)

const (
	// DefaultBaseURL is the production LookForJob API
	DefaultBaseURL = "https://lookforjob.naufalsidiq.xyz/api"

	fileName = "config.toml"
	appDir   = "lookforjob"
)

// Environment overrides
const (
	EnvAPIURL     = "LOOKFORJOB_API_URL"
	EnvToken      = "LOOKFORJOB_TOKEN"
	EnvDebounceMS = "LOOKFORJOB_DEBOUNCE_MS"
)

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version"`
	API     APISettings     `toml:"api"`
	Search  SearchSettings  `toml:"search"`
	Cache   CacheSettings   `toml:"cache"`
	Log     LogSettings     `toml:"log"`
	Metrics MetricsSettings `toml:"metrics"`
}

// APISettings configures the backend client
type APISettings struct {
	BaseURL   string `toml:"base_url"`
	Token     string `toml:"token"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// SearchSettings configures the job search view
type SearchSettings struct {
	DebounceMS   int           `toml:"debounce_ms"`
	RememberLast bool          `toml:"remember_last"`
	Last         domain.Filter `toml:"last"`
}

// CacheSettings configures the posting detail cache
type CacheSettings struct {
	DetailTTLSeconds int `toml:"detail_ttl_s"`
}

// LogSettings configures the log file
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsSettings configures the optional Prometheus endpoint
type MetricsSettings struct {
	Addr string `toml:"addr"` // empty disables the endpoint
}

// Debounce returns the search quiescence window
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// Timeout returns the per-request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutMS) * time.Millisecond
}

// DetailTTL returns how long fetched postings stay cached
func (c *Config) DetailTTL() time.Duration {
	return time.Duration(c.Cache.DetailTTLSeconds) * time.Second
}

// Validate rejects settings the client cannot run with
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return errors.Wrapf(err, "invalid api.base_url %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return errors.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutMS <= 0 {
		return errors.Errorf("api.timeout_ms must be positive, got %d", c.API.TimeoutMS)
	}
	if c.Search.DebounceMS <= 0 {
		return errors.Errorf("search.debounce_ms must be positive, got %d", c.Search.DebounceMS)
	}
	if c.Cache.DetailTTLSeconds <= 0 {
		return errors.Errorf("cache.detail_ttl_s must be positive, got %d", c.Cache.DetailTTLSeconds)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service backed by an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultDir returns the directory holding the config and log files
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, appDir)
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(DefaultDir(), fileName)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when no file exists yet
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	// Config may hold an API token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:   DefaultBaseURL,
			TimeoutMS: 15000,
		},
		Search: SearchSettings{
			DebounceMS:   500,
			RememberLast: true,
		},
		Cache: CacheSettings{
			DetailTTLSeconds: 600,
		},
		Log: LogSettings{
			File:  filepath.Join(DefaultDir(), "lookforjob.log"),
			Level: "info",
		},
	}
}

// LoadDotEnv loads KEY=VALUE pairs from a .env file into the process
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load %s", path)
	}
	return nil
}

// ApplyEnv overlays LOOKFORJOB_* environment variables on cfg
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv(EnvDebounceMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s must be an integer", EnvDebounceMS)
		}
		cfg.Search.DebounceMS = ms
	}
	return nil
}
