package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// Session store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// legacySecretEnv is honored when SESSION_SECRET is unset.
const legacySecretEnv = "FLASK_SECRET"

// Config represents the application configuration loaded from a TOML file and overlaid with environment variables.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Provider    ProviderConfig    `toml:"provider"`
	Session     SessionConfig     `toml:"session"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains the public client registration used for the PKCE flow.
//
// No client secret: the authorization code is bound to the code verifier instead.
type SpotifyConfig struct {
	ClientID    string   `toml:"client_id" env:"SPOTIFY_CLIENT_ID"`
	RedirectURI string   `toml:"redirect_uri" env:"SPOTIFY_REDIRECT_URI"`
	Scopes      []string `toml:"scopes"`
}

// ProviderConfig holds the upstream endpoints. Defaults point at Spotify.
type ProviderConfig struct {
	AuthURL    string `toml:"auth_url" env:"GLASS_AUTH_URL"`
	TokenURL   string `toml:"token_url" env:"GLASS_TOKEN_URL"`
	APIBaseURL string `toml:"api_base_url" env:"GLASS_API_BASE_URL"`
}

// SessionConfig controls the browser session and where its payload lives.
type SessionConfig struct {
	Secret     string        `toml:"secret" env:"SESSION_SECRET"`
	Store      string        `toml:"store" env:"GLASS_SESSION_STORE"`
	CookieName string        `toml:"cookie_name"`
	Lifetime   time.Duration `toml:"lifetime" env:"GLASS_SESSION_LIFETIME"`
	RedisURL   string        `toml:"redis_url" env:"GLASS_REDIS_URL"`
}

// DatabaseConfig contains database connection settings for the sqlite session store.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"GLASS_DATABASE_PATH"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string  `toml:"host" env:"GLASS_HOST"`
	Port      int     `toml:"port" env:"PORT"`
	AuthRate  float64 `toml:"auth_rate"`
	AuthBurst int     `toml:"auth_burst"`
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `toml:"level" env:"GLASS_LOG_LEVEL"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays values from environ (KEY=value pairs, as returned by [os.Environ]) onto the config.
func (c *Config) ApplyEnv(environ []string) error {
	vars := env.ToMap(environ)
	if err := env.ParseWithOptions(c, env.Options{Environment: vars}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, ok := vars["SESSION_SECRET"]; !ok {
		if legacy, ok := vars[legacySecretEnv]; ok && legacy != "" {
			c.Session.Secret = legacy
		}
	}
	return nil
}

// Validate reports the first setting that would prevent the server from starting.
func (c *Config) Validate() error {
	switch {
	case c.Credentials.Spotify.ClientID == "":
		return fmt.Errorf("%w: spotify client_id is required", ErrMissingCredentials)
	case c.Credentials.Spotify.RedirectURI == "":
		return fmt.Errorf("%w: spotify redirect_uri is required", ErrInvalidConfig)
	case c.Session.Secret == "":
		return fmt.Errorf("%w: session secret is required", ErrInvalidConfig)
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}

	switch c.Session.Store {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("%w: unknown session store %q", ErrInvalidConfig, c.Session.Store)
	}

	if c.Session.Store == StoreSQLite && c.Database.Path == "" {
		return fmt.Errorf("%w: database path is required for the sqlite session store", ErrInvalidConfig)
	}
	if c.Session.Store == StoreRedis && c.Session.RedisURL == "" {
		return fmt.Errorf("%w: redis_url is required for the redis session store", ErrInvalidConfig)
	}

	return nil
}
