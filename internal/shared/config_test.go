package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}

		if config.Session.Store != StoreMemory {
			t.Errorf("expected memory session store, got %s", config.Session.Store)
		}

		if config.Session.Lifetime != 24*time.Hour {
			t.Errorf("expected 24h session lifetime, got %v", config.Session.Lifetime)
		}

		if config.Provider.TokenURL != "https://accounts.spotify.com/api/token" {
			t.Errorf("unexpected token url %s", config.Provider.TokenURL)
		}

		if len(config.Credentials.Spotify.Scopes) != 5 {
			t.Errorf("expected 5 default scopes, got %d", len(config.Credentials.Spotify.Scopes))
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
port = 8443

[session]
store = "sqlite"
lifetime = "2h"

[credentials.spotify]
client_id = "test_client_id"
redirect_uri = "https://localhost:8443/callback"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Port != 8443 {
			t.Errorf("expected server port 8443, got %d", config.Server.Port)
		}
		if config.Session.Lifetime != 2*time.Hour {
			t.Errorf("expected 2h lifetime, got %v", config.Session.Lifetime)
		}
		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Server.Host != "0.0.0.0" {
			t.Errorf("expected default host to survive a partial file, got %q", config.Server.Host)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Run("overrides file values", func(t *testing.T) {
			config := DefaultConfig()
			err := config.ApplyEnv([]string{
				"SPOTIFY_CLIENT_ID=env_client",
				"SPOTIFY_REDIRECT_URI=https://example.com/callback",
				"SESSION_SECRET=s3cret",
				"PORT=7000",
				"GLASS_SESSION_STORE=redis",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if config.Credentials.Spotify.ClientID != "env_client" {
				t.Errorf("expected env client id, got %s", config.Credentials.Spotify.ClientID)
			}
			if config.Credentials.Spotify.RedirectURI != "https://example.com/callback" {
				t.Errorf("expected env redirect uri, got %s", config.Credentials.Spotify.RedirectURI)
			}
			if config.Session.Secret != "s3cret" {
				t.Errorf("expected env secret, got %s", config.Session.Secret)
			}
			if config.Server.Port != 7000 {
				t.Errorf("expected port 7000, got %d", config.Server.Port)
			}
			if config.Session.Store != StoreRedis {
				t.Errorf("expected redis store, got %s", config.Session.Store)
			}
		})

		t.Run("unset variables keep file values", func(t *testing.T) {
			config := DefaultConfig()
			if err := config.ApplyEnv(nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Server.Port != 5000 {
				t.Errorf("expected port 5000, got %d", config.Server.Port)
			}
		})

		t.Run("legacy secret variable", func(t *testing.T) {
			config := DefaultConfig()
			if err := config.ApplyEnv([]string{"FLASK_SECRET=legacy"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Session.Secret != "legacy" {
				t.Errorf("expected legacy secret, got %s", config.Session.Secret)
			}
		})

		t.Run("SESSION_SECRET wins over legacy", func(t *testing.T) {
			config := DefaultConfig()
			if err := config.ApplyEnv([]string{"FLASK_SECRET=legacy", "SESSION_SECRET=current"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Session.Secret != "current" {
				t.Errorf("expected current secret, got %s", config.Session.Secret)
			}
		})

		t.Run("malformed port", func(t *testing.T) {
			config := DefaultConfig()
			err := config.ApplyEnv([]string{"PORT=eighty"})
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("Validate", func(t *testing.T) {
		valid := func() *Config {
			c := DefaultConfig()
			c.Credentials.Spotify.ClientID = "client"
			return c
		}

		tc := []struct {
			name    string
			mutate  func(*Config)
			wantErr error
		}{
			{name: "valid", mutate: func(*Config) {}},
			{name: "missing client id", mutate: func(c *Config) { c.Credentials.Spotify.ClientID = "" }, wantErr: ErrMissingCredentials},
			{name: "missing redirect", mutate: func(c *Config) { c.Credentials.Spotify.RedirectURI = "" }, wantErr: ErrInvalidConfig},
			{name: "missing secret", mutate: func(c *Config) { c.Session.Secret = "" }, wantErr: ErrInvalidConfig},
			{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: ErrInvalidConfig},
			{name: "unknown store", mutate: func(c *Config) { c.Session.Store = "etcd" }, wantErr: ErrInvalidConfig},
			{name: "sqlite without path", mutate: func(c *Config) {
				c.Session.Store = StoreSQLite
				c.Database.Path = ""
			}, wantErr: ErrInvalidConfig},
			{name: "redis without url", mutate: func(c *Config) {
				c.Session.Store = StoreRedis
				c.Session.RedisURL = ""
			}, wantErr: ErrInvalidConfig},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				c := valid()
				tt.mutate(c)
				err := c.Validate()
				if tt.wantErr == nil {
					if err != nil {
						t.Errorf("expected no error, got %v", err)
					}
					return
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})

	t.Run("Addr", func(t *testing.T) {
		s := ServerConfig{Host: "127.0.0.1", Port: 5000}
		if s.Addr() != "127.0.0.1:5000" {
			t.Errorf("expected 127.0.0.1:5000, got %s", s.Addr())
		}
	})
}
