// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr          string `yaml:"addr"`
		PublicBaseURL string `yaml:"public_base_url"`
		UploadsDir    string `yaml:"uploads_dir"`
	} `yaml:"server"`

	RabbitMQ struct {
		URL string `yaml:"url"`
	} `yaml:"rabbitmq"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Workers int `yaml:"workers"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		OIDC      struct {
			Issuer       string `yaml:"issuer"`
			ClientID     string `yaml:"client_id"`
			ClientSecret string `yaml:"client_secret"`
			RedirectURL  string `yaml:"redirect_url"`
		} `yaml:"oidc"`
	} `yaml:"auth"`

	Zkey struct {
		ServiceURL     string   `yaml:"service_url"`
		WalletLinkBase string   `yaml:"wallet_link_base"`
		Locales        []string `yaml:"locales"`
		RatePerMinute  int      `yaml:"rate_per_minute"`
	} `yaml:"zkey"`

	Booking struct {
		ServiceURL string `yaml:"service_url"`
		APIKey     string `yaml:"api_key"`
	} `yaml:"booking"`

	Portal struct {
		APIURL string `yaml:"api_url"`
	} `yaml:"portal"`

	Contacts struct {
		DefaultCountryCode string `yaml:"default_country_code"`
	} `yaml:"contacts"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// LoadConfig reads the YAML file at path, then applies .env and process
// environment overrides. A missing file is not an error when the
// environment provides the rest.
func LoadConfig(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is LoadConfig without validation, for tools that need only part of
// the configuration.
func Read(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"DATABASE_URL":        &cfg.Database.URL,
		"RABBITMQ_URL":        &cfg.RabbitMQ.URL,
		"JWT_SECRET":          &cfg.Auth.JWTSecret,
		"ZKEY_SERVICE_URL":    &cfg.Zkey.ServiceURL,
		"BOOKING_SERVICE_URL": &cfg.Booking.ServiceURL,
		"BOOKING_API_KEY":     &cfg.Booking.APIKey,
		"PORTAL_API_URL":      &cfg.Portal.APIURL,
		"PUBLIC_BASE_URL":     &cfg.Server.PublicBaseURL,
		"OIDC_ISSUER":         &cfg.Auth.OIDC.Issuer,
		"OIDC_CLIENT_ID":      &cfg.Auth.OIDC.ClientID,
		"OIDC_CLIENT_SECRET":  &cfg.Auth.OIDC.ClientSecret,
		"LOG_LEVEL":           &cfg.Log.Level,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("WORKERS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.PublicBaseURL == "" {
		cfg.Server.PublicBaseURL = "http://localhost:8080"
	}
	if cfg.Server.UploadsDir == "" {
		cfg.Server.UploadsDir = "uploads"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if len(cfg.Zkey.Locales) == 0 {
		cfg.Zkey.Locales = []string{"en", "id"}
	}
	if cfg.Zkey.RatePerMinute <= 0 {
		cfg.Zkey.RatePerMinute = 10
	}
	if cfg.Contacts.DefaultCountryCode == "" {
		cfg.Contacts.DefaultCountryCode = "62"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	switch {
	case c.Database.URL == "":
		return errors.New("config: database.url is required")
	case c.RabbitMQ.URL == "":
		return errors.New("config: rabbitmq.url is required")
	case c.Auth.JWTSecret == "":
		return errors.New("config: auth.jwt_secret is required")
	case c.Zkey.ServiceURL == "":
		return errors.New("config: zkey.service_url is required")
	}
	return nil
}

// OIDCEnabled reports whether dashboard login through an OIDC issuer is
// configured.
func (c *Config) OIDCEnabled() bool {
	return c.Auth.OIDC.Issuer != "" && c.Auth.OIDC.ClientID != ""
}
