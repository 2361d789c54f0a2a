package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port       string `mapstructure:"PORT"`
	Env        string `mapstructure:"ENV"`
	BaseURL    string `mapstructure:"BASE_URL"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBMaxConns int32  `mapstructure:"DB_MAX_CONNS"`

	SessionSecret string `mapstructure:"SESSION_SECRET"`

	HealthIDClientID       string `mapstructure:"HEALTHID_CLIENT_ID"`
	HealthIDClientSecret   string `mapstructure:"HEALTHID_CLIENT_SECRET"`
	HealthIDBaseURL        string `mapstructure:"HEALTHID_BASE_URL"`
	ProviderIDClientID     string `mapstructure:"PROVIDERID_CLIENT_ID"`
	ProviderIDClientSecret string `mapstructure:"PROVIDERID_CLIENT_SECRET"`
	ProviderIDBaseURL      string `mapstructure:"PROVIDERID_BASE_URL"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("BASE_URL", "http://localhost:8000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "episurv")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("HEALTHID_BASE_URL", "https://uat-moph.id.th")
	v.SetDefault("PROVIDERID_BASE_URL", "https://uat-provider.id.th")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("BASE_URL")
	v.BindEnv("DB_HOST")
	v.BindEnv("DB_PORT")
	v.BindEnv("DB_USER")
	v.BindEnv("DB_PASSWORD")
	v.BindEnv("DB_NAME")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("HEALTHID_CLIENT_ID")
	v.BindEnv("HEALTHID_CLIENT_SECRET")
	v.BindEnv("HEALTHID_BASE_URL")
	v.BindEnv("PROVIDERID_CLIENT_ID")
	v.BindEnv("PROVIDERID_CLIENT_SECRET")
	v.BindEnv("PROVIDERID_BASE_URL")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DatabaseURL assembles a pgx connection string from the discrete DB_*
// values. The password is URL-escaped so credentials with reserved
// characters survive the round trip.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	return u.String()
}

// Validate checks that the configuration is safe to run. Every identity
// provider credential and the session signing secret are required up front:
// a missing secret aborts startup instead of failing the first sign-in.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"SESSION_SECRET", c.SessionSecret},
		{"HEALTHID_CLIENT_ID", c.HealthIDClientID},
		{"HEALTHID_CLIENT_SECRET", c.HealthIDClientSecret},
		{"PROVIDERID_CLIENT_ID", c.ProviderIDClientID},
		{"PROVIDERID_CLIENT_SECRET", c.ProviderIDClientSecret},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	if c.DBHost == "" || c.DBName == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute URL, got %q", c.BaseURL)
	}

	return nil
}
