package authclient

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// AppConfig is the environment-driven configuration for the client. Every
// field maps to a RENTHUB_* variable; the per-role frontend URLs are the
// hard-redirect destinations of the separately deployed shell applications.
type AppConfig struct {
	APIBaseURL     string
	LoginRoute     string
	LandingRoute   string
	TokenFile      string
	RequestTimeout time.Duration
	GoogleClientID string

	AdminFrontendURL    string
	LandlordFrontendURL string
	TenantFrontendURL   string

	Debug bool
}

var _ Config = (*AppConfig)(nil)

// LoadConfig reads configuration from RENTHUB_* environment variables,
// falling back to development defaults.
func LoadConfig() (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("RENTHUB")
	v.AutomaticEnv()

	v.SetDefault("api_base_url", "http://localhost:8000/api/v1")
	v.SetDefault("login_route", "/login")
	v.SetDefault("landing_route", "/")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("token_file", "")
	v.SetDefault("google_client_id", "")
	v.SetDefault("admin_frontend_url", "")
	v.SetDefault("landlord_frontend_url", "")
	v.SetDefault("tenant_frontend_url", "")
	v.SetDefault("debug", false)

	cfg := &AppConfig{
		APIBaseURL:          v.GetString("api_base_url"),
		LoginRoute:          v.GetString("login_route"),
		LandingRoute:        v.GetString("landing_route"),
		TokenFile:           v.GetString("token_file"),
		RequestTimeout:      v.GetDuration("request_timeout"),
		GoogleClientID:      v.GetString("google_client_id"),
		AdminFrontendURL:    v.GetString("admin_frontend_url"),
		LandlordFrontendURL: v.GetString("landlord_frontend_url"),
		TenantFrontendURL:   v.GetString("tenant_frontend_url"),
		Debug:               v.GetBool("debug"),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("config: api base url must not be empty")
	}

	if cfg.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve token file location: %w", err)
		}
		cfg.TokenFile = filepath.Join(dir, "renthub", "tokens.json")
	}

	return cfg, nil
}

func (c *AppConfig) GetAPIBaseURL() string           { return c.APIBaseURL }
func (c *AppConfig) GetLoginRoute() string           { return c.LoginRoute }
func (c *AppConfig) GetLandingRoute() string         { return c.LandingRoute }
func (c *AppConfig) GetTokenFile() string            { return c.TokenFile }
func (c *AppConfig) GetRequestTimeout() time.Duration { return c.RequestTimeout }
func (c *AppConfig) GetGoogleClientID() string       { return c.GoogleClientID }
func (c *AppConfig) GetAdminFrontendURL() string     { return c.AdminFrontendURL }
func (c *AppConfig) GetLandlordFrontendURL() string  { return c.LandlordFrontendURL }
func (c *AppConfig) GetTenantFrontendURL() string    { return c.TenantFrontendURL }
func (c *AppConfig) GetDebug() bool                  { return c.Debug }
