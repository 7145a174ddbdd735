package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application, loaded once at
// startup from the environment (§6 Configuration).
type Config struct {
	Database   DatabaseConfig
	Providers  ProvidersConfig
	Server     ServerConfig
	Session    SessionConfig
	Firebase   FirebaseConfig
	Zoom       ZoomConfig
	AdminEmail string
	MockMode   bool
	AppURL     string
}

// DatabaseConfig holds the embedded-store configuration.
type DatabaseConfig struct {
	Path string
}

// ProvidersConfig holds the external-provider API keys; an empty key means
// that provider is unconfigured (§6, §7 UpstreamError / 501).
type ProvidersConfig struct {
	TranscribeAPIKey string
	ExtractAPIKey    string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// SessionConfig holds the session-cookie secret; mandatory at startup.
type SessionConfig struct {
	Secret string
}

// FirebaseConfig configures the best-effort audio archival sink.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsPath string
	Bucket          string
}

// ZoomConfig holds the OAuth app credentials used to refresh a user's
// cached Zoom access token (§4.I). Empty ClientID/ClientSecret disables
// cloud-recording import.
type ZoomConfig struct {
	ClientID     string
	ClientSecret string
}

// Load loads configuration from environment variables, failing fast when a
// mandatory key is absent.
func Load() (*Config, error) {
	// Load .env file if it exists; no need to handle errors, absence just
	// means the process relies on the real environment.
	godotenv.Load()

	secret := getEnv("SESSION_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "scribe.db"),
		},
		Providers: ProvidersConfig{
			TranscribeAPIKey: getEnv("TRANSCRIBE_API_KEY", ""),
			ExtractAPIKey:    getEnv("EXTRACT_API_KEY", ""),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Session: SessionConfig{
			Secret: secret,
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			Bucket:          getEnv("FIREBASE_STORAGE_BUCKET", ""),
		},
		Zoom: ZoomConfig{
			ClientID:     getEnv("ZOOM_CLIENT_ID", ""),
			ClientSecret: getEnv("ZOOM_CLIENT_SECRET", ""),
		},
		AdminEmail: strings.TrimSpace(strings.ToLower(getEnv("ADMIN_EMAIL", ""))),
		MockMode:   getEnvBool("MOCK_MODE", false),
		AppURL:     getEnv("APP_URL", "http://localhost:8080"),
	}, nil
}

// IsAdmin compares an email against the configured admin email, trimmed and
// case-insensitive (§9 Admin identification).
func (c *Config) IsAdmin(email string) bool {
	if c.AdminEmail == "" {
		return false
	}
	return strings.TrimSpace(strings.ToLower(email)) == c.AdminEmail
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
