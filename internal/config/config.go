package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultDatabasePath is used when DATABASE_PATH is not set.
const DefaultDatabasePath = "./segmentor.db"

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Auth
		Upload
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	UI struct {
		TemplatesPath string
		StaticPath    string
	}

	Auth struct {
		SecretKey     string        // HMAC key for signing access tokens
		TokenTTL      time.Duration // Lifetime embedded in issued tokens
		CookieMaxAge  int           // Seconds; independent of TokenTTL
		BcryptCost    int
		SecureCookies bool // Set to false for local dev without HTTPS
		CSRFSecret    string
	}

	Upload struct {
		MaxBytes int64
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// Auth defaults
	v.SetDefault("auth_secret_key", "")
	v.SetDefault("auth_token_ttl", "15m")
	v.SetDefault("auth_cookie_max_age", 3600)
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", false)
	v.SetDefault("auth_csrf_secret", "")

	// Upload defaults
	v.SetDefault("max_upload_bytes", 10*1024*1024)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Auth: Auth{
			SecretKey:     v.GetString("AUTH_SECRET_KEY"),
			TokenTTL:      v.GetDuration("AUTH_TOKEN_TTL"),
			CookieMaxAge:  v.GetInt("AUTH_COOKIE_MAX_AGE"),
			BcryptCost:    v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies: v.GetBool("AUTH_SECURE_COOKIES"),
			CSRFSecret:    v.GetString("AUTH_CSRF_SECRET"),
		},
		Upload: Upload{
			MaxBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		},
	}
}
