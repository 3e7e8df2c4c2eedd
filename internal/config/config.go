package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all settings for the storefront. Values are loaded from
// environment variables, with an optional .env file for local development.
type Config struct {
	Port         string `mapstructure:"PORT"`
	APIBaseURL   string `mapstructure:"API_BASE_URL"`
	DBPath       string `mapstructure:"DB_PATH"`
	ThumbDir     string `mapstructure:"THUMB_DIR"`
	CookieDomain string `mapstructure:"COOKIE_DOMAIN"`
	CookieSecure bool   `mapstructure:"COOKIE_SECURE"`

	CSRFKey    []byte
	SessionKey []byte
}

func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8585")
	viper.SetDefault("API_BASE_URL", "http://localhost:5000")
	viper.SetDefault("DB_PATH", "./jetstores.db")
	viper.SetDefault("THUMB_DIR", "static/thumbs")
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("COOKIE_SECURE", false)

	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("API_BASE_URL")
	_ = viper.BindEnv("DB_PATH")
	_ = viper.BindEnv("THUMB_DIR")
	_ = viper.BindEnv("COOKIE_DOMAIN")
	_ = viper.BindEnv("COOKIE_SECURE")

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.APIBaseURL), "/")

	// CSRF Key (critical for security)
	cfg.CSRFKey = loadKey("CSRF_KEY")
	// Session Key (critical for security)
	cfg.SessionKey = loadKey("SESSION_KEY")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", cfg.Port)
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey decodes a base64 key from the environment, generating a random one
// for development when the variable is missing or too short.
func loadKey(name string) []byte {
	keyStr := viper.GetString(name)
	if keyStr == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. This key will change on each restart. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(keyStr)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil { // Use crypto/rand
		slog.Error("Failed to read random bytes", "error", err)
		// Fallback to a less secure random string if crypto/rand fails
		// This fallback is only for panic prevention, not for production use
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
