package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings for the CLI and the HTTP API.
type Config struct {
	DBPath         string
	LogCalls       bool
	Addr           string
	AllowedOrigins []string
}

// DefaultConfig returns the configuration used when no variables are set.
// The database lives under the user's home directory when it can be found.
func DefaultConfig() Config {
	dbPath := filepath.Join(".tdee", "tdee.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".tdee", "tdee.db")
	}
	return Config{
		DBPath:         dbPath,
		Addr:           "127.0.0.1:8080",
		AllowedOrigins: []string{"*"},
	}
}

// LoadConfig reads configuration from environment variables, falling back to
// defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TDEE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TDEE_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TDEE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TDEE_ALLOWED_ORIGINS"); v != "" {
		if origins := splitList(v); len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}
	return cfg
}

// LoadDotEnv loads variables from the given files (default ".env") into the
// process environment. Variables already set are not overridden and missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
