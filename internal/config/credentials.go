package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/askgemini/internal/errors"
)

// LoadDotEnv merges .env files from the working directory and the config
// directory into the process environment. Variables already set win.
// Missing files are not an error.
func LoadDotEnv() error {
	candidates := []string{".env"}
	if dir, err := GetConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// APIKey returns the API key from the environment variable named by cfg.
func APIKey(cfg Config) (string, error) {
	name := cfg.APIKeyEnv
	if name == "" {
		name = DefaultAPIKeyEnv
	}

	key := strings.TrimSpace(os.Getenv(name))
	if key == "" {
		return "", fmt.Errorf("%w: set %s in the environment or a .env file", apierrors.ErrMissingAPIKey, name)
	}
	return key, nil
}

// MaskKey hides all but the last four characters of a credential
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
