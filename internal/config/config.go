// Package config handles configuration, credentials and persisted preferences for askgemini.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Backend names
const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

// Defaults
const (
	DefaultModel     = "gemini-2.0-flash"
	DefaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
)

// Config represents the user configuration
type Config struct {
	Model   string `json:"model"`
	Backend string `json:"backend"` // "rest" or "sdk"
	BaseURL string `json:"base_url"`
	// RequestTimeoutSeconds bounds a single request. 0 leaves the
	// transport default in place.
	RequestTimeoutSeconds int `json:"request_timeout_seconds,omitempty"`
	// APIKeyEnv names the environment variable holding the API key.
	// The key itself is never written to the config file.
	APIKeyEnv string `json:"api_key_env"`
	// VoiceCommand is a shell command printing one speech transcript on stdout.
	VoiceCommand    string `json:"voice_command,omitempty"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	Verbose         bool   `json:"verbose"`
	LogFile         string `json:"log_file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Model:     DefaultModel,
		Backend:   BackendREST,
		BaseURL:   DefaultBaseURL,
		APIKeyEnv: DefaultAPIKeyEnv,
	}
}

// RequestTimeout returns the request timeout as a duration
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GetConfigDir returns the configuration directory path.
// ASKGEMINI_HOME overrides the default ~/.askgemini.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("ASKGEMINI_HOME"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".askgemini"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetDefaultLogPath returns the log file used when the TUI owns the terminal
func GetDefaultLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "askgemini.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	normalize(&cfg)
	return cfg, nil
}

// applyEnv lets environment variables override file values
func applyEnv(cfg *Config) {
	if v := os.Getenv("ASKGEMINI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("ASKGEMINI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("ASKGEMINI_BACKEND"); v != "" {
		cfg.Backend = v
	}
}

// normalize fills blanks left by a partial config file
func normalize(cfg *Config) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendREST
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = DefaultAPIKeyEnv
	}
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// AvailableModels returns a list of suggested model names
func AvailableModels() []string {
	return []string{
		"gemini-2.0-flash",
		"gemini-2.5-flash",
		"gemini-2.5-pro",
	}
}

// AvailableBackends returns the supported transport backends
func AvailableBackends() []string {
	return []string{BackendREST, BackendSDK}
}

// ValidateBackend checks a backend name
func ValidateBackend(name string) error {
	for _, b := range AvailableBackends() {
		if b == name {
			return nil
		}
	}
	return fmt.Errorf("unknown backend %q (want one of %v)", name, AvailableBackends())
}
