package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Theme is the two-valued presentation preference
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ThemeKey is the preference key the theme is stored under
const ThemeKey = "chatbot-theme"

// ParseTheme validates a theme name
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q (want dark or light)", s)
	}
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeStore persists the theme in a small key-value JSON file
type ThemeStore struct {
	path string
	mu   sync.Mutex
}

// NewThemeStore creates a store backed by the given file
func NewThemeStore(path string) *ThemeStore {
	return &ThemeStore{path: path}
}

// DefaultThemeStore returns the store at ~/.askgemini/prefs.json
func DefaultThemeStore() (*ThemeStore, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewThemeStore(filepath.Join(dir, "prefs.json")), nil
}

// Load reads the persisted theme, defaulting to dark when absent or invalid
func (s *ThemeStore) Load() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.read()
	if err != nil {
		return ThemeDark
	}
	theme, err := ParseTheme(prefs[ThemeKey])
	if err != nil {
		return ThemeDark
	}
	return theme
}

// Save writes the theme, keeping any other keys in the file
func (s *ThemeStore) Save(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.read()
	if err != nil {
		prefs = map[string]string{}
	}
	prefs[ThemeKey] = string(theme)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// Path returns the backing file path
func (s *ThemeStore) Path() string {
	return s.path
}

func (s *ThemeStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	prefs := map[string]string{}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
