package render

import "github.com/diogo/askgemini/internal/config"

// LoadOptionsFromPreferences loads render options from the persisted theme.
// A missing preference file yields the dark theme.
func LoadOptionsFromPreferences() Options {
	opts := DefaultOptions()

	store, err := config.DefaultThemeStore()
	if err == nil {
		opts.Theme = store.Load()
	}
	return opts
}

// LoadOptionsFromPreferencesWithWidth loads options with a specific width.
func LoadOptionsFromPreferencesWithWidth(width int) Options {
	opts := LoadOptionsFromPreferences()
	opts.Width = width
	return opts
}
