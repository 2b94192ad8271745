package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/diogo/askgemini/internal/config"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open configuration menu",
		Long: `Interactive form to configure askgemini settings.

The API key itself is never stored; only the name of the environment
variable holding it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			form, values := newConfigForm(cfg, deps.Stdin, deps.Stdout)
			if !deps.IsTerminal(deps.Stdout) {
				form = form.WithAccessible(true)
			}
			if err := form.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(deps.Stderr, "Configuration unchanged")
					return nil
				}
				return fmt.Errorf("config form failed: %w", err)
			}

			updated, err := values.apply(cfg)
			if err != nil {
				return err
			}
			if err := config.SaveConfig(updated); err != nil {
				return err
			}

			path, _ := config.GetConfigPath()
			fmt.Fprintf(deps.Stdout, "Configuration saved to %s\n", path)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return showConfig(deps.Stdout, cfg)
		},
	})

	return cmd
}

// configValues are the form fields, kept as strings where huh edits text
type configValues struct {
	model           string
	backend         string
	baseURL         string
	timeout         string
	apiKeyEnv       string
	voiceCommand    string
	logFile         string
	copyToClipboard bool
	verbose         bool
}

func newConfigValues(cfg config.Config) *configValues {
	v := &configValues{
		model:           cfg.Model,
		backend:         cfg.Backend,
		baseURL:         cfg.BaseURL,
		apiKeyEnv:       cfg.APIKeyEnv,
		voiceCommand:    cfg.VoiceCommand,
		logFile:         cfg.LogFile,
		copyToClipboard: cfg.CopyToClipboard,
		verbose:         cfg.Verbose,
	}
	if cfg.RequestTimeoutSeconds > 0 {
		v.timeout = strconv.Itoa(cfg.RequestTimeoutSeconds)
	}
	return v
}

// apply copies the edited values onto cfg
func (v *configValues) apply(cfg config.Config) (config.Config, error) {
	timeout, err := parseTimeout(v.timeout)
	if err != nil {
		return cfg, err
	}
	if err := config.ValidateBackend(v.backend); err != nil {
		return cfg, err
	}

	cfg.Model = strings.TrimSpace(v.model)
	cfg.Backend = v.backend
	cfg.BaseURL = strings.TrimSpace(v.baseURL)
	cfg.RequestTimeoutSeconds = timeout
	cfg.APIKeyEnv = strings.TrimSpace(v.apiKeyEnv)
	cfg.VoiceCommand = strings.TrimSpace(v.voiceCommand)
	cfg.LogFile = strings.TrimSpace(v.logFile)
	cfg.CopyToClipboard = v.copyToClipboard
	cfg.Verbose = v.verbose
	return cfg, nil
}

// parseTimeout accepts an empty string (no timeout) or whole seconds
func parseTimeout(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid timeout %q: want whole seconds", s)
	}
	return n, nil
}

// newConfigForm builds the settings form bound to a configValues
func newConfigForm(cfg config.Config, in io.Reader, out io.Writer) (*huh.Form, *configValues) {
	v := newConfigValues(cfg)

	models := config.AvailableModels()
	if !containsString(models, v.model) {
		models = append(models, v.model)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Model").
				Options(huh.NewOptions(models...)...).
				Value(&v.model),
			huh.NewSelect[string]().
				Title("Backend").
				Description("rest talks to the HTTP API directly, sdk uses the Google Gen AI SDK").
				Options(huh.NewOptions(config.AvailableBackends()...)...).
				Value(&v.backend),
			huh.NewInput().
				Title("Base URL").
				Value(&v.baseURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("base URL is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Request timeout (seconds)").
				Description("Leave empty for no timeout").
				Value(&v.timeout).
				Validate(func(s string) error {
					_, err := parseTimeout(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("API key variable").
				Description("Environment variable holding the API key").
				Placeholder(config.DefaultAPIKeyEnv).
				Value(&v.apiKeyEnv),
			huh.NewInput().
				Title("Voice command").
				Description("Shell command that prints one spoken transcript").
				Value(&v.voiceCommand),
			huh.NewInput().
				Title("Log file").
				Description("Leave empty to log to stderr with --verbose").
				Value(&v.logFile),
			huh.NewConfirm().
				Title("Copy answers to the clipboard?").
				Value(&v.copyToClipboard),
			huh.NewConfirm().
				Title("Verbose logging?").
				Value(&v.verbose),
		),
	).
		WithInput(in).
		WithOutput(out)

	return form, v
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// showConfig prints the effective configuration with the key masked
func showConfig(w io.Writer, cfg config.Config) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	key := "(not set)"
	if k, err := config.APIKey(cfg); err == nil {
		key = config.MaskKey(k)
	}

	theme := config.ThemeDark
	if store, err := config.DefaultThemeStore(); err == nil {
		theme = store.Load()
	}

	timeout := "none"
	if d := cfg.RequestTimeout(); d > 0 {
		timeout = d.String()
	}

	voiceCommand := cfg.VoiceCommand
	if voiceCommand == "" {
		voiceCommand = "(not set)"
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "config file\t%s\n", path)
	fmt.Fprintf(tw, "model\t%s\n", cfg.Model)
	fmt.Fprintf(tw, "backend\t%s\n", cfg.Backend)
	fmt.Fprintf(tw, "base url\t%s\n", cfg.BaseURL)
	fmt.Fprintf(tw, "timeout\t%s\n", timeout)
	fmt.Fprintf(tw, "api key (%s)\t%s\n", cfg.APIKeyEnv, key)
	fmt.Fprintf(tw, "voice command\t%s\n", voiceCommand)
	fmt.Fprintf(tw, "copy to clipboard\t%t\n", cfg.CopyToClipboard)
	fmt.Fprintf(tw, "verbose\t%t\n", cfg.Verbose)
	fmt.Fprintf(tw, "theme\t%s\n", theme)
	return tw.Flush()
}
