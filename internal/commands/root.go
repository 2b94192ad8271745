// Package commands provides CLI commands for askgemini.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/diogo/askgemini/internal/config"
	"github.com/diogo/askgemini/internal/render"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds the flag values shared by the commands
type rootOptions struct {
	// Global flags
	model   string
	backend string
	verbose bool

	// One-shot flags
	output    string
	file      string
	html      bool
	raw       bool
	noSuggest bool
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "askgemini [question]",
		Short: "Ask Gemini questions from the terminal",
		Long: `askgemini sends a question to Google Gemini, shows the formatted answer
and suggests follow-up questions. Short factual questions get short answers.

The API key is read from GEMINI_API_KEY (or the variable named by
api_key_env in the config), optionally loaded from a .env file.

Examples:
  askgemini chat                        Start the interactive session
  askgemini "What is Go?"               Ask a single question
  askgemini -f question.txt             Read the question from a file
  echo "Explain goroutines" | askgemini Read the question from stdin
  askgemini "Hello" -o answer.txt       Save the answer to a file
  askgemini theme toggle                Switch between dark and light
  askgemini config                      Configure settings`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for version flag
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "askgemini %s (built %s)\n", Version, BuildTime)
				return nil
			}

			question, ok, err := readQuestion(deps, opts, args)
			if err != nil {
				return err
			}
			if !ok {
				// No input - show help
				return cmd.Help()
			}
			return runQuery(cmd.Context(), deps, opts, question)
		},
	}

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.model, "model", "m", "", "Model to use (e.g., gemini-2.5-flash)")
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "Transport backend (rest, sdk)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Write debug logs")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save answer to file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read question from file")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Print the answer as HTML")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the answer without formatting")
	cmd.Flags().BoolVar(&opts.noSuggest, "no-suggest", false, "Skip follow-up question suggestions")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")
	cmd.MarkFlagsMutuallyExclusive("html", "raw")

	// Add subcommands
	cmd.AddCommand(NewChatCmd(deps, opts))
	cmd.AddCommand(NewThemeCmd(deps))
	cmd.AddCommand(NewVoiceCmd(deps, opts))
	cmd.AddCommand(NewConfigCmd(deps, opts))

	return cmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		stop()
		os.Exit(1)
	}
}

// readQuestion resolves the question from the file flag, piped stdin or the
// positional argument, in that order. ok is false when none is present.
func readQuestion(deps *Dependencies, opts *rootOptions, args []string) (string, bool, error) {
	// Check for file input
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	// Check for stdin
	if hasStdin(deps.Stdin) {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}

	// Check for positional argument
	if len(args) > 0 {
		return args[0], true, nil
	}

	return "", false, nil
}

// hasStdin reports whether r carries piped input rather than a terminal
func hasStdin(r io.Reader) bool {
	if r == nil {
		return false
	}
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// loadConfig loads the config file and applies the global flags
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if o.model != "" {
		cfg.Model = o.model
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.verbose {
		cfg.Verbose = true
	}

	if err := config.ValidateBackend(cfg.Backend); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// format picks the answer format from the flags and the output kind
func (o *rootOptions) format(interactive bool) render.Format {
	switch {
	case o.html:
		return render.FormatHTML
	case o.raw:
		return render.FormatPlain
	case interactive:
		return render.FormatANSI
	default:
		return render.FormatPlain
	}
}
