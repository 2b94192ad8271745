package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/askgemini/internal/logging"
	"github.com/diogo/askgemini/internal/voice"
)

// NewVoiceCmd creates the one-shot voice capture command
func NewVoiceCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "voice",
		Short: "Capture a spoken question and print it",
		Long: `Run the configured speech-to-text command once and print the transcript.

The command is taken from voice_command in the config and runs through the
shell with ASKGEMINI_LOCALE, ASKGEMINI_INTERIM and ASKGEMINI_MAX_ALTERNATIVES
set. Its first non-empty output line is the transcript. Nothing is sent to
Gemini; pipe the output into askgemini to ask it:

  askgemini voice | askgemini`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{Verbose: cfg.Verbose, File: cfg.LogFile})
			if err != nil {
				return err
			}
			defer logging.Sync(logger)

			prog := &progress{}
			if deps.IsTerminal(deps.Stderr) {
				prog.out = deps.Stderr
			}

			prog.begin("Listening")
			transcript, err := deps.NewRecognizer(cfg, logger).Capture(cmd.Context())
			if err != nil {
				prog.fail()
				return &userError{message: voice.UserMessage(err), err: err}
			}
			prog.succeed("Heard you")

			fmt.Fprintln(deps.Stdout, transcript)
			return nil
		},
	}
}

// userError shows a friendly message while keeping the cause for errors.Is
type userError struct {
	message string
	err     error
}

func (e *userError) Error() string { return e.message }

func (e *userError) Unwrap() error { return e.err }
