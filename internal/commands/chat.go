package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/askgemini/internal/config"
	"github.com/diogo/askgemini/internal/logging"
	"github.com/diogo/askgemini/internal/render"
	"github.com/diogo/askgemini/internal/tui"
)

// NewChatCmd creates the interactive session command
func NewChatCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive question session",
		Long: `Start an interactive session with Gemini.

Type a question and press Enter. Answers are kept in a transcript and
Gemini suggests follow-up questions you can pick with Tab and Ctrl+O
(or Alt+1..9). Ctrl+R captures a spoken question when voice_command is
configured, Ctrl+T switches the theme and Esc or Ctrl+C quits.

Logs go to ~/.askgemini/askgemini.log unless log_file is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), deps, opts)
		},
	}
}

func runChat(ctx context.Context, deps *Dependencies, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs always go to a file
	logFile := cfg.LogFile
	if logFile == "" {
		if logFile, err = config.GetDefaultLogPath(); err != nil {
			return err
		}
	}
	logger, err := logging.New(logging.Options{Verbose: cfg.Verbose, File: logFile})
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	ctrl, err := newController(ctx, deps, cfg, logger, render.FormatterFor, true)
	if err != nil {
		return err
	}
	logger.Info("chat started", zap.String("model", cfg.Model), zap.String("backend", cfg.Backend))

	return deps.TUI.RunChat(tui.Options{
		Controller: ctrl,
		Recognizer: deps.NewRecognizer(cfg, logger),
		ModelName:  cfg.Model,
		Clipboard:  deps.Clipboard,
		Context:    ctx,
		Logger:     logger,
	})
}
