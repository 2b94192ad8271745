package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/askgemini/internal/api"
	"github.com/diogo/askgemini/internal/config"
	"github.com/diogo/askgemini/internal/tui"
	"github.com/diogo/askgemini/internal/voice"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(opts tui.Options) error
}

// GeneratorFactory builds the transport selected by a configuration
type GeneratorFactory func(ctx context.Context, cfg config.Config, apiKey string, logger *zap.Logger) (api.Generator, error)

// RecognizerFactory builds the voice recognizer for a configuration
type RecognizerFactory func(cfg config.Config, logger *zap.Logger) voice.Recognizer

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewGenerator creates the Gemini client.
	NewGenerator GeneratorFactory

	// NewRecognizer creates the speech-to-text adapter.
	NewRecognizer RecognizerFactory

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard copies text to the system clipboard.
	Clipboard func(text string) error

	// Standard streams. Stdin may be nil when no input can be piped.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal reports whether w is an interactive terminal.
	IsTerminal func(w io.Writer) bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(opts tui.Options) error {
	return tui.RunChat(opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewGenerator:  api.NewGenerator,
		NewRecognizer: newCommandRecognizer,
		TUI:           &DefaultTUI{},
		Clipboard:     clipboard.WriteAll,
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		IsTerminal:    isTerminal,
	}
}

func newCommandRecognizer(cfg config.Config, logger *zap.Logger) voice.Recognizer {
	return voice.NewCommandRecognizer(cfg.VoiceCommand, voice.WithLogger(logger))
}

// isTerminal returns true if w is a file connected to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}
