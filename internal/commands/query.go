package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/askgemini/internal/api"
	"github.com/diogo/askgemini/internal/config"
	apierrors "github.com/diogo/askgemini/internal/errors"
	"github.com/diogo/askgemini/internal/logging"
	"github.com/diogo/askgemini/internal/markup"
	"github.com/diogo/askgemini/internal/render"
	"github.com/diogo/askgemini/internal/session"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorPrimary  = lipgloss.Color("#7aa2f7")
	colorError    = lipgloss.Color("#f7768e")
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginBottom(0)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	suggestionTitleStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				Bold(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(colorText).
			PaddingLeft(2)
)

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	// Spinner characters
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	// Build spinner character with color
	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	// Build animated bar
	barWidth := 16
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + s.frame) % len(gradientColors)
		charIdx := (i + s.frame/2) % len(barChars)
		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	// Build animated dots
	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	// Print animation (clear line first)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s %s", spinnerChar, bar.String(), msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and shows error
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// progress wraps an optional spinner so quiet runs need no nil checks
type progress struct {
	out  io.Writer
	spin *spinner
}

func (p *progress) begin(message string) {
	if p.out == nil {
		return
	}
	p.spin = newSpinner(p.out, message)
	p.spin.start()
}

func (p *progress) succeed(message string) {
	if p.spin != nil {
		p.spin.stopWithSuccess(message)
		p.spin = nil
	}
}

func (p *progress) fail() {
	if p.spin != nil {
		p.spin.stopWithError()
		p.spin = nil
	}
}

// newController wires the Gemini client, the theme store and the logger into
// a session. The API key is resolved before anything is sent.
func newController(ctx context.Context, deps *Dependencies, cfg config.Config, logger *zap.Logger, formatter session.FormatterFunc, suggest bool) (*session.Controller, error) {
	apiKey, err := config.APIKey(cfg)
	if err != nil {
		return nil, err
	}

	gen, err := deps.NewGenerator(ctx, cfg, apiKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	opts := session.Options{
		Asker:     api.NewAnswerer(gen, logger),
		Formatter: formatter,
		Logger:    logger,
	}
	if suggest {
		opts.Suggester = api.NewSuggester(gen)
	}
	if store, err := config.DefaultThemeStore(); err == nil {
		opts.Themes = store
	} else {
		logger.Warn("theme preference unavailable", zap.Error(err))
	}

	return session.New(opts), nil
}

// runQuery asks a single question and prints the answer and its follow-up
// suggestions.
func runQuery(ctx context.Context, deps *Dependencies, opts *rootOptions, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return apierrors.ErrEmptyInput
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Verbose: cfg.Verbose, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	interactive := deps.IsTerminal(deps.Stdout)
	logger.Debug("one-shot query",
		zap.String("model", cfg.Model),
		zap.String("backend", cfg.Backend),
		zap.Bool("interactive", interactive),
	)

	ctrl, err := newController(ctx, deps, cfg, logger, nil, !opts.noSuggest)
	if err != nil {
		return err
	}
	runner := session.NewRunner(ctx, ctrl)

	prog := &progress{}
	if interactive {
		prog.out = deps.Stderr
	}

	prog.begin("Asking Gemini")
	startTime := time.Now()
	state, err := runner.Ask(question)
	if err != nil {
		prog.fail()
		runner.Wait()
		return fmt.Errorf("generation failed: %w", err)
	}
	prog.succeed("Done")
	logger.Debug("answer received", zap.Duration("took", time.Since(startTime)))

	raw := state.Transcript[len(state.Transcript)-1].Raw

	var suggestions []string
	if runner.Pending() > 0 {
		prog.begin("Finding follow-up questions")
		runner.Wait()
		suggestions = ctrl.Snapshot().Suggestions
		prog.succeed(fmt.Sprintf("%d follow-up questions", len(suggestions)))
	}

	// Copy to clipboard if enabled in config
	if cfg.CopyToClipboard {
		if err := deps.Clipboard(markup.Strip(raw)); err != nil {
			// Log warning but don't fail
			warnMsg := lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(deps.Stderr, warnMsg)
		} else {
			clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
			fmt.Fprintln(deps.Stderr, clipMsg)
		}
	}

	renderOpts := render.LoadOptionsFromPreferences()

	// Output to file if specified
	if opts.output != "" {
		text := render.Answer(raw, renderOpts.WithFormat(opts.format(false)))
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Answer saved to %s", opts.output),
		)
		fmt.Fprintln(deps.Stderr, successMsg)
		printSuggestions(deps.Stdout, suggestions, interactive)
		return nil
	}

	format := opts.format(interactive)
	if format != render.FormatANSI {
		fmt.Fprintln(deps.Stdout, render.Answer(raw, renderOpts.WithFormat(format)))
		printSuggestions(deps.Stdout, suggestions, interactive)
		return nil
	}

	// Get terminal width for proper formatting
	bubbleWidth := getTerminalWidth(deps.Stdout) - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render("✦ Gemini"))
	rendered := render.Answer(raw, render.LoadOptionsFromPreferencesWithWidth(contentWidth).WithFormat(format))
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))
	printSuggestions(deps.Stdout, suggestions, interactive)

	return nil
}

// printSuggestions lists follow-up questions after the answer
func printSuggestions(w io.Writer, suggestions []string, styled bool) {
	if len(suggestions) == 0 {
		return
	}

	title := "Follow-up questions:"
	if styled {
		title = suggestionTitleStyle.Render(title)
	}
	fmt.Fprintln(w, title)
	for i, s := range suggestions {
		line := fmt.Sprintf("%d. %s", i+1, s)
		if styled {
			line = suggestionStyle.Render(line)
		} else {
			line = "  " + line
		}
		fmt.Fprintln(w, line)
	}
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	// Extract additional context from structured errors
	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	// Show response body if available (contains the API's own explanation)
	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
	} else if hint := errorHint(err); hint != "" {
		// Provide helpful hints based on error type only if no body
		sb.WriteString(dimStyle.Render("\n  Hint: " + hint))
	}

	return sb.String()
}

// errorHint suggests a next step for well-known failures
func errorHint(err error) string {
	switch {
	case apierrors.IsMissingAPIKey(err):
		return "Set GEMINI_API_KEY or add it to a .env file"
	case apierrors.IsAuthError(err):
		return "Check that your API key is valid (askgemini config show)"
	case apierrors.IsRateLimitError(err):
		return "You've hit the usage limit. Try again later or use a different model"
	case apierrors.IsNetworkError(err):
		return "Check your internet connection and try again"
	case errors.Is(err, apierrors.ErrCapabilityUnsupported):
		return "Set voice_command with 'askgemini config'"
	case errors.Is(err, apierrors.ErrEmptyInput):
		return "Pass a question as an argument, with -f, or on stdin"
	default:
		return ""
	}
}
