// Package voice captures a spoken question through an external
// speech-to-text command.
package voice

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	apierrors "github.com/diogo/askgemini/internal/errors"
)

// Recognition settings passed to the command
const (
	Locale          = "en-US"
	InterimResults  = false
	MaxAlternatives = 1
)

// User-facing messages
const (
	UnsupportedMessage = "Your terminal does not support voice input."
	errorMessagePrefix = "Voice input error: "
)

// CodeNoSpeech is reported when the command succeeds without a transcript
const CodeNoSpeech = "no-speech"

// waitDelay bounds how long output pipes are drained after cancellation
const waitDelay = time.Second

// exitCommandNotFound is the status POSIX shells use for an unknown command
const exitCommandNotFound = 127

// Recognizer turns one utterance into text
type Recognizer interface {
	Capture(ctx context.Context) (string, error)
}

// CommandRecognizer runs a configured speech-to-text command through the
// shell and reads its transcript from stdout.
type CommandRecognizer struct {
	command string
	shell   string
	env     []string
	logger  *zap.Logger
}

// Ensure CommandRecognizer implements Recognizer
var _ Recognizer = (*CommandRecognizer)(nil)

// Option configures a CommandRecognizer.
type Option func(*CommandRecognizer)

// WithShell overrides the shell binary used for execution.
func WithShell(shell string) Option {
	return func(r *CommandRecognizer) {
		r.shell = shell
	}
}

// WithEnv sets extra environment variables for the command.
func WithEnv(env []string) Option {
	return func(r *CommandRecognizer) {
		r.env = append([]string(nil), env...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *CommandRecognizer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewCommandRecognizer creates a recognizer for command. An empty command
// yields a recognizer that always reports the capability as missing.
func NewCommandRecognizer(command string, opts ...Option) *CommandRecognizer {
	r := &CommandRecognizer{
		command: strings.TrimSpace(command),
		shell:   "sh",
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.shell == "" {
		r.shell = "sh"
	}
	return r
}

// Available reports whether a capture can be attempted at all
func (r *CommandRecognizer) Available() bool {
	if r.command == "" {
		return false
	}
	_, err := exec.LookPath(r.shell)
	return err == nil
}

// Capture runs the command once and returns the first non-empty line it
// prints. Capture never submits anything; callers decide what to do with the
// transcript.
func (r *CommandRecognizer) Capture(ctx context.Context) (string, error) {
	if !r.Available() {
		return "", unsupported("no speech-to-text command configured")
	}

	cmd := exec.CommandContext(ctx, r.shell, "-c", r.command)
	cmd.Env = append(os.Environ(), recognitionEnv()...)
	cmd.Env = append(cmd.Env, r.env...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("voice capture started", zap.String("command", r.command))
	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == exitCommandNotFound {
			return "", unsupported("speech-to-text command not found")
		}

		code := firstLine(stderr.String())
		if code == "" {
			code = err.Error()
		}
		r.logger.Warn("voice capture failed", zap.String("code", code))
		return "", apierrors.NewVoiceError(code)
	}

	transcript := firstLine(stdout.String())
	if transcript == "" {
		return "", apierrors.NewVoiceError(CodeNoSpeech)
	}
	r.logger.Debug("voice capture done", zap.Int("transcript_len", len(transcript)))
	return transcript, nil
}

func recognitionEnv() []string {
	return []string{
		"ASKGEMINI_LOCALE=" + Locale,
		"ASKGEMINI_INTERIM=" + strconv.FormatBool(InterimResults),
		"ASKGEMINI_MAX_ALTERNATIVES=" + strconv.Itoa(MaxAlternatives),
	}
}

func unsupported(reason string) error {
	return apierrors.NewCapabilityError("voice input", reason)
}

// firstLine returns the first non-blank line of s, trimmed
func firstLine(s string) string {
	scanner := bufio.NewScanner(strings.NewReader(s))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return ""
}

// UserMessage maps a Capture error to the notice shown to the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, apierrors.ErrCapabilityUnsupported) {
		return UnsupportedMessage
	}
	var voiceErr *apierrors.VoiceError
	if errors.As(err, &voiceErr) {
		return errorMessagePrefix + voiceErr.Code
	}
	return errorMessagePrefix + err.Error()
}
