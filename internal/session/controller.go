package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/diogo/askgemini/internal/config"
	apierrors "github.com/diogo/askgemini/internal/errors"
	"github.com/diogo/askgemini/internal/markup"
	"github.com/diogo/askgemini/internal/prompt"
)

// Asker fetches the primary answer for a prompt decision
type Asker interface {
	Ask(ctx context.Context, d prompt.Decision) (string, error)
}

// SuggestionSource derives follow-up questions from a raw answer
type SuggestionSource interface {
	Suggest(ctx context.Context, rawAnswer string) ([]string, error)
}

// ThemeStore loads and persists the theme preference
type ThemeStore interface {
	Load() config.Theme
	Save(theme config.Theme) error
}

// FormatterFunc returns the formatter used for answers under a theme
type FormatterFunc func(theme config.Theme) *markup.Formatter

// Options configures a Controller
type Options struct {
	Asker     Asker
	Suggester SuggestionSource
	// Themes may be nil, in which case the theme lives only in memory
	Themes ThemeStore
	// Formatter defaults to the HTML formatter for every theme
	Formatter FormatterFunc
	Logger    *zap.Logger
}

// Controller owns the session state. All mutation goes through its methods;
// callers render from Snapshot.
type Controller struct {
	mu    sync.Mutex
	state State

	// generation changes whenever previously requested suggestions become
	// stale: on every new answer and on Clear.
	generation uint64

	asker     Asker
	suggester SuggestionSource
	themes    ThemeStore
	formatter FormatterFunc
	logger    *zap.Logger
}

// New creates a Controller in the Idle state with the persisted theme
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	formatter := opts.Formatter
	if formatter == nil {
		formatter = func(config.Theme) *markup.Formatter { return markup.NewHTML() }
	}

	theme := config.ThemeDark
	if opts.Themes != nil {
		theme = opts.Themes.Load()
	}

	id := uuid.NewString()
	c := &Controller{
		state: State{
			ID:     id,
			Status: StatusIdle,
			Theme:  theme,
		},
		asker:     opts.Asker,
		suggester: opts.Suggester,
		themes:    opts.Themes,
		formatter: formatter,
		logger:    logger.With(zap.String("session", id)),
	}
	c.logger.Debug("session started", zap.String("theme", string(theme)))
	return c
}

// Snapshot returns a deep copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Transcript = append([]Entry(nil), c.state.Transcript...)
	s.Suggestions = append([]string(nil), c.state.Suggestions...)
	return s
}

// SetQuestion replaces the question field. It is allowed while a request is
// in flight.
func (c *Controller) SetQuestion(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Question = q
}

// Submit validates the question and starts the primary request. The returned
// Task performs the request; its event must be passed to Apply.
func (c *Controller) Submit(question string) (Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.TrimSpace(question)
	if q == "" {
		c.state.Notice = EmptyQuestionNotice
		c.logger.Debug("empty question rejected")
		return nil, apierrors.ErrEmptyInput
	}
	if c.state.Loading {
		return nil, apierrors.ErrRequestInFlight
	}

	d := prompt.Decide(q)
	c.state.Status = StatusSubmitting
	c.state.Loading = true
	c.state.Answer = ""
	c.state.Notice = ""

	c.logger.Info("question submitted",
		zap.Int("question_len", len(q)),
		zap.Bool("brief", d.Brief),
	)

	asker := c.asker
	return func(ctx context.Context) Event {
		raw, err := asker.Ask(ctx, d)
		return AnswerEvent{Question: q, Decision: d, Raw: raw, Err: err}
	}, nil
}

// SelectSuggestion fills the question with s and submits it exactly as a
// typed question would be.
func (c *Controller) SelectSuggestion(s string) (Task, error) {
	c.SetQuestion(s)
	return c.Submit(s)
}

// Apply folds a task result into the state. A successful answer returns the
// follow-up suggestion Task; every other event returns nil.
func (c *Controller) Apply(ev Event) Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev := ev.(type) {
	case AnswerEvent:
		return c.applyAnswer(ev)
	case SuggestionsEvent:
		c.applySuggestions(ev)
	}
	return nil
}

func (c *Controller) applyAnswer(ev AnswerEvent) Task {
	c.state.Loading = false
	f := c.formatter(c.state.Theme)

	if ev.Err != nil {
		c.logger.Warn("answer request failed",
			zap.Error(ev.Err),
			zap.Bool("remote", apierrors.IsRemoteError(ev.Err)),
		)
		entry := Entry{Question: ev.Question, Raw: FailureMessage, Answer: f.Format(FailureMessage)}
		c.state.Status = StatusFailed
		c.state.Answer = entry.Answer
		c.state.Transcript = append(c.state.Transcript, entry)
		return nil
	}

	entry := Entry{Question: ev.Question, Raw: ev.Raw, Answer: f.Format(ev.Raw)}
	c.state.Status = StatusAnswered
	c.state.Answer = entry.Answer
	c.state.Transcript = append(c.state.Transcript, entry)
	c.generation++

	c.logger.Info("answer received",
		zap.Int("answer_len", len(ev.Raw)),
		zap.Int("transcript_len", len(c.state.Transcript)),
	)

	if c.suggester == nil {
		return nil
	}
	gen := c.generation
	suggester := c.suggester
	raw := ev.Raw
	return func(ctx context.Context) Event {
		list, err := suggester.Suggest(ctx, raw)
		return SuggestionsEvent{Generation: gen, Suggestions: list, Err: err}
	}
}

func (c *Controller) applySuggestions(ev SuggestionsEvent) {
	if ev.Generation != c.generation {
		c.logger.Debug("stale suggestions dropped", zap.Uint64("generation", ev.Generation))
		return
	}
	if ev.Err != nil {
		c.logger.Warn("suggestion request failed", zap.Error(ev.Err))
		return
	}
	c.state.Suggestions = append([]string(nil), ev.Suggestions...)
	c.logger.Debug("suggestions updated", zap.Int("count", len(ev.Suggestions)))
}

// Clear empties the question, answer, transcript and suggestions. The theme
// and any in-flight request are unaffected; suggestions requested before the
// clear are discarded when they arrive.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Question = ""
	c.state.Answer = ""
	c.state.Transcript = nil
	c.state.Suggestions = nil
	c.state.Notice = ""
	if !c.state.Loading {
		c.state.Status = StatusIdle
	}
	c.generation++
	c.logger.Info("session cleared")
}

// SetNotice shows a one-line message to the user
func (c *Controller) SetNotice(notice string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Notice = notice
}

// ToggleTheme flips the theme, persists it and re-renders the answers with
// the new theme's formatter. The in-memory theme changes even when saving
// fails.
func (c *Controller) ToggleTheme() (config.Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	theme := c.state.Theme.Toggle()
	c.state.Theme = theme
	c.reformat()

	c.logger.Info("theme changed", zap.String("theme", string(theme)))
	if c.themes == nil {
		return theme, nil
	}
	if err := c.themes.Save(theme); err != nil {
		c.logger.Warn("theme not persisted", zap.Error(err))
		return theme, fmt.Errorf("save theme: %w", err)
	}
	return theme, nil
}

// reformat rebuilds formatted answers from their raw text
func (c *Controller) reformat() {
	f := c.formatter(c.state.Theme)
	entries := make([]Entry, len(c.state.Transcript))
	for i, e := range c.state.Transcript {
		entries[i] = Entry{Question: e.Question, Raw: e.Raw, Answer: f.Format(e.Raw)}
	}
	c.state.Transcript = entries

	if n := len(entries); n > 0 && c.state.Answer != "" {
		c.state.Answer = entries[n-1].Answer
	}
}
