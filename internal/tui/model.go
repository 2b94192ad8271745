package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	apierrors "github.com/diogo/askgemini/internal/errors"
	"github.com/diogo/askgemini/internal/markup"
	"github.com/diogo/askgemini/internal/session"
	"github.com/diogo/askgemini/internal/voice"
)

// Notices shown by the TUI itself
const (
	listeningNotice = "Listening..."
	copiedNotice    = "Answer copied to clipboard."
	nothingToCopy   = "There is no answer to copy yet."
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// eventMsg carries the result of a session task back into Update
	eventMsg struct {
		event session.Event
	}
	// voiceMsg carries the outcome of one voice capture
	voiceMsg struct {
		transcript string
		err        error
	}
	// copiedMsg reports a clipboard write
	copiedMsg struct {
		err error
	}
)

// ClipboardWriter copies text to the system clipboard
type ClipboardWriter func(text string) error

// Options configures the chat model
type Options struct {
	Controller *session.Controller
	Recognizer voice.Recognizer
	ModelName  string
	// Clipboard defaults to the system clipboard
	Clipboard ClipboardWriter
	// Context is passed to every request; defaults to context.Background
	Context context.Context
	Logger  *zap.Logger
}

// Model represents the TUI state
type Model struct {
	ctrl       *session.Controller
	recognizer voice.Recognizer
	clipboard  ClipboardWriter
	ctx        context.Context
	logger     *zap.Logger
	modelName  string

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// State
	state            session.State // last snapshot of the controller
	ready            bool
	listening        bool
	suggestionCursor int
	animationFrame   int // Frame counter for loading animation

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	recognizer := opts.Recognizer
	if recognizer == nil {
		recognizer = voice.NewCommandRecognizer("")
	}

	state := opts.Controller.Snapshot()
	UpdateTheme(state.Theme)

	// Create text input for the question
	ti := textinput.New()
	ti.Placeholder = "Ask your question..."
	ti.CharLimit = 4000
	ti.Prompt = ""
	ti.SetValue(state.Question)
	ti.Focus()
	styleInput(&ti)

	// Create spinner
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		ctrl:       opts.Controller,
		recognizer: recognizer,
		clipboard:  clip,
		ctx:        ctx,
		logger:     logger,
		modelName:  opts.ModelName,
		input:      ti,
		spinner:    s,
		state:      state,
	}
}

func styleInput(ti *textinput.Model) {
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		if handled, next, c := m.handleKey(msg); handled {
			return next, c
		}

	case eventMsg:
		follow := m.ctrl.Apply(msg.event)
		m.refresh()
		if follow != nil {
			cmds = append(cmds, m.runTask(follow))
		}

	case voiceMsg:
		m.listening = false
		if msg.err != nil {
			m.ctrl.SetNotice(voice.UserMessage(msg.err))
		} else {
			m.ctrl.SetQuestion(msg.transcript)
			m.ctrl.SetNotice("")
			m.input.SetValue(msg.transcript)
			m.input.CursorEnd()
		}
		m.refresh()

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(msg.err))
			m.ctrl.SetNotice("Could not copy the answer: " + msg.err.Error())
		} else {
			m.ctrl.SetNotice(copiedNotice)
		}
		m.refresh()

	case spinner.TickMsg:
		if m.state.Loading || m.listening {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.state.Loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to the input to prevent escape sequence leaks
	if _, ok := msg.(tea.KeyMsg); ok {
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		if m.input.Value() != before {
			m.ctrl.SetQuestion(m.input.Value())
			m.state.Question = m.input.Value()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey processes shortcut keys. Keys it does not handle fall through to
// the text input and the viewport.
func (m Model) handleKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "esc":
		return true, m, tea.Quit

	case "enter":
		next, cmd := m.submit(func() (session.Task, error) {
			return m.ctrl.Submit(m.input.Value())
		})
		return true, next, cmd

	case "ctrl+r":
		if m.listening {
			return true, m, nil
		}
		m.listening = true
		m.ctrl.SetNotice(listeningNotice)
		m.refresh()
		return true, m, tea.Batch(m.captureVoice(), m.spinner.Tick)

	case "ctrl+l":
		m.ctrl.Clear()
		m.input.Reset()
		m.suggestionCursor = 0
		m.refresh()
		return true, m, nil

	case "ctrl+t":
		theme, err := m.ctrl.ToggleTheme()
		UpdateTheme(theme)
		styleInput(&m.input)
		m.spinner.Style = loadingStyle
		if err != nil {
			m.ctrl.SetNotice("Theme not saved: " + err.Error())
		}
		m.refresh()
		return true, m, nil

	case "tab":
		m.moveSuggestionCursor(1)
		return true, m, nil

	case "shift+tab":
		m.moveSuggestionCursor(-1)
		return true, m, nil

	case "ctrl+o":
		next, cmd := m.selectSuggestion(m.suggestionCursor)
		return true, next, cmd

	case "ctrl+y":
		if m.currentRawAnswer() == "" {
			m.ctrl.SetNotice(nothingToCopy)
			m.refresh()
			return true, m, nil
		}
		return true, m, m.copyAnswer()

	default:
		if idx, ok := altDigit(key); ok {
			next, cmd := m.selectSuggestion(idx)
			return true, next, cmd
		}
	}
	return false, m, nil
}

// altDigit maps alt+1..alt+9 to a zero-based suggestion index
func altDigit(key string) (int, bool) {
	if len(key) != len("alt+1") || !strings.HasPrefix(key, "alt+") {
		return 0, false
	}
	d := key[len(key)-1]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}

// submit starts a request through start unless one is already running
func (m Model) submit(start func() (session.Task, error)) (tea.Model, tea.Cmd) {
	if m.state.Loading {
		return m, nil
	}

	task, err := start()
	if err != nil {
		if !errors.Is(err, apierrors.ErrEmptyInput) && !errors.Is(err, apierrors.ErrRequestInFlight) {
			m.logger.Warn("submit failed", zap.Error(err))
		}
		m.refresh()
		return m, nil
	}

	m.animationFrame = 0
	m.refresh()
	return m, tea.Batch(
		m.runTask(task),
		m.spinner.Tick,
		animationTick(),
	)
}

func (m Model) selectSuggestion(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.state.Suggestions) {
		return m, nil
	}
	text := m.state.Suggestions[idx]
	next, cmd := m.submit(func() (session.Task, error) {
		return m.ctrl.SelectSuggestion(text)
	})
	if nm, ok := next.(Model); ok && nm.state.Loading {
		nm.input.SetValue(text)
		nm.input.CursorEnd()
		return nm, cmd
	}
	return next, cmd
}

func (m *Model) moveSuggestionCursor(delta int) {
	n := len(m.state.Suggestions)
	if n == 0 {
		m.suggestionCursor = 0
		return
	}
	m.suggestionCursor = ((m.suggestionCursor+delta)%n + n) % n
}

// runTask turns a session task into a Bubble Tea command
func (m Model) runTask(task session.Task) tea.Cmd {
	if task == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return eventMsg{event: task(ctx)}
	}
}

// captureVoice runs one recognition in the background
func (m Model) captureVoice() tea.Cmd {
	recognizer := m.recognizer
	ctx := m.ctx
	return func() tea.Msg {
		transcript, err := recognizer.Capture(ctx)
		return voiceMsg{transcript: transcript, err: err}
	}
}

// copyAnswer copies the current answer, without markup, to the clipboard
func (m Model) copyAnswer() tea.Cmd {
	write := m.clipboard
	plain := markup.Strip(m.currentRawAnswer())
	return func() tea.Msg {
		return copiedMsg{err: write(plain)}
	}
}

// currentRawAnswer returns the raw text behind the answer panel
func (m Model) currentRawAnswer() string {
	if m.state.Answer == "" || len(m.state.Transcript) == 0 {
		return ""
	}
	return m.state.Transcript[len(m.state.Transcript)-1].Raw
}

// viewportKeys limits scrolling to keys the question field does not use
func viewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// refresh re-reads the controller state and re-renders the viewport
func (m *Model) refresh() {
	m.state = m.ctrl.Snapshot()
	if m.suggestionCursor >= len(m.state.Suggestions) {
		m.suggestionCursor = 0
	}
	if m.ready {
		m.resize()
	}
}

// resize lays the viewport out for the current window size and content
func (m *Model) resize() {
	headerHeight := 3 // Header panel with border
	inputHeight := 3  // Input panel with border
	statusHeight := 1 // Status bar
	noticeHeight := 1 // Notice line
	suggestionHeight := 0
	if len(m.state.Suggestions) > 0 {
		suggestionHeight = 1
	}
	border := 2

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - noticeHeight - suggestionHeight - border
	if vpHeight < 3 {
		vpHeight = 3
	}

	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	// The messages panel pads its content by one column on each side
	vpWidth := contentWidth - 2

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.viewport.KeyMap = viewportKeys()
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.input.Width = contentWidth - lipgloss.Width(inputLabelStyle.Render("Question")) - 4
	m.updateViewport()
}

// updateViewport refreshes the viewport with the answer and transcript
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 2 // rounded border

	content.WriteString(sectionTitleStyle.Render("AI Answer"))
	content.WriteString("\n")
	switch {
	case m.state.Loading:
		content.WriteString(m.renderLoadingAnimation())
	case m.state.Answer != "":
		bubble := assistantBubbleStyle
		if m.state.Status == session.StatusFailed {
			bubble = bubble.BorderForeground(colorError)
		}
		content.WriteString(bubble.Width(bubbleWidth).Render(m.state.Answer))
	default:
		content.WriteString(hintStyle.Render("No answer yet."))
	}
	content.WriteString("\n")

	if len(m.state.Transcript) > 0 {
		content.WriteString("\n")
		content.WriteString(sectionTitleStyle.Render("Previous Q&A"))
		content.WriteString("\n")
		for i, e := range m.state.Transcript {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(userLabelStyle.Render("Q: " + e.Question))
			content.WriteString("\n")
			content.WriteString(lipgloss.NewStyle().Width(bubbleWidth).Render("A: " + e.Answer))
			content.WriteString("\n")
		}
	}

	m.viewport.SetContent(content.String())
	if m.state.Loading {
		m.viewport.GotoTop()
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("✦ Ask Gemini"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.modelName),
		hintStyle.Render("  •  "),
		subtitleStyle.Render("theme: " + string(m.state.Theme)),
		hintStyle.Render(" (ctrl+t)"),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Suggestions
	if bar := m.renderSuggestions(); bar != "" {
		sections = append(sections, bar)
	}

	// Input
	inputLine := lipgloss.JoinHorizontal(lipgloss.Left,
		inputLabelStyle.Render("Question"),
		m.input.View(),
	)
	if m.listening {
		inputLine = lipgloss.JoinHorizontal(lipgloss.Left, inputLine, " ", m.spinner.View())
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputLine))

	// Answer and transcript
	var messagesContent string
	if len(m.state.Transcript) == 0 && !m.state.Loading {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Notice
	sections = append(sections, noticeStyle.Render(m.state.Notice))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSuggestions renders the numbered suggestion bar, or "" when empty
func (m Model) renderSuggestions() string {
	if len(m.state.Suggestions) == 0 {
		return ""
	}

	items := make([]string, 0, len(m.state.Suggestions))
	for i, s := range m.state.Suggestions {
		label := fmt.Sprintf("%d. %s", i+1, s)
		if i == m.suggestionCursor {
			items = append(items, suggestionSelectedStyle.Render(label))
		} else {
			items = append(items, suggestionItemStyle.Render(label))
		}
	}
	return suggestionLabelStyle.Render("Suggested: ") + strings.Join(items, hintStyle.Render("  │  "))
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Ask Gemini anything")
	subtitle := welcomeStyle.Width(width).Render("Type a question and press Enter, or press ctrl+r to speak")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		icon,
		"",
		title,
		subtitle,
	)

	// Center vertically
	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Loading... ")

	return fmt.Sprintf("%s %s %s", spin, bar.String(), text)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Ask"},
		{"^R", "Voice"},
		{"Tab/^O", "Suggestion"},
		{"^Y", "Copy"},
		{"^L", "Clear"},
		{"^T", "Theme"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(opts Options) error {
	m := NewChatModel(opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(m.ctx),
	)

	_, err := p.Run()
	return err
}
