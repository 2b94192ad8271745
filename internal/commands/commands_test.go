package commands

import (
	"bytes"
	"context"
	"io"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/askgemini/internal/api"
	"github.com/diogo/askgemini/internal/config"
	"github.com/diogo/askgemini/internal/tui"
	"github.com/diogo/askgemini/internal/voice"
)

// fakeTUI records the options the chat command hands to the TUI
type fakeTUI struct {
	calls int
	opts  tui.Options
}

func (f *fakeTUI) RunChat(opts tui.Options) error {
	f.calls++
	f.opts = opts
	return nil
}

// testEnv is an isolated home directory plus fake dependencies
type testEnv struct {
	deps    *Dependencies
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	gen     *api.MockGenerator
	tui     *fakeTUI
	copied  []string
	configs []config.Config // seen by NewGenerator
	apiKeys []string
}

func newTestEnv(t *testing.T, responses ...api.MockResponse) *testEnv {
	t.Helper()
	t.Setenv("ASKGEMINI_HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ASKGEMINI_MODEL", "")
	t.Setenv("ASKGEMINI_BASE_URL", "")
	t.Setenv("ASKGEMINI_BACKEND", "")

	e := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		gen:    api.NewMockGenerator(responses...),
		tui:    &fakeTUI{},
	}
	e.deps = &Dependencies{
		NewGenerator: func(ctx context.Context, cfg config.Config, apiKey string, logger *zap.Logger) (api.Generator, error) {
			e.configs = append(e.configs, cfg)
			e.apiKeys = append(e.apiKeys, apiKey)
			return e.gen, nil
		},
		NewRecognizer: func(cfg config.Config, logger *zap.Logger) voice.Recognizer {
			return voice.StaticRecognizer{Transcript: "spoken question"}
		},
		TUI: e.tui,
		Clipboard: func(text string) error {
			e.copied = append(e.copied, text)
			return nil
		},
		Stdout:     e.stdout,
		Stderr:     e.stderr,
		IsTerminal: func(io.Writer) bool { return false },
	}
	return e
}

// run executes a fresh command tree with args
func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// saveConfig writes cfg to the isolated home directory
func saveConfig(t *testing.T, mutate func(*config.Config)) {
	t.Helper()
	cfg := config.DefaultConfig()
	mutate(&cfg)
	if err := config.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}
}
