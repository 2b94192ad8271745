package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())
	if cmd.Use != "askgemini [question]" {
		t.Errorf("Expected use 'askgemini [question]', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}

	if cmd.Args == nil {
		t.Error("Args validation should be configured")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())

	for _, name := range []string{"chat", "theme", "voice", "config"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			if err != nil || sub.Name() != name {
				t.Errorf("subcommand %q not registered", name)
			}
		})
	}
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())

	persistent := []string{"model", "backend", "verbose"}
	for _, name := range persistent {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}

	local := []string{"output", "file", "html", "raw", "no-suggest", "version"}
	for _, name := range local {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short", []string{"-v"}},
		{"long", []string{"--version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			if err := e.run(tt.args...); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !strings.HasPrefix(e.stdout.String(), "askgemini "+Version) {
				t.Errorf("stdout = %q, want version line", e.stdout.String())
			}
			if e.gen.Calls() != 0 {
				t.Error("--version must not send a request")
			}
		})
	}
}

func TestRootCommand_NoInputShowsHelp(t *testing.T) {
	e := newTestEnv(t)
	if err := e.run(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(e.stdout.String(), "Usage:") {
		t.Errorf("expected help output, got %q", e.stdout.String())
	}
	if len(e.configs) != 0 {
		t.Error("no client should be created without a question")
	}
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	e := newTestEnv(t)
	if err := e.run("one", "two"); err == nil {
		t.Error("expected an error for two positional arguments")
	}
}

func TestRootCommand_HTMLAndRawExclusive(t *testing.T) {
	e := newTestEnv(t)
	if err := e.run("--html", "--raw", "q"); err == nil {
		t.Error("--html and --raw together should be rejected")
	}
}

func TestReadQuestion(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "question.txt")
	if err := os.WriteFile(file, []byte("from file"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		file   string
		stdin  string
		args   []string
		want   string
		wantOK bool
	}{
		{name: "nothing", wantOK: false},
		{name: "argument", args: []string{"from arg"}, want: "from arg", wantOK: true},
		{name: "stdin", stdin: "from stdin", want: "from stdin", wantOK: true},
		{name: "stdin beats argument", stdin: "from stdin", args: []string{"from arg"}, want: "from stdin", wantOK: true},
		{name: "file beats everything", file: file, stdin: "from stdin", args: []string{"from arg"}, want: "from file", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := &Dependencies{}
			if tt.stdin != "" {
				deps.Stdin = strings.NewReader(tt.stdin)
			}
			opts := &rootOptions{file: tt.file}

			got, ok, err := readQuestion(deps, opts, tt.args)
			if err != nil {
				t.Fatalf("readQuestion() error: %v", err)
			}
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("readQuestion() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestReadQuestion_MissingFile(t *testing.T) {
	opts := &rootOptions{file: filepath.Join(t.TempDir(), "absent.txt")}
	if _, _, err := readQuestion(&Dependencies{}, opts, nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestRootOptions_LoadConfig(t *testing.T) {
	t.Setenv("ASKGEMINI_HOME", t.TempDir())
	t.Setenv("ASKGEMINI_MODEL", "")
	t.Setenv("ASKGEMINI_BACKEND", "")

	opts := &rootOptions{model: "gemini-2.5-pro", backend: "sdk", verbose: true}
	cfg, err := opts.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Model != "gemini-2.5-pro" || cfg.Backend != "sdk" || !cfg.Verbose {
		t.Errorf("flags not applied: %+v", cfg)
	}

	opts = &rootOptions{backend: "grpc"}
	if _, err := opts.loadConfig(); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestRootOptions_Format(t *testing.T) {
	tests := []struct {
		name        string
		opts        rootOptions
		interactive bool
		want        string
	}{
		{"terminal", rootOptions{}, true, "ansi"},
		{"pipe", rootOptions{}, false, "plain"},
		{"html on terminal", rootOptions{html: true}, true, "html"},
		{"raw on terminal", rootOptions{raw: true}, true, "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.format(tt.interactive); string(got) != tt.want {
				t.Errorf("format() = %s, want %s", got, tt.want)
			}
		})
	}
}
