package commands

import (
	"testing"
)

func TestThemeCommand(t *testing.T) {
	e := newTestEnv(t)

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"theme"}, "dark\n"},
		{[]string{"theme", "toggle"}, "light\n"},
		{[]string{"theme"}, "light\n"},
		{[]string{"theme", "toggle"}, "dark\n"},
		{[]string{"theme", "light"}, "light\n"},
		{[]string{"theme", "dark"}, "dark\n"},
	}

	for _, step := range steps {
		e.stdout.Reset()
		if err := e.run(step.args...); err != nil {
			t.Fatalf("%v failed: %v", step.args, err)
		}
		if got := e.stdout.String(); got != step.want {
			t.Errorf("%v printed %q, want %q", step.args, got, step.want)
		}
	}
}

func TestThemeCommand_Invalid(t *testing.T) {
	e := newTestEnv(t)

	if err := e.run("theme", "purple"); err == nil {
		t.Error("expected an error for an unknown theme")
	}

	e.stdout.Reset()
	if err := e.run("theme"); err != nil {
		t.Fatal(err)
	}
	if got := e.stdout.String(); got != "dark\n" {
		t.Errorf("a rejected theme must not be saved, got %q", got)
	}
}
