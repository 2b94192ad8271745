package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/diogo/askgemini/internal/api"
	apierrors "github.com/diogo/askgemini/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunner_Wait(t *testing.T) {
	f := newFixture(
		[]api.MockResponse{{Text: "**Go**"}},
		[]api.MockResponse{{Text: "1. Why Go?\n2. Who made Go?"}},
	)
	r := NewRunner(context.Background(), f.ctrl)

	task, err := f.ctrl.Submit("What is Go?")
	if err != nil {
		t.Fatalf("Submit() returned error: %v", err)
	}
	r.Go(task)
	r.Wait()

	s := f.ctrl.Snapshot()
	if s.Answer != "<b>Go</b>" {
		t.Errorf("Answer = %q", s.Answer)
	}
	if diff := cmp.Diff([]string{"Why Go?", "Who made Go?"}, s.Suggestions); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}
	if r.Pending() != 0 {
		t.Errorf("Pending() = %d after Wait()", r.Pending())
	}
}

func TestRunner_AskDoesNotAwaitSuggestions(t *testing.T) {
	release := make(chan struct{})
	followUps := api.NewMockGenerator()
	followUps.Func = func(ctx context.Context, p string) (string, error) {
		<-release
		return "later", nil
	}

	ctrl := New(Options{
		Asker:     api.NewAnswerer(api.NewMockGenerator(api.MockResponse{Text: "now"}), nil),
		Suggester: api.NewSuggester(followUps),
	})
	r := NewRunner(context.Background(), ctrl)

	done := make(chan State, 1)
	go func() {
		s, _ := r.Ask("q")
		done <- s
	}()

	var s State
	select {
	case s = <-done:
	case <-time.After(5 * time.Second):
		close(release)
		t.Fatal("Ask() blocked on the suggestion request")
	}

	if s.Answer != "now" || s.Loading {
		t.Errorf("Ask() state = answer %q loading %v", s.Answer, s.Loading)
	}
	if len(s.Suggestions) != 0 {
		t.Errorf("suggestions applied before they were released: %v", s.Suggestions)
	}
	if r.Pending() != 1 {
		t.Errorf("Pending() = %d, want the suggestion task", r.Pending())
	}

	close(release)
	r.Wait()
	if diff := cmp.Diff([]string{"later"}, ctrl.Snapshot().Suggestions); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_AskErrors(t *testing.T) {
	f := newFixture([]api.MockResponse{{Err: errors.New("down")}}, nil)
	r := NewRunner(context.Background(), f.ctrl)

	if _, err := r.Ask("  "); !errors.Is(err, apierrors.ErrEmptyInput) {
		t.Errorf("Ask(blank) error = %v, want ErrEmptyInput", err)
	}

	s, err := r.Ask("Hi")
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("Ask() error = %v, want the request failure", err)
	}
	if s.Status != StatusFailed {
		t.Errorf("status = %s, want failed", s.Status)
	}
	r.Wait()
}

func TestRunner_StepIdle(t *testing.T) {
	r := NewRunner(context.Background(), New(Options{}))
	if _, ok := r.Step(); ok {
		t.Error("Step() with nothing pending should return false")
	}
	r.Go(nil)
	if r.Pending() != 0 {
		t.Error("Go(nil) should be ignored")
	}
}

func TestRunner_ContextReachesTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	answers := api.NewMockGenerator()
	answers.Func = func(ctx context.Context, p string) (string, error) {
		return "", ctx.Err()
	}
	ctrl := New(Options{Asker: api.NewAnswerer(answers, nil)})

	s, err := NewRunner(ctx, ctrl).Ask("q")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Ask() error = %v, want context.Canceled", err)
	}
	if s.Status != StatusFailed {
		t.Errorf("cancelled request should fail the answer, got %s", s.Status)
	}
}
