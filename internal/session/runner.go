package session

import (
	"context"
)

// Runner executes Tasks on detached goroutines and feeds their events back
// into the Controller on the goroutine that calls Step or Wait. Go, Step and
// Wait must all be called from that same goroutine.
type Runner struct {
	ctx     context.Context
	ctrl    *Controller
	events  chan Event
	pending int
}

// NewRunner creates a Runner for ctrl. ctx is passed to every task.
func NewRunner(ctx context.Context, ctrl *Controller) *Runner {
	return &Runner{
		ctx:    ctx,
		ctrl:   ctrl,
		events: make(chan Event),
	}
}

// Go starts t without waiting for it. A nil task is ignored.
func (r *Runner) Go(t Task) {
	if t == nil {
		return
	}
	r.pending++
	go func() {
		r.events <- t(r.ctx)
	}()
}

// Pending reports how many started tasks have not been applied yet
func (r *Runner) Pending() int {
	return r.pending
}

// Step blocks until one task finishes, applies its event and starts any
// follow-up task. It returns false when nothing is pending.
func (r *Runner) Step() (Event, bool) {
	if r.pending == 0 {
		return nil, false
	}
	ev := <-r.events
	r.pending--
	r.Go(r.ctrl.Apply(ev))
	return ev, true
}

// Wait applies events until no task is pending
func (r *Runner) Wait() {
	for {
		if _, ok := r.Step(); !ok {
			return
		}
	}
}

// Ask submits question and waits for the answer only. A follow-up
// suggestion task, if any, is left pending for a later Step or Wait.
// The returned error is either the submit rejection or the failure of the
// answer request; in the latter case the state already records the failure.
func (r *Runner) Ask(question string) (State, error) {
	task, err := r.ctrl.Submit(question)
	if err != nil {
		return r.ctrl.Snapshot(), err
	}
	r.Go(task)
	for {
		ev, ok := r.Step()
		if !ok {
			break
		}
		if answer, isAnswer := ev.(AnswerEvent); isAnswer {
			return r.ctrl.Snapshot(), answer.Err
		}
	}
	return r.ctrl.Snapshot(), nil
}
