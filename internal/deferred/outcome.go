package deferred

import "context"

// Outcome is what a command handler returns: either a message that is
// already final, or a pending Result that will carry it.
type Outcome struct {
	text    string
	pending *Result[string]
}

// Immediate wraps a message that needs no asynchronous work.
func Immediate(text string) Outcome {
	return Outcome{text: text}
}

// Pending wraps a result that resolves later.
func Pending(r *Result[string]) Outcome {
	return Outcome{pending: r}
}

// IsPending reports whether the outcome is carried by a Result.
func (o Outcome) IsPending() bool { return o.pending != nil }

// Text returns the immediate message. ok is false for pending outcomes.
func (o Outcome) Text() (text string, ok bool) {
	if o.pending != nil {
		return "", false
	}
	return o.text, true
}

// Result returns the pending result, or nil for immediate outcomes.
func (o Outcome) Result() *Result[string] { return o.pending }

// Observe delivers the final message to fn, immediately for immediate
// outcomes and on resolution for pending ones.
func (o Outcome) Observe(fn func(string)) {
	if o.pending == nil {
		fn(o.text)
		return
	}
	o.pending.Observe(fn)
}

// Wait returns the final message, blocking on pending outcomes until they
// resolve or ctx is done.
func (o Outcome) Wait(ctx context.Context) (string, error) {
	if o.pending == nil {
		return o.text, nil
	}
	return o.pending.Wait(ctx)
}
