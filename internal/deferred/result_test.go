package deferred

import (
	"context"
	"errors"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestResolve_Once(t *testing.T) {
	r := New[string]()
	if err := r.Resolve("first"); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if err := r.Resolve("second"); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("second Resolve() error = %v, want ErrAlreadyResolved", err)
	}
	v, ok := r.Value()
	if !ok || v != "first" {
		t.Fatalf("Value() = %q, %v, want %q, true", v, ok, "first")
	}
}

func TestMustResolve_PanicsOnSecondCall(t *testing.T) {
	r := New[int]()
	r.MustResolve(1)

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected panic on second MustResolve")
		}
		perr, ok := rec.(*ProtocolError)
		if !ok {
			t.Fatalf("panic value = %T, want *ProtocolError", rec)
		}
		if !errors.Is(perr, ErrAlreadyResolved) {
			t.Fatalf("ProtocolError does not wrap ErrAlreadyResolved: %v", perr)
		}
	}()
	r.MustResolve(2)
}

func TestObserve_BeforeResolution(t *testing.T) {
	r := New[string]()
	var got []string
	r.Observe(func(v string) { got = append(got, "a:"+v) })
	r.Observe(func(v string) { got = append(got, "b:"+v) })

	if len(got) != 0 {
		t.Fatalf("observers ran before resolution: %v", got)
	}
	r.MustResolve("x")

	if len(got) != 2 || got[0] != "a:x" || got[1] != "b:x" {
		t.Fatalf("observers = %v, want [a:x b:x]", got)
	}
}

func TestObserve_AfterResolutionRunsImmediately(t *testing.T) {
	r := New[string]()
	r.MustResolve("done")

	called := 0
	r.Observe(func(v string) {
		called++
		if v != "done" {
			t.Errorf("observer got %q, want %q", v, "done")
		}
	})
	if called != 1 {
		t.Fatalf("observer called %d times, want 1", called)
	}
}

func TestObserve_CalledExactlyOnce(t *testing.T) {
	r := New[string]()
	calls := 0
	r.Observe(func(string) { calls++ })
	r.MustResolve("v")
	_ = r.Resolve("w")
	if calls != 1 {
		t.Fatalf("observer called %d times, want 1", calls)
	}
}

func TestWait_ResolvedFromAnotherGoroutine(t *testing.T) {
	r := New[string]()
	go func() {
		time.Sleep(5 * time.Millisecond)
		r.MustResolve("later")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	v, err := r.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if v != "later" {
		t.Fatalf("Wait() = %q, want %q", v, "later")
	}
}

func TestWait_ContextCancelled(t *testing.T) {
	r := New[string]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait() error = %v, want context.Canceled", err)
	}
	if r.Resolved() {
		t.Fatal("cancelled Wait must not resolve the result")
	}
}

func TestProgress(t *testing.T) {
	r := New[string]()
	var msgs []string
	r.ObserveProgress(func(m string) { msgs = append(msgs, m) })

	r.SetProgress("searching")
	r.SetProgress("downloading")
	r.MustResolve("done")
	r.SetProgress("ignored")

	if len(msgs) != 2 || msgs[0] != "searching" || msgs[1] != "downloading" {
		t.Fatalf("progress = %v, want [searching downloading]", msgs)
	}
}

func TestResolve_AnyValueObservedUnchanged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.String().Draw(t, "v")
		extra := rapid.SliceOf(rapid.String()).Draw(t, "extra")

		r := New[string]()
		r.MustResolve(v)
		for _, e := range extra {
			if err := r.Resolve(e); !errors.Is(err, ErrAlreadyResolved) {
				t.Fatalf("Resolve(%q) after resolution = %v, want ErrAlreadyResolved", e, err)
			}
		}
		var seen string
		r.Observe(func(s string) { seen = s })
		if seen != v {
			t.Fatalf("observed %q, want %q", seen, v)
		}
	})
}
