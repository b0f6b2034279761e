package fsm

import (
	"context"
	"errors"
	"testing"

	"github.com/looplab/fsm"
)

func TestIgnoreNoTransition(t *testing.T) {
	m := fsm.NewFSM("a", fsm.Events{{Name: "go_a", Src: []string{"a", "b"}, Dst: "a"}}, nil)

	err := m.Event(context.Background(), "go_a")
	if err == nil {
		t.Fatal("expected NoTransitionError from a self transition")
	}
	if IgnoreNoTransition(err) != nil {
		t.Fatalf("IgnoreNoTransition(%v) should be nil", err)
	}

	other := errors.New("boom")
	if !errors.Is(IgnoreNoTransition(other), other) {
		t.Fatal("unrelated errors must pass through")
	}
}

func TestWrapEventCancelsWithError(t *testing.T) {
	boom := errors.New("boom")
	m := fsm.NewFSM("a",
		fsm.Events{{Name: "go_b", Src: []string{"a"}, Dst: "b"}},
		fsm.Callbacks{
			"enter_b": WrapEvent(func(ctx context.Context, e *fsm.Event) error { return boom }),
		},
	)

	err := m.Event(context.Background(), "go_b")
	if !errors.Is(err, boom) {
		t.Fatalf("Event error = %v, want %v", err, boom)
	}
}

func TestAllStates(t *testing.T) {
	got := AllStates("a", "b", "a", "c", "b")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
