package appointment

import (
	"testing"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
)

func TestCanTransitionLegalityTable(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusScheduled, StatusInProgress},
		{StatusScheduled, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tc := range legal {
		if err := CanTransition(tc.from, tc.to); err != nil {
			t.Fatalf("expected %s -> %s to be legal, got %v", tc.from, tc.to, err)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusScheduled, StatusCompleted},
		{StatusCompleted, StatusScheduled},
		{StatusCompleted, StatusInProgress},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusScheduled},
		{StatusCancelled, StatusInProgress},
		{StatusCancelled, StatusCompleted},
		{StatusInProgress, StatusScheduled},
	}
	for _, tc := range illegal {
		err := CanTransition(tc.from, tc.to)
		if err == nil {
			t.Fatalf("expected %s -> %s to be illegal", tc.from, tc.to)
		}
		if !httperr.IsBusiness(err, "invalid_transition") {
			t.Fatalf("expected invalid_transition for %s -> %s, got %v", tc.from, tc.to, err)
		}
	}
}

func TestCanTransitionRejectsUnknownStatus(t *testing.T) {
	if err := CanTransition(Status("PAUSADO"), StatusCompleted); !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
}

func TestTerminalStates(t *testing.T) {
	if !IsTerminal(StatusCompleted) || !IsTerminal(StatusCancelled) {
		t.Fatal("completed and cancelled must be terminal")
	}
	if IsTerminal(StatusScheduled) || IsTerminal(StatusInProgress) {
		t.Fatal("scheduled and in progress must not be terminal")
	}
}
