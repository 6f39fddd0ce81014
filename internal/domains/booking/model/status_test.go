package model_test

import (
	"testing"

	"lodge/internal/domains/booking/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{name: "pending to confirmed", from: model.StatusPending, to: model.StatusConfirmed, allowed: true},
		{name: "pending to cancelled", from: model.StatusPending, to: model.StatusCancelled, allowed: true},
		{name: "pending to checked in skips confirmation", from: model.StatusPending, to: model.StatusCheckedIn, allowed: false},
		{name: "confirmed to checked in", from: model.StatusConfirmed, to: model.StatusCheckedIn, allowed: true},
		{name: "confirmed to cancelled", from: model.StatusConfirmed, to: model.StatusCancelled, allowed: true},
		{name: "confirmed back to pending", from: model.StatusConfirmed, to: model.StatusPending, allowed: false},
		{name: "checked in to checked out", from: model.StatusCheckedIn, to: model.StatusCheckedOut, allowed: true},
		{name: "checked in to cancelled", from: model.StatusCheckedIn, to: model.StatusCancelled, allowed: false},
		{name: "checked out is terminal", from: model.StatusCheckedOut, to: model.StatusPending, allowed: false},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusConfirmed, allowed: false},
		{name: "same status is not a transition", from: model.StatusPending, to: model.StatusPending, allowed: false},
		{name: "unknown source status", from: "UNKNOWN", to: model.StatusConfirmed, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.CanTransition(tt.from, tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		model.StatusPending,
		model.StatusConfirmed,
		model.StatusCheckedIn,
		model.StatusCheckedOut,
		model.StatusCancelled,
	} {
		if !model.ValidStatus(status) {
			t.Errorf("expected %s to be a valid status", status)
		}
	}

	if model.ValidStatus("RESERVED") {
		t.Error("expected RESERVED to be invalid")
	}

	if model.ValidStatus("") {
		t.Error("expected empty string to be invalid")
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status   string
		terminal bool
	}{
		{status: model.StatusPending, terminal: false},
		{status: model.StatusConfirmed, terminal: false},
		{status: model.StatusCheckedIn, terminal: false},
		{status: model.StatusCheckedOut, terminal: true},
		{status: model.StatusCancelled, terminal: true},
		{status: "UNKNOWN", terminal: false},
	}

	for _, tt := range tests {
		if got := model.IsTerminal(tt.status); got != tt.terminal {
			t.Errorf("IsTerminal(%s) = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestActiveStatuses(t *testing.T) {
	active := model.ActiveStatuses()

	expected := map[string]bool{
		model.StatusPending:   true,
		model.StatusConfirmed: true,
		model.StatusCheckedIn: true,
	}

	if len(active) != len(expected) {
		t.Fatalf("expected %d active statuses, got %d", len(expected), len(active))
	}

	for _, status := range active {
		if !expected[status] {
			t.Errorf("unexpected active status %s", status)
		}

		if model.IsTerminal(status) {
			t.Errorf("active status %s must not be terminal", status)
		}
	}
}
