package model

import "slices"

const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
	StatusCancelled  = "CANCELLED"
)

// transitions is the booking lifecycle. CHECKED_OUT and CANCELLED are
// terminal; nothing leaves them.
var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {},
	StatusCancelled:  {},
}

func ValidStatus(status string) bool {
	_, ok := transitions[status]

	return ok
}

func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}

	return slices.Contains(allowed, to)
}

func IsTerminal(status string) bool {
	allowed, ok := transitions[status]

	return ok && len(allowed) == 0
}

// ActiveStatuses are the statuses that hold a room for their date range.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusConfirmed, StatusCheckedIn}
}
