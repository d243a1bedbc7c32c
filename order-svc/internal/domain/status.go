package domain

import (
	"encoding/json"
	"fmt"

	"campus-canteen/apperr"
)

// Status is the closed set of order lifecycle states.
type Status string

const (
	StatusPlaced    Status = "Order Placed"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready to Pickup"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var AllStatuses = []Status{StatusPlaced, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", apperr.Invalid("status", fmt.Sprintf("unknown order status %q", s))
	}
	return status, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled:
		return true
	case StatusPlaced, StatusPreparing, StatusReady:
		return false
	default:
		panic(fmt.Sprintf("unhandled order status %q", string(s)))
	}
}

// NextStatus returns the status one step along the linear path, or false
// when s is terminal.
func NextStatus(s Status) (Status, bool) {
	switch s {
	case StatusPlaced:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusCompleted, true
	case StatusCompleted, StatusCancelled:
		return "", false
	default:
		panic(fmt.Sprintf("unhandled order status %q", string(s)))
	}
}

// CanTransition reports whether to is reachable from from in one step:
// the immediate next status, or Cancelled from any non-terminal status.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	next, ok := NextStatus(from)
	return ok && next == to
}

// BadgeColor is the dashboard colour for a status.
func (s Status) BadgeColor() string {
	switch s {
	case StatusPlaced:
		return "blue"
	case StatusPreparing:
		return "yellow"
	case StatusReady:
		return "green"
	case StatusCompleted:
		return "gray"
	case StatusCancelled:
		return "red"
	default:
		panic(fmt.Sprintf("unhandled order status %q", string(s)))
	}
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return apperr.Invalid("status", "must be a string")
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
