package board

import (
	"fmt"
	"strings"
)

// Status is the progress state of a stage.
type Status string

const (
	StatusOngoing    Status = "ongoing"
	StatusCompleted  Status = "completed"
	StatusIncomplete Status = "incomplete"
)

// AllStatuses returns every valid status in cycle order.
func AllStatuses() []Status {
	return []Status{StatusOngoing, StatusCompleted, StatusIncomplete}
}

// ParseStatus validates a status string. Matching is exact after trimming
// surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.TrimSpace(s)) {
	case StatusOngoing:
		return StatusOngoing, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusIncomplete:
		return StatusIncomplete, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusIncomplete:
		return true
	}
	return false
}

// Next returns the status a stage moves to when cycled:
// ongoing -> completed -> incomplete -> ongoing.
func (s Status) Next() Status {
	switch s {
	case StatusOngoing:
		return StatusCompleted
	case StatusCompleted:
		return StatusIncomplete
	default:
		return StatusOngoing
	}
}

func (s Status) String() string {
	return string(s)
}
