package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStatus     = errors.New("unknown status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Status is the caller lifecycle: screening -> queued -> on_air -> completed.
// The drafts' "ready" state is the PrioritizedForHost flag on a queued caller.
type Status string

const (
	StatusScreening Status = "screening"
	StatusQueued    Status = "queued"
	StatusOnAir     Status = "on_air"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusScreening: {StatusQueued},
	StatusQueued:    {StatusOnAir, StatusScreening},
	StatusOnAir:     {StatusCompleted, StatusQueued, StatusScreening},
	StatusCompleted: nil,
}

// ParseStatus accepts the canonical names plus the legacy vocabulary still
// returned by older deployments of the caller API. The second return value is
// true when the legacy name implied the caller was prioritized for the host.
func ParseStatus(s string) (Status, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "screening":
		return StatusScreening, false, nil
	case "queued", "waiting", "active":
		return StatusQueued, false, nil
	case "ready":
		return StatusQueued, true, nil
	case "on_air", "on-air", "onair":
		return StatusOnAir, false, nil
	case "completed":
		return StatusCompleted, false, nil
	default:
		return "", false, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

func (s Status) Terminal() bool {
	return s == StatusCompleted
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidateTransition(from, to Status) error {
	if _, ok := transitions[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
