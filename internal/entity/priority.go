package entity

import "strings"

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Scale selects which set of tiers the classifier produces.
type Scale string

const (
	ScaleStandard Scale = "standard" // normal, medium, high
	ScaleExtended Scale = "extended" // low, medium, high, critical
)

func ParseScale(s string) Scale {
	if strings.EqualFold(strings.TrimSpace(s), string(ScaleExtended)) {
		return ScaleExtended
	}
	return ScaleStandard
}

// ParsePriority is lenient: anything it does not know becomes PriorityNormal.
func ParsePriority(s string) Priority {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityNormal, PriorityMedium, PriorityHigh, PriorityCritical:
		return p
	default:
		return PriorityNormal
	}
}

// Urgent reports whether the host should be alerted for this tier.
func (p Priority) Urgent() bool {
	return p == PriorityHigh || p == PriorityCritical
}

func (p Priority) String() string {
	return string(p)
}
