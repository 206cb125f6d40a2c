// Package screening holds the pure call-screening rules: priority
// classification, the flat notes codec and caller history lookup. Nothing in
// here does I/O or keeps state; every function works on the values passed in.
package screening

import (
	"strings"

	"github.com/xavierca1/call-screener/internal/entity"
)

var (
	highKeywords     = []string{"emergency", "urgent", "accident", "breakdown", "stuck", "immediate", "help"}
	mediumKeywords   = []string{"problem", "issue", "concern", "question", "advice"}
	criticalKeywords = []string{"emergency", "accident"}
)

// Classify returns the standard-scale priority for a topic/notes pair.
// High keywords win over medium ones.
func Classify(topic, notes string) entity.Priority {
	return ClassifyScale(entity.ScaleStandard, topic, notes)
}

func ClassifyScale(scale entity.Scale, topic, notes string) entity.Priority {
	text := strings.ToLower(topic + " " + notes)

	if scale == entity.ScaleExtended {
		switch {
		case containsAny(text, criticalKeywords):
			return entity.PriorityCritical
		case containsAny(text, highKeywords):
			return entity.PriorityHigh
		case containsAny(text, mediumKeywords):
			return entity.PriorityMedium
		default:
			return entity.PriorityLow
		}
	}

	switch {
	case containsAny(text, highKeywords):
		return entity.PriorityHigh
	case containsAny(text, mediumKeywords):
		return entity.PriorityMedium
	default:
		return entity.PriorityNormal
	}
}

// NewEntry builds a ScreeningEntry whose priority is derived from its text.
func NewEntry(scale entity.Scale, topic, notes string, docs []entity.Document) entity.ScreeningEntry {
	topic = strings.TrimSpace(topic)
	notes = strings.TrimSpace(notes)
	return entity.ScreeningEntry{
		Topic:     topic,
		Notes:     notes,
		Priority:  ClassifyScale(scale, topic, notes),
		Status:    entity.StatusScreening,
		Documents: append([]entity.Document(nil), docs...),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
