package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/call-screener/internal/entity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		notes string
		want  entity.Priority
	}{
		{"high keyword in topic", "Need help, engine breakdown", "", entity.PriorityHigh},
		{"medium keyword in topic", "Question about DEF fluid", "", entity.PriorityMedium},
		{"no keyword", "General inquiry", "", entity.PriorityNormal},
		{"empty", "", "", entity.PriorityNormal},
		{"high keyword in notes", "Trailer brakes", "caller says it's URGENT", entity.PriorityHigh},
		{"high beats medium", "Question", "truck is stuck on the ramp", entity.PriorityHigh},
		{"substring match", "Helpful tips", "", entity.PriorityHigh},
		{"medium in notes only", "Fuel prices", "has a concern about tariffs", entity.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.topic, tt.notes))
		})
	}
}

func TestClassifyScaleExtended(t *testing.T) {
	tests := []struct {
		topic string
		want  entity.Priority
	}{
		{"Accident on I-80", entity.PriorityCritical},
		{"Emergency brake repair", entity.PriorityCritical},
		{"Urgent load question", entity.PriorityHigh},
		{"Advice on logbooks", entity.PriorityMedium},
		{"Saying hi", entity.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyScale(entity.ScaleExtended, tt.topic, ""))
		})
	}
}

func TestNewEntryDerivesPriority(t *testing.T) {
	docs := []entity.Document{{ID: "d1", Name: "report.pdf"}}
	e := NewEntry(entity.ScaleStandard, "  Oil issue ", " ", docs)

	assert.Equal(t, "Oil issue", e.Topic)
	assert.Equal(t, "", e.Notes)
	assert.Equal(t, entity.PriorityMedium, e.Priority)
	assert.Equal(t, entity.StatusScreening, e.Status)
	assert.Len(t, e.Documents, 1)

	docs[0].Name = "changed.pdf"
	assert.Equal(t, "report.pdf", e.Documents[0].Name)
}
