package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is metadata for a file attached during screening. The file itself
// is never handled here.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func NewDocument(name string, size int64, contentType string) Document {
	return Document{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(name),
		Size:       size,
		Type:       contentType,
		UploadedAt: time.Now().UTC(),
	}
}

// ScreeningEntry is what a screener gathered during one pass. It is a value:
// the With* helpers return a modified copy and never touch the receiver.
type ScreeningEntry struct {
	Topic     string     `json:"topic"`
	Notes     string     `json:"notes"`
	Priority  Priority   `json:"priority"`
	Status    Status     `json:"status"`
	Documents []Document `json:"documents,omitempty"`
}

func (e ScreeningEntry) WithDocument(d Document) ScreeningEntry {
	docs := make([]Document, 0, len(e.Documents)+1)
	docs = append(docs, e.Documents...)
	e.Documents = append(docs, d)
	return e
}

func (e ScreeningEntry) WithoutDocument(id string) ScreeningEntry {
	docs := make([]Document, 0, len(e.Documents))
	for _, d := range e.Documents {
		if d.ID != id {
			docs = append(docs, d)
		}
	}
	e.Documents = docs
	return e
}

func (e ScreeningEntry) DocumentNames() []string {
	names := make([]string, 0, len(e.Documents))
	for _, d := range e.Documents {
		if d.Name != "" {
			names = append(names, d.Name)
		}
	}
	return names
}
