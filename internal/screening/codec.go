package screening

import (
	"strings"

	"github.com/xavierca1/call-screener/internal/entity"
)

const (
	segmentSep    = " | "
	topicLabel    = "Topic:"
	notesLabel    = "Notes:"
	priorityLabel = "Priority:"
	docsLabel     = "Documents:"
	docNameSep    = ", "
)

// DecodedNotes is what survives a trip through the flat notes field.
type DecodedNotes struct {
	Topic     string          `json:"topic"`
	Notes     string          `json:"notes"`
	Priority  entity.Priority `json:"priority"`
	Documents []string        `json:"documents,omitempty"`
}

// Encode packs an entry into the legacy notes format:
//
//	Topic: {topic} | Notes: {notes} | Priority: {PRIORITY} | Documents: {a, b}
//
// Empty parts are left out entirely. The format has no escaping, so two
// characters are rewritten and do not survive a round trip verbatim: a "|"
// in any value is written as "/", and a "," in a document name is written as
// ";". Everything else decodes back to exactly what was encoded.
func Encode(e entity.ScreeningEntry) string {
	parts := make([]string, 0, 4)

	if t := clean(e.Topic); t != "" {
		parts = append(parts, topicLabel+" "+t)
	}
	if n := clean(e.Notes); n != "" {
		parts = append(parts, notesLabel+" "+n)
	}
	if p := strings.TrimSpace(string(e.Priority)); p != "" {
		parts = append(parts, priorityLabel+" "+strings.ToUpper(p))
	}
	if names := e.DocumentNames(); len(names) > 0 {
		for i := range names {
			names[i] = cleanDocName(names[i])
		}
		parts = append(parts, docsLabel+" "+strings.Join(names, docNameSep))
	}

	return strings.Join(parts, segmentSep)
}

// Decode reads back what Encode wrote. Text that was not produced by Encode
// is decoded on a best-effort basis; missing parts come back empty and the
// priority falls back to normal.
func Decode(text string) DecodedNotes {
	out := DecodedNotes{Priority: entity.PriorityNormal}

	for _, seg := range strings.Split(text, "|") {
		seg = strings.TrimSpace(seg)
		if v, ok := labelValue(seg, topicLabel); ok {
			out.Topic = v
		} else if v, ok := labelValue(seg, notesLabel); ok {
			out.Notes = v
		} else if v, ok := labelValue(seg, priorityLabel); ok {
			out.Priority = entity.ParsePriority(v)
		} else if v, ok := labelValue(seg, docsLabel); ok && v != "" {
			for _, name := range strings.Split(v, ",") {
				if name = strings.TrimSpace(name); name != "" {
					out.Documents = append(out.Documents, name)
				}
			}
		}
	}

	return out
}

func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "|", "/"))
}

func cleanDocName(s string) string {
	return clean(strings.ReplaceAll(s, ",", ";"))
}

func labelValue(seg, label string) (string, bool) {
	if len(seg) < len(label) || !strings.EqualFold(seg[:len(label)], label) {
		return "", false
	}
	return strings.TrimSpace(seg[len(label):]), true
}
