package screening

import (
	"sort"
	"time"

	"github.com/xavierca1/call-screener/internal/entity"
)

// HistoryLimit caps how many prior calls are shown for a caller.
const HistoryLimit = 3

type HistoryRecord struct {
	CallerID string          `json:"caller_id"`
	Topic    string          `json:"topic"`
	Priority entity.Priority `json:"priority"`
	Notes    string          `json:"notes"`
	Status   entity.Status   `json:"status"`
	Date     time.Time       `json:"date"`
}

// History lists the most recent prior calls from the same phone, newest
// first. excludeID keeps a record from matching itself while it is being
// edited. The roster is only read.
func History(phone string, roster []*entity.Caller, excludeID string) []HistoryRecord {
	key := entity.PhoneKey(phone)
	if key == "" {
		return []HistoryRecord{}
	}

	matches := make([]*entity.Caller, 0)
	for _, c := range roster {
		if c == nil || (excludeID != "" && c.ID == excludeID) {
			continue
		}
		if entity.PhoneKey(c.Phone) == key {
			matches = append(matches, c)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CallDate().After(matches[j].CallDate())
	})

	if len(matches) > HistoryLimit {
		matches = matches[:HistoryLimit]
	}

	out := make([]HistoryRecord, 0, len(matches))
	for _, c := range matches {
		decoded := Decode(c.Notes)
		out = append(out, HistoryRecord{
			CallerID: c.ID,
			Topic:    decoded.Topic,
			Priority: decoded.Priority,
			Notes:    c.Notes,
			Status:   c.Status,
			Date:     c.CallDate(),
		})
	}
	return out
}

// IsReturningCaller is answered from the live roster only.
func IsReturningCaller(phone string, roster []*entity.Caller) bool {
	return len(History(phone, roster, "")) > 0
}

func CallerTypeFor(phone string, roster []*entity.Caller, excludeID string) entity.CallerType {
	if len(History(phone, roster, excludeID)) > 0 {
		return entity.CallerTypeRegular
	}
	return entity.CallerTypeNew
}

// PriorCallCount counts every roster record sharing the phone, uncapped.
func PriorCallCount(phone string, roster []*entity.Caller, excludeID string) int {
	key := entity.PhoneKey(phone)
	if key == "" {
		return 0
	}
	n := 0
	for _, c := range roster {
		if c != nil && (excludeID == "" || c.ID != excludeID) && entity.PhoneKey(c.Phone) == key {
			n++
		}
	}
	return n
}
