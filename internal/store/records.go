// Package store persists which popups a user has already seen. The seen
// log is a JSONL file: one record per dismissal, appended as it happens,
// so state survives crashes without a write-on-exit step.
package store

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Record is one seen-log entry: a popup dismissed by the user.
type Record struct {
	PopupID   string `json:"popup_id"`
	Page      string `json:"page,omitempty"`
	SeenAt    int64  `json:"seen_at"`
	SessionID string `json:"session_id,omitempty"`
}

// NewRecord returns a record for a dismissal happening now.
func NewRecord(popupID, page, sessionID string) Record {
	return Record{
		PopupID:   popupID,
		Page:      page,
		SeenAt:    time.Now().UnixMilli(),
		SessionID: sessionID,
	}
}

// Time returns the dismissal time.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.SeenAt)
}

// NewSessionID mints a session identifier. Each process generates one
// and stamps it onto every record it appends, so overlapping runs can
// be told apart in the log.
func NewSessionID() string {
	return ulid.Make().String()
}

// RecordIDs returns the distinct popup ids in the records, in first-seen
// order.
func RecordIDs(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.PopupID]; ok {
			continue
		}
		seen[r.PopupID] = struct{}{}
		ids = append(ids, r.PopupID)
	}
	return ids
}

// SeenTimes returns the earliest dismissal time per popup id.
func SeenTimes(records []Record) map[string]time.Time {
	times := make(map[string]time.Time, len(records))
	for _, r := range records {
		at := r.Time()
		if prev, ok := times[r.PopupID]; !ok || at.Before(prev) {
			times[r.PopupID] = at
		}
	}
	return times
}
