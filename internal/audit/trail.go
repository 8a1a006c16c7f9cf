// Package audit holds the append-only history and note logs attached to an
// application. Both logs are stored as JSON text columns and decode to an empty
// sequence when the stored value is missing or malformed. An entry whose
// timestamp cannot be read keeps its text with a zero timestamp.
package audit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"kras-kickers/volunteers/internal/constants"
)

// HistoryEntry is a system-generated event.
type HistoryEntry struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}

// NoteEntry is a note written by an admin or champion.
type NoteEntry struct {
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

type History []HistoryEntry

type Notes []NoteEntry

// Append returns the history with one more event at the end.
func (h History) Append(event string, ts time.Time) History {
	return append(h, HistoryEntry{Event: event, Timestamp: ts})
}

// Append returns the notes with one more note at the end.
func (n Notes) Append(note string, ts time.Time) Notes {
	return append(n, NoteEntry{Note: note, Timestamp: ts})
}

// Scan implements sql.Scanner. Malformed data yields an empty history.
func (h *History) Scan(src interface{}) error {
	var decoded History
	decodeJSONColumn(src, &decoded)
	if decoded == nil {
		decoded = History{}
	}
	*h = decoded
	return nil
}

// Value implements driver.Valuer
func (h History) Value() (driver.Value, error) {
	if h == nil {
		h = History{}
	}
	return encodeJSONColumn(h)
}

// Scan implements sql.Scanner. Malformed data yields empty notes.
func (n *Notes) Scan(src interface{}) error {
	var decoded Notes
	decodeJSONColumn(src, &decoded)
	if decoded == nil {
		decoded = Notes{}
	}
	*n = decoded
	return nil
}

// Value implements driver.Valuer
func (n Notes) Value() (driver.Value, error) {
	if n == nil {
		n = Notes{}
	}
	return encodeJSONColumn(n)
}

func decodeJSONColumn(src interface{}, dst interface{}) {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return
	}
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// partial decodes are discarded along with the error
		switch d := dst.(type) {
		case *History:
			*d = nil
		case *Notes:
			*d = nil
		}
	}
}

func encodeJSONColumn(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to encode column: %w", err)
	}
	return string(data), nil
}

// UnmarshalJSON accepts RFC 3339 timestamps as well as the legacy minute layout.
func (e *HistoryEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Event     string          `json:"event"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Event = raw.Event
	e.Timestamp = parseTimestamp(raw.Timestamp)
	return nil
}

// UnmarshalJSON accepts RFC 3339 timestamps as well as the legacy minute layout.
func (e *NoteEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Note      string          `json:"note"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Note = raw.Note
	e.Timestamp = parseTimestamp(raw.Timestamp)
	return nil
}

// parseTimestamp returns the zero time for anything it cannot read.
func parseTimestamp(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts
	}
	if ts, err := time.ParseInLocation(constants.AuditTimeLayout, s, time.Local); err == nil {
		return ts
	}
	return time.Time{}
}
