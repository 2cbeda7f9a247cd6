package structs

import (
	"coffeeshop_server/lib"
	"fmt"
	"strings"
	"time"
)

// Timestamp is an ISO-8601 timestamp with seconds precision on the wire.
// Values are always expressed in UTC.
type Timestamp struct {
	time.Time
}

var timestampInputLayouts = []string{
	lib.TimestampLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// NewTimestampPtr returns nil for a nil time.
func NewTimestampPtr(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	ts := NewTimestamp(*t)
	return &ts
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.UTC().Format(lib.TimestampLayout) + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("timestamp must be a string, got %s", raw)
	}
	parsed, err := ParseTimestamp(raw[1 : len(raw)-1])
	if err != nil {
		return err
	}
	ts.Time = parsed
	return nil
}

// ParseTimestamp accepts the wire layout, its space separated variant and
// RFC 3339. Values without an offset are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampInputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not ISO-8601 (expected %s)", value, lib.TimestampLayout)
}

// TimePtr converts an optional Timestamp back into an optional time.
func (ts *Timestamp) TimePtr() *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time
	return &t
}
