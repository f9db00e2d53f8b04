package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	SchemaVersion = 1

	// SuccessThresholdSeconds is the fixed duration from which a session counts as successful.
	SuccessThresholdSeconds = 180

	ExerciseStartStop = "start-stop"
)

// SessionRecord is one completed practice session. Success is never stored:
// it is always derived from Duration.
type SessionRecord struct {
	Date     time.Time
	Duration int
}

func NewSessionRecord(date time.Time, duration int) SessionRecord {
	if duration < 0 {
		duration = 0
	}
	return SessionRecord{Date: date, Duration: duration}
}

func ClassifySuccess(duration int) bool {
	return duration >= SuccessThresholdSeconds
}

func (r SessionRecord) Success() bool {
	return ClassifySuccess(r.Duration)
}

// Notes is the free-text remark stored alongside a remote session row.
func (r SessionRecord) Notes() string {
	if r.Success() {
		return "Successful session"
	}
	return "Keep practicing"
}

// Owner identifies the signed-in user a remote session belongs to.
type Owner struct {
	UserID      string
	AccessToken string
}

type recordJSON struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Success  bool   `json:"success"`
}

func (r SessionRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Date:     r.Date.UTC().Format(time.RFC3339Nano),
		Duration: r.Duration,
		Success:  r.Success(),
	})
}

// UnmarshalJSON ignores any stored success flag. An unparsable date decodes
// to the zero time, which never matches a calendar day.
func (r *SessionRecord) UnmarshalJSON(data []byte) error {
	raw := recordJSON{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode session record: %w", err)
	}
	*r = NewSessionRecord(ParseDate(raw.Date), raw.Duration)
	return nil
}

// ParseDate accepts the ISO 8601 shapes produced by this app and by the
// backends; anything else yields the zero time.
func ParseDate(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05.999999-07"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatClock renders seconds as mm:ss; minutes are not capped at 59.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
