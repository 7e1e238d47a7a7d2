package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/wellnest/internal/constants"
)

// Record is implemented by every timestamped entry kept in a record store.
type Record interface {
	GetID() string
	GetDate() string
	GetTime() string
	GetTimestamp() int64
}

// Stamp is the identity and time header shared by all records. Date and
// Time are derived from Timestamp at construction and are never recomputed.
type Stamp struct {
	ID        string `json:"id"`
	Date      string `json:"date"`      // YYYY-MM-DD
	Time      string `json:"time"`      // HH:MM
	Timestamp int64  `json:"timestamp"` // unix millis
}

// NewStamp creates a stamp with a fresh id for the instant t, formatted in
// t's location.
func NewStamp(t time.Time) Stamp {
	return Stamp{
		ID:        uuid.New().String(),
		Date:      t.Format(constants.DateFormat),
		Time:      t.Format(constants.TimeFormat),
		Timestamp: t.UnixMilli(),
	}
}

func (s Stamp) GetID() string       { return s.ID }
func (s Stamp) GetDate() string     { return s.Date }
func (s Stamp) GetTime() string     { return s.Time }
func (s Stamp) GetTimestamp() int64 { return s.Timestamp }

// Instant returns the stamp's timestamp as a time in loc.
func (s Stamp) Instant(loc *time.Location) time.Time {
	return time.UnixMilli(s.Timestamp).In(loc)
}

func decodeStamp(f fields) Stamp {
	return Stamp{
		ID:        f.str("id", ""),
		Date:      f.str("date", ""),
		Time:      f.str("time", ""),
		Timestamp: f.int64("timestamp", 0),
	}
}
