package models

import (
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
)

type MoodEntry struct {
	Stamp
	Emoji string `json:"emoji"`
	Level int    `json:"level"` // 1 (worst) to 5 (best)
	Notes string `json:"notes,omitempty"`
}

func NewMoodEntry(at time.Time, emoji string, level int, notes string) MoodEntry {
	if emoji == "" {
		emoji = EmojiForLevel(level)
	}
	return MoodEntry{Stamp: NewStamp(at), Emoji: emoji, Level: level, Notes: notes}
}

func (m *MoodEntry) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	m.Stamp = decodeStamp(f)
	m.Emoji = f.str("emoji", constants.DefaultMoodEmoji)
	m.Level = f.int("level", constants.DefaultMoodLevel)
	if m.Level < constants.MinMoodLevel || m.Level > constants.MaxMoodLevel {
		m.Level = constants.DefaultMoodLevel
	}
	m.Notes = f.str("notes", "")
	return nil
}

var moodEmojis = [...]string{"😢", "😕", "😐", "🙂", "😄"}

// EmojiForLevel maps a mood level to its default face.
func EmojiForLevel(level int) string {
	if level < constants.MinMoodLevel || level > constants.MaxMoodLevel {
		return constants.DefaultMoodEmoji
	}
	return moodEmojis[level-1]
}

var moodLabels = [...]string{"Awful", "Bad", "Okay", "Good", "Great"}

func MoodLabel(level int) string {
	if level < constants.MinMoodLevel || level > constants.MaxMoodLevel {
		return "Unknown"
	}
	return moodLabels[level-1]
}
