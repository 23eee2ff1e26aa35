package types

import (
	"encoding/json"
	"fmt"
	"time"

	"emotree/internal/emotion"
)

// DateLayout is the wire format of Entry.Date: local wall-clock date and time
// with no zone designator.
const DateLayout = "2006-01-02T15:04:05"

// DayLayout formats the calendar day of an entry.
const DayLayout = "2006-01-02"

// Entry is one journal record. Everything except Placed is fixed at creation.
type Entry struct {
	ID            string                `json:"id"`
	Date          time.Time             `json:"-"`
	Text          string                `json:"text"`
	Emotion       emotion.Category      `json:"emotion"`
	Intensity     float64               `json:"intensity"`
	Reflection    string                `json:"reflection"`
	VisualElement emotion.VisualElement `json:"visualElement,omitempty"`
	Placed        bool                  `json:"placed"`
}

// Day returns the entry's calendar day as YYYY-MM-DD.
func (e Entry) Day() string { return e.Date.Format(DayLayout) }

// InMonth reports whether the entry falls in the given year and month (1-12).
func (e Entry) InMonth(year int, month time.Month) bool {
	return e.Date.Year() == year && e.Date.Month() == month
}

type entryAlias Entry

type entryJSON struct {
	entryAlias
	Date string `json:"date"`
}

// MarshalJSON writes Date in DateLayout.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{entryAlias: entryAlias(e), Date: e.Date.Format(DateLayout)})
}

// UnmarshalJSON accepts DateLayout, RFC 3339 and bare YYYY-MM-DD dates.
// Unknown emotions decode to the default category.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := ParseDate(raw.Date)
	if err != nil {
		return fmt.Errorf("entry %s: %w", raw.ID, err)
	}
	*e = Entry(raw.entryAlias)
	e.Date = date
	e.Emotion = e.Emotion.OrDefault()
	return nil
}

// ParseDate parses an entry date string in local time.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local), nil
	}
	if t, err := time.ParseInLocation(DayLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid entry date %q", s)
}

// MonthKey formats the "YYYY-MM" key used for monthly records.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// MonthlyReflection summarizes the entries of one month.
type MonthlyReflection struct {
	Year             int                      `json:"year"`
	Month            int                      `json:"month"`
	EntryCount       int                      `json:"entryCount"`
	Dominant         emotion.Category         `json:"dominant"`
	Counts           map[emotion.Category]int `json:"counts"`
	AverageIntensity float64                  `json:"averageIntensity"`
	Text             string                   `json:"text"`
	CreatedAt        time.Time                `json:"createdAt"`
}

// Key returns the "YYYY-MM" key of the reflection.
func (m MonthlyReflection) Key() string { return MonthKey(m.Year, time.Month(m.Month)) }

// Preferences are the user's presentation settings.
type Preferences struct {
	Theme             string `json:"theme"`
	SoundEnabled      bool   `json:"soundEnabled"`
	AnimationsEnabled bool   `json:"animationsEnabled"`
}

// DefaultPreferences returns the settings of a fresh store.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:             "default",
		SoundEnabled:      true,
		AnimationsEnabled: true,
	}
}

// PreferencesPatch is a partial update; nil fields keep their current value.
type PreferencesPatch struct {
	Theme             *string `json:"theme,omitempty"`
	SoundEnabled      *bool   `json:"soundEnabled,omitempty"`
	AnimationsEnabled *bool   `json:"animationsEnabled,omitempty"`
}

// Apply merges the patch over p.
func (p Preferences) Apply(patch PreferencesPatch) Preferences {
	if patch.Theme != nil {
		p.Theme = *patch.Theme
	}
	if patch.SoundEnabled != nil {
		p.SoundEnabled = *patch.SoundEnabled
	}
	if patch.AnimationsEnabled != nil {
		p.AnimationsEnabled = *patch.AnimationsEnabled
	}
	return p
}

// JournalState is the whole persisted blob.
type JournalState struct {
	Version            int                          `json:"version"`
	Seeded             bool                         `json:"seeded"`
	Entries            map[string]Entry             `json:"entries"`
	MonthlyReflections map[string]MonthlyReflection `json:"monthlyReflections"`
	Preferences        Preferences                  `json:"preferences"`
}

// NewJournalState returns an empty state at the given blob version.
func NewJournalState(version int) *JournalState {
	return &JournalState{
		Version:            version,
		Entries:            make(map[string]Entry),
		MonthlyReflections: make(map[string]MonthlyReflection),
		Preferences:        DefaultPreferences(),
	}
}
