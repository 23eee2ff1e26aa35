package types

import (
	"encoding/json"
	"testing"
	"time"

	"emotree/internal/emotion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryJSON_DateLayout(t *testing.T) {
	e := Entry{
		ID:      "e-1",
		Date:    time.Date(2024, time.March, 5, 18, 30, 0, 0, time.Local),
		Text:    "calm evening",
		Emotion: emotion.Calm,
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-03-05T18:30:00"`)

	var back Entry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Date.Equal(e.Date))
	assert.Equal(t, "2024-03-05", back.Day())
}

func TestEntryJSON_UnknownEmotionDefaults(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","date":"2024-03-05","emotion":"ennui"}`), &e))
	assert.Equal(t, emotion.Default, e.Emotion)
	assert.Equal(t, 0, e.Date.Hour())
}

func TestEntryJSON_BadDate(t *testing.T) {
	var e Entry
	assert.Error(t, json.Unmarshal([]byte(`{"id":"x","date":"yesterday"}`), &e))
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-03-05T12:00:00", "2024-03-05T12:00:00Z", "2024-03-05"} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, time.Local, d.Location(), s)
	}
}

func TestInMonthAndKeys(t *testing.T) {
	e := Entry{Date: time.Date(2024, time.February, 29, 12, 0, 0, 0, time.Local)}
	assert.True(t, e.InMonth(2024, time.February))
	assert.False(t, e.InMonth(2024, time.March))
	assert.Equal(t, "2024-02", MonthKey(2024, time.February))
	assert.Equal(t, "2024-11", MonthlyReflection{Year: 2024, Month: 11}.Key())
}

func TestPreferencesApply(t *testing.T) {
	theme := "night"
	off := false

	p := DefaultPreferences().Apply(PreferencesPatch{Theme: &theme})
	assert.Equal(t, "night", p.Theme)
	assert.True(t, p.SoundEnabled)

	p = p.Apply(PreferencesPatch{SoundEnabled: &off, AnimationsEnabled: &off})
	assert.Equal(t, Preferences{Theme: "night"}, p)

	assert.Equal(t, p, p.Apply(PreferencesPatch{}))
}
