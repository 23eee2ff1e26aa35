package store_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"emotree/internal/emotion"
	"emotree/internal/store"
	"emotree/internal/types"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain ensures no goroutines leak from database handles.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type backendCase struct {
	name string
	open func(t *testing.T) store.Backend
}

var backendCases = []backendCase{
	{"sqlite-memory", func(t *testing.T) store.Backend {
		b, err := store.NewSQLiteBackend(":memory:", "sqlite", "emotree", time.Second)
		require.NoError(t, err)
		return b
	}},
	{"sqlite-file", func(t *testing.T) store.Backend {
		b, err := store.NewSQLiteBackend(filepath.Join(t.TempDir(), "journal.db"), "sqlite", "emotree", time.Second)
		require.NoError(t, err)
		return b
	}},
	{"json-file", func(t *testing.T) store.Backend {
		b, err := store.NewFileBackend(filepath.Join(t.TempDir(), "journal.json"))
		require.NoError(t, err)
		return b
	}},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s *store.EntryStore)) {
	for _, bc := range backendCases {
		t.Run(bc.name, func(t *testing.T) {
			s := store.NewEntryStore(bc.open(t))
			t.Cleanup(func() { s.Close() })
			fn(t, s)
		})
	}
}

func entryOn(id string, year int, month time.Month, day, hour int, cat emotion.Category) types.Entry {
	return types.Entry{
		ID:            id,
		Date:          time.Date(year, month, day, hour, 15, 0, 0, time.Local),
		Text:          "text for " + id,
		Emotion:       cat,
		Intensity:     0.75,
		Reflection:    emotion.Reflect(cat, 0.75),
		VisualElement: emotion.VisualFor(cat),
	}
}

func TestSaveThenGetByIDRoundTrips(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		e := entryOn("e-1", 2024, time.March, 14, 9, emotion.Hope)

		require.NoError(t, s.Save(ctx, e))

		got, err := s.GetByID(ctx, "e-1")
		require.NoError(t, err)
		if diff := cmp.Diff(e, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSave_NormalizesDateToLocalSeconds(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()

		utc := entryOn("utc", 2024, time.March, 31, 0, emotion.Joy)
		utc.Date = time.Date(2024, time.March, 31, 23, 30, 0, 0, time.UTC)
		require.NoError(t, s.Save(ctx, utc))

		got, err := s.GetByID(ctx, "utc")
		require.NoError(t, err)
		assert.True(t, got.Date.Equal(utc.Date), "want %v, got %v", utc.Date, got.Date)
		assert.Equal(t, time.Local, got.Date.Location())

		byDay, err := s.GetByDate(ctx, utc.Date.Local().Format(types.DayLayout))
		require.NoError(t, err)
		assert.Equal(t, "utc", byDay.ID)

		nanos := entryOn("nanos", 2024, time.April, 14, 9, emotion.Calm)
		nanos.Date = time.Date(2024, time.April, 14, 9, 15, 30, 123456789, time.Local)
		require.NoError(t, s.Save(ctx, nanos))

		got, err = s.GetByID(ctx, "nanos")
		require.NoError(t, err)
		assert.True(t, got.Date.Equal(nanos.Date.Truncate(time.Second)), "got %v", got.Date)
		assert.Zero(t, got.Date.Nanosecond())
	})
}

func TestGetByID_NotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		_, err := s.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestGetByDate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, entryOn("a", 2024, time.March, 1, 8, emotion.Joy)))
		require.NoError(t, s.Save(ctx, entryOn("b", 2024, time.March, 2, 22, emotion.Calm)))

		got, err := s.GetByDate(ctx, "2024-03-02")
		require.NoError(t, err)
		assert.Equal(t, "b", got.ID)

		_, err = s.GetByDate(ctx, "2024-03-03")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.GetByDate(ctx, "March 2nd")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})
}

func TestGetByMonth_SortedAndFiltered(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		for _, e := range []types.Entry{
			entryOn("mar-20", 2024, time.March, 20, 9, emotion.Joy),
			entryOn("feb-28", 2024, time.February, 28, 9, emotion.Calm),
			entryOn("mar-02", 2024, time.March, 2, 9, emotion.Wonder),
			entryOn("apr-01", 2024, time.April, 1, 0, emotion.Anger),
			entryOn("mar-11", 2024, time.March, 11, 9, emotion.Queasy),
			entryOn("mar-11-2023", 2023, time.March, 11, 9, emotion.Hope),
		} {
			require.NoError(t, s.Save(ctx, e))
		}

		got, err := s.GetByMonth(ctx, 2024, time.March)
		require.NoError(t, err)

		ids := make([]string, len(got))
		for i, e := range got {
			ids[i] = e.ID
		}
		assert.Equal(t, []string{"mar-02", "mar-11", "mar-20"}, ids)

		empty, err := s.GetByMonth(ctx, 2024, time.June)
		require.NoError(t, err)
		assert.Empty(t, empty)

		_, err = s.GetByMonth(ctx, 2024, 13)
		assert.Error(t, err)
	})
}

func TestMarkPlaced(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, entryOn("e", 2024, time.May, 5, 9, emotion.Joy)))

		require.NoError(t, s.MarkPlaced(ctx, "e"))
		require.NoError(t, s.MarkPlaced(ctx, "e"), "marking twice is a no-op")

		got, err := s.GetByID(ctx, "e")
		require.NoError(t, err)
		assert.True(t, got.Placed)

		assert.ErrorIs(t, s.MarkPlaced(ctx, "nope"), store.ErrNotFound)
	})
}

func TestSave_NeverClearsPlaced(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		e := entryOn("e", 2024, time.May, 5, 9, emotion.Joy)
		require.NoError(t, s.Save(ctx, e))
		require.NoError(t, s.MarkPlaced(ctx, "e"))

		e.Placed = false
		require.NoError(t, s.Save(ctx, e))

		got, err := s.GetByID(ctx, "e")
		require.NoError(t, err)
		assert.True(t, got.Placed)
	})
}

func TestSave_SameDayReplacesOtherID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, entryOn("morning", 2024, time.May, 5, 8, emotion.Calm)))
		require.NoError(t, s.Save(ctx, entryOn("evening", 2024, time.May, 5, 21, emotion.Joy)))

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = s.GetByID(ctx, "morning")
		assert.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.GetByDate(ctx, "2024-05-05")
		require.NoError(t, err)
		assert.Equal(t, "evening", got.ID)
	})
}

func TestSave_RejectsInvalidEntries(t *testing.T) {
	valid := entryOn("ok", 2024, time.May, 5, 9, emotion.Joy)
	tests := []struct {
		name   string
		mutate func(*types.Entry)
	}{
		{"empty id", func(e *types.Entry) { e.ID = "" }},
		{"zero date", func(e *types.Entry) { e.Date = time.Time{} }},
		{"unknown emotion", func(e *types.Entry) { e.Emotion = "ennui" }},
		{"intensity above one", func(e *types.Entry) { e.Intensity = 1.5 }},
		{"negative intensity", func(e *types.Entry) { e.Intensity = -0.1 }},
	}

	s := store.NewEntryStore(backendCases[0].open(t))
	defer s.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			assert.ErrorIs(t, s.Save(context.Background(), e), store.ErrInvalidEntry)
		})
	}
}

// failingBackend reads through to a real backend but refuses every write.
type failingBackend struct {
	store.Backend
}

func (f failingBackend) Update(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	return f.Backend.Update(ctx, func(current []byte) ([]byte, error) {
		if _, err := fn(current); err != nil {
			return nil, err
		}
		return nil, errors.New("disk full")
	})
}

func TestPersistenceFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	inner := backendCases[0].open(t)
	healthy := store.NewEntryStore(inner)
	defer healthy.Close()

	require.NoError(t, healthy.Save(ctx, entryOn("kept", 2024, time.May, 1, 9, emotion.Calm)))

	broken := store.NewEntryStore(failingBackend{inner})

	err := broken.Save(ctx, entryOn("lost", 2024, time.May, 2, 9, emotion.Joy))
	assert.ErrorIs(t, err, store.ErrPersistence)
	assert.ErrorIs(t, broken.MarkPlaced(ctx, "kept"), store.ErrPersistence)

	all, err := healthy.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "kept", all[0].ID)
	assert.False(t, all[0].Placed)

	// Lookups of unknown ids still report not-found, not a persistence error.
	assert.ErrorIs(t, broken.MarkPlaced(ctx, "nope"), store.ErrNotFound)
}

func TestCorruptBlobIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	b := backendCases[0].open(t)
	s := store.NewEntryStore(b)
	defer s.Close()

	require.NoError(t, b.Update(ctx, func([]byte) ([]byte, error) {
		return []byte("{not json"), nil
	}))

	_, err := s.All(ctx)
	assert.ErrorIs(t, err, store.ErrPersistence)
	assert.ErrorIs(t, s.Save(ctx, entryOn("e", 2024, time.May, 1, 9, emotion.Joy)), store.ErrPersistence)
}

func TestMonthlyReflection(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()

		_, err := s.GetMonthlyReflection(ctx, 2024, time.March)
		assert.ErrorIs(t, err, store.ErrNotFound)

		r := types.MonthlyReflection{
			Year:             2024,
			Month:            3,
			EntryCount:       4,
			Dominant:         emotion.Wonder,
			Counts:           map[emotion.Category]int{emotion.Wonder: 3, emotion.Calm: 1},
			AverageIntensity: 0.8,
			Text:             "wonder everywhere",
			CreatedAt:        time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
		}
		require.NoError(t, s.SaveMonthlyReflection(ctx, r))

		got, err := s.GetMonthlyReflection(ctx, 2024, time.March)
		require.NoError(t, err)
		if diff := cmp.Diff(r, got); diff != "" {
			t.Errorf("reflection mismatch (-want +got):\n%s", diff)
		}

		assert.Error(t, s.SaveMonthlyReflection(ctx, types.MonthlyReflection{Year: 2024, Month: 0}))
	})
}

func TestPreferences(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()

		prefs, err := s.Preferences(ctx)
		require.NoError(t, err)
		assert.Equal(t, types.DefaultPreferences(), prefs)

		theme := "night"
		off := false
		updated, err := s.UpdatePreferences(ctx, types.PreferencesPatch{Theme: &theme})
		require.NoError(t, err)
		assert.Equal(t, "night", updated.Theme)
		assert.True(t, updated.SoundEnabled)

		updated, err = s.UpdatePreferences(ctx, types.PreferencesPatch{SoundEnabled: &off})
		require.NoError(t, err)
		assert.Equal(t, types.Preferences{Theme: "night", SoundEnabled: false, AnimationsEnabled: true}, updated)

		prefs, err = s.Preferences(ctx)
		require.NoError(t, err)
		assert.Equal(t, updated, prefs)
	})
}

func TestClear(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, entryOn("e", 2024, time.May, 1, 9, emotion.Joy)))
		theme := "night"
		_, err := s.UpdatePreferences(ctx, types.PreferencesPatch{Theme: &theme})
		require.NoError(t, err)

		require.NoError(t, s.Clear(ctx))

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		prefs, err := s.Preferences(ctx)
		require.NoError(t, err)
		assert.Equal(t, types.DefaultPreferences(), prefs)
		seeded, err := s.Seeded(ctx)
		require.NoError(t, err)
		assert.False(t, seeded)
	})
}

func sampleGen(calls *int, mu *sync.Mutex) store.SeedFunc {
	return func(count int) []types.Entry {
		mu.Lock()
		*calls++
		mu.Unlock()
		out := make([]types.Entry, count)
		for i := range out {
			out[i] = entryOn(fmt.Sprintf("seed-%d", i), 2024, time.January, i+1, 12, emotion.Priority[i%len(emotion.Priority)])
		}
		return out
	}
}

func TestEnsureSeeded(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		var calls int
		var mu sync.Mutex

		added, err := s.EnsureSeeded(ctx, 7, sampleGen(&calls, &mu))
		require.NoError(t, err)
		assert.Equal(t, 7, added)

		entries, err := s.All(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 7)
		for _, e := range entries {
			assert.True(t, e.Emotion.Valid())
			assert.NotEmpty(t, e.Reflection)
		}

		added, err = s.EnsureSeeded(ctx, 7, sampleGen(&calls, &mu))
		require.NoError(t, err)
		assert.Zero(t, added)
		assert.Equal(t, 1, calls)

		seeded, err := s.Seeded(ctx)
		require.NoError(t, err)
		assert.True(t, seeded)
	})
}

func TestEnsureSeeded_SkipsNonEmptyStore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		var calls int
		var mu sync.Mutex
		require.NoError(t, s.Save(ctx, entryOn("mine", 2024, time.May, 1, 9, emotion.Joy)))

		added, err := s.EnsureSeeded(ctx, 7, sampleGen(&calls, &mu))
		require.NoError(t, err)
		assert.Zero(t, added)
		assert.Zero(t, calls)

		added, err = s.EnsureSeeded(ctx, 0, sampleGen(&calls, &mu))
		require.NoError(t, err)
		assert.Zero(t, added)
	})
}

func TestEnsureSeeded_ConcurrentCallersSeedOnce(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()
		var calls int
		var mu sync.Mutex
		gen := sampleGen(&calls, &mu)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.EnsureSeeded(ctx, 5, gen)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, 1, calls)
	})
}

func TestConcurrentSavesLoseNothing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.EntryStore) {
		ctx := context.Background()

		var wg sync.WaitGroup
		for day := 1; day <= 20; day++ {
			wg.Add(1)
			go func(day int) {
				defer wg.Done()
				assert.NoError(t, s.Save(ctx, entryOn(fmt.Sprintf("d%02d", day), 2024, time.July, day, 9, emotion.Calm)))
			}(day)
		}
		wg.Wait()

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 20, n)
	})
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, opts := range []store.BackendOptions{
		{Kind: store.KindSQLite, Path: filepath.Join(dir, "journal.db"), Driver: "sqlite", Key: "emotree"},
		{Kind: store.KindFile, Path: filepath.Join(dir, "journal.json")},
	} {
		t.Run(opts.Kind, func(t *testing.T) {
			s, err := store.Open(opts)
			require.NoError(t, err)
			require.NoError(t, s.Save(ctx, entryOn("e", 2024, time.May, 1, 9, emotion.Gratitude)))
			require.NoError(t, s.MarkPlaced(ctx, "e"))
			require.NoError(t, s.Close())

			s2, err := store.Open(opts)
			require.NoError(t, err)
			defer s2.Close()

			got, err := s2.GetByID(ctx, "e")
			require.NoError(t, err)
			assert.True(t, got.Placed)
			assert.Equal(t, emotion.Gratitude, got.Emotion)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := store.Open(store.BackendOptions{Kind: "redis"})
	assert.ErrorIs(t, err, store.ErrPersistence)
}

func TestSQLiteBackend_MattnDriver(t *testing.T) {
	b, err := store.NewSQLiteBackend(filepath.Join(t.TempDir(), "journal.db"), "sqlite3", "emotree", time.Second)
	if err != nil {
		t.Skipf("sqlite3 driver unavailable in this build: %v", err)
	}
	s := store.NewEntryStore(b)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, entryOn("e", 2024, time.May, 1, 9, emotion.Joy)))
	got, err := s.GetByID(ctx, "e")
	require.NoError(t, err)
	assert.Equal(t, "e", got.ID)
}

func TestSQLiteBackend_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	a, err := store.NewSQLiteBackend(path, "sqlite", "alice", time.Second)
	require.NoError(t, err)
	sa := store.NewEntryStore(a)
	defer sa.Close()
	require.NoError(t, sa.Save(ctx, entryOn("e", 2024, time.May, 1, 9, emotion.Joy)))
	require.NoError(t, sa.Close())

	b, err := store.NewSQLiteBackend(path, "sqlite", "bob", time.Second)
	require.NoError(t, err)
	sb := store.NewEntryStore(b)
	defer sb.Close()

	n, err := sb.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
