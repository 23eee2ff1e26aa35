package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"emotree/internal/calendar"
	"emotree/internal/logging"
	"emotree/internal/types"
)

// errUnchanged aborts a mutation without writing and without failing it.
var errUnchanged = errors.New("unchanged")

// SeedFunc produces count sample entries for an empty store.
type SeedFunc func(count int) []types.Entry

// EntryStore is the journal's persistence layer. Every mutation is a
// read-modify-write of the whole blob; mutations are serialized by mu and by
// the backend's own atomic Update.
type EntryStore struct {
	mu      sync.RWMutex
	backend Backend
	seed    singleflight.Group
}

// NewEntryStore wraps an opened backend.
func NewEntryStore(backend Backend) *EntryStore {
	return &EntryStore{backend: backend}
}

// Open opens the backend described by opts and wraps it.
func Open(opts BackendOptions) (*EntryStore, error) {
	b, err := OpenBackend(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return NewEntryStore(b), nil
}

// Backend returns the underlying backend.
func (s *EntryStore) Backend() Backend { return s.backend }

// Close closes the backend.
func (s *EntryStore) Close() error {
	return s.backend.Close()
}

func decodeState(data []byte) (*types.JournalState, error) {
	st := types.NewJournalState(0)
	if len(data) == 0 {
		st.Version = CurrentBlobVersion
		return st, nil
	}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to decode journal blob: %w", err)
	}
	if st.Entries == nil {
		st.Entries = make(map[string]types.Entry)
	}
	if st.MonthlyReflections == nil {
		st.MonthlyReflections = make(map[string]types.MonthlyReflection)
	}
	if _, err := RunBlobMigrations(st); err != nil {
		return nil, err
	}
	return st, nil
}

func encodeState(st *types.JournalState) ([]byte, error) {
	st.Version = CurrentBlobVersion
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to encode journal blob: %w", err)
	}
	return data, nil
}

func (s *EntryStore) load(ctx context.Context) (*types.JournalState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	st, err := decodeState(data)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Journal blob unreadable: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return st, nil
}

// mutate applies fn to the current state and persists the result. Errors from
// fn are returned as-is; everything else wraps ErrPersistence.
func (s *EntryStore) mutate(ctx context.Context, op string, fn func(st *types.JournalState) error) error {
	start := time.Now()
	timer := logging.StartTimer(logging.CategoryStore, op)
	defer timer.StopWithThreshold(100 * time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()

	var opErr error
	err := s.backend.Update(ctx, func(current []byte) ([]byte, error) {
		st, err := decodeState(current)
		if err != nil {
			return nil, err
		}
		if err := fn(st); err != nil {
			opErr = err
			return nil, err
		}
		return encodeState(st)
	})
	if opErr != nil {
		if errors.Is(opErr, errUnchanged) {
			return nil
		}
		return opErr
	}
	if err != nil {
		logging.Get(logging.CategoryStore).Error("%s failed: %v", op, err)
		logging.AuditFor(logging.CategoryStore).StoreError(op, time.Since(start), err)
		return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
	}
	return nil
}

func validateEntry(e types.Entry) error {
	if e.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidEntry)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: entry %s has no date", ErrInvalidEntry, e.ID)
	}
	if !e.Emotion.Valid() {
		return fmt.Errorf("%w: entry %s has unknown emotion %q", ErrInvalidEntry, e.ID, e.Emotion)
	}
	if e.Intensity < 0 || e.Intensity > 1 || e.Intensity != e.Intensity {
		return fmt.Errorf("%w: entry %s intensity %v outside [0,1]", ErrInvalidEntry, e.ID, e.Intensity)
	}
	return nil
}

// Save upserts e by id. The date is stored in local time at whole-second
// precision, so GetByID returns it normalized. A stored placed flag is never
// cleared, and an entry held by a different id on the same local calendar day
// is replaced.
func (s *EntryStore) Save(ctx context.Context, e types.Entry) error {
	e.Date = calendar.Normalize(e.Date)
	if err := validateEntry(e); err != nil {
		return err
	}
	return s.mutate(ctx, "Save", func(st *types.JournalState) error {
		if existing, ok := st.Entries[e.ID]; ok && existing.Placed {
			e.Placed = true
		}
		day := e.Day()
		for id, other := range st.Entries {
			if id != e.ID && calendar.SameDay(e.Date, other.Date) {
				logging.Get(logging.CategoryStore).Warn("Entry %s replaces %s on %s", e.ID, id, day)
				delete(st.Entries, id)
			}
		}
		st.Entries[e.ID] = e
		logging.StoreDebug("Saved entry %s (%s, %s)", e.ID, day, e.Emotion)
		return nil
	})
}

// GetByID returns the entry with the given id.
func (s *EntryStore) GetByID(ctx context.Context, id string) (types.Entry, error) {
	st, err := s.load(ctx)
	if err != nil {
		return types.Entry{}, err
	}
	e, ok := st.Entries[id]
	if !ok {
		return types.Entry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return e, nil
}

// GetByDate returns the entry written on day ("YYYY-MM-DD").
func (s *EntryStore) GetByDate(ctx context.Context, day string) (types.Entry, error) {
	if _, err := time.Parse(types.DayLayout, day); err != nil {
		return types.Entry{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	st, err := s.load(ctx)
	if err != nil {
		return types.Entry{}, err
	}
	var found *types.Entry
	for _, e := range st.Entries {
		if e.Day() != day {
			continue
		}
		if found == nil || e.Date.After(found.Date) {
			e := e
			found = &e
		}
	}
	if found == nil {
		return types.Entry{}, fmt.Errorf("entry on %s: %w", day, ErrNotFound)
	}
	return *found, nil
}

// GetByMonth returns the entries of one month ordered by date ascending.
func (s *EntryStore) GetByMonth(ctx context.Context, year int, month time.Month) ([]types.Entry, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []types.Entry
	for _, e := range st.Entries {
		if e.InMonth(year, month) {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

// All returns every entry ordered by date ascending.
func (s *EntryStore) All(ctx context.Context) ([]types.Entry, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Entry, 0, len(st.Entries))
	for _, e := range st.Entries {
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

// Count returns the number of stored entries.
func (s *EntryStore) Count(ctx context.Context) (int, error) {
	st, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(st.Entries), nil
}

func sortEntries(entries []types.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
}

// MarkPlaced sets placed on the entry. Marking an already placed entry is a
// no-op that does not rewrite the blob.
func (s *EntryStore) MarkPlaced(ctx context.Context, id string) error {
	return s.mutate(ctx, "MarkPlaced", func(st *types.JournalState) error {
		e, ok := st.Entries[id]
		if !ok {
			return fmt.Errorf("entry %s: %w", id, ErrNotFound)
		}
		if e.Placed {
			return errUnchanged
		}
		e.Placed = true
		st.Entries[id] = e
		logging.StoreDebug("Marked entry %s placed", id)
		return nil
	})
}

// SaveMonthlyReflection stores r under its "YYYY-MM" key, replacing any previous one.
func (s *EntryStore) SaveMonthlyReflection(ctx context.Context, r types.MonthlyReflection) error {
	if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("invalid month %d", r.Month)
	}
	return s.mutate(ctx, "SaveMonthlyReflection", func(st *types.JournalState) error {
		st.MonthlyReflections[r.Key()] = r
		return nil
	})
}

// GetMonthlyReflection returns the stored reflection for a month.
func (s *EntryStore) GetMonthlyReflection(ctx context.Context, year int, month time.Month) (types.MonthlyReflection, error) {
	st, err := s.load(ctx)
	if err != nil {
		return types.MonthlyReflection{}, err
	}
	key := types.MonthKey(year, month)
	r, ok := st.MonthlyReflections[key]
	if !ok {
		return types.MonthlyReflection{}, fmt.Errorf("monthly reflection %s: %w", key, ErrNotFound)
	}
	return r, nil
}

// Preferences returns the stored preferences, defaults for a fresh store.
func (s *EntryStore) Preferences(ctx context.Context) (types.Preferences, error) {
	st, err := s.load(ctx)
	if err != nil {
		return types.Preferences{}, err
	}
	return st.Preferences, nil
}

// UpdatePreferences merges patch over the stored preferences and returns the result.
func (s *EntryStore) UpdatePreferences(ctx context.Context, patch types.PreferencesPatch) (types.Preferences, error) {
	var updated types.Preferences
	err := s.mutate(ctx, "UpdatePreferences", func(st *types.JournalState) error {
		st.Preferences = st.Preferences.Apply(patch)
		updated = st.Preferences
		return nil
	})
	if err != nil {
		return types.Preferences{}, err
	}
	return updated, nil
}

// Clear replaces the blob with a fresh empty state.
func (s *EntryStore) Clear(ctx context.Context) error {
	return s.mutate(ctx, "Clear", func(st *types.JournalState) error {
		*st = *types.NewJournalState(CurrentBlobVersion)
		logging.Store("Journal cleared")
		return nil
	})
}

// Seeded reports whether the store has been seeded.
func (s *EntryStore) Seeded(ctx context.Context) (bool, error) {
	st, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return st.Seeded, nil
}

// EnsureSeeded writes gen(count) into the store when it holds no entries and
// has never been seeded. Concurrent callers share one run; the seeded flag is
// persisted in the same write as the entries. It returns the number of entries
// added.
func (s *EntryStore) EnsureSeeded(ctx context.Context, count int, gen SeedFunc) (int, error) {
	if count <= 0 || gen == nil {
		return 0, nil
	}
	v, err, shared := s.seed.Do("seed", func() (interface{}, error) {
		added := 0
		err := s.mutate(ctx, "EnsureSeeded", func(st *types.JournalState) error {
			if st.Seeded || len(st.Entries) > 0 {
				return errUnchanged
			}
			for _, e := range gen(count) {
				if err := validateEntry(e); err != nil {
					return err
				}
				st.Entries[e.ID] = e
				added++
			}
			st.Seeded = true
			return nil
		})
		if err != nil {
			return 0, err
		}
		if added > 0 {
			logging.Store("Seeded %d sample entries", added)
		}
		return added, nil
	})
	if err != nil {
		return 0, err
	}
	if shared {
		logging.StoreDebug("EnsureSeeded result shared with a concurrent caller")
	}
	return v.(int), nil
}
