// Package journal orchestrates the daily write, reflect and place flow on top
// of the classifier, the placement engine and the entry store.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"emotree/internal/calendar"
	"emotree/internal/emotion"
	"emotree/internal/logging"
	"emotree/internal/placement"
	"emotree/internal/store"
	"emotree/internal/types"
)

// Store is the persistence the session needs. *store.EntryStore implements it.
type Store interface {
	Save(ctx context.Context, e types.Entry) error
	GetByID(ctx context.Context, id string) (types.Entry, error)
	GetByDate(ctx context.Context, day string) (types.Entry, error)
	GetByMonth(ctx context.Context, year int, month time.Month) ([]types.Entry, error)
	All(ctx context.Context) ([]types.Entry, error)
	MarkPlaced(ctx context.Context, id string) error
	SaveMonthlyReflection(ctx context.Context, r types.MonthlyReflection) error
	GetMonthlyReflection(ctx context.Context, year int, month time.Month) (types.MonthlyReflection, error)
	Preferences(ctx context.Context) (types.Preferences, error)
	UpdatePreferences(ctx context.Context, patch types.PreferencesPatch) (types.Preferences, error)
	Clear(ctx context.Context) error
	EnsureSeeded(ctx context.Context, count int, gen store.SeedFunc) (int, error)
}

// Session is the single owner of journal writes for one store.
type Session struct {
	store       Store
	classifier  *emotion.Classifier
	reflections *emotion.ReflectionGenerator
	scatter     *placement.Scatterer
	clock       calendar.Clock
	newID       func() string

	seedCount int
	seedGen   store.SeedFunc

	mu sync.Mutex // serializes submissions and resets

	phaseMu  sync.Mutex
	inFlight Phase // -1 when no submission is running
	observer func(Phase)
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c calendar.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithClassifier replaces the default keyword classifier.
func WithClassifier(c *emotion.Classifier) Option {
	return func(s *Session) { s.classifier = c }
}

// WithReflections replaces the canned reflection texts.
func WithReflections(g *emotion.ReflectionGenerator) Option {
	return func(s *Session) { s.reflections = g }
}

// WithScatterer replaces the gallery scatter layout.
func WithScatterer(sc *placement.Scatterer) Option {
	return func(s *Session) { s.scatter = sc }
}

// WithIDFunc replaces the uuid id source.
func WithIDFunc(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// WithSeeding makes Open fill an empty, never-seeded store with count entries from gen.
func WithSeeding(count int, gen store.SeedFunc) Option {
	return func(s *Session) {
		s.seedCount = count
		s.seedGen = gen
	}
}

// WithPhaseObserver registers fn to be called on every phase transition of a submission.
func WithPhaseObserver(fn func(Phase)) Option {
	return func(s *Session) { s.observer = fn }
}

// NewSession builds a session over st.
func NewSession(st Store, opts ...Option) *Session {
	s := &Session{
		store:       st,
		classifier:  emotion.NewClassifier(nil),
		reflections: emotion.NewReflectionGenerator(nil),
		scatter:     placement.NewScatterer(),
		clock:       calendar.SystemClock,
		newID:       uuid.NewString,
		inFlight:    -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open bootstraps the session, seeding an empty store when seeding is
// configured. It returns the number of sample entries written.
func (s *Session) Open(ctx context.Context) (int, error) {
	timer := logging.StartTimer(logging.CategorySession, "Open")
	defer timer.Stop()

	if s.seedCount <= 0 || s.seedGen == nil {
		return 0, nil
	}
	added, err := s.store.EnsureSeeded(ctx, s.seedCount, s.seedGen)
	if err != nil {
		return 0, fmt.Errorf("seed journal: %w", err)
	}
	if added > 0 {
		logging.Session("Seeded %d sample entries", added)
		logging.Audit().JournalSeeded(added)
	}
	return added, nil
}

func (s *Session) now() time.Time {
	return calendar.Normalize(s.clock())
}

func (s *Session) setPhase(p Phase) {
	s.phaseMu.Lock()
	s.inFlight = p
	s.phaseMu.Unlock()
	logging.SessionDebug("Phase -> %s", p)
	if s.observer != nil {
		s.observer(p)
	}
}

// SubmitEntry classifies text, composes the reflection and saves today's entry.
func (s *Session) SubmitEntry(ctx context.Context, text string) (types.Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Entry{}, fmt.Errorf("%w: entry text is empty", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		s.phaseMu.Lock()
		s.inFlight = -1
		s.phaseMu.Unlock()
	}()

	now := s.now()
	existing, err := s.store.GetByDate(ctx, calendar.DayKey(now))
	switch {
	case err == nil:
		return types.Entry{}, fmt.Errorf("%w: %s", ErrAlreadyWritten, existing.ID)
	case !errors.Is(err, store.ErrNotFound):
		return types.Entry{}, fmt.Errorf("check today's entry: %w", err)
	}

	s.setPhase(PhaseClassifying)
	result := s.classifier.Classify(text)
	logging.Emotion("Classified entry as %s (intensity=%.2f, mixed=%v)", result.Primary, result.Intensity, result.Mixed)

	s.setPhase(PhaseComposing)
	entry := types.Entry{
		ID:            s.newID(),
		Date:          now,
		Text:          text,
		Emotion:       result.Primary,
		Intensity:     result.Intensity,
		Reflection:    s.reflections.Generate(result.Primary, result.Intensity),
		VisualElement: emotion.VisualFor(result.Primary),
	}

	if err := s.store.Save(ctx, entry); err != nil {
		logging.Get(logging.CategorySession).Error("Failed to save entry %s: %v", entry.ID, err)
		return types.Entry{}, fmt.Errorf("submit entry: %w", err)
	}
	s.setPhase(PhasePersisted)
	s.setPhase(PhaseAwaitingPlacement)

	logging.Session("Entry %s written for %s (%s)", entry.ID, entry.Day(), entry.Emotion)
	logging.Audit().EntryWritten(entry.ID, entry.Day(), string(entry.Emotion), entry.Intensity)
	return entry, nil
}

// TodayEntry returns today's entry, if any.
func (s *Session) TodayEntry(ctx context.Context) (types.Entry, bool, error) {
	e, err := s.store.GetByDate(ctx, calendar.DayKey(s.now()))
	if errors.Is(err, store.ErrNotFound) {
		return types.Entry{}, false, nil
	}
	if err != nil {
		return types.Entry{}, false, err
	}
	return e, true, nil
}

// Phase derives today's phase from the store, or reports the in-flight phase
// while a submission is running.
func (s *Session) Phase(ctx context.Context) (Phase, error) {
	s.phaseMu.Lock()
	p := s.inFlight
	s.phaseMu.Unlock()
	if p.Transient() {
		return p, nil
	}

	e, ok, err := s.TodayEntry(ctx)
	if err != nil {
		return PhaseNoEntryToday, err
	}
	switch {
	case !ok:
		return PhaseNoEntryToday, nil
	case e.Placed:
		return PhasePlaced, nil
	default:
		return PhaseAwaitingPlacement, nil
	}
}

// MonthEntries returns the entries of a month (1-12) ordered by date.
func (s *Session) MonthEntries(ctx context.Context, year, month int) ([]types.Entry, error) {
	if !calendar.ValidMonth(month) {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidInput, month)
	}
	return s.store.GetByMonth(ctx, year, time.Month(month))
}

// MarkPlaced records that the entry's ornament is on the tree. It is idempotent.
func (s *Session) MarkPlaced(ctx context.Context, id string) error {
	if err := s.store.MarkPlaced(ctx, id); err != nil {
		return err
	}
	logging.Session("Entry %s placed", id)
	logging.Audit().EntryPlaced(id)
	return nil
}

// OrnamentPositionForDay returns the fixed tree position of a day of month.
func (s *Session) OrnamentPositionForDay(day int) placement.Position {
	return placement.PositionFor(day)
}

// OrnamentKindFor returns the ornament hung for an emotion.
func (s *Session) OrnamentKindFor(c emotion.Category) emotion.OrnamentKind {
	return emotion.OrnamentFor(c)
}

// CharacterKindFor returns the character shown for an emotion.
func (s *Session) CharacterKindFor(c emotion.Category) emotion.CharacterKind {
	return emotion.CharacterFor(c)
}

// MonthLayout returns one ornament per written day of the month.
func (s *Session) MonthLayout(ctx context.Context, year, month int) ([]placement.Ornament, error) {
	entries, err := s.MonthEntries(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return placement.Layout(entries), nil
}

// Scatter lays out n gallery items with the non-deterministic scatter.
func (s *Session) Scatter(n int) []placement.Position {
	return s.scatter.Positions(n)
}

// Preferences returns the stored preferences.
func (s *Session) Preferences(ctx context.Context) (types.Preferences, error) {
	return s.store.Preferences(ctx)
}

// UpdatePreferences merges patch over the stored preferences.
func (s *Session) UpdatePreferences(ctx context.Context, patch types.PreferencesPatch) (types.Preferences, error) {
	prefs, err := s.store.UpdatePreferences(ctx, patch)
	if err != nil {
		return types.Preferences{}, err
	}
	logging.Session("Preferences updated: %+v", prefs)
	logging.Audit().PreferencesUpdated(prefs.Theme, prefs.SoundEnabled, prefs.AnimationsEnabled)
	return prefs, nil
}

// Reset wipes every entry, reflection and preference.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("reset journal: %w", err)
	}
	logging.Session("Journal reset")
	logging.Audit().JournalReset()
	return nil
}
