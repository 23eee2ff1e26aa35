package journal

// Phase is where today's entry stands in the write-then-place flow.
type Phase int

const (
	// PhaseNoEntryToday means nothing has been written today.
	PhaseNoEntryToday Phase = iota

	// PhaseClassifying means submitted text is being classified.
	PhaseClassifying

	// PhaseComposing means the reflection and visuals are being chosen.
	PhaseComposing

	// PhasePersisted means the entry has just been saved.
	PhasePersisted

	// PhaseAwaitingPlacement means today's entry exists but is not on the tree yet.
	PhaseAwaitingPlacement

	// PhasePlaced is terminal for the day.
	PhasePlaced
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNoEntryToday:
		return "no-entry-today"
	case PhaseClassifying:
		return "classifying"
	case PhaseComposing:
		return "composing"
	case PhasePersisted:
		return "persisted"
	case PhaseAwaitingPlacement:
		return "awaiting-placement"
	case PhasePlaced:
		return "placed"
	default:
		return "unknown"
	}
}

// Transient reports whether the phase only exists while a submission runs.
func (p Phase) Transient() bool {
	return p == PhaseClassifying || p == PhaseComposing || p == PhasePersisted
}
