package store

import (
	"fmt"

	"emotree/internal/emotion"
	"emotree/internal/logging"
	"emotree/internal/types"
)

// CurrentBlobVersion is the blob layout written by this package.
//
// Version history:
//   - v0: entries, monthlyReflections and preferences only; visualElement optional
//   - v1: version and seeded fields; every entry carries its visualElement
const CurrentBlobVersion = 1

// BlobMigration upgrades a decoded state to Version.
type BlobMigration struct {
	Version     int
	Description string
	Apply       func(st *types.JournalState)
}

// BlobMigrations lists the upgrades in order.
var BlobMigrations = []BlobMigration{
	{Version: 1, Description: "backfill visual elements, clamp intensities", Apply: migrateV1},
}

// RunBlobMigrations brings st up to CurrentBlobVersion in place and returns the
// number of migrations applied. A blob written by a newer version is rejected.
func RunBlobMigrations(st *types.JournalState) (int, error) {
	if st.Version > CurrentBlobVersion {
		return 0, fmt.Errorf("blob version %d is newer than supported version %d", st.Version, CurrentBlobVersion)
	}

	applied := 0
	for _, m := range BlobMigrations {
		if st.Version >= m.Version {
			continue
		}
		m.Apply(st)
		st.Version = m.Version
		applied++
		logging.Store("Blob migration applied: v%d (%s)", m.Version, m.Description)
	}
	return applied, nil
}

func migrateV1(st *types.JournalState) {
	for id, e := range st.Entries {
		if e.VisualElement == "" {
			e.VisualElement = emotion.VisualFor(e.Emotion)
		}
		switch {
		case e.Intensity < 0 || e.Intensity != e.Intensity:
			e.Intensity = 0
		case e.Intensity > 1:
			e.Intensity = 1
		}
		if e.ID == "" {
			e.ID = id
		}
		st.Entries[id] = e
	}
	// v0 stores that already hold entries never need seeding again.
	if len(st.Entries) > 0 {
		st.Seeded = true
	}
}
