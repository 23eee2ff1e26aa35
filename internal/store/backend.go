package store

import (
	"context"
	"fmt"
	"time"
)

// Backend holds one serialized journal blob.
//
// Update runs fn with the current blob (nil when nothing is stored yet) and
// persists the bytes it returns. The read and the write happen atomically with
// respect to other Update calls on the same backend. When fn returns an error
// nothing is written and that error is returned unchanged.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error
	Close() error
}

// Backend kinds.
const (
	KindSQLite = "sqlite"
	KindFile   = "file"
)

// BackendOptions selects and configures a Backend.
type BackendOptions struct {
	Kind        string        // sqlite or file
	Path        string        // database or JSON file path; ":memory:" for an in-memory sqlite db
	Driver      string        // database/sql driver name for the sqlite kind
	Key         string        // row key of the blob in kv_store
	BusyTimeout time.Duration // sqlite busy_timeout
}

// OpenBackend opens the backend described by opts.
func OpenBackend(opts BackendOptions) (Backend, error) {
	switch opts.Kind {
	case KindSQLite, "":
		return NewSQLiteBackend(opts.Path, opts.Driver, opts.Key, opts.BusyTimeout)
	case KindFile:
		return NewFileBackend(opts.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Kind)
	}
}
