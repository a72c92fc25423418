// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions; adapters implement them.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/0xcro3dile/faqbot-go/internal/domain/entities"
)

// ErrDatasetUnavailable wraps every failure to read a corpus source as a
// whole (missing file, corrupt document, unreachable database).
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// ErrCacheMiss is returned by AnswerCache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CorpusSource reads the full set of Q&A records.
type CorpusSource interface {
	// Load returns the valid entries in source order. Individually invalid
	// records are listed in Dataset.Rejected rather than failing the load.
	Load(ctx context.Context) (*entities.Dataset, error)

	// Describe returns a short human-readable location for logs.
	Describe() string
}

// AnswerCache stores serialized results keyed by an opaque string.
type AnswerCache interface {
	// Get returns the cached value or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close releases underlying connections.
	Close() error
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
	FileRenamed
)

func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	}
	return "unknown"
}
