package store

import (
	"context"

	"github.com/badele/textanalyzer/internal/types"
)

// Store is the append-only persistence for texts, tokens and stats.
// There are no update or delete operations.
type Store interface {
	// InsertText appends a text and returns its generated id.
	InsertText(ctx context.Context, content string) (int64, error)

	// InsertToken appends a token of an existing text and returns its id.
	// Returns an error matching ErrTextNotFound if the text does not exist.
	InsertToken(ctx context.Context, textID int64, value string, position int) (int64, error)

	// InsertStats records the stats of a text, once.
	// Returns an error matching ErrDuplicateStats on a second call.
	InsertStats(ctx context.Context, textID int64, stats types.Stats) error

	// Close releases the store. Calling it again is a no-op.
	Close() error
}
