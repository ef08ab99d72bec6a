package store

import (
	"context"
	"errors"
	"time"

	"github.com/38tter/beer-analyzer-sub000/internal/models"
)

var (
	// ErrAuthRequired means no authenticated user id was supplied.
	ErrAuthRequired = errors.New("store: authenticated user id required")

	// ErrNoActiveQuery means LoadMore was called before any Query.
	ErrNoActiveQuery = errors.New("store: no active query")

	// ErrNotFound means the record does not exist for this user. Update never
	// creates a record for an unknown id.
	ErrNotFound = errors.New("store: record not found")
)

// Cursor points at the last row returned by the previous page. Pages are
// keyed on (timestamp, id): timestamp is the sort key, id breaks ties stably
// within one store state.
type Cursor struct {
	Timestamp time.Time
	ID        string
}

// Repository is the durable access port behind BeerStore.
type Repository interface {
	Insert(ctx context.Context, rec *models.BeerRecord) (string, error)
	Get(ctx context.Context, id, userID string) (*models.BeerRecord, error)
	Update(ctx context.Context, id, userID string, rec *models.BeerRecord) error
	// ToggleDrunk atomically flips has_drunk and returns the updated record.
	ToggleDrunk(ctx context.Context, id, userID string) (*models.BeerRecord, error)
	Delete(ctx context.Context, id, userID string) error
	// Page returns up to limit records owned by userID ordered by
	// (timestamp, id), strictly after the cursor when one is given.
	Page(ctx context.Context, userID string, descending bool, limit int, after *Cursor) ([]models.BeerRecord, error)
}
