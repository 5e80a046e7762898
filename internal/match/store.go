package match

import (
	"context"
	"errors"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchExists   = errors.New("match already exists for couple and puzzle")

	// ErrLockContention is returned when another request holds the
	// match's exclusive lock. Safe to surface as "retry after refetch".
	ErrLockContention = errors.New("match is locked by another request")
)

// Store defines the interface for match persistence operations.
//
// Update is the single serialization point of the engine: it runs fn
// against the current record under an exclusive per-match lock and
// persists the mutated match, plus the Move fn returns (if any), in one
// atomic step. A non-nil error from fn aborts with zero mutation, so a
// timed-out caller can always retry safely.
type Store interface {
	Create(ctx context.Context, m *Match) error
	Get(ctx context.Context, id string) (*Match, error)
	FindByCouplePuzzle(ctx context.Context, coupleID, puzzleID string) (*Match, error)
	Update(ctx context.Context, id string, fn func(m *Match) (*Move, error)) (*Match, error)
	ListMoves(ctx context.Context, matchID string) ([]*Move, error)
}
