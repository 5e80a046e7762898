package rewards

import (
	"context"
	"time"
)

// Award represents one "award N points" event emitted by the puzzle
// engine. RelatedID identifies the triggering occurrence (for example
// a completed match), and the (couple_id, related_id) pair is unique so
// a retried request can never pay the same award twice.
type Award struct {
	ID        string    `json:"id" db:"id"`
	CoupleID  string    `json:"couple_id" db:"couple_id"`
	RelatedID string    `json:"related_id" db:"related_id"`
	PlayerID  string    `json:"player_id" db:"player_id"`
	Amount    int       `json:"amount" db:"amount"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Ledger defines the interface for idempotent award bookkeeping
type Ledger interface {
	// Award records the award unless one with the same couple and
	// related id already exists. Returns true when the award was
	// applied, false when it deduplicated against an earlier one.
	Award(ctx context.Context, a *Award) (bool, error)

	// Total returns the couple's accumulated points
	Total(ctx context.Context, coupleID string) (int, error)
}
