package rewards

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type postgresLedger struct {
	db *sqlx.DB
}

func NewPostgresLedger(db *sqlx.DB) Ledger {
	return &postgresLedger{db: db}
}

// Award relies on the unique (couple_id, related_id) constraint: a
// duplicate insert becomes a no-op rather than a second payout.
func (l *postgresLedger) Award(ctx context.Context, a *Award) (bool, error) {
	query := `
		INSERT INTO point_awards (id, couple_id, related_id, player_id, amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (couple_id, related_id) DO NOTHING`

	res, err := l.db.ExecContext(ctx, query,
		a.ID, a.CoupleID, a.RelatedID, a.PlayerID, a.Amount, a.Reason, a.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert award: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (l *postgresLedger) Total(ctx context.Context, coupleID string) (int, error) {
	var total int
	err := l.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0) FROM point_awards WHERE couple_id = $1`,
		coupleID,
	)
	if err != nil {
		return 0, fmt.Errorf("sum awards: %w", err)
	}
	return total, nil
}
