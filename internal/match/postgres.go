package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation  = "23505"
	pqLockNotAvailable = "55P03"
)

// postgresStore persists matches and moves in Postgres. Update takes
// the row lock with FOR UPDATE NOWAIT so a concurrent mutation fails
// fast as ErrLockContention instead of queueing behind the holder.
type postgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Create(ctx context.Context, m *Match) error {
	query := `
		INSERT INTO matches (
			id, couple_id, puzzle_id, player1_id, player2_id,
			board_state, current_rack, current_turn_player_id, turn_number,
			scores, hint_allotments, locked_cell_count, total_answer_cells,
			status, created_at, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := s.db.ExecContext(ctx, query,
		m.ID, m.CoupleID, m.PuzzleID, m.Player1ID, m.Player2ID,
		m.BoardState, m.CurrentRack, m.CurrentTurnPlayerID, m.TurnNumber,
		m.Scores, m.HintAllotments, m.LockedCellCount, m.TotalAnswerCells,
		m.Status, m.CreatedAt, m.CompletedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrMatchExists
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (s *postgresStore) Get(ctx context.Context, id string) (*Match, error) {
	m := &Match{}
	err := s.db.GetContext(ctx, m, `SELECT * FROM matches WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("get match: %w", err)
	}
	return m, nil
}

func (s *postgresStore) FindByCouplePuzzle(ctx context.Context, coupleID, puzzleID string) (*Match, error) {
	m := &Match{}
	err := s.db.GetContext(ctx, m, `
		SELECT * FROM matches WHERE couple_id = $1 AND puzzle_id = $2`,
		coupleID, puzzleID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("find match: %w", err)
	}
	return m, nil
}

func (s *postgresStore) Update(ctx context.Context, id string, fn func(m *Match) (*Move, error)) (*Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	m := &Match{}
	err = tx.GetContext(ctx, m, `SELECT * FROM matches WHERE id = $1 FOR UPDATE NOWAIT`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqLockNotAvailable {
			return nil, ErrLockContention
		}
		return nil, fmt.Errorf("lock match: %w", err)
	}

	move, err := fn(m)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE matches
		SET board_state = $1, current_rack = $2, current_turn_player_id = $3,
			turn_number = $4, scores = $5, hint_allotments = $6,
			locked_cell_count = $7, status = $8, completed_at = $9
		WHERE id = $10`

	if _, err := tx.ExecContext(ctx, query,
		m.BoardState, m.CurrentRack, m.CurrentTurnPlayerID,
		m.TurnNumber, m.Scores, m.HintAllotments,
		m.LockedCellCount, m.Status, m.CompletedAt, m.ID,
	); err != nil {
		return nil, fmt.Errorf("update match: %w", err)
	}

	if move != nil {
		moveQuery := `
			INSERT INTO moves (
				id, match_id, player_id, placements, points_earned,
				completed_word_ids, turn_number, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		if _, err := tx.ExecContext(ctx, moveQuery,
			move.ID, move.MatchID, move.PlayerID, move.Placements,
			move.PointsEarned, move.CompletedWordIDs, move.TurnNumber, move.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("insert move: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return m, nil
}

func (s *postgresStore) ListMoves(ctx context.Context, matchID string) ([]*Move, error) {
	var moves []*Move
	err := s.db.SelectContext(ctx, &moves, `
		SELECT * FROM moves WHERE match_id = $1 ORDER BY created_at, id`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	return moves, nil
}
