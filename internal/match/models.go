package match

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents different types of match events
type EventType string

const (
	EventTypeMatchCreated   EventType = "match_created"
	EventTypeMoveApplied    EventType = "move_applied"
	EventTypeWordCompleted  EventType = "word_completed"
	EventTypeMatchCompleted EventType = "match_completed"
	EventTypeTurnYielded    EventType = "turn_yielded"
	EventTypeHintUsed       EventType = "hint_used"
)

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	StatusActive    MatchStatus = "active"
	StatusCompleted MatchStatus = "completed"
)

// Board maps locked cell indices to their correctly placed letters.
// Only correct placements are ever stored; incorrect letters bounce
// back into the dealable pool.
type Board map[int]string

// Rack is the ordered set of letters dealt to the active player
type Rack []string

// Counts maps player ids to an integer tally (scores, hint allotments)
type Counts map[string]int

// Match represents one couple's authoritative progress on one puzzle
type Match struct {
	ID                  string      `json:"id" db:"id"`
	CoupleID            string      `json:"couple_id" db:"couple_id"`
	PuzzleID            string      `json:"puzzle_id" db:"puzzle_id"`
	Player1ID           string      `json:"player1_id" db:"player1_id"`
	Player2ID           string      `json:"player2_id" db:"player2_id"`
	BoardState          Board       `json:"board_state" db:"board_state"`
	CurrentRack         Rack        `json:"current_rack" db:"current_rack"`
	CurrentTurnPlayerID string      `json:"current_turn_player_id" db:"current_turn_player_id"`
	TurnNumber          int         `json:"turn_number" db:"turn_number"`
	Scores              Counts      `json:"scores" db:"scores"`
	HintAllotments      Counts      `json:"hint_allotments" db:"hint_allotments"`
	LockedCellCount     int         `json:"locked_cell_count" db:"locked_cell_count"`
	TotalAnswerCells    int         `json:"total_answer_cells" db:"total_answer_cells"`
	Status              MatchStatus `json:"status" db:"status"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
	CompletedAt         *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
}

// IsParticipant reports whether the player belongs to this match
func (m *Match) IsParticipant(playerID string) bool {
	return playerID == m.Player1ID || playerID == m.Player2ID
}

// Partner returns the other participant's id
func (m *Match) Partner(playerID string) string {
	if playerID == m.Player1ID {
		return m.Player2ID
	}
	return m.Player1ID
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the stored record to mutation.
func (m *Match) Clone() *Match {
	c := *m
	c.BoardState = make(Board, len(m.BoardState))
	for k, v := range m.BoardState {
		c.BoardState[k] = v
	}
	c.CurrentRack = append(Rack(nil), m.CurrentRack...)
	c.Scores = make(Counts, len(m.Scores))
	for k, v := range m.Scores {
		c.Scores[k] = v
	}
	c.HintAllotments = make(Counts, len(m.HintAllotments))
	for k, v := range m.HintAllotments {
		c.HintAllotments[k] = v
	}
	if m.CompletedAt != nil {
		t := *m.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// Placement records one submitted letter and its outcome
type Placement struct {
	CellIndex  int    `json:"cell_index"`
	Letter     string `json:"letter"`
	WasCorrect bool   `json:"was_correct"`
}

// Placements is the ordered batch of one submission
type Placements []Placement

// WordIDs lists the clue ids completed by one submission
type WordIDs []string

// Move is the append-only audit record of one whole submission
type Move struct {
	ID               string     `json:"id" db:"id"`
	MatchID          string     `json:"match_id" db:"match_id"`
	PlayerID         string     `json:"player_id" db:"player_id"`
	Placements       Placements `json:"placements" db:"placements"`
	PointsEarned     int        `json:"points_earned" db:"points_earned"`
	CompletedWordIDs WordIDs    `json:"completed_word_ids" db:"completed_word_ids"`
	TurnNumber       int        `json:"turn_number" db:"turn_number"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// MatchEvent represents an event that occurred during a match
type MatchEvent struct {
	Type      EventType      `json:"type"`
	MatchID   string         `json:"match_id"`
	PlayerID  *string        `json:"player_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload"`
}

// Value implements the driver.Valuer interface for Board
func (b Board) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements the sql.Scanner interface for Board
func (b *Board) Scan(src interface{}) error {
	return scanJSON(src, b)
}

// Value implements the driver.Valuer interface for Rack
func (r Rack) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements the sql.Scanner interface for Rack
func (r *Rack) Scan(src interface{}) error {
	return scanJSON(src, r)
}

// Value implements the driver.Valuer interface for Counts
func (c Counts) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for Counts
func (c *Counts) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// Value implements the driver.Valuer interface for Placements
func (p Placements) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface for Placements
func (p *Placements) Scan(src interface{}) error {
	return scanJSON(src, p)
}

// Value implements the driver.Valuer interface for WordIDs
func (w WordIDs) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// Scan implements the sql.Scanner interface for WordIDs
func (w *WordIDs) Scan(src interface{}) error {
	return scanJSON(src, w)
}

func scanJSON(src interface{}, dest interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dest)
	}
}
