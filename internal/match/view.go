package match

import (
	"time"

	"gridmates-go/internal/puzzle"
)

// ClueView is the client-facing clue metadata
type ClueView struct {
	Text       string           `json:"text"`
	Direction  puzzle.Direction `json:"direction"`
	StartIndex int              `json:"start_index"`
}

// PuzzleView carries puzzle metadata only. There is deliberately no
// solution field on this type: the answer grid can never be serialized
// to a client, regardless of endpoint.
type PuzzleView struct {
	Size       puzzle.Size         `json:"size"`
	CellLabels map[int]int         `json:"cell_labels"`
	Clues      map[string]ClueView `json:"clues"`
}

// MatchView is the full state replacement returned by every endpoint.
// Clients render it as-is; nothing is derived or persisted locally.
type MatchView struct {
	ID                  string      `json:"id"`
	PuzzleID            string      `json:"puzzle_id"`
	Puzzle              PuzzleView  `json:"puzzle"`
	BoardState          Board       `json:"board_state"`
	Rack                Rack        `json:"rack,omitempty"`
	YourTurn            bool        `json:"your_turn"`
	CurrentTurnPlayerID string      `json:"current_turn_player_id"`
	TurnNumber          int         `json:"turn_number"`
	Scores              Counts      `json:"scores"`
	HintsRemaining      int         `json:"hints_remaining"`
	LockedCellCount     int         `json:"locked_cell_count"`
	TotalAnswerCells    int         `json:"total_answer_cells"`
	Status              MatchStatus `json:"status"`
	PollIntervalMS      int         `json:"poll_interval_ms"`
	CompletedAt         *time.Time  `json:"completed_at,omitempty"`
}

// NewPuzzleView projects a definition down to its shareable metadata
func NewPuzzleView(def *puzzle.Definition) PuzzleView {
	clues := make(map[string]ClueView, len(def.Clues))
	for id, clue := range def.Clues {
		clues[id] = ClueView{
			Text:       clue.Text,
			Direction:  clue.Direction,
			StartIndex: clue.StartIndex,
		}
	}
	return PuzzleView{
		Size:       def.Size,
		CellLabels: def.CellLabels,
		Clues:      clues,
	}
}

// NewMatchView builds the response for one viewer. The rack is only
// included when the viewer holds the turn; the idle partner is a pure
// read-only poller and has no use for it.
func NewMatchView(m *Match, def *puzzle.Definition, viewerID string, pollInterval time.Duration) MatchView {
	view := MatchView{
		ID:                  m.ID,
		PuzzleID:            m.PuzzleID,
		Puzzle:              NewPuzzleView(def),
		BoardState:          m.BoardState,
		YourTurn:            m.Status == StatusActive && viewerID == m.CurrentTurnPlayerID,
		CurrentTurnPlayerID: m.CurrentTurnPlayerID,
		TurnNumber:          m.TurnNumber,
		Scores:              m.Scores,
		HintsRemaining:      m.HintAllotments[viewerID],
		LockedCellCount:     m.LockedCellCount,
		TotalAnswerCells:    m.TotalAnswerCells,
		Status:              m.Status,
		PollIntervalMS:      int(pollInterval.Milliseconds()),
		CompletedAt:         m.CompletedAt,
	}
	if view.YourTurn {
		view.Rack = m.CurrentRack
	}
	return view
}
