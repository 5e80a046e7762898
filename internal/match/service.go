package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gridmates-go/internal/puzzle"
	"gridmates-go/internal/rewards"
)

var (
	ErrNotParticipant = errors.New("player is not a match participant")
	ErrMatchCompleted = errors.New("match is already completed")
	ErrNotYourTurn    = errors.New("not player's turn")
	ErrInvalidCell    = errors.New("cell is locked or not an answer cell")
	ErrRackMismatch   = errors.New("letter is not in the current rack")
	ErrHintsExhausted = errors.New("hint allotment exhausted")
	ErrNoPlacements   = errors.New("submission contains no placements")
)

// PlacementRequest is one cell/letter pair submitted by the client
type PlacementRequest struct {
	CellIndex int    `json:"cell_index"`
	Letter    string `json:"letter"`
}

// HintResult is the outcome of spending one hint unit: a rack letter
// and the open cells it could correctly fill. Cells outside the rack's
// reach are never revealed.
type HintResult struct {
	Letter         string `json:"letter"`
	CellIndexes    []int  `json:"cell_indexes"`
	HintsRemaining int    `json:"hints_remaining"`
}

type Service interface {
	GetOrCreateMatch(ctx context.Context, coupleID, creatorID, partnerID, puzzleID string) (*Match, error)
	GetMatch(ctx context.Context, matchID string, playerID string) (*Match, error)
	SubmitMove(ctx context.Context, matchID, playerID string, placements []PlacementRequest) (*Match, *Move, error)
	UseHint(ctx context.Context, matchID, playerID string) (*Match, *HintResult, error)
	YieldTurn(ctx context.Context, matchID, playerID string) (*Match, error)
	ListMoves(ctx context.Context, matchID string) ([]*Move, error)
	Puzzle(puzzleID string) (*puzzle.Definition, error)
	Events() <-chan MatchEvent
}

type matchService struct {
	store           Store
	puzzles         *puzzle.Loader
	dealer          *Dealer
	ledger          rewards.Ledger
	settings        puzzle.Settings
	completionAward int
	eventChan       chan MatchEvent
}

func NewService(store Store, puzzles *puzzle.Loader, dealer *Dealer, ledger rewards.Ledger, settings puzzle.Settings, completionAward int) Service {
	return &matchService{
		store:           store,
		puzzles:         puzzles,
		dealer:          dealer,
		ledger:          ledger,
		settings:        settings,
		completionAward: completionAward,
		eventChan:       make(chan MatchEvent, 100),
	}
}

// GetOrCreateMatch returns the couple's existing match for the puzzle
// or creates one with an empty board, turn 1 and an initial rack.
func (s *matchService) GetOrCreateMatch(ctx context.Context, coupleID, creatorID, partnerID, puzzleID string) (*Match, error) {
	existing, err := s.store.FindByCouplePuzzle(ctx, coupleID, puzzleID)
	if err == nil {
		if !existing.IsParticipant(creatorID) {
			return nil, ErrNotParticipant
		}
		return existing, nil
	}
	if !errors.Is(err, ErrMatchNotFound) {
		return nil, err
	}

	def, err := s.puzzles.Load(puzzleID)
	if err != nil {
		return nil, err
	}

	m := &Match{
		ID:                  uuid.New().String(),
		CoupleID:            coupleID,
		PuzzleID:            puzzleID,
		Player1ID:           creatorID,
		Player2ID:           partnerID,
		BoardState:          Board{},
		CurrentTurnPlayerID: creatorID,
		TurnNumber:          1,
		Scores:              Counts{creatorID: 0, partnerID: 0},
		HintAllotments:      Counts{creatorID: s.settings.InitialHints, partnerID: s.settings.InitialHints},
		TotalAnswerCells:    def.TotalAnswerCells(),
		Status:              StatusActive,
		CreatedAt:           time.Now().UTC(),
	}

	rack, err := s.dealer.Deal(def, m.BoardState, s.settings.RackSize)
	if err != nil {
		return nil, fmt.Errorf("deal initial rack: %w", err)
	}
	m.CurrentRack = rack

	if err := s.store.Create(ctx, m); err != nil {
		if errors.Is(err, ErrMatchExists) {
			// Lost the creation race to the partner's request; serve
			// whichever row won.
			return s.store.FindByCouplePuzzle(ctx, coupleID, puzzleID)
		}
		return nil, err
	}

	s.emitEvent(EventTypeMatchCreated, m.ID, nil, map[string]any{
		"couple_id": coupleID,
		"puzzle_id": puzzleID,
	})

	return m, nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID string, playerID string) (*Match, error) {
	m, err := s.store.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsParticipant(playerID) {
		return nil, ErrNotParticipant
	}
	return m, nil
}

// SubmitMove validates and applies a batch of placements as one atomic
// transaction under the match's exclusive lock. The first validation
// failure aborts with no mutation; there is no partial-success path.
func (s *matchService) SubmitMove(ctx context.Context, matchID, playerID string, placements []PlacementRequest) (*Match, *Move, error) {
	if len(placements) == 0 {
		return nil, nil, ErrNoPlacements
	}

	var (
		move           *Move
		completedNow   bool
		completedWords WordIDs
	)

	updated, err := s.store.Update(ctx, matchID, func(m *Match) (*Move, error) {
		def, err := s.puzzles.Load(m.PuzzleID)
		if err != nil {
			return nil, err
		}

		if !m.IsParticipant(playerID) {
			return nil, ErrNotParticipant
		}
		if m.Status != StatusActive {
			return nil, ErrMatchCompleted
		}
		if playerID != m.CurrentTurnPlayerID {
			return nil, ErrNotYourTurn
		}

		// Every submitted letter must consume a distinct rack slot.
		remaining := append(Rack(nil), m.CurrentRack...)
		for _, p := range placements {
			letter := strings.ToUpper(p.Letter)
			slot := -1
			for i, l := range remaining {
				if l == letter {
					slot = i
					break
				}
			}
			if slot < 0 {
				return nil, ErrRackMismatch
			}
			remaining = append(remaining[:slot], remaining[slot+1:]...)
		}

		for _, p := range placements {
			if !def.IsAnswerCell(p.CellIndex) {
				return nil, ErrInvalidCell
			}
			if _, locked := m.BoardState[p.CellIndex]; locked {
				return nil, ErrInvalidCell
			}
		}

		before := make(Board, len(m.BoardState))
		for k, v := range m.BoardState {
			before[k] = v
		}

		points := 0
		audit := make(Placements, 0, len(placements))
		for _, p := range placements {
			letter := strings.ToUpper(p.Letter)
			_, locked := m.BoardState[p.CellIndex]
			correct := !locked && letter == string(def.SolutionLetter(p.CellIndex))
			if correct {
				m.BoardState[p.CellIndex] = letter
				points += s.settings.LetterPoints
			}
			// Incorrect letters are consumed but never locked; their
			// solution letter stays in the dealable pool.
			audit = append(audit, Placement{CellIndex: p.CellIndex, Letter: letter, WasCorrect: correct})
		}

		completedWords = NewlyCompletedWords(def, before, m.BoardState)
		for _, clueID := range completedWords {
			points += WordLength(def, clueID) * s.settings.WordBonusPerCell
		}

		m.Scores[playerID] += points
		m.LockedCellCount = len(m.BoardState)

		if m.LockedCellCount == m.TotalAnswerCells {
			now := time.Now().UTC()
			m.Status = StatusCompleted
			m.CompletedAt = &now
			m.CurrentRack = Rack{}
			completedNow = true
		}

		move = &Move{
			ID:               uuid.New().String(),
			MatchID:          m.ID,
			PlayerID:         playerID,
			Placements:       audit,
			PointsEarned:     points,
			CompletedWordIDs: completedWords,
			TurnNumber:       m.TurnNumber,
			CreatedAt:        time.Now().UTC(),
		}

		// A fully consumed rack ends the turn: redeal from the cells
		// still open after this move and hand the board to the partner.
		if m.Status == StatusActive && len(remaining) == 0 {
			rack, err := s.dealer.Deal(def, m.BoardState, s.settings.RackSize)
			if err != nil {
				return nil, fmt.Errorf("redeal rack: %w", err)
			}
			m.CurrentRack = rack
			m.CurrentTurnPlayerID = m.Partner(playerID)
			m.TurnNumber++
		} else if m.Status == StatusActive {
			m.CurrentRack = remaining
		}

		return move, nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.emitEvent(EventTypeMoveApplied, matchID, &playerID, map[string]any{
		"points_earned": move.PointsEarned,
		"placements":    len(move.Placements),
	})
	for _, clueID := range completedWords {
		s.emitEvent(EventTypeWordCompleted, matchID, &playerID, map[string]any{
			"word_id": clueID,
		})
	}

	if completedNow {
		if err := s.payCompletionAwards(ctx, updated); err != nil {
			// The match is committed; the ledger's dedup key makes a
			// later replay of this award safe.
			return updated, move, fmt.Errorf("pay completion award: %w", err)
		}
		s.emitEvent(EventTypeMatchCompleted, matchID, &playerID, map[string]any{
			"scores": updated.Scores,
		})
	}

	return updated, move, nil
}

func (s *matchService) payCompletionAwards(ctx context.Context, m *Match) error {
	for i, playerID := range []string{m.Player1ID, m.Player2ID} {
		award := &rewards.Award{
			ID:        uuid.New().String(),
			CoupleID:  m.CoupleID,
			RelatedID: fmt.Sprintf("%s:completion:p%d", m.ID, i+1),
			PlayerID:  playerID,
			Amount:    s.completionAward,
			Reason:    "puzzle_completed",
			CreatedAt: time.Now().UTC(),
		}
		if _, err := s.ledger.Award(ctx, award); err != nil {
			return err
		}
	}
	return nil
}

// UseHint spends one unit of the player's allotment and reveals the
// open destinations of one currently dealt rack letter. The reveal is
// restricted to the rack on purpose: a hint never exposes information
// the player could not already act on.
func (s *matchService) UseHint(ctx context.Context, matchID, playerID string) (*Match, *HintResult, error) {
	var result *HintResult

	updated, err := s.store.Update(ctx, matchID, func(m *Match) (*Move, error) {
		def, err := s.puzzles.Load(m.PuzzleID)
		if err != nil {
			return nil, err
		}

		if !m.IsParticipant(playerID) {
			return nil, ErrNotParticipant
		}
		if m.Status != StatusActive {
			return nil, ErrMatchCompleted
		}
		if playerID != m.CurrentTurnPlayerID {
			return nil, ErrNotYourTurn
		}
		if m.HintAllotments[playerID] <= 0 {
			return nil, ErrHintsExhausted
		}

		m.HintAllotments[playerID]--

		letter := s.dealer.PickLetter(m.CurrentRack)
		result = &HintResult{
			Letter:         letter,
			CellIndexes:    Destinations(def, m.BoardState, letter),
			HintsRemaining: m.HintAllotments[playerID],
		}
		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.emitEvent(EventTypeHintUsed, matchID, &playerID, map[string]any{
		"remaining": result.HintsRemaining,
	})

	return updated, result, nil
}

// YieldTurn lets the active player hand over a partially used rack.
// The unused letters were never locked, so they simply return to the
// undealt pool and stay eligible for future deals.
func (s *matchService) YieldTurn(ctx context.Context, matchID, playerID string) (*Match, error) {
	updated, err := s.store.Update(ctx, matchID, func(m *Match) (*Move, error) {
		def, err := s.puzzles.Load(m.PuzzleID)
		if err != nil {
			return nil, err
		}

		if !m.IsParticipant(playerID) {
			return nil, ErrNotParticipant
		}
		if m.Status != StatusActive {
			return nil, ErrMatchCompleted
		}
		if playerID != m.CurrentTurnPlayerID {
			return nil, ErrNotYourTurn
		}

		rack, err := s.dealer.Deal(def, m.BoardState, s.settings.RackSize)
		if err != nil {
			return nil, fmt.Errorf("redeal rack: %w", err)
		}
		m.CurrentRack = rack
		m.CurrentTurnPlayerID = m.Partner(playerID)
		m.TurnNumber++
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.emitEvent(EventTypeTurnYielded, matchID, &playerID, nil)

	return updated, nil
}

func (s *matchService) ListMoves(ctx context.Context, matchID string) ([]*Move, error) {
	return s.store.ListMoves(ctx, matchID)
}

func (s *matchService) Puzzle(puzzleID string) (*puzzle.Definition, error) {
	return s.puzzles.Load(puzzleID)
}

// RecomputeScores replays a move log into per-player totals. Used to
// audit that stored scores match the append-only record exactly.
func RecomputeScores(moves []*Move) Counts {
	scores := Counts{}
	for _, mv := range moves {
		scores[mv.PlayerID] += mv.PointsEarned
	}
	return scores
}

func (s *matchService) emitEvent(eventType EventType, matchID string, playerID *string, payload map[string]any) {
	event := MatchEvent{
		Type:      eventType,
		MatchID:   matchID,
		PlayerID:  playerID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	select {
	case s.eventChan <- event:
	default:
		// Drop rather than block a request on a slow consumer.
	}
}

func (s *matchService) Events() <-chan MatchEvent {
	return s.eventChan
}
