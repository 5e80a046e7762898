package match

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"gridmates-go/internal/auth"
	"gridmates-go/internal/puzzle"
)

type Handler struct {
	service      Service
	pollInterval time.Duration
}

func NewHandler(service Service, pollInterval time.Duration) *Handler {
	return &Handler{
		service:      service,
		pollInterval: pollInterval,
	}
}

type CreateMatchRequest struct {
	PuzzleID  string `json:"puzzle_id"`
	PartnerID string `json:"partner_id"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.PuzzleID == "" || req.PartnerID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "puzzle_id and partner_id are required")
		return
	}

	playerID := auth.GetPlayerIDFromContext(r.Context())
	coupleID := auth.GetCoupleIDFromContext(r.Context())
	if playerID == "" || coupleID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	m, err := h.service.GetOrCreateMatch(r.Context(), coupleID, playerID, req.PartnerID, req.PuzzleID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeMatch(w, m, playerID)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	playerID := auth.GetPlayerIDFromContext(r.Context())
	if playerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	m, err := h.service.GetMatch(r.Context(), ps.ByName("matchID"), playerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeMatch(w, m, playerID)
}

type SubmitMoveRequest struct {
	Placements []PlacementRequest `json:"placements"`
}

type SubmitMoveResponse struct {
	Match            MatchView  `json:"match"`
	Placements       Placements `json:"placements"`
	PointsEarned     int        `json:"points_earned"`
	CompletedWordIDs WordIDs    `json:"completed_word_ids"`
}

func (h *Handler) SubmitMove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	playerID := auth.GetPlayerIDFromContext(r.Context())
	if playerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req SubmitMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	matchID := ps.ByName("matchID")
	m, move, err := h.service.SubmitMove(r.Context(), matchID, playerID, req.Placements)
	if errors.Is(err, ErrMatchCompleted) {
		// A retried submit after completion is a no-op: return the
		// final state so the client converges instead of retrying.
		h.writeCompletedState(w, r, matchID, playerID)
		return
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	def, err := h.service.Puzzle(m.PuzzleID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	json.NewEncoder(w).Encode(SubmitMoveResponse{
		Match:            NewMatchView(m, def, playerID, h.pollInterval),
		Placements:       move.Placements,
		PointsEarned:     move.PointsEarned,
		CompletedWordIDs: move.CompletedWordIDs,
	})
}

func (h *Handler) UseHint(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	playerID := auth.GetPlayerIDFromContext(r.Context())
	if playerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	m, hint, err := h.service.UseHint(r.Context(), ps.ByName("matchID"), playerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	def, err := h.service.Puzzle(m.PuzzleID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	json.NewEncoder(w).Encode(struct {
		Match MatchView  `json:"match"`
		Hint  HintResult `json:"hint"`
	}{
		Match: NewMatchView(m, def, playerID, h.pollInterval),
		Hint:  *hint,
	})
}

func (h *Handler) YieldTurn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	playerID := auth.GetPlayerIDFromContext(r.Context())
	if playerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	m, err := h.service.YieldTurn(r.Context(), ps.ByName("matchID"), playerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeMatch(w, m, playerID)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (h *Handler) Routes() *httprouter.Router {
	router := httprouter.New()

	router.GET("/health", h.Health)
	router.POST("/match", h.CreateMatch)
	router.GET("/match/:matchID", h.GetMatch)
	router.POST("/match/:matchID/submit", h.SubmitMove)
	router.POST("/match/:matchID/hint", h.UseHint)
	router.POST("/match/:matchID/yield", h.YieldTurn)

	return router
}

func (h *Handler) writeMatch(w http.ResponseWriter, m *Match, playerID string) {
	def, err := h.service.Puzzle(m.PuzzleID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(NewMatchView(m, def, playerID, h.pollInterval))
}

func (h *Handler) writeCompletedState(w http.ResponseWriter, r *http.Request, matchID, playerID string) {
	m, err := h.service.GetMatch(r.Context(), matchID, playerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	def, err := h.service.Puzzle(m.PuzzleID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusConflict)
	json.NewEncoder(w).Encode(struct {
		Error string    `json:"error"`
		Match MatchView `json:"match"`
	}{
		Error: "match_completed",
		Match: NewMatchView(m, def, playerID, h.pollInterval),
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMatchNotFound), errors.Is(err, puzzle.ErrPuzzleNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrNotParticipant):
		writeError(w, http.StatusForbidden, "not_participant", err.Error())
	case errors.Is(err, ErrNotYourTurn):
		writeError(w, http.StatusConflict, "not_your_turn", err.Error())
	case errors.Is(err, ErrMatchCompleted):
		writeError(w, http.StatusConflict, "match_completed", err.Error())
	case errors.Is(err, ErrHintsExhausted):
		writeError(w, http.StatusConflict, "hints_exhausted", err.Error())
	case errors.Is(err, ErrLockContention):
		writeError(w, http.StatusConflict, "lock_contention", "another request holds this match, re-poll and retry")
	case errors.Is(err, ErrInvalidCell), errors.Is(err, ErrRackMismatch), errors.Is(err, ErrNoPlacements):
		writeError(w, http.StatusUnprocessableEntity, "invalid_move", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: code, Message: message})
}
