package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizhaus/clueboard/internal/clueboard"
	"github.com/quizhaus/clueboard/internal/engine"
)

// GameRequest is the request body for POST /api/host/games.
type GameRequest struct {
	BoardID string `json:"boardId"`
}

// GameResponse is the full game snapshot returned by the game endpoints.
type GameResponse struct {
	ID        string               `json:"id"`
	BoardID   string               `json:"boardId"`
	State     *clueboard.GameState `json:"state"`
	CreatedAt string               `json:"createdAt"`
	UpdatedAt string               `json:"updatedAt"`
}

func gameResponse(rec GameRecord) GameResponse {
	return GameResponse{
		ID:        rec.ID,
		BoardID:   rec.BoardID,
		State:     rec.State,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func handleCreateGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		board, err := store.GetBoard(r.Context(), req.BoardID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "board not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		rec, err := store.CreateGame(r.Context(), board.ID, clueboard.NewGameState(board.Board))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, gameResponse(rec))
	}
}

func handleListGames(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := store.ListGames(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if games == nil {
			games = []GameSummary{}
		}
		writeJSON(w, http.StatusOK, games)
	}
}

func handleGetGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, gameResponse(rec))
	}
}

func handleDeleteGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteGame(r.Context(), chi.URLParam(r, "gameID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// handleGameState returns the bare state document, the snapshot a display
// client polls between SSE frames.
func handleGameState(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, rec.State)
	}
}

// LeaderboardResponse is the response for GET .../leaderboard.
type LeaderboardResponse struct {
	Standings []engine.Standing `json:"standings"`
}

func handleLeaderboard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		standings := engine.Leaderboard(rec.State.Teams)
		if standings == nil {
			standings = []engine.Standing{}
		}
		writeJSON(w, http.StatusOK, LeaderboardResponse{Standings: standings})
	}
}

func handleAnimation(animations *AnimationRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, animations.Sample(chi.URLParam(r, "gameID")))
	}
}
