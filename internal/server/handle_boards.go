package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizhaus/clueboard/internal/clueboard"
)

// BoardRequest is the request body for POST /api/host/boards. Either a full
// category grid is supplied, or Categories is empty and an empty grid of the
// given dimensions is generated for later authoring.
type BoardRequest struct {
	Name       string               `json:"name"`
	Categories []clueboard.Category `json:"categories,omitempty"`
	NumColumns int                  `json:"numColumns,omitempty"`
	NumRows    int                  `json:"numRows,omitempty"`
}

func handleCreateBoard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BoardRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		board := clueboard.Board{Categories: req.Categories}
		if len(req.Categories) == 0 {
			board = clueboard.NewBoard(req.NumColumns, req.NumRows)
		}
		if err := board.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := store.CreateBoard(r.Context(), req.Name, board)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func handleListBoards(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boards, err := store.ListBoards(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if boards == nil {
			boards = []BoardSummary{}
		}
		writeJSON(w, http.StatusOK, boards)
	}
}

func handleGetBoard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.GetBoard(r.Context(), chi.URLParam(r, "boardID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "board not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleDeleteBoard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteBoard(r.Context(), chi.URLParam(r, "boardID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "board not found")
			return
		}
		if err != nil {
			// FOREIGN KEY constraint: games still reference this board.
			writeError(w, http.StatusConflict, "board is in use by a game")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
