package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizhaus/clueboard/internal/engine"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeGameError maps an engine rejection onto an HTTP status: unknown
// team/clue lookups are 404s, everything else is a 409 because the action
// conflicts with the current game state.
func writeGameError(w http.ResponseWriter, err error) {
	var ge *engine.GameError
	if !errors.As(err, &ge) {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	status := http.StatusConflict
	switch ge.Code {
	case engine.CodeInvalidTeam, engine.CodeInvalidClue:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"error": ge.Reason,
		"code":  string(ge.Code),
	})
}
