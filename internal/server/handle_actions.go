package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/quizhaus/clueboard/internal/clueboard"
	"github.com/quizhaus/clueboard/internal/engine"
	"github.com/quizhaus/clueboard/internal/events"
)

// gameLocks serializes actions per game. The engine is single-writer; two
// concurrent requests for the same game must not interleave load/apply/save.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *gameLocks) acquire(gameID string) func() {
	l.mu.Lock()
	m, ok := l.locks[gameID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[gameID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// actionDeps bundles what every action endpoint needs.
type actionDeps struct {
	store      Store
	broker     *Broker
	animations *AnimationRegistry
	events     events.Config
	locks      *gameLocks
}

// ActionResponse is the result of a successfully applied action.
type ActionResponse struct {
	Phase   json.RawMessage `json:"phase"`
	Effects []engine.Effect `json:"effects"`
}

// applyAction runs the load/apply/save cycle for one action under the game's
// lock. A rejected action writes the typed error and leaves the stored state
// untouched.
func (d actionDeps) applyAction(w http.ResponseWriter, r *http.Request, a engine.Action) {
	gameID := chi.URLParam(r, "gameID")
	unlock := d.locks.acquire(gameID)
	defer unlock()

	rec, err := d.store.GetGame(r.Context(), gameID)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	eng := engine.New(rec.State, d.events, nil)
	res, err := eng.Handle(a)
	if err != nil {
		writeGameError(w, err)
		return
	}

	if err := d.store.SaveGame(r.Context(), gameID, rec.State); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	for _, ef := range res.Effects {
		if ef.Type == engine.EffectEventAnimation {
			d.animations.Start(gameID, ef.Event)
		}
	}
	if effects := res.Effects; len(effects) > 0 {
		d.broker.Publish(gameID, EffectFrame{
			Phase:   string(res.Phase.Kind()),
			Effects: effects,
		})
	}

	phase, err := clueboard.MarshalPhase(res.Phase)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, ActionResponse{Phase: phase, Effects: res.Effects})
}

// TeamRequest is the request body for POST .../teams.
type TeamRequest struct {
	Name string `json:"name"`
}

// ClueActionRequest addresses a clue and the acting team.
type ClueActionRequest struct {
	Category int  `json:"category"`
	Row      int  `json:"row"`
	TeamID   int  `json:"teamId"`
	Correct  bool `json:"correct"`
}

func (r ClueActionRequest) coord() clueboard.Coord {
	return clueboard.Coord{Category: r.Category, Row: r.Row}
}

// CloseRequest is the request body for POST .../close.
type CloseRequest struct {
	Category   int `json:"category"`
	Row        int `json:"row"`
	NextTeamID int `json:"nextTeamId"`
}

// TriggerRequest is the request body for POST .../events/trigger.
type TriggerRequest struct {
	Event clueboard.EventKind `json:"event"`
}

// AdjustRequest is the request body for POST .../adjust.
type AdjustRequest struct {
	TeamID int `json:"teamId"`
	Points int `json:"points"`
}

func handleAddTeam(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TeamRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		d.applyAction(w, r, engine.AddTeam{TeamName: req.Name})
	}
}

func handleStartGame(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.applyAction(w, r, engine.StartGame{})
	}
}

func handleSelectClue(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClueActionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		d.applyAction(w, r, engine.SelectClue{Clue: req.coord(), TeamID: req.TeamID})
	}
}

func handleAnswer(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClueActionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Correct {
			d.applyAction(w, r, engine.AnswerCorrect{Clue: req.coord(), TeamID: req.TeamID})
			return
		}
		d.applyAction(w, r, engine.AnswerIncorrect{Clue: req.coord(), TeamID: req.TeamID})
	}
}

func handleSteal(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClueActionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		d.applyAction(w, r, engine.StealAttempt{
			Clue:    req.coord(),
			TeamID:  req.TeamID,
			Correct: req.Correct,
		})
	}
}

func handleCloseClue(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CloseRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		d.applyAction(w, r, engine.CloseClue{
			Clue:       clueboard.Coord{Category: req.Category, Row: req.Row},
			NextTeamID: req.NextTeamID,
		})
	}
}

func handleTriggerEvent(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TriggerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		d.applyAction(w, r, engine.TriggerEvent{Event: req.Event})
	}
}

func handleAcknowledgeEvent(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.animations.Clear(chi.URLParam(r, "gameID"))
		d.applyAction(w, r, engine.AcknowledgeEvent{})
	}
}

func handleResolveEvent(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.applyAction(w, r, engine.ResolveEvent{})
	}
}

func handleAdjustPoints(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdjustRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		d.applyAction(w, r, engine.ManualPointsAdjustment{
			TeamID:    req.TeamID,
			NewPoints: req.Points,
		})
	}
}

func handleFinishGame(d actionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.animations.Clear(chi.URLParam(r, "gameID"))
		d.applyAction(w, r, engine.ReturnToConfig{})
	}
}
