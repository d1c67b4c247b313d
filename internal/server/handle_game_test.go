package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/quizhaus/clueboard/internal/clueboard"
	"github.com/quizhaus/clueboard/internal/database"
	"github.com/quizhaus/clueboard/internal/engine"
	"github.com/quizhaus/clueboard/internal/events"
	"github.com/quizhaus/clueboard/internal/migrations"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	store := NewSQLiteStore(db)
	if err := SeedHost(ctx, slog.Default(), store, "host@example.com", "secret"); err != nil {
		t.Fatalf("seed host: %v", err)
	}
	return store
}

// hostRouter builds the full route tree over an in-memory store and logs in,
// returning the router and the session cookie.
func hostRouter(t *testing.T, cfg events.Config) (*chi.Mux, *http.Cookie) {
	t.Helper()
	store := setupStore(t)

	r := chi.NewRouter()
	addRoutes(r, slog.Default(), store, store.db, cfg)

	body, _ := json.Marshal(HostLoginRequest{Email: "host@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/host/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == hostCookieName {
			return r, c
		}
	}
	t.Fatal("login: no session cookie set")
	return nil, nil
}

func doJSON(t *testing.T, r *chi.Mux, cookie *http.Cookie, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createGame(t *testing.T, r *chi.Mux, cookie *http.Cookie) string {
	t.Helper()

	board := BoardRequest{
		Name: "Test Board",
		Categories: []clueboard.Category{
			{Name: "Cat A", Clues: []clueboard.Clue{
				{Points: 100, Question: "qa1", Answer: "aa1"},
				{Points: 200, Question: "qa2", Answer: "aa2"},
			}},
			{Name: "Cat B", Clues: []clueboard.Clue{
				{Points: 100, Question: "qb1", Answer: "ab1"},
				{Points: 200, Question: "qb2", Answer: "ab2"},
			}},
		},
	}
	w := doJSON(t, r, cookie, http.MethodPost, "/api/host/boards", board)
	if w.Code != http.StatusCreated {
		t.Fatalf("create board: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var rec BoardRecord
	json.NewDecoder(w.Body).Decode(&rec)

	w = doJSON(t, r, cookie, http.MethodPost, "/api/host/games", GameRequest{BoardID: rec.ID})
	if w.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var game GameResponse
	json.NewDecoder(w.Body).Decode(&game)
	if game.ID == "" {
		t.Fatal("create game: expected an id")
	}
	return game.ID
}

func TestUnauthorizedWithoutSession(t *testing.T) {
	r, _ := hostRouter(t, events.Config{})

	w := doJSON(t, r, nil, http.MethodGet, "/api/host/boards", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r, _ := hostRouter(t, events.Config{})

	body := HostLoginRequest{Email: "host@example.com", Password: "wrong"}
	w := doJSON(t, r, nil, http.MethodPost, "/api/host/login", body)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBoardValidationRejected(t *testing.T) {
	r, cookie := hostRouter(t, events.Config{})

	board := BoardRequest{
		Name: "Bad Board",
		Categories: []clueboard.Category{
			{Name: "Cat A", Clues: []clueboard.Clue{
				{Points: 200, Question: "q", Answer: "a"},
				{Points: 100, Question: "q", Answer: "a"},
			}},
		},
	}
	w := doJSON(t, r, cookie, http.MethodPost, "/api/host/boards", board)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-increasing points, got %d", w.Code)
	}
}

func TestFullGameFlow(t *testing.T) {
	r, cookie := hostRouter(t, events.Config{})
	gameID := createGame(t, r, cookie)
	base := "/api/host/games/" + gameID

	// Lobby: add teams, start.
	for _, name := range []string{"Red", "Blue"} {
		w := doJSON(t, r, cookie, http.MethodPost, base+"/teams", TeamRequest{Name: name})
		if w.Code != http.StatusOK {
			t.Fatalf("add team %s: expected 200, got %d: %s", name, w.Code, w.Body.String())
		}
	}
	w := doJSON(t, r, cookie, http.MethodPost, base+"/start", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Answering before a clue is open must be rejected without a write.
	w = doJSON(t, r, cookie, http.MethodPost, base+"/answer",
		ClueActionRequest{Category: 0, Row: 0, TeamID: 1, Correct: true})
	if w.Code != http.StatusConflict {
		t.Fatalf("premature answer: expected 409, got %d: %s", w.Code, w.Body.String())
	}
	var errResp ErrorResponse
	json.NewDecoder(w.Body).Decode(&errResp)
	if errResp.Code != string(engine.CodeInvalidAction) {
		t.Errorf("expected invalid_action code, got %q", errResp.Code)
	}

	// Select and answer correctly.
	w = doJSON(t, r, cookie, http.MethodPost, base+"/select",
		ClueActionRequest{Category: 0, Row: 1, TeamID: 1})
	if w.Code != http.StatusOK {
		t.Fatalf("select: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, cookie, http.MethodPost, base+"/answer",
		ClueActionRequest{Category: 0, Row: 1, TeamID: 1, Correct: true})
	if w.Code != http.StatusOK {
		t.Fatalf("answer: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res ActionResponse
	json.NewDecoder(w.Body).Decode(&res)
	foundScore := false
	for _, ef := range res.Effects {
		if ef.Type == engine.EffectScoreChanged && ef.TeamID == 1 && ef.Delta == 200 {
			foundScore = true
		}
	}
	if !foundScore {
		t.Errorf("expected +200 score effect, got %+v", res.Effects)
	}

	w = doJSON(t, r, cookie, http.MethodPost, base+"/close",
		CloseRequest{Category: 0, Row: 1, NextTeamID: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// State snapshot reflects the persisted aggregate.
	w = doJSON(t, r, cookie, http.MethodGet, base+"/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("state: expected 200, got %d", w.Code)
	}
	var state clueboard.GameState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if state.Phase.Kind() != clueboard.PhaseSelecting {
		t.Errorf("expected selecting phase, got %s", state.Phase.Kind())
	}
	if team, _ := state.TeamByID(1); team.Score != 200 {
		t.Errorf("expected team 1 at 200, got %d", team.Score)
	}
	if state.Events.QuestionsAnswered != 1 {
		t.Errorf("expected 1 question answered, got %d", state.Events.QuestionsAnswered)
	}

	// Leaderboard.
	w = doJSON(t, r, cookie, http.MethodGet, base+"/leaderboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard: expected 200, got %d", w.Code)
	}
	var lb LeaderboardResponse
	json.NewDecoder(w.Body).Decode(&lb)
	if len(lb.Standings) != 2 || lb.Standings[0].TeamID != 1 {
		t.Errorf("expected team 1 leading, got %+v", lb.Standings)
	}
}

func TestManualEventAndAnimation(t *testing.T) {
	r, cookie := hostRouter(t, events.Config{})
	gameID := createGame(t, r, cookie)
	base := fmt.Sprintf("/api/host/games/%s", gameID)

	doJSON(t, r, cookie, http.MethodPost, base+"/teams", TeamRequest{Name: "Red"})
	doJSON(t, r, cookie, http.MethodPost, base+"/teams", TeamRequest{Name: "Blue"})
	doJSON(t, r, cookie, http.MethodPost, base+"/start", nil)

	w := doJSON(t, r, cookie, http.MethodPost, base+"/events/trigger",
		TriggerRequest{Event: clueboard.EventDoublePoints})
	if w.Code != http.StatusOK {
		t.Fatalf("trigger: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// The announcement controller is live and sampled via the pull endpoint.
	w = doJSON(t, r, cookie, http.MethodGet, base+"/animation", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("animation: expected 200, got %d", w.Code)
	}
	var anim AnimationStatus
	json.NewDecoder(w.Body).Decode(&anim)
	if !anim.Active || anim.Event != clueboard.EventDoublePoints {
		t.Errorf("expected active double_points animation, got %+v", anim)
	}

	// A second trigger conflicts while the first is pending.
	w = doJSON(t, r, cookie, http.MethodPost, base+"/events/trigger",
		TriggerRequest{Event: clueboard.EventHardReset})
	if w.Code != http.StatusConflict {
		t.Fatalf("second trigger: expected 409, got %d", w.Code)
	}

	w = doJSON(t, r, cookie, http.MethodPost, base+"/events/acknowledge", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("acknowledge: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Acknowledging clears the controller.
	w = doJSON(t, r, cookie, http.MethodGet, base+"/animation", nil)
	json.NewDecoder(w.Body).Decode(&anim)
	if anim.Active {
		t.Errorf("expected no animation after acknowledge, got %+v", anim)
	}
}

func TestGameNotFound(t *testing.T) {
	r, cookie := hostRouter(t, events.Config{})

	w := doJSON(t, r, cookie, http.MethodPost, "/api/host/games/nope/start", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	w = doJSON(t, r, cookie, http.MethodGet, "/api/host/games/nope/state", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
