package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Clueboard API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Host API for running team trivia games.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/host/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/host/login")
	postLogin.SetSummary("Host login")
	postLogin.SetDescription("Authenticate with email and password. Sets host_session cookie.")
	postLogin.AddReqStructure(HostLoginRequest{})
	postLogin.AddRespStructure(HostMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/host/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/host/logout")
	postLogout.SetSummary("Host logout")
	postLogout.SetDescription("Clears the host session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/host/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/host/me")
	getMe.SetSummary("Current host")
	getMe.SetDescription("Returns the authenticated host. Requires host_session cookie.")
	getMe.AddRespStructure(HostMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// Boards.
	listBoards, _ := r.NewOperationContext(http.MethodGet, "/api/host/boards")
	listBoards.SetSummary("List boards")
	listBoards.AddRespStructure([]BoardSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listBoards)

	createBoard, _ := r.NewOperationContext(http.MethodPost, "/api/host/boards")
	createBoard.SetSummary("Create board")
	createBoard.SetDescription("Creates a board from a full category grid, or an empty grid of the given dimensions.")
	createBoard.AddReqStructure(BoardRequest{})
	createBoard.AddRespStructure(BoardRecord{}, openapi.WithHTTPStatus(http.StatusCreated))
	createBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createBoard)

	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/host/boards/{boardID}")
	getBoard.SetSummary("Get board")
	getBoard.AddRespStructure(BoardRecord{}, openapi.WithHTTPStatus(http.StatusOK))
	getBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getBoard)

	deleteBoard, _ := r.NewOperationContext(http.MethodDelete, "/api/host/boards/{boardID}")
	deleteBoard.SetSummary("Delete board")
	deleteBoard.SetDescription("Deletes a board. Blocked while a game references it.")
	deleteBoard.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(deleteBoard)

	// Games.
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/host/games")
	listGames.SetSummary("List games")
	listGames.AddRespStructure([]GameSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listGames)

	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/host/games")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Creates a lobby-phase game over an existing board.")
	createGame.AddReqStructure(GameRequest{})
	createGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(createGame)

	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/host/games/{gameID}")
	getGame.SetSummary("Get game")
	getGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	deleteGame, _ := r.NewOperationContext(http.MethodDelete, "/api/host/games/{gameID}")
	deleteGame.SetSummary("Delete game")
	deleteGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteGame)

	getState, _ := r.NewOperationContext(http.MethodGet, "/api/host/games/{gameID}/state")
	getState.SetSummary("Game state snapshot")
	getState.SetDescription("Returns the full serialized game state document.")
	getState.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/host/games/{gameID}/leaderboard")
	getLeaderboard.SetSummary("Leaderboard")
	getLeaderboard.SetDescription("Teams ordered by score descending, ties in registration order.")
	getLeaderboard.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getLeaderboard)

	getAnimation, _ := r.NewOperationContext(http.MethodGet, "/api/host/games/{gameID}/animation")
	getAnimation.SetSummary("Animation progress")
	getAnimation.SetDescription("Samples the running event announcement, if any.")
	getAnimation.AddRespStructure(AnimationStatus{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getAnimation)

	getEffects, _ := r.NewOperationContext(http.MethodGet, "/api/host/games/{gameID}/effects")
	getEffects.SetSummary("SSE effect stream")
	getEffects.SetDescription("Server-Sent Events stream of per-action effect frames.")
	getEffects.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEffects)

	// Game actions. All return the resulting phase and effect list, or a
	// typed rejection.
	actions := []struct {
		path, summary string
		req           any
	}{
		{"/api/host/games/{gameID}/teams", "Add team", TeamRequest{}},
		{"/api/host/games/{gameID}/start", "Start game", nil},
		{"/api/host/games/{gameID}/select", "Select clue", ClueActionRequest{}},
		{"/api/host/games/{gameID}/answer", "Judge answer", ClueActionRequest{}},
		{"/api/host/games/{gameID}/steal", "Judge steal attempt", ClueActionRequest{}},
		{"/api/host/games/{gameID}/close", "Close clue", CloseRequest{}},
		{"/api/host/games/{gameID}/events/trigger", "Trigger event", TriggerRequest{}},
		{"/api/host/games/{gameID}/events/acknowledge", "Acknowledge event announcement", nil},
		{"/api/host/games/{gameID}/events/resolve", "Resolve active event", nil},
		{"/api/host/games/{gameID}/adjust", "Adjust team points", AdjustRequest{}},
		{"/api/host/games/{gameID}/finish", "Reset game to lobby", nil},
	}
	for _, a := range actions {
		op, _ := r.NewOperationContext(http.MethodPost, a.path)
		op.SetSummary(a.summary)
		if a.req != nil {
			op.AddReqStructure(a.req)
		}
		op.AddRespStructure(ActionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
		_ = r.AddOperation(op)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
