package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/quizhaus/clueboard/internal/events"
)

func addRoutes(r chi.Router, logger *slog.Logger, store Store, db *sql.DB, eventCfg events.Config) {
	broker := NewBroker()
	animations := NewAnimationRegistry()
	deps := actionDeps{
		store:      store,
		broker:     broker,
		animations: animations,
		events:     eventCfg,
		locks:      newGameLocks(),
	}

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Clueboard API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	// Host auth.
	r.Post("/api/host/login", handleHostLogin(store))
	r.Post("/api/host/logout", handleHostLogout(store))

	// Everything else requires a host session.
	r.Route("/api/host", func(r chi.Router) {
		r.Use(hostAuthMiddleware(store))

		r.Get("/me", handleHostMe())

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", handleListBoards(store))
			r.Post("/", handleCreateBoard(store))
			r.Get("/{boardID}", handleGetBoard(store))
			r.Delete("/{boardID}", handleDeleteBoard(store))
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", handleListGames(store))
			r.Post("/", handleCreateGame(store))
			r.Get("/{gameID}", handleGetGame(store))
			r.Delete("/{gameID}", handleDeleteGame(store))

			r.Get("/{gameID}/state", handleGameState(store))
			r.Get("/{gameID}/leaderboard", handleLeaderboard(store))
			r.Get("/{gameID}/animation", handleAnimation(animations))
			r.Get("/{gameID}/effects", handleEffects(store, broker))

			r.Post("/{gameID}/teams", handleAddTeam(deps))
			r.Post("/{gameID}/start", handleStartGame(deps))
			r.Post("/{gameID}/select", handleSelectClue(deps))
			r.Post("/{gameID}/answer", handleAnswer(deps))
			r.Post("/{gameID}/steal", handleSteal(deps))
			r.Post("/{gameID}/close", handleCloseClue(deps))
			r.Post("/{gameID}/events/trigger", handleTriggerEvent(deps))
			r.Post("/{gameID}/events/acknowledge", handleAcknowledgeEvent(deps))
			r.Post("/{gameID}/events/resolve", handleResolveEvent(deps))
			r.Post("/{gameID}/adjust", handleAdjustPoints(deps))
			r.Post("/{gameID}/finish", handleFinishGame(deps))
		})
	})
}
