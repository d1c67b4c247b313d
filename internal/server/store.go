package server

import (
	"context"
	"errors"

	"github.com/quizhaus/clueboard/internal/clueboard"
)

var ErrNotFound = errors.New("not found")

type hostSession struct {
	HostID string
	Email  string
}

// BoardSummary is one row in the board listing.
type BoardSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Categories int    `json:"categories"`
	Rows       int    `json:"rows"`
	CreatedAt  string `json:"createdAt"`
}

// BoardRecord is a stored board with its full grid.
type BoardRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Board     clueboard.Board `json:"board"`
	CreatedAt string          `json:"createdAt"`
}

// GameSummary is one row in the game listing.
type GameSummary struct {
	ID        string `json:"id"`
	BoardID   string `json:"boardId"`
	BoardName string `json:"boardName"`
	Phase     string `json:"phase"`
	Teams     int    `json:"teams"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// GameRecord is a stored game: identity plus the full state document.
type GameRecord struct {
	ID        string
	BoardID   string
	State     *clueboard.GameState
	CreatedAt string
	UpdatedAt string
}

type Store interface {
	HostByEmail(ctx context.Context, email string) (hostID, passwordHash string, err error)
	CreateHostSession(ctx context.Context, hostID string) (sessionID string, err error)
	DeleteHostSession(ctx context.Context, sessionID string) error
	HostFromSession(ctx context.Context, sessionID string) (hostSession, error)
	CountHosts(ctx context.Context) (int, error)
	CreateHost(ctx context.Context, email, passwordHash string) (string, error)

	CreateBoard(ctx context.Context, name string, board clueboard.Board) (BoardRecord, error)
	GetBoard(ctx context.Context, id string) (BoardRecord, error)
	ListBoards(ctx context.Context) ([]BoardSummary, error)
	DeleteBoard(ctx context.Context, id string) error

	CreateGame(ctx context.Context, boardID string, state *clueboard.GameState) (GameRecord, error)
	GetGame(ctx context.Context, id string) (GameRecord, error)
	ListGames(ctx context.Context) ([]GameSummary, error)
	SaveGame(ctx context.Context, id string, state *clueboard.GameState) error
	DeleteGame(ctx context.Context, id string) error
}
