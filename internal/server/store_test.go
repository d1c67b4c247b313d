package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizhaus/clueboard/internal/clueboard"
)

func TestBoardCRUD(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	board := clueboard.NewBoard(3, 5)
	rec, err := store.CreateBoard(ctx, "Friday Night", board)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	got, err := store.GetBoard(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Friday Night", got.Name)
	assert.Len(t, got.Board.Categories, 3)
	assert.Len(t, got.Board.Categories[0].Clues, 5)

	boards, err := store.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, 3, boards[0].Categories)
	assert.Equal(t, 5, boards[0].Rows)

	require.NoError(t, store.DeleteBoard(ctx, rec.ID))
	_, err = store.GetBoard(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteBoard(ctx, rec.ID), ErrNotFound)
}

func TestGamePersistenceRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	board, err := store.CreateBoard(ctx, "Persist", clueboard.NewBoard(2, 2))
	require.NoError(t, err)

	state := clueboard.NewGameState(board.Board)
	rec, err := store.CreateGame(ctx, board.ID, state)
	require.NoError(t, err)

	// Mutate and save.
	state.Teams = []clueboard.Team{{ID: 1, Name: "Red", Score: 300}}
	state.ActiveTeam = 1
	state.Phase = clueboard.Selecting{TeamID: 1}
	state.Events.QuestionsAnswered = 3
	state.Events.History = []clueboard.EventKind{clueboard.EventHardReset}
	require.NoError(t, store.SaveGame(ctx, rec.ID, state))

	got, err := store.GetGame(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.BoardID)
	require.Len(t, got.State.Teams, 1)
	assert.Equal(t, 300, got.State.Teams[0].Score)
	assert.Equal(t, clueboard.PhaseSelecting, got.State.Phase.Kind())
	assert.Equal(t, 3, got.State.Events.QuestionsAnswered)
	assert.Equal(t, []clueboard.EventKind{clueboard.EventHardReset}, got.State.Events.History)

	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "selecting", games[0].Phase)
	assert.Equal(t, 1, games[0].Teams)
	assert.Equal(t, "Persist", games[0].BoardName)

	require.NoError(t, store.DeleteGame(ctx, rec.ID))
	_, err = store.GetGame(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.SaveGame(ctx, rec.ID, state), ErrNotFound)
}

func TestHostSessions(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	hostID, hash, err := store.HostByEmail(ctx, "host@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	sessionID, err := store.CreateHostSession(ctx, hostID)
	require.NoError(t, err)

	sess, err := store.HostFromSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, hostID, sess.HostID)
	assert.Equal(t, "host@example.com", sess.Email)

	require.NoError(t, store.DeleteHostSession(ctx, sessionID))
	_, err = store.HostFromSession(ctx, sessionID)
	assert.ErrorIs(t, err, errNoHostSession)

	_, _, err = store.HostByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
