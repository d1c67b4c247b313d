package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quizhaus/clueboard/internal/clueboard"
)

// SQLiteStore persists boards and games in a single SQLite database. Boards
// and game states are stored as JSON documents; listings read scalar columns
// plus the decoded document where a derived field (phase, team count) is
// needed.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

var _ Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) HostByEmail(ctx context.Context, email string) (string, string, error) {
	var hostID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM hosts WHERE email = ?
	`, email).Scan(&hostID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return hostID, passwordHash, err
}

func (s *SQLiteStore) CountHosts(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hosts`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) CreateHost(ctx context.Context, email, passwordHash string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hosts (id, email, password_hash) VALUES (?, ?, ?)
	`, id, email, passwordHash)
	return id, err
}

func (s *SQLiteStore) CreateHostSession(ctx context.Context, hostID string) (string, error) {
	sessionID := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO host_sessions (id, host_id) VALUES (?, ?)
	`, sessionID, hostID)
	return sessionID, err
}

func (s *SQLiteStore) DeleteHostSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM host_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) HostFromSession(ctx context.Context, sessionID string) (hostSession, error) {
	var sess hostSession
	err := s.db.QueryRowContext(ctx, `
		SELECT h.id, h.email
		FROM host_sessions s
		JOIN hosts h ON h.id = s.host_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.HostID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return hostSession{}, errNoHostSession
	}
	return sess, err
}

func (s *SQLiteStore) CreateBoard(ctx context.Context, name string, board clueboard.Board) (BoardRecord, error) {
	data, err := json.Marshal(board)
	if err != nil {
		return BoardRecord{}, fmt.Errorf("encoding board: %w", err)
	}

	id := uuid.NewString()
	var createdAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO boards (id, name, data) VALUES (?, ?, ?)
		RETURNING created_at
	`, id, name, string(data)).Scan(&createdAt)
	if err != nil {
		return BoardRecord{}, err
	}
	return BoardRecord{ID: id, Name: name, Board: board, CreatedAt: createdAt}, nil
}

func (s *SQLiteStore) GetBoard(ctx context.Context, id string) (BoardRecord, error) {
	var rec BoardRecord
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, data, created_at FROM boards WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Name, &data, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal([]byte(data), &rec.Board); err != nil {
		return rec, fmt.Errorf("decoding board %s: %w", id, err)
	}
	return rec, nil
}

func (s *SQLiteStore) ListBoards(ctx context.Context) ([]BoardSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, data, created_at FROM boards ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []BoardSummary
	for rows.Next() {
		var b BoardSummary
		var data string
		if err := rows.Scan(&b.ID, &b.Name, &data, &b.CreatedAt); err != nil {
			return nil, err
		}
		var board clueboard.Board
		if err := json.Unmarshal([]byte(data), &board); err != nil {
			return nil, fmt.Errorf("decoding board %s: %w", b.ID, err)
		}
		b.Categories = len(board.Categories)
		if len(board.Categories) > 0 {
			b.Rows = len(board.Categories[0].Clues)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *SQLiteStore) DeleteBoard(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CreateGame(ctx context.Context, boardID string, state *clueboard.GameState) (GameRecord, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return GameRecord{}, fmt.Errorf("encoding game state: %w", err)
	}

	id := uuid.NewString()
	var createdAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO games (id, board_id, state) VALUES (?, ?, ?)
		RETURNING created_at
	`, id, boardID, string(data)).Scan(&createdAt)
	if err != nil {
		return GameRecord{}, err
	}
	return GameRecord{
		ID:        id,
		BoardID:   boardID,
		State:     state,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

func (s *SQLiteStore) GetGame(ctx context.Context, id string) (GameRecord, error) {
	var rec GameRecord
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, board_id, state, created_at, updated_at FROM games WHERE id = ?
	`, id).Scan(&rec.ID, &rec.BoardID, &data, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, err
	}
	var state clueboard.GameState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return rec, fmt.Errorf("decoding game %s: %w", id, err)
	}
	rec.State = &state
	return rec, nil
}

func (s *SQLiteStore) ListGames(ctx context.Context) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.board_id, b.name, g.state, g.created_at, g.updated_at
		FROM games g
		JOIN boards b ON b.id = g.board_id
		ORDER BY g.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []GameSummary
	for rows.Next() {
		var g GameSummary
		var data string
		if err := rows.Scan(&g.ID, &g.BoardID, &g.BoardName, &data, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		var state clueboard.GameState
		if err := json.Unmarshal([]byte(data), &state); err != nil {
			return nil, fmt.Errorf("decoding game %s: %w", g.ID, err)
		}
		g.Phase = string(state.Phase.Kind())
		g.Teams = len(state.Teams)
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *SQLiteStore) SaveGame(ctx context.Context, id string, state *clueboard.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding game state: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE games
		SET state = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?
	`, string(data), id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteGame(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
