package server

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/quizhaus/clueboard/internal/clueboard"
)

// SeedHost creates the quizmaster account from the configured credentials
// if no host exists yet. Idempotent.
func SeedHost(ctx context.Context, logger *slog.Logger, store Store, email, password string) error {
	count, err := store.CountHosts(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := store.CreateHost(ctx, email, string(hash)); err != nil {
		return err
	}
	logger.Info("seeded host account", "email", email)
	return nil
}

// SeedDemoBoard creates a small playable board if none exist. Idempotent.
func SeedDemoBoard(ctx context.Context, logger *slog.Logger, store Store) error {
	boards, err := store.ListBoards(ctx)
	if err != nil {
		return err
	}
	if len(boards) > 0 {
		return nil
	}

	board := clueboard.Board{Categories: []clueboard.Category{
		{Name: "Science", Clues: []clueboard.Clue{
			{Points: 100, Question: "The chemical symbol for gold", Answer: "Au"},
			{Points: 200, Question: "The planet with the most moons", Answer: "Saturn"},
			{Points: 300, Question: "The particle that carries a negative charge", Answer: "Electron"},
		}},
		{Name: "Geography", Clues: []clueboard.Clue{
			{Points: 100, Question: "The longest river in South America", Answer: "Amazon"},
			{Points: 200, Question: "The capital of Mongolia", Answer: "Ulaanbaatar"},
			{Points: 300, Question: "The smallest country in the world", Answer: "Vatican City"},
		}},
		{Name: "History", Clues: []clueboard.Clue{
			{Points: 100, Question: "The year the Berlin Wall fell", Answer: "1989"},
			{Points: 200, Question: "The first person to walk on the Moon", Answer: "Neil Armstrong"},
			{Points: 300, Question: "The empire ruled by Genghis Khan", Answer: "Mongol Empire"},
		}},
	}}

	rec, err := store.CreateBoard(ctx, "Demo Trivia Night", board)
	if err != nil {
		return err
	}
	logger.Info("seeded demo board", "id", rec.ID)
	return nil
}
