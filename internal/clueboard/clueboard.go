// Package clueboard defines the core domain types for a team trivia game:
// the board of clues, the teams, the play phase state machine, and the
// special-event state. It has zero external dependencies — everything here
// is pure Go, and nothing here performs I/O or logging.
package clueboard

import "fmt"

// Coord addresses a clue on the board by category column and row.
type Coord struct {
	Category int `json:"category"`
	Row      int `json:"row"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Category, c.Row)
}

// Clue is a single question/answer unit. Its coordinates are its identity;
// the solved flag is monotonic — once true it never reverts.
type Clue struct {
	Points   int    `json:"points"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Revealed bool   `json:"revealed"`
	Solved   bool   `json:"solved"`
}

// Category is a named column of clues.
type Category struct {
	Name  string `json:"name"`
	Clues []Clue `json:"clues"`
}

// Board is a fixed 2D grid of clues grouped by category. Its shape is
// immutable after creation; only per-clue solved flags and text mutate.
type Board struct {
	Categories []Category `json:"categories"`
}

// Team holds an identifier that is stable for the game's lifetime, a
// display name, and a signed score (may go negative, no floor).
type Team struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// NewBoard builds a board of the given dimensions with row-scaled point
// values ((row+1) × 100) and empty question/answer text.
func NewBoard(numCategories, numRows int) Board {
	categories := make([]Category, 0, numCategories)
	for i := 0; i < numCategories; i++ {
		clues := make([]Clue, 0, numRows)
		for row := 0; row < numRows; row++ {
			clues = append(clues, Clue{Points: (row + 1) * 100})
		}
		categories = append(categories, Category{
			Name:  fmt.Sprintf("Category %d", i+1),
			Clues: clues,
		})
	}
	return Board{Categories: categories}
}

// Validate checks the structural shape of the board: at least one category,
// every category with the same non-zero row count, and point values strictly
// increasing by row. Clue text content is not validated.
func (b Board) Validate() error {
	if len(b.Categories) == 0 {
		return fmt.Errorf("board has no categories")
	}
	rows := len(b.Categories[0].Clues)
	if rows == 0 {
		return fmt.Errorf("category %q has no clues", b.Categories[0].Name)
	}
	for i, cat := range b.Categories {
		if len(cat.Clues) != rows {
			return fmt.Errorf("category %d has %d rows, want %d", i, len(cat.Clues), rows)
		}
		for r := 1; r < len(cat.Clues); r++ {
			if cat.Clues[r].Points <= cat.Clues[r-1].Points {
				return fmt.Errorf("category %d: points not strictly increasing at row %d", i, r)
			}
		}
	}
	return nil
}

// Clue returns the clue at the given coordinates, or false if the
// coordinates are out of range.
func (b Board) Clue(c Coord) (Clue, bool) {
	if c.Category < 0 || c.Category >= len(b.Categories) {
		return Clue{}, false
	}
	cat := b.Categories[c.Category]
	if c.Row < 0 || c.Row >= len(cat.Clues) {
		return Clue{}, false
	}
	return cat.Clues[c.Row], true
}

// clueAt returns a mutable pointer to the clue at c, or nil.
func (b *Board) clueAt(c Coord) *Clue {
	if c.Category < 0 || c.Category >= len(b.Categories) {
		return nil
	}
	cat := &b.Categories[c.Category]
	if c.Row < 0 || c.Row >= len(cat.Clues) {
		return nil
	}
	return &cat.Clues[c.Row]
}

// AllSolved reports whether every clue on the board has been solved.
func (b Board) AllSolved() bool {
	for _, cat := range b.Categories {
		for _, cl := range cat.Clues {
			if !cl.Solved {
				return false
			}
		}
	}
	return true
}

// AvailableClues lists the coordinates of all unsolved clues in board order.
func (b Board) AvailableClues() []Coord {
	var available []Coord
	for ci, cat := range b.Categories {
		for ri, cl := range cat.Clues {
			if !cl.Solved {
				available = append(available, Coord{Category: ci, Row: ri})
			}
		}
	}
	return available
}

// clone returns a deep copy of the board.
func (b Board) clone() Board {
	categories := make([]Category, len(b.Categories))
	for i, cat := range b.Categories {
		clues := make([]Clue, len(cat.Clues))
		copy(clues, cat.Clues)
		categories[i] = Category{Name: cat.Name, Clues: clues}
	}
	return Board{Categories: categories}
}
