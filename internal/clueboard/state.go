package clueboard

import (
	"encoding/json"
	"fmt"
)

// GameState is the aggregate root and the single unit of truth: the board,
// the teams in turn order, the current phase, the active team, and the event
// subsystem state. It is the only thing serialized for save/load, and it is
// mutated only through the engine.
type GameState struct {
	Board      Board
	Teams      []Team
	Phase      Phase
	ActiveTeam int
	Events     EventState
}

// NewGameState creates a fresh lobby-phase game over board.
func NewGameState(board Board) *GameState {
	return &GameState{
		Board: board.clone(),
		Phase: Lobby{},
	}
}

// TeamByID returns the team with the given id, or false.
func (g *GameState) TeamByID(id int) (*Team, bool) {
	for i := range g.Teams {
		if g.Teams[i].ID == id {
			return &g.Teams[i], true
		}
	}
	return nil, false
}

// ClueAt returns a mutable pointer to the clue at c, or nil if c is out of
// range. Callers outside this package mutate clues only via the engine.
func (g *GameState) ClueAt(c Coord) *Clue {
	return g.Board.clueAt(c)
}

// ClueAvailable reports whether the clue at c exists and is unsolved.
func (g *GameState) ClueAvailable(c Coord) bool {
	cl, ok := g.Board.Clue(c)
	return ok && !cl.Solved
}

// Clone returns a deep copy of the whole aggregate.
func (g *GameState) Clone() *GameState {
	teams := make([]Team, len(g.Teams))
	copy(teams, g.Teams)
	return &GameState{
		Board:      g.Board.clone(),
		Teams:      teams,
		Phase:      g.Phase,
		ActiveTeam: g.ActiveTeam,
		Events:     g.Events.clone(),
	}
}

// gameStateJSON is the persisted wire form. EventState is a plain value so a
// document written before the event subsystem existed (no eventState field)
// decodes to the zero value, which is the mandated default.
type gameStateJSON struct {
	Board      Board           `json:"board"`
	Teams      []Team          `json:"teams"`
	Phase      json.RawMessage `json:"phase"`
	ActiveTeam int             `json:"activeTeam"`
	Events     EventState      `json:"eventState"`
}

func (g *GameState) MarshalJSON() ([]byte, error) {
	phase, err := MarshalPhase(g.Phase)
	if err != nil {
		return nil, fmt.Errorf("encoding phase: %w", err)
	}
	return json.Marshal(gameStateJSON{
		Board:      g.Board,
		Teams:      g.Teams,
		Phase:      phase,
		ActiveTeam: g.ActiveTeam,
		Events:     g.Events,
	})
}

func (g *GameState) UnmarshalJSON(data []byte) error {
	var raw gameStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding game state: %w", err)
	}
	phase := Phase(Lobby{})
	if len(raw.Phase) > 0 {
		p, err := UnmarshalPhase(raw.Phase)
		if err != nil {
			return err
		}
		phase = p
	}
	g.Board = raw.Board
	g.Teams = raw.Teams
	g.Phase = phase
	g.ActiveTeam = raw.ActiveTeam
	g.Events = raw.Events
	return nil
}
