package clueboard

import (
	"encoding/json"
	"fmt"
)

// PhaseKind discriminates the play phase variants.
type PhaseKind string

const (
	PhaseLobby     PhaseKind = "lobby"
	PhaseSelecting PhaseKind = "selecting"
	PhaseShowing   PhaseKind = "showing"
	PhaseSteal     PhaseKind = "steal"
	PhaseResolved  PhaseKind = "resolved"
	PhaseFinished  PhaseKind = "finished"
)

// Phase is the play state machine, a closed sum type. Exactly one phase is
// active at any time. The marker method seals the set of variants so the
// engine's dispatch can switch exhaustively.
type Phase interface {
	Kind() PhaseKind
	isPhase()
}

// Lobby is the pre-game phase: teams may be added, the game not yet started.
type Lobby struct{}

// Selecting waits for the active team to pick a clue.
type Selecting struct {
	TeamID int `json:"teamId"`
}

// Showing presents an open clue to its owner team. High-value clues grant
// more than one attempt; AttemptCount tracks the attempt in progress.
type Showing struct {
	Clue         Coord `json:"clue"`
	OwnerTeamID  int   `json:"ownerTeamId"`
	AttemptCount int   `json:"attemptCount"`
	MaxAttempts  int   `json:"maxAttempts"`
}

// Steal lets the remaining teams answer after the owner failed. Current is
// the team whose attempt is pending; Queue holds the teams after it.
type Steal struct {
	Clue        Coord `json:"clue"`
	Queue       []int `json:"queue"`
	Current     int   `json:"current"`
	OwnerTeamID int   `json:"ownerTeamId"`
}

// Resolved is the post-answer phase before the clue is closed.
type Resolved struct {
	Clue       Coord `json:"clue"`
	NextTeamID int   `json:"nextTeamId"`
}

// Finished is terminal except for a return to the lobby.
type Finished struct{}

func (Lobby) Kind() PhaseKind     { return PhaseLobby }
func (Selecting) Kind() PhaseKind { return PhaseSelecting }
func (Showing) Kind() PhaseKind   { return PhaseShowing }
func (Steal) Kind() PhaseKind     { return PhaseSteal }
func (Resolved) Kind() PhaseKind  { return PhaseResolved }
func (Finished) Kind() PhaseKind  { return PhaseFinished }

func (Lobby) isPhase()     {}
func (Selecting) isPhase() {}
func (Showing) isPhase()   {}
func (Steal) isPhase()     {}
func (Resolved) isPhase()  {}
func (Finished) isPhase()  {}

// phaseEnvelope is the wire form of a Phase: the kind discriminator plus the
// union of all variant fields.
type phaseEnvelope struct {
	Kind         PhaseKind `json:"kind"`
	TeamID       int       `json:"teamId,omitempty"`
	Clue         *Coord    `json:"clue,omitempty"`
	OwnerTeamID  int       `json:"ownerTeamId,omitempty"`
	AttemptCount int       `json:"attemptCount,omitempty"`
	MaxAttempts  int       `json:"maxAttempts,omitempty"`
	Queue        []int     `json:"queue,omitempty"`
	Current      int       `json:"current,omitempty"`
	NextTeamID   int       `json:"nextTeamId,omitempty"`
}

// MarshalPhase encodes a phase as its JSON envelope.
func MarshalPhase(p Phase) ([]byte, error) {
	if p == nil {
		p = Lobby{}
	}
	env := phaseEnvelope{Kind: p.Kind()}
	switch v := p.(type) {
	case Lobby, Finished:
	case Selecting:
		env.TeamID = v.TeamID
	case Showing:
		c := v.Clue
		env.Clue = &c
		env.OwnerTeamID = v.OwnerTeamID
		env.AttemptCount = v.AttemptCount
		env.MaxAttempts = v.MaxAttempts
	case Steal:
		c := v.Clue
		env.Clue = &c
		env.Queue = v.Queue
		env.Current = v.Current
		env.OwnerTeamID = v.OwnerTeamID
	case Resolved:
		c := v.Clue
		env.Clue = &c
		env.NextTeamID = v.NextTeamID
	default:
		return nil, fmt.Errorf("unknown phase %T", p)
	}
	return json.Marshal(env)
}

// UnmarshalPhase decodes a phase from its JSON envelope.
func UnmarshalPhase(data []byte) (Phase, error) {
	var env phaseEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding phase: %w", err)
	}
	clue := func() Coord {
		if env.Clue != nil {
			return *env.Clue
		}
		return Coord{}
	}
	switch env.Kind {
	case PhaseLobby, "":
		return Lobby{}, nil
	case PhaseSelecting:
		return Selecting{TeamID: env.TeamID}, nil
	case PhaseShowing:
		return Showing{
			Clue:         clue(),
			OwnerTeamID:  env.OwnerTeamID,
			AttemptCount: env.AttemptCount,
			MaxAttempts:  env.MaxAttempts,
		}, nil
	case PhaseSteal:
		return Steal{
			Clue:        clue(),
			Queue:       env.Queue,
			Current:     env.Current,
			OwnerTeamID: env.OwnerTeamID,
		}, nil
	case PhaseResolved:
		return Resolved{Clue: clue(), NextTeamID: env.NextTeamID}, nil
	case PhaseFinished:
		return Finished{}, nil
	default:
		return nil, fmt.Errorf("unknown phase kind %q", env.Kind)
	}
}
