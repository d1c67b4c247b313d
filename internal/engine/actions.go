package engine

import "github.com/quizhaus/clueboard/internal/clueboard"

// Action is the closed set of commands the engine accepts, one per user
// intent. The marker method seals the variants so Handle can switch
// exhaustively; adding a variant forces every dispatch site to be revisited.
type Action interface {
	Name() string
	isAction()
}

// AddTeam registers a team during the lobby phase.
type AddTeam struct {
	TeamName string
}

// StartGame leaves the lobby and hands selection to the first team.
type StartGame struct{}

// SelectClue opens a clue for the active team.
type SelectClue struct {
	Clue   clueboard.Coord
	TeamID int
}

// AnswerCorrect resolves the showing clue in the owner's favor.
type AnswerCorrect struct {
	Clue   clueboard.Coord
	TeamID int
}

// AnswerIncorrect records a failed attempt by the owner team.
type AnswerIncorrect struct {
	Clue   clueboard.Coord
	TeamID int
}

// StealAttempt is the pending stealing team's answer.
type StealAttempt struct {
	Clue    clueboard.Coord
	TeamID  int
	Correct bool
}

// CloseClue closes a resolved clue and hands selection to the next team.
// This is the single choke point where the questions-answered counter and
// the event cadence check run.
type CloseClue struct {
	Clue       clueboard.Coord
	NextTeamID int
}

// TriggerEvent activates an event immediately, bypassing the cadence. Used
// by the host override surface and tests.
type TriggerEvent struct {
	Event clueboard.EventKind
}

// AcknowledgeEvent marks the event announcement as seen: the animation is
// over and an instantaneous queued event moves into history.
type AcknowledgeEvent struct{}

// ResolveEvent force-deactivates the active event.
type ResolveEvent struct{}

// ReturnToConfig resets the game to a fresh lobby over the same board,
// keeping the registered teams with zeroed scores.
type ReturnToConfig struct{}

// ManualPointsAdjustment sets a team's score to an absolute value, in any
// phase. Host override.
type ManualPointsAdjustment struct {
	TeamID    int
	NewPoints int
}

func (AddTeam) Name() string                { return "AddTeam" }
func (StartGame) Name() string              { return "StartGame" }
func (SelectClue) Name() string             { return "SelectClue" }
func (AnswerCorrect) Name() string          { return "AnswerCorrect" }
func (AnswerIncorrect) Name() string        { return "AnswerIncorrect" }
func (StealAttempt) Name() string           { return "StealAttempt" }
func (CloseClue) Name() string              { return "CloseClue" }
func (TriggerEvent) Name() string           { return "TriggerEvent" }
func (AcknowledgeEvent) Name() string       { return "AcknowledgeEvent" }
func (ResolveEvent) Name() string           { return "ResolveEvent" }
func (ReturnToConfig) Name() string         { return "ReturnToConfig" }
func (ManualPointsAdjustment) Name() string { return "ManualPointsAdjustment" }

func (AddTeam) isAction()                {}
func (StartGame) isAction()              {}
func (SelectClue) isAction()             {}
func (AnswerCorrect) isAction()          {}
func (AnswerIncorrect) isAction()        {}
func (StealAttempt) isAction()           {}
func (CloseClue) isAction()              {}
func (TriggerEvent) isAction()           {}
func (AcknowledgeEvent) isAction()       {}
func (ResolveEvent) isAction()           {}
func (ReturnToConfig) isAction()         {}
func (ManualPointsAdjustment) isAction() {}
