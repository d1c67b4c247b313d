package engine

import "github.com/quizhaus/clueboard/internal/clueboard"

// EffectType discriminates the observable side effects of an action.
type EffectType string

const (
	EffectScoreChanged             EffectType = "score_changed"
	EffectClueRevealed             EffectType = "clue_revealed"
	EffectClueSolved               EffectType = "clue_solved"
	EffectFlash                    EffectType = "flash"
	EffectEventQueued              EffectType = "event_queued"
	EffectEventTriggered           EffectType = "event_triggered"
	EffectEventAnimation           EffectType = "event_animation"
	EffectScoreReset               EffectType = "score_reset"
	EffectDoublePointsActivated    EffectType = "double_points_activated"
	EffectReverseQuestionActivated EffectType = "reverse_question_activated"
	EffectScoreStealApplied        EffectType = "score_steal_applied"
	EffectManualAdjustment         EffectType = "manual_adjustment"
)

// Flash markers for the presentation layer.
const (
	FlashCorrect   = "correct"
	FlashIncorrect = "incorrect"
)

// Effect describes one observable change produced by an action, for the
// renderer to replay. Effects are ordered in causal order and none is ever
// silently dropped.
type Effect struct {
	Type     EffectType                `json:"type"`
	TeamID   int                       `json:"teamId,omitempty"`
	Delta    int                       `json:"delta,omitempty"`
	Clue     *clueboard.Coord          `json:"clue,omitempty"`
	Event    clueboard.EventKind       `json:"event,omitempty"`
	Flash    string                    `json:"flash,omitempty"`
	Steal    *clueboard.StealContext   `json:"steal,omitempty"`
	OldScore int                       `json:"oldScore,omitempty"`
	NewScore int                       `json:"newScore,omitempty"`
}

// Result is the successful outcome of Handle: the phase after the action
// and the ordered effect list.
type Result struct {
	Phase   clueboard.Phase `json:"-"`
	Effects []Effect        `json:"effects"`
}

func scoreChanged(teamID, delta int) Effect {
	return Effect{Type: EffectScoreChanged, TeamID: teamID, Delta: delta}
}

func clueEffect(t EffectType, c clueboard.Coord) Effect {
	coord := c
	return Effect{Type: t, Clue: &coord}
}

func flash(kind string) Effect {
	return Effect{Type: EffectFlash, Flash: kind}
}

func eventEffect(t EffectType, k clueboard.EventKind) Effect {
	return Effect{Type: t, Event: k}
}
