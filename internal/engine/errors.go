package engine

import "fmt"

// ErrorCode classifies why an action was rejected. Validation codes cover
// gameplay-rule violations; event codes cover event-subsystem
// inconsistencies so callers can tell the two apart.
type ErrorCode string

const (
	CodeInvalidAction     ErrorCode = "invalid_action"
	CodeInvalidTeam       ErrorCode = "invalid_team"
	CodeInvalidClue       ErrorCode = "invalid_clue"
	CodeGameNotStarted    ErrorCode = "game_not_started"
	CodeGameFinished      ErrorCode = "game_finished"
	CodeInsufficientTeams ErrorCode = "insufficient_teams"

	CodeEventAlreadyActive ErrorCode = "event_already_active"
	CodeNoEventAvailable   ErrorCode = "no_event_available"
	CodeInvalidEventState  ErrorCode = "invalid_event_state"
	CodeAnimationFailed    ErrorCode = "animation_failed"
)

// IsEventCode reports whether the code belongs to the event sub-kind.
func (c ErrorCode) IsEventCode() bool {
	switch c {
	case CodeEventAlreadyActive, CodeNoEventAvailable, CodeInvalidEventState, CodeAnimationFailed:
		return true
	}
	return false
}

// GameError is the typed rejection returned for every refused action. A
// rejected action never mutates game state.
type GameError struct {
	Code   ErrorCode
	Action string
	Reason string
}

func (e *GameError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Action, e.Code, e.Reason)
}

func reject(code ErrorCode, action, format string, args ...any) *GameError {
	return &GameError{Code: code, Action: action, Reason: fmt.Sprintf(format, args...)}
}
