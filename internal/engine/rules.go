package engine

import "github.com/quizhaus/clueboard/internal/clueboard"

// validate decides whether an action is legal given the current phase and
// entity state. It never mutates, so Handle can apply unconditionally after
// a nil return and CanPerform can answer without side effects.
func validate(g *clueboard.GameState, a Action) *GameError {
	switch act := a.(type) {
	case AddTeam:
		if _, ok := g.Phase.(clueboard.Finished); ok {
			return reject(CodeGameFinished, act.Name(), "game is finished")
		}
		if _, ok := g.Phase.(clueboard.Lobby); !ok {
			return reject(CodeInvalidAction, act.Name(), "teams can only be added in the lobby")
		}
		return nil

	case StartGame:
		if _, ok := g.Phase.(clueboard.Finished); ok {
			return reject(CodeGameFinished, act.Name(), "game is finished")
		}
		if _, ok := g.Phase.(clueboard.Lobby); !ok {
			return reject(CodeInvalidAction, act.Name(), "game already started")
		}
		if len(g.Teams) == 0 {
			return reject(CodeInsufficientTeams, act.Name(), "at least one team is required")
		}
		return nil

	case SelectClue:
		if err := requireStarted(g, act.Name()); err != nil {
			return err
		}
		sel, ok := g.Phase.(clueboard.Selecting)
		if !ok {
			return reject(CodeInvalidAction, act.Name(), "no clue can be selected in the %s phase", g.Phase.Kind())
		}
		if g.Events.AnimationPlaying {
			return reject(CodeInvalidAction, act.Name(), "event animation in progress")
		}
		if _, ok := g.TeamByID(act.TeamID); !ok {
			return reject(CodeInvalidTeam, act.Name(), "unknown team %d", act.TeamID)
		}
		if act.TeamID != sel.TeamID {
			return reject(CodeInvalidAction, act.Name(), "team %d is not the selecting team", act.TeamID)
		}
		cl, ok := g.Board.Clue(act.Clue)
		if !ok {
			return reject(CodeInvalidClue, act.Name(), "no clue at %s", act.Clue)
		}
		if cl.Solved {
			return reject(CodeInvalidClue, act.Name(), "clue %s already solved", act.Clue)
		}
		return nil

	case AnswerCorrect:
		return validateAnswer(g, act.Name(), act.Clue, act.TeamID)

	case AnswerIncorrect:
		return validateAnswer(g, act.Name(), act.Clue, act.TeamID)

	case StealAttempt:
		if err := requireStarted(g, act.Name()); err != nil {
			return err
		}
		st, ok := g.Phase.(clueboard.Steal)
		if !ok {
			return reject(CodeInvalidAction, act.Name(), "steals are only possible in the steal phase")
		}
		if _, ok := g.TeamByID(act.TeamID); !ok {
			return reject(CodeInvalidTeam, act.Name(), "unknown team %d", act.TeamID)
		}
		if act.TeamID != st.Current {
			return reject(CodeInvalidAction, act.Name(), "team %d is not the pending stealer", act.TeamID)
		}
		if act.Clue != st.Clue {
			return reject(CodeInvalidClue, act.Name(), "clue %s is not the open clue", act.Clue)
		}
		return nil

	case CloseClue:
		if err := requireStarted(g, act.Name()); err != nil {
			return err
		}
		res, ok := g.Phase.(clueboard.Resolved)
		if !ok {
			return reject(CodeInvalidAction, act.Name(), "only a resolved clue can be closed")
		}
		if act.Clue != res.Clue {
			return reject(CodeInvalidClue, act.Name(), "clue %s is not the resolved clue", act.Clue)
		}
		if _, ok := g.TeamByID(act.NextTeamID); !ok {
			return reject(CodeInvalidTeam, act.Name(), "unknown team %d", act.NextTeamID)
		}
		return nil

	case TriggerEvent:
		if !knownEvent(act.Event) {
			return reject(CodeInvalidAction, act.Name(), "unknown event %q", act.Event)
		}
		if g.Events.ActiveEvent != clueboard.EventNone || g.Events.QueuedEvent != clueboard.EventNone {
			return reject(CodeEventAlreadyActive, act.Name(), "an event is already active or queued")
		}
		return nil

	case AcknowledgeEvent:
		if !g.Events.AnimationPlaying && g.Events.QueuedEvent == clueboard.EventNone {
			return reject(CodeInvalidEventState, act.Name(), "no event announcement to acknowledge")
		}
		return nil

	case ResolveEvent:
		if g.Events.ActiveEvent == clueboard.EventNone {
			return reject(CodeInvalidEventState, act.Name(), "no active event to resolve")
		}
		return nil

	case ReturnToConfig:
		return nil

	case ManualPointsAdjustment:
		if _, ok := g.TeamByID(act.TeamID); !ok {
			return reject(CodeInvalidTeam, act.Name(), "unknown team %d", act.TeamID)
		}
		return nil

	default:
		return reject(CodeInvalidAction, "", "unsupported action %T", a)
	}
}

func validateAnswer(g *clueboard.GameState, name string, clue clueboard.Coord, teamID int) *GameError {
	if err := requireStarted(g, name); err != nil {
		return err
	}
	sh, ok := g.Phase.(clueboard.Showing)
	if !ok {
		return reject(CodeInvalidAction, name, "answers are only accepted while a clue is showing")
	}
	if _, ok := g.TeamByID(teamID); !ok {
		return reject(CodeInvalidTeam, name, "unknown team %d", teamID)
	}
	if teamID != sh.OwnerTeamID {
		return reject(CodeInvalidAction, name, "team %d does not own the open clue", teamID)
	}
	if clue != sh.Clue {
		return reject(CodeInvalidClue, name, "clue %s is not the open clue", clue)
	}
	return nil
}

func requireStarted(g *clueboard.GameState, name string) *GameError {
	switch g.Phase.(type) {
	case clueboard.Lobby:
		return reject(CodeGameNotStarted, name, "game has not started")
	case clueboard.Finished:
		return reject(CodeGameFinished, name, "game is finished")
	}
	return nil
}

func knownEvent(k clueboard.EventKind) bool {
	for _, known := range clueboard.EventKinds {
		if k == known {
			return true
		}
	}
	return false
}
