// Package engine is the sole mutator of a game's state: it validates each
// incoming action against the current phase, applies scoring and the
// special-event rules, and reports what changed as an ordered effect list.
// A rejected action leaves the state untouched.
package engine

import (
	"math/rand/v2"

	"github.com/quizhaus/clueboard/internal/clueboard"
	"github.com/quizhaus/clueboard/internal/events"
)

// Clues worth more than this many points grant the owner a second attempt.
const secondAttemptThreshold = 500

// Engine drives one game. It owns the state it was given; callers read the
// state but route every mutation through Handle. Not safe for concurrent
// use — a game is a single-writer aggregate.
type Engine struct {
	state *clueboard.GameState
	cfg   events.Config
	rng   *rand.Rand
}

// New wraps state with the given event configuration. A nil rng gets a
// freshly seeded source; tests inject a deterministic one.
func New(state *clueboard.GameState, cfg events.Config, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{state: state, cfg: cfg, rng: rng}
}

// State exposes the aggregate for reading.
func (e *Engine) State() *clueboard.GameState { return e.state }

// CanPerform reports whether Handle would accept the action right now. The
// caller uses this to withhold clue selection while an event animation is
// mid-flight; the engine itself never blocks.
func (e *Engine) CanPerform(a Action) bool {
	return validate(e.state, a) == nil
}

// Handle validates and applies one action. On success it returns the new
// phase and the ordered effects; on failure the typed rejection, with the
// state byte-for-byte unchanged (apply-or-reject).
func (e *Engine) Handle(a Action) (Result, error) {
	if err := validate(e.state, a); err != nil {
		return Result{}, err
	}
	switch act := a.(type) {
	case AddTeam:
		return e.applyAddTeam(act), nil
	case StartGame:
		return e.applyStartGame(), nil
	case SelectClue:
		return e.applySelectClue(act), nil
	case AnswerCorrect:
		return e.applyAnswerCorrect(act), nil
	case AnswerIncorrect:
		return e.applyAnswerIncorrect(act), nil
	case StealAttempt:
		return e.applyStealAttempt(act), nil
	case CloseClue:
		return e.applyCloseClue(act), nil
	case TriggerEvent:
		return e.applyTriggerEvent(act), nil
	case AcknowledgeEvent:
		return e.applyAcknowledgeEvent(), nil
	case ResolveEvent:
		return e.applyResolveEvent(), nil
	case ReturnToConfig:
		return e.applyReturnToConfig(), nil
	case ManualPointsAdjustment:
		return e.applyManualPoints(act), nil
	default:
		// validate already rejected unknown variants.
		return Result{}, reject(CodeInvalidAction, "", "unsupported action %T", a)
	}
}

func (e *Engine) applyAddTeam(act AddTeam) Result {
	g := e.state
	id := nextTeamID(g.Teams)
	g.Teams = append(g.Teams, clueboard.Team{ID: id, Name: act.TeamName})
	if g.ActiveTeam == 0 {
		g.ActiveTeam = id
	}
	return Result{Phase: g.Phase}
}

func (e *Engine) applyStartGame() Result {
	g := e.state
	first := g.Teams[0].ID
	g.ActiveTeam = first
	g.Phase = clueboard.Selecting{TeamID: first}
	return Result{Phase: g.Phase}
}

func (e *Engine) applySelectClue(act SelectClue) Result {
	g := e.state
	var effects []Effect

	// A deferred queued event becomes active as the selection begins, so it
	// affects exactly this clue.
	if queued := g.Events.QueuedEvent; queued != clueboard.EventNone && !queued.Instantaneous() {
		g.Events.TakeQueued()
		g.Events.Activate(queued)
		effects = append(effects, eventEffect(EffectEventTriggered, queued))
		switch queued {
		case clueboard.EventDoublePoints:
			effects = append(effects, Effect{Type: EffectDoublePointsActivated})
		case clueboard.EventReverseQuestion:
			effects = append(effects, Effect{Type: EffectReverseQuestionActivated})
		}
	}

	if g.Events.IsActive(clueboard.EventReverseQuestion) {
		if cl := g.ClueAt(act.Clue); cl != nil {
			cl.Question, cl.Answer = cl.Answer, cl.Question
		}
	}

	cl, _ := g.Board.Clue(act.Clue)
	maxAttempts := 1
	if cl.Points > secondAttemptThreshold {
		maxAttempts = 2
	}
	g.Phase = clueboard.Showing{
		Clue:         act.Clue,
		OwnerTeamID:  act.TeamID,
		AttemptCount: 1,
		MaxAttempts:  maxAttempts,
	}
	return Result{Phase: g.Phase, Effects: effects}
}

func (e *Engine) applyAnswerCorrect(act AnswerCorrect) Result {
	g := e.state
	effects := e.resolveClueFor(act.Clue, act.TeamID)
	effects = append(effects, flash(FlashCorrect))

	next := RotateActive(g.Teams, g.ActiveTeam)
	g.ActiveTeam = next
	g.Phase = clueboard.Resolved{Clue: act.Clue, NextTeamID: next}
	return Result{Phase: g.Phase, Effects: effects}
}

func (e *Engine) applyAnswerIncorrect(act AnswerIncorrect) Result {
	g := e.state
	sh := g.Phase.(clueboard.Showing)

	effects := []Effect{flash(FlashIncorrect)}

	if sh.AttemptCount < sh.MaxAttempts {
		// High-value clue, first miss: no deduction, another try.
		sh.AttemptCount++
		g.Phase = sh
		return Result{Phase: g.Phase, Effects: effects}
	}

	cl, _ := g.Board.Clue(act.Clue)
	delta := AnswerDelta(cl.Points, false, g.Events.IsActive(clueboard.EventDoublePoints))
	if team, ok := g.TeamByID(act.TeamID); ok {
		team.Score += delta
		effects = append(effects, scoreChanged(act.TeamID, delta))
	}

	queue := e.stealQueue(act.TeamID)
	if len(queue) == 0 {
		// Nobody left to steal: the clue dies unanswered.
		effects = append(effects, e.retireClueUnsolvedPoints(act.Clue)...)
		next := RotateActive(g.Teams, g.ActiveTeam)
		g.ActiveTeam = next
		g.Phase = clueboard.Resolved{Clue: act.Clue, NextTeamID: next}
		return Result{Phase: g.Phase, Effects: effects}
	}

	current := queue[0]
	g.Phase = clueboard.Steal{
		Clue:        act.Clue,
		Queue:       queue[1:],
		Current:     current,
		OwnerTeamID: act.TeamID,
	}
	return Result{Phase: g.Phase, Effects: effects}
}

func (e *Engine) applyStealAttempt(act StealAttempt) Result {
	g := e.state
	st := g.Phase.(clueboard.Steal)

	if act.Correct {
		effects := e.resolveClueFor(act.Clue, act.TeamID)
		effects = append(effects, flash(FlashCorrect))
		next := RotateActive(g.Teams, g.ActiveTeam)
		g.ActiveTeam = next
		g.Phase = clueboard.Resolved{Clue: act.Clue, NextTeamID: next}
		return Result{Phase: g.Phase, Effects: effects}
	}

	effects := []Effect{flash(FlashIncorrect)}

	if len(st.Queue) > 0 {
		st.Current = st.Queue[0]
		st.Queue = st.Queue[1:]
		g.Phase = st
		return Result{Phase: g.Phase, Effects: effects}
	}

	// Steal queue exhausted: clue is retired without points.
	effects = append(effects, e.retireClueUnsolvedPoints(act.Clue)...)
	next := RotateActive(g.Teams, g.ActiveTeam)
	g.ActiveTeam = next
	g.Phase = clueboard.Resolved{Clue: act.Clue, NextTeamID: next}
	return Result{Phase: g.Phase, Effects: effects}
}

// resolveClueFor marks the clue solved, awards points to teamID (doubled
// under the double-points event), and winds down any active per-clue event.
func (e *Engine) resolveClueFor(coord clueboard.Coord, teamID int) []Effect {
	g := e.state
	var effects []Effect

	cl := g.ClueAt(coord)
	if cl == nil {
		return effects
	}
	cl.Revealed = true
	cl.Solved = true
	effects = append(effects, clueEffect(EffectClueRevealed, coord), clueEffect(EffectClueSolved, coord))

	delta := AnswerDelta(cl.Points, true, g.Events.IsActive(clueboard.EventDoublePoints))
	if team, ok := g.TeamByID(teamID); ok {
		team.Score += delta
		effects = append(effects, scoreChanged(teamID, delta))
	}

	if g.Events.IsActive(clueboard.EventDoublePoints) {
		g.Events.Deactivate()
	}
	if g.Events.IsActive(clueboard.EventReverseQuestion) {
		cl.Question, cl.Answer = cl.Answer, cl.Question
		g.Events.Deactivate()
	}
	return effects
}

// retireClueUnsolvedPoints marks the clue solved with no award, restoring
// reversed text first so the clue is never left permanently swapped.
func (e *Engine) retireClueUnsolvedPoints(coord clueboard.Coord) []Effect {
	g := e.state
	cl := g.ClueAt(coord)
	if cl == nil {
		return nil
	}
	if g.Events.IsActive(clueboard.EventReverseQuestion) {
		cl.Question, cl.Answer = cl.Answer, cl.Question
		g.Events.Deactivate()
	}
	if g.Events.IsActive(clueboard.EventDoublePoints) {
		g.Events.Deactivate()
	}
	cl.Solved = true
	return []Effect{clueEffect(EffectClueSolved, coord)}
}

// stealQueue returns the non-owner teams in a shuffled order.
func (e *Engine) stealQueue(owner int) []int {
	var others []int
	for _, t := range e.state.Teams {
		if t.ID != owner {
			others = append(others, t.ID)
		}
	}
	e.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	return others
}

func (e *Engine) applyCloseClue(act CloseClue) Result {
	g := e.state
	g.Events.IncrementQuestions()

	var effects []Effect
	if g.Events.ShouldTrigger(e.cfg.TriggerInterval) {
		if event, ok := e.cfg.Pick(e.rng); ok {
			effects = append(effects, e.queueEvent(event)...)
		}
	}

	if g.Board.AllSolved() {
		g.Phase = clueboard.Finished{}
		return Result{Phase: g.Phase, Effects: effects}
	}

	g.ActiveTeam = act.NextTeamID
	g.Phase = clueboard.Selecting{TeamID: act.NextTeamID}
	return Result{Phase: g.Phase, Effects: effects}
}

// queueEvent places event in the queue and applies instantaneous effects at
// once: the logic change is part of the same transactional action as the
// detection, while the animation plays afterwards. Score effects precede
// the event markers so the effect order matches causal order.
func (e *Engine) queueEvent(event clueboard.EventKind) []Effect {
	g := e.state
	var effects []Effect

	g.Events.Queue(event)

	switch event {
	case clueboard.EventHardReset:
		ResetScores(g.Teams)
		effects = append(effects, Effect{Type: EffectScoreReset})
	case clueboard.EventScoreSteal:
		if ctx, ok := ApplySteal(g.Teams); ok {
			steal := ctx
			g.Events.LastSteal = &steal
			effects = append(effects,
				scoreChanged(ctx.VictimID, -ctx.Amount),
				scoreChanged(ctx.ThiefID, ctx.Amount),
				Effect{Type: EffectScoreStealApplied, Steal: &steal},
			)
		}
	}

	g.Events.AnimationPlaying = true
	effects = append(effects,
		eventEffect(EffectEventQueued, event),
		eventEffect(EffectEventAnimation, event),
	)
	return effects
}

func (e *Engine) applyTriggerEvent(act TriggerEvent) Result {
	g := e.state
	effects := []Effect{
		eventEffect(EffectEventTriggered, act.Event),
		eventEffect(EffectEventAnimation, act.Event),
	}

	switch act.Event {
	case clueboard.EventHardReset:
		g.Events.History = append(g.Events.History, act.Event)
		ResetScores(g.Teams)
		effects = append(effects, Effect{Type: EffectScoreReset})
	case clueboard.EventScoreSteal:
		g.Events.History = append(g.Events.History, act.Event)
		if ctx, ok := ApplySteal(g.Teams); ok {
			steal := ctx
			g.Events.LastSteal = &steal
			effects = append(effects,
				scoreChanged(ctx.VictimID, -ctx.Amount),
				scoreChanged(ctx.ThiefID, ctx.Amount),
				Effect{Type: EffectScoreStealApplied, Steal: &steal},
			)
		}
	case clueboard.EventDoublePoints:
		g.Events.Activate(act.Event)
		effects = append(effects, Effect{Type: EffectDoublePointsActivated})
	case clueboard.EventReverseQuestion:
		g.Events.Activate(act.Event)
		effects = append(effects, Effect{Type: EffectReverseQuestionActivated})
	}

	g.Events.AnimationPlaying = true
	return Result{Phase: g.Phase, Effects: effects}
}

func (e *Engine) applyAcknowledgeEvent() Result {
	g := e.state
	g.Events.AnimationPlaying = false
	// Instantaneous events already did their work at queue time; they move
	// straight to history and never occupy the active slot. Deferred events
	// stay queued until the next selection begins.
	if queued := g.Events.QueuedEvent; queued != clueboard.EventNone && queued.Instantaneous() {
		g.Events.TakeQueued()
		g.Events.History = append(g.Events.History, queued)
	}
	return Result{Phase: g.Phase}
}

func (e *Engine) applyResolveEvent() Result {
	g := e.state
	// Restore swapped text before dropping an active reverse-question, so
	// the swap and its restoration stay paired.
	if g.Events.IsActive(clueboard.EventReverseQuestion) {
		var open *clueboard.Coord
		switch ph := g.Phase.(type) {
		case clueboard.Showing:
			open = &ph.Clue
		case clueboard.Steal:
			open = &ph.Clue
		}
		if open != nil {
			if cl := g.ClueAt(*open); cl != nil {
				cl.Question, cl.Answer = cl.Answer, cl.Question
			}
		}
	}
	g.Events.Deactivate()
	return Result{Phase: g.Phase}
}

func (e *Engine) applyReturnToConfig() Result {
	g := e.state
	for ci := range g.Board.Categories {
		for ri := range g.Board.Categories[ci].Clues {
			cl := &g.Board.Categories[ci].Clues[ri]
			cl.Solved = false
			cl.Revealed = false
		}
	}
	ResetScores(g.Teams)
	g.Events = clueboard.EventState{}
	if len(g.Teams) > 0 {
		g.ActiveTeam = g.Teams[0].ID
	} else {
		g.ActiveTeam = 0
	}
	g.Phase = clueboard.Lobby{}
	return Result{Phase: g.Phase, Effects: []Effect{{Type: EffectScoreReset}}}
}

func (e *Engine) applyManualPoints(act ManualPointsAdjustment) Result {
	g := e.state
	team, _ := g.TeamByID(act.TeamID)
	old := team.Score
	team.Score = act.NewPoints
	return Result{Phase: g.Phase, Effects: []Effect{{
		Type:     EffectManualAdjustment,
		TeamID:   act.TeamID,
		OldScore: old,
		NewScore: act.NewPoints,
	}}}
}
