package clueboard

import (
	"encoding/json"
	"testing"
)

func TestNewBoardShape(t *testing.T) {
	b := NewBoard(3, 5)

	if len(b.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(b.Categories))
	}
	for ci, cat := range b.Categories {
		if len(cat.Clues) != 5 {
			t.Fatalf("category %d: expected 5 clues, got %d", ci, len(cat.Clues))
		}
		for ri, cl := range cat.Clues {
			want := (ri + 1) * 100
			if cl.Points != want {
				t.Errorf("category %d row %d: expected %d points, got %d", ci, ri, want, cl.Points)
			}
		}
	}
	if err := b.Validate(); err != nil {
		t.Errorf("fresh board should validate: %v", err)
	}
}

func TestBoardValidate(t *testing.T) {
	t.Run("ragged rows", func(t *testing.T) {
		b := NewBoard(2, 4)
		b.Categories[1].Clues = b.Categories[1].Clues[:3]
		if err := b.Validate(); err == nil {
			t.Error("expected error for unequal row counts")
		}
	})

	t.Run("non-increasing points", func(t *testing.T) {
		b := NewBoard(1, 3)
		b.Categories[0].Clues[2].Points = b.Categories[0].Clues[1].Points
		if err := b.Validate(); err == nil {
			t.Error("expected error for non-increasing points")
		}
	})

	t.Run("no categories", func(t *testing.T) {
		var b Board
		if err := b.Validate(); err == nil {
			t.Error("expected error for empty board")
		}
	})
}

func TestClueLookup(t *testing.T) {
	b := NewBoard(2, 3)

	if _, ok := b.Clue(Coord{Category: 1, Row: 2}); !ok {
		t.Error("expected in-range clue to exist")
	}
	for _, c := range []Coord{
		{Category: -1, Row: 0},
		{Category: 2, Row: 0},
		{Category: 0, Row: 3},
	} {
		if _, ok := b.Clue(c); ok {
			t.Errorf("expected %+v to be out of range", c)
		}
	}
}

func TestAllSolvedAndAvailable(t *testing.T) {
	b := NewBoard(1, 2)
	if b.AllSolved() {
		t.Error("fresh board should not be all solved")
	}
	if got := len(b.AvailableClues()); got != 2 {
		t.Fatalf("expected 2 available clues, got %d", got)
	}

	b.Categories[0].Clues[0].Solved = true
	if got := len(b.AvailableClues()); got != 1 {
		t.Fatalf("expected 1 available clue, got %d", got)
	}

	b.Categories[0].Clues[1].Solved = true
	if !b.AllSolved() {
		t.Error("expected board to be all solved")
	}
}

func TestPhaseRoundTrip(t *testing.T) {
	phases := []Phase{
		Lobby{},
		Selecting{TeamID: 2},
		Showing{Clue: Coord{Category: 1, Row: 3}, OwnerTeamID: 2, AttemptCount: 1, MaxAttempts: 2},
		Steal{Clue: Coord{Category: 0, Row: 1}, Queue: []int{3, 1}, Current: 2, OwnerTeamID: 4},
		Resolved{Clue: Coord{Category: 2, Row: 0}, NextTeamID: 1},
		Finished{},
	}

	for _, p := range phases {
		data, err := MarshalPhase(p)
		if err != nil {
			t.Fatalf("%s: marshal: %v", p.Kind(), err)
		}
		got, err := UnmarshalPhase(data)
		if err != nil {
			t.Fatalf("%s: unmarshal: %v", p.Kind(), err)
		}
		if got.Kind() != p.Kind() {
			t.Errorf("expected kind %s, got %s", p.Kind(), got.Kind())
		}
	}
}

func TestUnmarshalPhaseUnknownKind(t *testing.T) {
	if _, err := UnmarshalPhase([]byte(`{"kind":"warp"}`)); err == nil {
		t.Error("expected error for unknown phase kind")
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	g := NewGameState(NewBoard(2, 3))
	g.Teams = []Team{{ID: 1, Name: "Alpha", Score: 300}, {ID: 2, Name: "Beta", Score: -100}}
	g.ActiveTeam = 2
	g.Phase = Showing{Clue: Coord{Category: 1, Row: 2}, OwnerTeamID: 2, AttemptCount: 2, MaxAttempts: 2}
	g.Events = EventState{
		QuestionsAnswered: 7,
		ActiveEvent:       EventDoublePoints,
		History:           []EventKind{EventHardReset, EventDoublePoints},
		AnimationPlaying:  true,
		LastSteal:         &StealContext{ThiefID: 1, ThiefName: "Alpha", VictimID: 2, VictimName: "Beta", Amount: 60},
	}
	g.ClueAt(Coord{Category: 0, Row: 0}).Solved = true

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got GameState
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ActiveTeam != 2 {
		t.Errorf("expected active team 2, got %d", got.ActiveTeam)
	}
	sh, ok := got.Phase.(Showing)
	if !ok {
		t.Fatalf("expected Showing phase, got %T", got.Phase)
	}
	if sh.AttemptCount != 2 || sh.MaxAttempts != 2 {
		t.Errorf("attempt counters lost: %+v", sh)
	}
	if got.Events.QuestionsAnswered != 7 {
		t.Errorf("expected 7 questions answered, got %d", got.Events.QuestionsAnswered)
	}
	if got.Events.ActiveEvent != EventDoublePoints {
		t.Errorf("expected active double_points, got %q", got.Events.ActiveEvent)
	}
	if got.Events.LastSteal == nil || got.Events.LastSteal.Amount != 60 {
		t.Errorf("steal context lost: %+v", got.Events.LastSteal)
	}
	if !got.ClueAt(Coord{Category: 0, Row: 0}).Solved {
		t.Error("solved flag lost")
	}
	if got.Teams[1].Score != -100 {
		t.Errorf("expected Beta at -100, got %d", got.Teams[1].Score)
	}
}

// Documents written before the event subsystem existed have no eventState
// field; they must decode with the default event state rather than fail.
func TestGameStateLegacyDocument(t *testing.T) {
	legacy := []byte(`{
		"board": {"categories": [{"name": "Category 1", "clues": [
			{"points": 100, "question": "q", "answer": "a"}
		]}]},
		"teams": [{"id": 1, "name": "Alpha", "score": 200}],
		"phase": {"kind": "selecting", "teamId": 1},
		"activeTeam": 1
	}`)

	var g GameState
	if err := json.Unmarshal(legacy, &g); err != nil {
		t.Fatalf("unmarshal legacy: %v", err)
	}

	def := EventState{}
	if g.Events.QuestionsAnswered != def.QuestionsAnswered ||
		g.Events.ActiveEvent != def.ActiveEvent ||
		g.Events.QueuedEvent != def.QueuedEvent ||
		g.Events.AnimationPlaying {
		t.Errorf("expected default event state, got %+v", g.Events)
	}
	if g.Events.History != nil || g.Events.LastSteal != nil {
		t.Errorf("expected empty history and no steal, got %+v", g.Events)
	}
	if _, ok := g.Phase.(Selecting); !ok {
		t.Errorf("expected Selecting phase, got %T", g.Phase)
	}
}

func TestGameStateCloneIsolation(t *testing.T) {
	g := NewGameState(NewBoard(1, 2))
	g.Teams = []Team{{ID: 1, Name: "Alpha"}}
	g.Events.History = []EventKind{EventScoreSteal}

	cp := g.Clone()
	cp.Teams[0].Score = 999
	cp.ClueAt(Coord{}).Solved = true
	cp.Events.History[0] = EventHardReset

	if g.Teams[0].Score != 0 {
		t.Error("clone shares team slice")
	}
	if g.ClueAt(Coord{}).Solved {
		t.Error("clone shares board")
	}
	if g.Events.History[0] != EventScoreSteal {
		t.Error("clone shares event history")
	}
}

func TestEventStateCadence(t *testing.T) {
	var s EventState

	if s.ShouldTrigger(4) {
		t.Error("zero questions should not trigger")
	}
	s.QuestionsAnswered = 4
	if !s.ShouldTrigger(4) {
		t.Error("4 questions should trigger at interval 4")
	}
	if s.ShouldTrigger(0) {
		t.Error("non-positive interval must never trigger")
	}

	s.ActiveEvent = EventDoublePoints
	if s.ShouldTrigger(4) {
		t.Error("active event suppresses trigger")
	}
	s.ActiveEvent = EventNone
	s.QueuedEvent = EventHardReset
	if s.ShouldTrigger(4) {
		t.Error("queued event suppresses trigger")
	}

	s.QueuedEvent = EventNone
	s.QuestionsAnswered = 5
	if s.ShouldTrigger(4) {
		t.Error("non-multiple should not trigger")
	}
	s.QuestionsAnswered = 8
	if !s.ShouldTrigger(4) {
		t.Error("8 questions should trigger at interval 4")
	}
}

func TestEventStateQueueAndActivate(t *testing.T) {
	var s EventState

	s.Queue(EventReverseQuestion)
	k, ok := s.TakeQueued()
	if !ok || k != EventReverseQuestion {
		t.Fatalf("expected queued reverse_question, got %q %v", k, ok)
	}
	if _, ok := s.TakeQueued(); ok {
		t.Error("queue should be empty after take")
	}

	s.Activate(EventDoublePoints)
	if !s.IsActive(EventDoublePoints) {
		t.Error("expected double_points active")
	}
	if len(s.History) != 1 || s.History[0] != EventDoublePoints {
		t.Errorf("expected activation in history, got %v", s.History)
	}
	s.Deactivate()
	if s.IsActive(EventDoublePoints) {
		t.Error("expected no active event after deactivate")
	}
	if s.IsActive(EventNone) {
		t.Error("EventNone must never report active")
	}
}

func TestInstantaneous(t *testing.T) {
	for _, k := range []EventKind{EventHardReset, EventScoreSteal} {
		if !k.Instantaneous() {
			t.Errorf("%s should be instantaneous", k)
		}
	}
	for _, k := range []EventKind{EventDoublePoints, EventReverseQuestion} {
		if k.Instantaneous() {
			t.Errorf("%s should be deferred", k)
		}
	}
}
