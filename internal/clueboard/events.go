package clueboard

// EventKind identifies a periodic special rule modifier.
type EventKind string

const (
	EventNone            EventKind = ""
	EventDoublePoints    EventKind = "double_points"
	EventHardReset       EventKind = "hard_reset"
	EventReverseQuestion EventKind = "reverse_question"
	EventScoreSteal      EventKind = "score_steal"
)

// EventKinds lists every event in a stable order.
var EventKinds = []EventKind{
	EventDoublePoints,
	EventHardReset,
	EventReverseQuestion,
	EventScoreSteal,
}

// Instantaneous reports whether the event's gameplay effect is applied the
// moment it is queued. DoublePoints and ReverseQuestion are deferred instead:
// they occupy the active slot and modify exactly the next clue.
func (k EventKind) Instantaneous() bool {
	return k == EventHardReset || k == EventScoreSteal
}

// StealContext records who lost and who gained in the last score steal, for
// the presentation layer.
type StealContext struct {
	ThiefID    int    `json:"thiefId"`
	ThiefName  string `json:"thiefName"`
	VictimID   int    `json:"victimId"`
	VictimName string `json:"victimName"`
	Amount     int    `json:"amount"`
}

// EventState tracks the event subsystem inside a game. It is owned by the
// GameState aggregate; the zero value is the valid default, which is what a
// state persisted before the event subsystem existed deserializes to.
type EventState struct {
	QuestionsAnswered int           `json:"questionsAnswered"`
	ActiveEvent       EventKind     `json:"activeEvent,omitempty"`
	QueuedEvent       EventKind     `json:"queuedEvent,omitempty"`
	History           []EventKind   `json:"eventHistory,omitempty"`
	AnimationPlaying  bool          `json:"animationPlaying,omitempty"`
	LastSteal         *StealContext `json:"lastSteal,omitempty"`
}

// ShouldTrigger reports whether the cadence is due: a positive multiple of
// interval questions answered, with nothing active and nothing queued.
func (s EventState) ShouldTrigger(interval int) bool {
	if interval <= 0 {
		return false
	}
	return s.QuestionsAnswered > 0 &&
		s.QuestionsAnswered%interval == 0 &&
		s.ActiveEvent == EventNone &&
		s.QueuedEvent == EventNone
}

// IncrementQuestions bumps the resolved-clue counter. It never decrements.
func (s *EventState) IncrementQuestions() {
	s.QuestionsAnswered++
}

// Activate makes the event current and records it in history.
func (s *EventState) Activate(k EventKind) {
	s.History = append(s.History, k)
	s.ActiveEvent = k
}

// Deactivate clears the active event.
func (s *EventState) Deactivate() {
	s.ActiveEvent = EventNone
}

// IsActive reports whether k is the currently active event.
func (s EventState) IsActive(k EventKind) bool {
	return k != EventNone && s.ActiveEvent == k
}

// Queue stores an event detected during clue close, to be animated and
// (for deferred kinds) activated at the next selection.
func (s *EventState) Queue(k EventKind) {
	s.QueuedEvent = k
}

// TakeQueued removes and returns the queued event, if any.
func (s *EventState) TakeQueued() (EventKind, bool) {
	if s.QueuedEvent == EventNone {
		return EventNone, false
	}
	k := s.QueuedEvent
	s.QueuedEvent = EventNone
	return k, true
}

// clone returns a deep copy of the event state.
func (s EventState) clone() EventState {
	out := s
	if s.History != nil {
		out.History = append([]EventKind(nil), s.History...)
	}
	if s.LastSteal != nil {
		ctx := *s.LastSteal
		out.LastSteal = &ctx
	}
	return out
}
