package events

import (
	"time"

	"github.com/quizhaus/clueboard/internal/clueboard"
)

// AnimationPhase partitions animation progress into presentation stages.
type AnimationPhase string

const (
	PhaseIntro AnimationPhase = "intro" // progress in [0, 0.2)
	PhaseMain  AnimationPhase = "main"  // progress in [0.2, 0.8)
	PhaseOutro AnimationPhase = "outro" // progress in [0.8, 1.0]
)

// AnimationController converts wall-clock elapsed time into a normalized
// progress value for the renderer. It holds no game logic and no resources;
// the caller discards it once Done reports true. It is never persisted.
type AnimationController struct {
	kind     clueboard.EventKind
	start    time.Time
	duration time.Duration
	now      func() time.Time
}

// StartAnimation begins tracking an event announcement of the given length.
func StartAnimation(kind clueboard.EventKind, duration time.Duration) *AnimationController {
	if duration <= 0 {
		duration = Duration(kind)
	}
	return &AnimationController{
		kind:     kind,
		start:    time.Now(),
		duration: duration,
		now:      time.Now,
	}
}

// Kind returns the animated event.
func (a *AnimationController) Kind() clueboard.EventKind { return a.kind }

// Progress returns elapsed/duration clamped to [0, 1]. It is monotonically
// non-decreasing for a fixed controller.
func (a *AnimationController) Progress() float64 {
	elapsed := a.now().Sub(a.start)
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(a.duration)
	if p > 1 {
		return 1
	}
	return p
}

// Phase maps current progress onto the intro/main/outro stages.
func (a *AnimationController) Phase() AnimationPhase {
	p := a.Progress()
	switch {
	case p < 0.2:
		return PhaseIntro
	case p < 0.8:
		return PhaseMain
	default:
		return PhaseOutro
	}
}

// Done reports whether progress has reached 1.0.
func (a *AnimationController) Done() bool {
	return a.Progress() >= 1
}
