// Package events holds the tunable side of the special-event subsystem:
// which events are eligible, how often the cadence fires, weighted random
// selection, and the wall-clock animation progress controller sampled by
// the presentation layer. Game-rule consequences of events live in the
// engine; nothing here touches game state.
package events

import (
	"math/rand/v2"
	"time"

	"github.com/quizhaus/clueboard/internal/clueboard"
)

// Config controls event cadence and selection. A weight of zero permanently
// excludes an event; if every weight is zero no event is ever selected,
// which is a valid (degenerate) configuration, not an error.
type Config struct {
	TriggerInterval int
	Weights         map[clueboard.EventKind]int
}

// DefaultConfig triggers every 4 resolved clues with uniform weights.
func DefaultConfig() Config {
	return Config{
		TriggerInterval: 4,
		Weights: map[clueboard.EventKind]int{
			clueboard.EventDoublePoints:    1,
			clueboard.EventHardReset:       1,
			clueboard.EventReverseQuestion: 1,
			clueboard.EventScoreSteal:      1,
		},
	}
}

// Pick draws one event from the discrete distribution over the non-zero
// weights. Returns false when the distribution is empty.
func (c Config) Pick(rng *rand.Rand) (clueboard.EventKind, bool) {
	total := 0
	for _, k := range clueboard.EventKinds {
		if w := c.Weights[k]; w > 0 {
			total += w
		}
	}
	if total == 0 {
		return clueboard.EventNone, false
	}
	n := rng.IntN(total)
	for _, k := range clueboard.EventKinds {
		w := c.Weights[k]
		if w <= 0 {
			continue
		}
		if n < w {
			return k, true
		}
		n -= w
	}
	return clueboard.EventNone, false
}

// Duration returns the default announcement animation length for an event.
func Duration(k clueboard.EventKind) time.Duration {
	switch k {
	case clueboard.EventDoublePoints:
		return 3000 * time.Millisecond
	case clueboard.EventHardReset:
		return 4000 * time.Millisecond
	case clueboard.EventReverseQuestion:
		return 2500 * time.Millisecond
	case clueboard.EventScoreSteal:
		return 3200 * time.Millisecond
	default:
		return 3000 * time.Millisecond
	}
}
