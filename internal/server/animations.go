package server

import (
	"sync"

	"github.com/quizhaus/clueboard/internal/clueboard"
	"github.com/quizhaus/clueboard/internal/events"
)

// AnimationStatus is a sampled view of a running event announcement.
type AnimationStatus struct {
	Active   bool                `json:"active"`
	Event    clueboard.EventKind `json:"event,omitempty"`
	Progress float64             `json:"progress"`
	Phase    string              `json:"phase,omitempty"`
	Done     bool                `json:"done"`
}

// AnimationRegistry holds the in-flight announcement controller per game.
// Controllers live only in memory; a restart simply shows no animation, the
// game state's animationPlaying flag is what gates the rules.
type AnimationRegistry struct {
	mu     sync.Mutex
	active map[string]*events.AnimationController
}

func NewAnimationRegistry() *AnimationRegistry {
	return &AnimationRegistry{
		active: make(map[string]*events.AnimationController),
	}
}

// Start begins tracking an announcement for the game, replacing any prior one.
func (reg *AnimationRegistry) Start(gameID string, kind clueboard.EventKind) {
	reg.mu.Lock()
	reg.active[gameID] = events.StartAnimation(kind, 0)
	reg.mu.Unlock()
}

// Sample reads the current progress. A finished controller is reported once
// with done=true and then discarded.
func (reg *AnimationRegistry) Sample(gameID string) AnimationStatus {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	ctrl, ok := reg.active[gameID]
	if !ok {
		return AnimationStatus{}
	}
	status := AnimationStatus{
		Active:   true,
		Event:    ctrl.Kind(),
		Progress: ctrl.Progress(),
		Phase:    string(ctrl.Phase()),
		Done:     ctrl.Done(),
	}
	if status.Done {
		delete(reg.active, gameID)
	}
	return status
}

// Clear drops the game's controller, if any.
func (reg *AnimationRegistry) Clear(gameID string) {
	reg.mu.Lock()
	delete(reg.active, gameID)
	reg.mu.Unlock()
}
