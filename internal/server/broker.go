package server

import (
	"encoding/json"
	"sync"

	"github.com/quizhaus/clueboard/internal/engine"
)

// EffectFrame is one SSE payload: the ordered effects of a single action.
type EffectFrame struct {
	Phase   string          `json:"phase"`
	Effects []engine.Effect `json:"effects"`
}

// Broker is an in-process pub/sub for SSE effect frames, keyed by game ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded effect frames for
// the given game.
func (b *Broker) Subscribe(gameID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan []byte]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the game's subscribers.
func (b *Broker) Unsubscribe(gameID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// Publish sends a frame to all subscribers of the given game.
func (b *Broker) Publish(gameID string, frame EffectFrame) {
	data, _ := json.Marshal(frame)
	b.mu.RLock()
	for ch := range b.subs[gameID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
