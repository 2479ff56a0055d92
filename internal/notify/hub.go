package notify

import (
	"sync"
	"time"
)

// AttemptEvent announces a newly persisted attempt for a quiz.
type AttemptEvent struct {
	QuizID         string    `json:"quiz_id"`
	UserID         string    `json:"user_id"`
	AttemptID      string    `json:"attempt_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Hub fans attempt events out to per-quiz subscribers. Subscriptions have an
// explicit lifecycle: Subscribe returns a cancel function the caller must
// invoke to avoid leaks.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan AttemptEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan AttemptEvent]struct{})}
}

// Subscribe registers a listener for one quiz's attempt events.
func (h *Hub) Subscribe(quizID string) (<-chan AttemptEvent, func()) {
	ch := make(chan AttemptEvent, 8)

	h.mu.Lock()
	if h.subs[quizID] == nil {
		h.subs[quizID] = make(map[chan AttemptEvent]struct{})
	}
	h.subs[quizID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[quizID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.subs, quizID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber of the quiz. Slow consumers
// lose their oldest pending event rather than blocking the publisher.
func (h *Hub) Publish(ev AttemptEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[ev.QuizID] {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
