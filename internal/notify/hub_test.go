package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToSubscribers(t *testing.T) {
	h := NewHub()

	ch1, cancel1 := h.Subscribe("quiz1")
	defer cancel1()
	ch2, cancel2 := h.Subscribe("quiz1")
	defer cancel2()
	other, cancelOther := h.Subscribe("quiz2")
	defer cancelOther()

	ev := AttemptEvent{QuizID: "quiz1", UserID: "user1", AttemptID: "a1", Score: 3, TotalQuestions: 5}
	h.Publish(ev)

	assert.Equal(t, ev, <-ch1)
	assert.Equal(t, ev, <-ch2)
	select {
	case <-other:
		t.Fatal("subscriber of another quiz received the event")
	default:
	}
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe("quiz1")
	cancel()

	// The channel is closed on cancel and later publishes are dropped.
	_, open := <-ch
	assert.False(t, open)
	h.Publish(AttemptEvent{QuizID: "quiz1"})

	// Double cancel is harmless.
	cancel()
}

func TestHub_SlowConsumerDropsOldest(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe("quiz1")
	defer cancel()

	// Fill well past the buffer; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			h.Publish(AttemptEvent{QuizID: "quiz1", AttemptID: "a", Score: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}

	// The newest event is still in the buffer.
	var last AttemptEvent
	for {
		select {
		case ev := <-ch:
			last = ev
			continue
		default:
		}
		break
	}
	require.Equal(t, 49, last.Score)
}
