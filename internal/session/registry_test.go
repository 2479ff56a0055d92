package session

import (
	"testing"

	"quizroom/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	quiz := &domain.Quiz{ID: "quiz1", Title: "Geography"}
	e, err := NewEngine("sess1", quiz, testQuestions(), Options{
		Sink:     &stubSink{},
		Identity: stubIdentity{userID: "user1"},
	})
	require.NoError(t, err)
	e.manualTimer = true

	_, ok := r.Get("sess1")
	assert.False(t, ok)

	r.Put(e)
	got, ok := r.Get("sess1")
	require.True(t, ok)
	assert.Same(t, e, got)
	assert.Equal(t, 1, r.Len())

	r.Remove("sess1")
	_, ok = r.Get("sess1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	// Removing twice is harmless.
	r.Remove("sess1")
}
