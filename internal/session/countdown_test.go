package session

import (
	"testing"

	"quizroom/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCountdowns(t *testing.T) {
	c := DefaultCountdowns()
	assert.Equal(t, 20, c.For(domain.KindMultipleChoice))
	assert.Equal(t, 15, c.For(domain.KindTrueFalse))
	assert.Equal(t, 30, c.For(domain.KindFillBlank))
	assert.Equal(t, 30, c.For(domain.KindIdentification))
	assert.Equal(t, 120, c.For(domain.KindEssay))
}

func TestCountdowns_For_Fallback(t *testing.T) {
	c := Countdowns{}
	assert.Equal(t, fallbackCountdownSeconds, c.For(domain.KindEssay))
	assert.Equal(t, fallbackCountdownSeconds, c.For(domain.QuestionKind("mystery")))

	c = Countdowns{domain.KindEssay: 0}
	assert.Equal(t, fallbackCountdownSeconds, c.For(domain.KindEssay), "non-positive budgets fall back")
}

func TestCountdownsFromConfig(t *testing.T) {
	c := CountdownsFromConfig(map[string]int{
		"essay":          300,
		"true_false":     -1, // ignored
		"matching_pairs": 45, // unknown kind, ignored
	})
	assert.Equal(t, 300, c.For(domain.KindEssay))
	assert.Equal(t, 15, c.For(domain.KindTrueFalse), "invalid override keeps the default")
	assert.Equal(t, 20, c.For(domain.KindMultipleChoice))
}
