package session

import "quizroom/internal/domain"

// Countdowns maps question kinds to per-question time budgets in seconds.
// These size the countdown armed for each question and the remaining-time
// percentage shown by clients.
type Countdowns map[domain.QuestionKind]int

const fallbackCountdownSeconds = 30

// DefaultCountdowns returns the stock per-kind budgets.
func DefaultCountdowns() Countdowns {
	return Countdowns{
		domain.KindMultipleChoice: 20,
		domain.KindTrueFalse:      15,
		domain.KindFillBlank:      30,
		domain.KindIdentification: 30,
		domain.KindEssay:          120,
	}
}

// CountdownsFromConfig overlays configured budgets on the defaults. Unknown
// kind names and non-positive values are ignored.
func CountdownsFromConfig(overrides map[string]int) Countdowns {
	c := DefaultCountdowns()
	for name, seconds := range overrides {
		kind := domain.QuestionKind(name)
		if !domain.ValidKind(kind) || seconds <= 0 {
			continue
		}
		c[kind] = seconds
	}
	return c
}

// For returns the budget for a kind, falling back for anything unmapped.
func (c Countdowns) For(kind domain.QuestionKind) int {
	if seconds, ok := c[kind]; ok && seconds > 0 {
		return seconds
	}
	return fallbackCountdownSeconds
}
