package domain

import (
	"strings"
	"time"
)

// ScoreResult is the outcome of scoring one attempt.
type ScoreResult struct {
	Score            int
	TotalQuestions   int
	CorrectAnswers   map[string]AnswerCheck
	TimeTakenSeconds int
}

// NormalizeAnswer lowercases and trims an answer for comparison.
// Normalization is idempotent.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ScoreAttempt grades an attempt against the fixed question order. It is pure:
// no clock reads, no side effects. Unanswered questions resolve to the empty
// string and are wrong unless the canonical answer is also empty. Essay
// answers go through the same exact-match comparison and are additionally
// marked NeedsReview for manual confirmation.
func ScoreAttempt(questions []Question, answers map[string]string, startedAt, now time.Time) ScoreResult {
	result := ScoreResult{
		TotalQuestions: len(questions),
		CorrectAnswers: make(map[string]AnswerCheck, len(questions)),
	}

	for i := range questions {
		q := &questions[i]
		canonical := q.CanonicalAnswer()
		submitted := answers[q.ID]

		isCorrect := NormalizeAnswer(submitted) == NormalizeAnswer(canonical)
		if isCorrect {
			result.Score++
		}

		result.CorrectAnswers[q.ID] = AnswerCheck{
			CorrectAnswerText: canonical,
			IsCorrect:         isCorrect,
			NeedsReview:       q.Kind == KindEssay,
		}
	}

	elapsed := now.Sub(startedAt)
	if elapsed > 0 {
		result.TimeTakenSeconds = int(elapsed.Seconds())
	}
	return result
}
