package validation

import (
	"testing"
	"time"

	"quizroom/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateStartSessionRequest(t *testing.T) {
	assert.NoError(t, ValidateStartSessionRequest(&dto.StartSessionRequest{QuizID: "quiz1"}))
	assert.Error(t, ValidateStartSessionRequest(&dto.StartSessionRequest{QuizID: "   "}))
}

func TestValidateCreateQuizRequest(t *testing.T) {
	openAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	closeAt := openAt.Add(time.Hour)

	tests := []struct {
		name    string
		req     dto.CreateQuizRequest
		wantErr bool
	}{
		{"valid without window", dto.CreateQuizRequest{Title: "Geography"}, false},
		{"valid with window", dto.CreateQuizRequest{Title: "Geography", OpenTime: &openAt, CloseTime: &closeAt}, false},
		{"blank title", dto.CreateQuizRequest{Title: "  "}, true},
		{"inverted window", dto.CreateQuizRequest{Title: "Geography", OpenTime: &closeAt, CloseTime: &openAt}, true},
		{"open equals close", dto.CreateQuizRequest{Title: "Geography", OpenTime: &openAt, CloseTime: &openAt}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateQuizRequest(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateQuestionRequest(t *testing.T) {
	valid := dto.QuestionRequest{
		QuestionType: "true_false",
		QuestionText: "Water boils at 100C at sea level.",
	}
	assert.NoError(t, ValidateQuestionRequest(&valid))

	unknownKind := valid
	unknownKind.QuestionType = "matching"
	assert.Error(t, ValidateQuestionRequest(&unknownKind))

	noText := valid
	noText.QuestionText = ""
	assert.Error(t, ValidateQuestionRequest(&noText))

	negative := valid
	negative.Position = -1
	assert.Error(t, ValidateQuestionRequest(&negative))
}
