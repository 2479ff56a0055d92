// Seeds a demo teacher account with one quiz covering every question kind.
package main

import (
	"context"
	"log"
	"time"

	"quizroom/internal/config"
	"quizroom/internal/database"
	"quizroom/internal/domain"
	"quizroom/internal/repository"
	"quizroom/internal/repository/models"
	"quizroom/internal/service"
	"quizroom/internal/util"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewSQLXUserRepository(db)
	quizRepo := repository.NewSQLXQuizRepository(db)

	teacher := &models.User{
		ID:          util.NewULID(),
		GoogleID:    "seed-teacher",
		Email:       "teacher@example.com",
		DisplayName: util.StringToNullString("Demo Teacher"),
		Role:        service.RoleTeacher,
	}
	if existing, err := userRepo.GetUserByGoogleID(ctx, teacher.GoogleID); err != nil {
		log.Fatalf("Failed to check for existing seed user: %v", err)
	} else if existing != nil {
		log.Println("Seed data already present, nothing to do")
		return
	}
	if err := userRepo.CreateUser(ctx, teacher); err != nil {
		log.Fatalf("Failed to create seed teacher: %v", err)
	}

	quiz := domain.NewQuiz(teacher.ID, "General Knowledge Warm-up", "General")
	quiz.ID = util.NewULID()
	if err := quizRepo.SaveQuiz(ctx, quiz); err != nil {
		log.Fatalf("Failed to create seed quiz: %v", err)
	}

	questions := []domain.Question{
		{
			Kind:    domain.KindMultipleChoice,
			Text:    "Which planet is known as the Red Planet?",
			OptionA: "Venus", OptionB: "Mars", OptionC: "Jupiter", OptionD: "Mercury",
			Correct: domain.CorrectAnswer{Letter: "B"},
		},
		{
			Kind:    domain.KindTrueFalse,
			Text:    "Water boils at 100 degrees Celsius at sea level.",
			Correct: domain.CorrectAnswer{Letter: "A"},
		},
		{
			Kind:    domain.KindFillBlank,
			Text:    "The capital of France is ____.",
			Correct: domain.CorrectAnswer{Text: "Paris"},
		},
		{
			Kind:    domain.KindIdentification,
			Text:    "Name the process by which plants convert sunlight into energy.",
			Correct: domain.CorrectAnswer{Text: "Photosynthesis"},
		},
		{
			Kind: domain.KindEssay,
			Text: "Explain why the seasons change throughout the year.",
		},
	}
	for i := range questions {
		q := &questions[i]
		q.ID = util.NewULID()
		q.QuizID = quiz.ID
		q.Position = i
		if err := q.Validate(); err != nil {
			log.Fatalf("Seed question %d invalid: %v", i, err)
		}
		if err := quizRepo.SaveQuestion(ctx, q); err != nil {
			log.Fatalf("Failed to create seed question %d: %v", i, err)
		}
	}

	log.Printf("Seeded quiz %s with %d questions", quiz.ID, len(questions))
}
