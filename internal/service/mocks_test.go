package service

import (
	"context"
	"time"

	"quizroom/internal/domain"
	"quizroom/internal/repository/models"

	"github.com/stretchr/testify/mock"
)

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if quiz := args.Get(0); quiz != nil {
		return quiz.(*domain.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepository) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]domain.Question, error) {
	args := m.Called(ctx, quizID)
	if qs := args.Get(0); qs != nil {
		return qs.([]domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepository) ListQuizzes(ctx context.Context, limit, offset int) ([]domain.Quiz, int, error) {
	args := m.Called(ctx, limit, offset)
	if quizzes := args.Get(0); quizzes != nil {
		return quizzes.([]domain.Quiz), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockQuizRepository) ListQuizzesByOwner(ctx context.Context, ownerID string) ([]domain.Quiz, error) {
	args := m.Called(ctx, ownerID)
	if quizzes := args.Get(0); quizzes != nil {
		return quizzes.([]domain.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	return m.Called(ctx, quiz).Error(0)
}

func (m *MockQuizRepository) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	return m.Called(ctx, quiz).Error(0)
}

func (m *MockQuizRepository) DeleteQuiz(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockQuizRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	return m.Called(ctx, question).Error(0)
}

func (m *MockQuizRepository) DeleteQuestion(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.Attempt) (string, error) {
	args := m.Called(ctx, attempt)
	return args.String(0), args.Error(1)
}

func (m *MockAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	args := m.Called(ctx, id)
	if attempt := args.Get(0); attempt != nil {
		return attempt.(*domain.Attempt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAttemptRepository) GetAttemptsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Attempt, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if attempts := args.Get(0); attempts != nil {
		return attempts.([]domain.Attempt), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockAttemptRepository) GetAttemptsByQuiz(ctx context.Context, quizID string) ([]domain.Attempt, error) {
	args := m.Called(ctx, quizID)
	if attempts := args.Get(0); attempts != nil {
		return attempts.([]domain.Attempt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAttemptRepository) GetLatestAttempt(ctx context.Context, userID, quizID string) (*domain.Attempt, error) {
	args := m.Called(ctx, userID, quizID)
	if attempt := args.Get(0); attempt != nil {
		return attempt.(*domain.Attempt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAttemptRepository) GetBestAttempt(ctx context.Context, userID, quizID string) (*domain.Attempt, error) {
	args := m.Called(ctx, userID, quizID)
	if attempt := args.Get(0); attempt != nil {
		return attempt.(*domain.Attempt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAttemptRepository) GetLeaderboard(ctx context.Context, quizID string, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, quizID, limit)
	if entries := args.Get(0); entries != nil {
		return entries.([]domain.LeaderboardEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	args := m.Called(ctx, googleID)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
