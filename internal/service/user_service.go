package service

import (
	"context"
	"strings"

	"quizroom/internal/domain"
	"quizroom/internal/dto"
	"quizroom/internal/repository"
	"quizroom/internal/repository/models"
	"quizroom/internal/util"
)

// UserService serves the caller's own profile.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}
	return toProfileResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, domain.NewInvalidInputError("display name is required")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}

	user.DisplayName = util.StringToNullString(name)
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("failed to update user", err)
	}
	return toProfileResponse(user), nil
}

func toProfileResponse(user *models.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		ID:                user.ID,
		Email:             user.Email,
		DisplayName:       user.DisplayName.String,
		ProfilePictureURL: user.ProfilePictureURL.String,
		Role:              user.Role,
	}
}
