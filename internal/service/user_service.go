package service

import (
	"context"
	"strings"

	"pulse/internal/models"
	"pulse/internal/repository"
)

const maxBioLen = 500

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type UpdateProfileInput struct {
	UserID uint
	Bio    *string
	Avatar *string
	Cover  *string
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GetProfile returns a user with follower counts populated.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, user)
}

func (s *UserService) GetProfileByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}
	return s.withCounts(ctx, user)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if len(bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = bio
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.Cover != nil {
		user.Cover = *in.Cover
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return s.withCounts(ctx, user)
}

func (s *UserService) withCounts(ctx context.Context, user *models.User) (*models.User, error) {
	followers, err := s.followRepo.FollowerCount(ctx, uint(user.ID))
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.FollowingCount(ctx, uint(user.ID))
	if err != nil {
		return nil, err
	}
	user.FollowersCount = int(followers)
	user.FollowingCount = int(following)
	return user, nil
}
