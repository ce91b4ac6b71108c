package service

import (
	"context"

	"pulse/internal/models"
	"pulse/internal/repository"
)

type SocialService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewSocialService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *SocialService {
	return &SocialService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follower relationship. Following yourself is
// rejected; following twice is a no-op.
func (s *SocialService) Follow(ctx context.Context, followerID, followingID uint) (int64, error) {
	if followerID == followingID {
		return 0, models.NewValidationError("You cannot follow yourself")
	}
	// Target must be an active account.
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return 0, err
	}
	if err := s.followRepo.Follow(ctx, followerID, followingID); err != nil {
		return 0, err
	}
	return s.followRepo.FollowerCount(ctx, followingID)
}

func (s *SocialService) Unfollow(ctx context.Context, followerID, followingID uint) (int64, error) {
	if followerID == followingID {
		return 0, models.NewValidationError("You cannot unfollow yourself")
	}
	if err := s.followRepo.Unfollow(ctx, followerID, followingID); err != nil {
		return 0, err
	}
	return s.followRepo.FollowerCount(ctx, followingID)
}

func (s *SocialService) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followingID)
}

func (s *SocialService) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, userID, limit, offset)
}

func (s *SocialService) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID, limit, offset)
}
