package service

import (
	"context"
	"strings"

	"pulse/internal/models"
	"pulse/internal/repository"
)

const maxCommentLen = 2000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		isAdmin:     isAdmin,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}

	// Post must exist and be visible to the commenter.
	if _, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  models.PublicID(in.UserID),
		PostID:  models.PublicID(in.PostID),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, uint(comment.ID), in.UserID)
}

func (s *CommentService) GetComment(ctx context.Context, commentID, currentUserID uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, commentID, currentUserID)
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID, limit, offset, currentUserID)
}

func (s *CommentService) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByUser(ctx, userID, limit, offset, currentUserID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, in.UserID)
	if err != nil {
		return err
	}

	if uint(comment.UserID) != in.UserID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}

// LikeComment records a like; repeats are no-ops.
func (s *CommentService) LikeComment(ctx context.Context, userID, commentID uint) (int64, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID, userID); err != nil {
		return 0, err
	}
	if err := s.commentRepo.Like(ctx, userID, commentID); err != nil {
		return 0, err
	}
	return s.commentRepo.LikeCount(ctx, commentID)
}

func (s *CommentService) UnlikeComment(ctx context.Context, userID, commentID uint) (int64, error) {
	if err := s.commentRepo.Unlike(ctx, userID, commentID); err != nil {
		return 0, err
	}
	return s.commentRepo.LikeCount(ctx, commentID)
}
