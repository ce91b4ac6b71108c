package service

import (
	"context"
	"regexp"
	"strings"

	"pulse/internal/models"
	"pulse/internal/repository"
)

const maxContentLen = 5000

var hashtagPattern = regexp.MustCompile(`#([a-zA-Z0-9_]+)`)

type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID   uint
	Content  string
	IsPublic *bool
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

type SetPrivacyInput struct {
	UserID   uint
	PostID   uint
	IsPublic bool
}

func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		isAdmin:  isAdmin,
	}
}

// extractHashtags returns the distinct lowercased tags in content.
func extractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var tags []string
	for _, m := range matches {
		tag := strings.ToLower(m[1])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	post := &models.Post{
		Content:  content,
		UserID:   models.PublicID(in.UserID),
		IsPublic: isPublic,
	}
	if err := s.postRepo.Create(ctx, post, extractHashtags(content)); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, uint(post.ID), in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	if !post.IsPublic && uint(post.UserID) != currentUserID {
		admin, err := s.callerIsAdmin(ctx, currentUserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewNotFoundError("Post")
		}
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	includePrivate, err := s.callerIsAdmin(ctx, in.CurrentUserID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID, includePrivate)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	includePrivate := userID == currentUserID
	if !includePrivate {
		admin, err := s.callerIsAdmin(ctx, currentUserID)
		if err != nil {
			return nil, err
		}
		includePrivate = admin
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID, includePrivate)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if uint(post.UserID) != in.UserID {
		admin, err := s.callerIsAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

func (s *PostService) SetPrivacy(ctx context.Context, in SetPrivacyInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if uint(post.UserID) != in.UserID {
		return nil, models.NewForbiddenError("You can only change privacy on your own posts")
	}

	if err := s.postRepo.SetPrivacy(ctx, in.PostID, in.IsPublic); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

// LikePost records a like. Liking an already-liked post is a no-op; the
// unique index keeps at most one row per pair either way.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (int64, error) {
	if _, err := s.GetPost(ctx, postID, userID); err != nil {
		return 0, err
	}
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return 0, err
	}
	return s.postRepo.LikeCount(ctx, postID)
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (int64, error) {
	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return 0, err
	}
	return s.postRepo.LikeCount(ctx, postID)
}

// Repost reshares another user's post. Resharing your own post is
// rejected.
func (s *PostService) Repost(ctx context.Context, userID, postID uint) (int64, error) {
	post, err := s.GetPost(ctx, postID, userID)
	if err != nil {
		return 0, err
	}
	if uint(post.UserID) == userID {
		return 0, models.NewValidationError("You cannot repost your own post")
	}
	if err := s.postRepo.Repost(ctx, userID, postID); err != nil {
		return 0, err
	}
	return s.postRepo.RepostCount(ctx, postID)
}

func (s *PostService) Unrepost(ctx context.Context, userID, postID uint) (int64, error) {
	if err := s.postRepo.Unrepost(ctx, userID, postID); err != nil {
		return 0, err
	}
	return s.postRepo.RepostCount(ctx, postID)
}

func (s *PostService) callerIsAdmin(ctx context.Context, userID uint) (bool, error) {
	if userID == 0 || s.isAdmin == nil {
		return false, nil
	}
	return s.isAdmin(ctx, userID)
}
