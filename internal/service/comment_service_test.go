package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int, uint) ([]*models.Comment, error)
	listByUserFn func(context.Context, uint, int, int, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
	isLikedFn    func(context.Context, uint, uint) (bool, error)
	likeFn       func(context.Context, uint, uint) error
	unlikeFn     func(context.Context, uint, uint) error
	likeCountFn  func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset, currentUserID)
}
func (s *commentRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.listByUserFn(ctx, userID, limit, offset, currentUserID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, commentID)
}
func (s *commentRepoStub) Like(ctx context.Context, userID, commentID uint) error {
	return s.likeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) Unlike(ctx context.Context, userID, commentID uint) error {
	return s.unlikeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) LikeCount(ctx context.Context, commentID uint) (int64, error) {
	return s.likeCountFn(ctx, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, _, _ uint) (*models.Comment, error) {
			return &models.Comment{}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Comment, error) {
			return nil, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Comment, error) {
			return nil, nil
		},
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
		isLikedFn:   func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:      func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:    func(_ context.Context, _, _ uint) error { return nil },
		likeCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateCommentInput
	}{
		{name: "empty content", input: CreateCommentInput{UserID: 1, PostID: 1}},
		{name: "whitespace only", input: CreateCommentInput{UserID: 1, PostID: 1, Content: "  "}},
		{name: "content too long", input: CreateCommentInput{UserID: 1, PostID: 1, Content: strings.Repeat("x", 2001)}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateComment(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestCommentService_CreateComment_PostMustExist(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post")
	}
	svc := NewCommentService(noopCommentRepo(), postRepo, nil)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 99, Content: "hello",
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCommentService_CreateComment_Success(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	var created *models.Comment
	repo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 5
		created = c
		return nil
	}
	svc := NewCommentService(repo, noopPostRepo(), nil)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 2, Content: "  trimmed  ",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "trimmed", created.Content)
	assert.Equal(t, models.PublicID(2), created.PostID)
}

func TestCommentService_DeleteComment_Authorization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		callerID  uint
		isAdmin   bool
		wantError bool
	}{
		{name: "owner can delete", callerID: 10},
		{name: "admin can delete", callerID: 2, isAdmin: true},
		{name: "stranger cannot delete", callerID: 3, wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := noopCommentRepo()
			repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Comment, error) {
				return &models.Comment{ID: 1, UserID: 10}, nil
			}
			deleted := false
			repo.deleteFn = func(_ context.Context, _ uint) error {
				deleted = true
				return nil
			}
			svc := NewCommentService(repo, noopPostRepo(), func(_ context.Context, _ uint) (bool, error) {
				return tc.isAdmin, nil
			})

			err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: tc.callerID, CommentID: 1})
			if tc.wantError {
				require.Error(t, err)
				assert.False(t, deleted)
			} else {
				require.NoError(t, err)
				assert.True(t, deleted)
			}
		})
	}
}

func TestCommentService_LikeComment_ReturnsCount(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.likeCountFn = func(_ context.Context, _ uint) (int64, error) { return 2, nil }
	svc := NewCommentService(repo, noopPostRepo(), nil)

	count, err := svc.LikeComment(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
