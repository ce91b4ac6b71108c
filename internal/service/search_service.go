package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"pulse/internal/models"
	"pulse/internal/repository"
)

const (
	minQueryLen   = 2
	userResultCap = 5
	postResultCap = 10
)

type SearchService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// SearchResults groups the per-category hits for one query.
type SearchResults struct {
	Users []models.User  `json:"users"`
	Posts []*models.Post `json:"posts"`
}

func NewSearchService(userRepo repository.UserRepository, postRepo repository.PostRepository) *SearchService {
	return &SearchService{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

// Search matches the query as a substring over usernames and public post
// content. Queries shorter than two characters return empty results
// rather than an error.
func (s *SearchService) Search(ctx context.Context, query string, currentUserID uint) (*SearchResults, error) {
	results := &SearchResults{
		Users: []models.User{},
		Posts: []*models.Post{},
	}

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLen {
		return results, nil
	}

	users, err := s.userRepo.Search(ctx, query, userResultCap)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.Search(ctx, query, postResultCap, currentUserID)
	if err != nil {
		return nil, err
	}

	results.Users = users
	results.Posts = posts
	return results, nil
}
