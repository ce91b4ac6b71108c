package server

import (
	"pulse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Search handles GET /api/search?q=
// @Summary Search users and posts
// @Description Substring match over usernames and public post content.
// Queries under two characters return empty result sets.
// @Tags search
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} service.SearchResults
// @Router /search [get]
func (s *Server) Search(c *fiber.Ctx) error {
	userID, _ := s.optionalUserID(c)

	results, err := s.searchService.Search(c.Context(), c.Query("q"), userID)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(results)
}
