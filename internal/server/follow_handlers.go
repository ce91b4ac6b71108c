package server

import (
	"pulse/internal/idtoken"
	"pulse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// followRequest is the body form of POST /api/follow.
type followRequest struct {
	UserID string `json:"userId"`
}

// followTargetID resolves the user being followed from either the :id
// route parameter or a {"userId": "..."} request body.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) followTargetID(c *fiber.Ctx) (uint, error) {
	if c.Params("id") != "" {
		return s.parseID(c, "id")
	}

	var req followRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing user ID"))
		return 0, errResponseWritten
	}
	id, err := idtoken.DecodeUint(req.UserID)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
		return 0, errResponseWritten
	}
	return id, nil
}

// FollowUser handles POST /api/follow and POST /api/follow/:id
// @Summary Follow a user
// @Tags social
// @Accept json
// @Produce json
// @Success 200 {object} object{followers_count=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /follow [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.followTargetID(c)
	if err != nil {
		return nil
	}

	count, err := s.socialService.Follow(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"followers_count": count})
}

// UnfollowUser handles DELETE /api/follow/:id
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.socialService.Unfollow(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"followers_count": count})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	users, err := s.socialService.ListFollowers(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(users)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	users, err := s.socialService.ListFollowing(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(users)
}
