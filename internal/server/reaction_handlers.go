// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	return s.toggleReaction(c, models.ReactionLike)
}

// DislikePost handles POST /api/posts/:id/dislike
func (s *Server) DislikePost(c *fiber.Ctx) error {
	return s.toggleReaction(c, models.ReactionDislike)
}

func (s *Server) toggleReaction(c *fiber.Ctx, kind models.ReactionKind) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.reactionSvc.Toggle(ctx, userID, postID, kind)
	if err != nil {
		status := fiber.StatusInternalServerError
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case models.CodeValidation:
				status = fiber.StatusBadRequest
			case models.CodeNotFound:
				status = fiber.StatusNotFound
			}
		}
		return models.RespondWithError(c, status, err)
	}

	return c.JSON(post)
}
