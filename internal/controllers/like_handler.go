package controllers

import (
	"github.com/gofiber/fiber/v2"

	"mini-instagram/dto"
	"mini-instagram/internal/middleware"
	"mini-instagram/internal/services"
)

type LikeHandler struct {
	Likes *services.LikeService
}

// @Summary      Like or unlike a post
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path     string  true  "Post ID (hex ObjectID)"
// @Success      200     {object} dto.Response{data=dto.LikeResult}
// @Failure      404     {object} dto.ErrorResponse
// @Router       /api/likes/{postId} [post]
func (h *LikeHandler) Toggle(c *fiber.Ctx) error {
	viewer, err := middleware.MustViewer(c)
	if err != nil {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Likes.Toggle(ctx, viewer.ID, c.Params("postId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(res))
}

// @Summary      Who liked a post
// @Tags         likes
// @Produce      json
// @Param        postId  path     string  true  "Post ID (hex ObjectID)"
// @Success      200     {object} dto.Response{data=[]dto.UserRef}
// @Failure      404     {object} dto.ErrorResponse
// @Router       /api/likes/{postId} [get]
func (h *LikeHandler) List(c *fiber.Ctx) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Likes.List(ctx, c.Params("postId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OKList(users))
}
