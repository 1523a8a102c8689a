package controllers

import (
	"github.com/gofiber/fiber/v2"

	"mini-instagram/config"
	"mini-instagram/dto"
	"mini-instagram/internal/middleware"
	"mini-instagram/internal/services"
)

type CommentHandler struct {
	Comments *services.CommentService
}

// GET /api/comments/post/:postId?limit=20&cursor=...

// @Summary      List comments of a post
// @Description  Newest first. Without limit every comment is returned; with limit a nextCursor is provided.
// @Tags         comments
// @Produce      json
// @Param        postId  path   string  true   "Post ID (hex ObjectID)"
// @Param        limit   query  int     false  "Max items per page" minimum(1) maximum(100)
// @Param        cursor  query  string  false  "Opaque next-page cursor"
// @Success      200     {object} dto.ListCommentsResp
// @Failure      400     {object} dto.ErrorResponse
// @Router       /api/comments/post/{postId} [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	page := dto.Page{Cursor: c.Query("cursor")}
	if raw := c.Query("limit"); raw != "" || page.Cursor != "" {
		limit := int64(c.QueryInt("limit", config.DefaultLimitComments))
		if limit <= 0 {
			limit = config.DefaultLimitComments
		}
		if limit > config.MaxLimitComments {
			limit = config.MaxLimitComments
		}
		page.Limit = limit
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, next, err := h.Comments.ListForPost(ctx, c.Params("postId"), page)
	if err != nil {
		return err
	}
	return c.JSON(dto.ListCommentsResp{
		Success:    true,
		Count:      len(items),
		Data:       items,
		NextCursor: next,
		HasMore:    next != nil,
	})
}

// @Summary      Create a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body     dto.CreateCommentReq  true  "Comment payload"
// @Success      201   {object} dto.Response{data=dto.CommentResp}
// @Failure      400   {object} dto.ErrorResponse
// @Failure      404   {object} dto.ErrorResponse
// @Router       /api/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	viewer, err := middleware.MustViewer(c)
	if err != nil {
		return err
	}

	var body dto.CreateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return badBody()
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	com, err := h.Comments.Create(ctx, viewer.ID, body.PostID, body.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(com))
}

// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path     string                true  "Comment ID (hex ObjectID)"
// @Param        body  body     dto.UpdateCommentReq  true  "New text"
// @Success      200   {object} dto.Response{data=dto.CommentResp}
// @Failure      400   {object} dto.ErrorResponse
// @Failure      403   {object} dto.ErrorResponse
// @Failure      404   {object} dto.ErrorResponse
// @Router       /api/comments/{id} [put]
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	viewer, err := middleware.MustViewer(c)
	if err != nil {
		return err
	}

	var body dto.UpdateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return badBody()
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	com, err := h.Comments.Update(ctx, viewer.ID, c.Params("id"), body.Text)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(com))
}

// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Comment ID (hex ObjectID)"
// @Success      200  {object} dto.Response
// @Failure      403  {object} dto.ErrorResponse
// @Failure      404  {object} dto.ErrorResponse
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	viewer, err := middleware.MustViewer(c)
	if err != nil {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Comments.Delete(ctx, viewer.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("Comment deleted successfully"))
}
