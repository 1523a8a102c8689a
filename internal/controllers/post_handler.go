package controllers

import (
	"github.com/gofiber/fiber/v2"

	"mini-instagram/dto"
	"mini-instagram/internal/middleware"
	"mini-instagram/internal/services"
)

type PostHandler struct {
	Posts *services.PostService
}

// @Summary      List posts
// @Description  All posts newest-first with creator, tagged users and comments. Optional case-insensitive search over title, caption, location and creator name.
// @Tags         posts
// @Produce      json
// @Param        search  query    string  false  "Substring filter"
// @Success      200     {object} dto.Response{data=[]dto.PostResp}
// @Failure      500     {object} dto.ErrorResponse
// @Router       /api/posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	posts, err := h.Posts.List(ctx, c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OKList(posts))
}

// @Summary      Search post titles
// @Description  Typeahead over title, caption and location (max 10)
// @Tags         posts
// @Produce      json
// @Param        q   query    string  false  "Query"
// @Success      200 {object} dto.Response{data=[]dto.PostSearchResult}
// @Router       /api/posts/search [get]
func (h *PostHandler) Search(c *fiber.Ctx) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	hits, err := h.Posts.SearchTitles(ctx, c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OKList(hits))
}

// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path     string  true  "Post ID (hex ObjectID)"
// @Success      200  {object} dto.Response{data=dto.PostResp}
// @Failure      404  {object} dto.ErrorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	post, err := h.Posts.Get(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(post))
}

// @Summary      Create a post
// @Description  Creators only. imageUuid comes from POST /api/upload.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body     dto.CreatePostRequest  true  "Post payload"
// @Success      201   {object} dto.Response{data=dto.PostResp}
// @Failure      400   {object} dto.ErrorResponse
// @Failure      401   {object} dto.ErrorResponse
// @Failure      403   {object} dto.ErrorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	viewer, err := middleware.MustViewer(c)
	if err != nil {
		return err
	}

	var body dto.CreatePostRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody()
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	post, err := h.Posts.Create(ctx, viewer.ID, body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(post))
}

// @Summary      Update a post
// @Description  Owner only. Absent fields are left untouched; empty strings clear.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path     string                 true  "Post ID (hex ObjectID)"
// @Param        body  body     dto.UpdatePostRequest  true  "Partial update"
// @Success      200   {object} dto.Response{data=dto.PostResp}
// @Failure      400   {object} dto.ErrorResponse
// @Failure      403   {object} dto.ErrorResponse
// @Failure      404   {object} dto.ErrorResponse
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	viewer, err := middleware.MustViewer(c)
	if err != nil {
		return err
	}

	var body dto.UpdatePostRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody()
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	post, err := h.Posts.Update(ctx, viewer.ID, c.Params("id"), body)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(post))
}

// @Summary      Delete a post
// @Description  Owner only. Removes the post, its comments and its media.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Post ID (hex ObjectID)"
// @Success      200  {object} dto.Response
// @Failure      403  {object} dto.ErrorResponse
// @Failure      404  {object} dto.ErrorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	viewer, err := middleware.MustViewer(c)
	if err != nil {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Posts.Delete(ctx, viewer.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("Post deleted successfully"))
}
