package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"mini-instagram/config"
	"mini-instagram/dto"
	"mini-instagram/internal/middleware"
	"mini-instagram/internal/services"
)

type AuthHandler struct {
	Auth  *services.AuthService
	Users *services.UserService
	Seed  config.Config
}

// @Summary      Register
// @Description  Creates a consumer account and returns a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body     dto.RegisterRequest  true  "Account"
// @Success      201   {object} dto.Response{data=dto.AuthResponse}
// @Failure      400   {object} dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody()
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Auth.Register(ctx, body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(res))
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body     dto.LoginRequest  true  "Credentials"
// @Success      200   {object} dto.Response{data=dto.AuthResponse}
// @Failure      400   {object} dto.ErrorResponse
// @Failure      401   {object} dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody()
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Auth.Login(ctx, body)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(res))
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.Response
// @Failure      401  {object} dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	viewer, err := middleware.MustViewer(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(fiber.Map{"user": dto.NewUserPublic(*viewer)}))
}

// @Summary      Search users
// @Description  Name or email substring, max 10, for tagging
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        q    query    string  false  "Query"
// @Success      200  {object} dto.Response{data=[]dto.UserRef}
// @Router       /api/auth/search [get]
func (h *AuthHandler) Search(c *fiber.Ctx) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.Search(ctx, c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OKList(users))
}

// @Summary      Seed the default creator
// @Tags         auth
// @Produce      json
// @Success      200  {object} dto.Response
// @Success      201  {object} dto.Response
// @Router       /api/auth/seed-creator [post]
func (h *AuthHandler) SeedCreator(c *fiber.Ctx) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, created, err := h.Auth.SeedCreator(ctx, h.Seed.SeedCreatorName, h.Seed.SeedCreatorEmail, h.Seed.SeedCreatorPassword)
	if err != nil {
		return err
	}

	status, msg := fiber.StatusOK, "Creator already exists"
	if created {
		status, msg = fiber.StatusCreated, "Creator seeded successfully"
	}
	return c.Status(status).JSON(dto.Response{
		Success: true,
		Message: msg,
		Data:    fiber.Map{"user": dto.NewUserPublic(*u)},
	})
}

// Health reports liveness for GET /api/health.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"message":   "Mini Instagram API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
