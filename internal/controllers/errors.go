package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"mini-instagram/config"
	"mini-instagram/dto"
	"mini-instagram/internal/apperr"
	"mini-instagram/internal/utils"
)

// ErrorHandler renders every error as the failure envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := err.Error()

	var ae *apperr.Error
	var fe *fiber.Error
	switch {
	case errors.As(err, &ae):
		status = apperr.Status(ae.Kind)
		msg = ae.Message
	case errors.As(err, &fe):
		status = fe.Code
		msg = fe.Message
	}

	if status >= fiber.StatusInternalServerError {
		utils.Logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		if msg == "" {
			msg = "Server error"
		}
	}
	return c.Status(status).JSON(dto.Fail(msg))
}

// NotFound is the catch-all for unknown routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Route not found"))
}

func reqCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), config.RequestTimeout)
}

func badBody() error {
	return apperr.New(apperr.BadRequest, "invalid body")
}
