package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"mini-instagram/config"
	"mini-instagram/internal/apperr"
	"mini-instagram/internal/models"
)

type ViewerLoader interface {
	Viewer(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

// Protect requires a valid token and loads its user into Locals("viewer").
func Protect(users ViewerLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if stateOf(c) == tokenAbsent {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, no token")
		}
		uid, err := UIDObjectID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, token failed")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), config.RequestTimeout)
		defer cancel()

		v, err := users.Viewer(ctx, uid)
		if err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, user not found")
			}
			return err
		}
		c.Locals("viewer", v)
		return c.Next()
	}
}

// RequireRole must run after Protect.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := Viewer(c)
		if v == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, no token")
		}
		if v.Role != role {
			return apperr.New(apperr.Forbidden, "User role "+v.Role+" is not authorized to access this route")
		}
		return c.Next()
	}
}

var errNoViewer = errors.New("no viewer on request")

// MustViewer is for handlers mounted behind Protect.
func MustViewer(c *fiber.Ctx) (*models.User, error) {
	v := Viewer(c)
	if v == nil {
		return nil, errNoViewer
	}
	return v, nil
}
