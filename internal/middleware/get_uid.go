package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"mini-instagram/internal/models"
)

// UIDObjectID reads the user id set by JWTUidOnly.
func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	uid, ok := c.Locals(localUserID).(string)
	if !ok || uid == "" {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}

	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}
	return oid, nil
}

// Viewer returns the user loaded by Protect, or nil.
func Viewer(c *fiber.Ctx) *models.User {
	v, _ := c.Locals("viewer").(*models.User)
	return v
}
