package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"mini-instagram/internal/apperr"
	"mini-instagram/internal/models"
)

const secret = "shh"

func sign(t *testing.T, claims jwt.Claims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func echoUIDApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTUidOnly(secret))
	app.Get("/", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		return c.SendString(uid)
	})
	return app
}

func get(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestJWTUidOnly(t *testing.T) {
	app := echoUIDApp()
	uid := bson.NewObjectID().Hex()
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	code, body := get(t, app, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body)

	code, body = get(t, app, sign(t, MyClaims{UID: uid, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}, secret))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, uid, body)

	code, body = get(t, app, sign(t, jwt.RegisteredClaims{Subject: uid, ExpiresAt: exp}, secret))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, uid, body)

	// rejected tokens pass through anonymously; Protect decides on the 401
	rejected := map[string]string{
		"wrong key": sign(t, MyClaims{UID: uid, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}, "other"),
		"expired":   sign(t, MyClaims{UID: uid, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}}, secret),
		"no exp":    sign(t, MyClaims{UID: uid}, secret),
		"no uid":    sign(t, jwt.RegisteredClaims{ExpiresAt: exp}, secret),
		"garbage":   "not.a.valid-token",
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, MyClaims{UID: uid, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	rejected["alg none"] = none

	for name, tok := range rejected {
		code, body = get(t, app, tok)
		assert.Equal(t, http.StatusOK, code, name)
		assert.Empty(t, body, name)
	}
}

type stubViewers map[bson.ObjectID]*models.User

func (s stubViewers) Viewer(_ context.Context, id bson.ObjectID) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, apperr.New(apperr.NotFound, "User not found")
}

func TestProtectAndRequireRole(t *testing.T) {
	creator := &models.User{ID: bson.NewObjectID(), Role: models.RoleCreator}
	consumer := &models.User{ID: bson.NewObjectID(), Role: models.RoleConsumer}
	viewers := stubViewers{creator.ID: creator, consumer.ID: consumer}

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		} else if apperr.KindOf(err) != apperr.Internal {
			code = apperr.Status(apperr.KindOf(err))
		}
		msg := err.Error()
		return c.Status(code).SendString(msg)
	}})
	app.Use(JWTUidOnly(secret))
	app.Get("/", Protect(viewers), RequireRole(models.RoleCreator), func(c *fiber.Ctx) error {
		return c.SendString(Viewer(c).ID.Hex())
	})

	tokenFor := func(id bson.ObjectID) string {
		return sign(t, MyClaims{UID: id.Hex(), RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}, secret)
	}

	code, body := get(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized, no token", body)

	code, body = get(t, app, "not.a.valid-token")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized, token failed", body)

	code, body = get(t, app, sign(t, MyClaims{UID: "not-hex", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}, secret))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized, token failed", body)

	code, body = get(t, app, tokenFor(bson.NewObjectID()))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized, user not found", body)

	code, _ = get(t, app, tokenFor(consumer.ID))
	assert.Equal(t, http.StatusForbidden, code)

	code, body = get(t, app, tokenFor(creator.ID))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, creator.ID.Hex(), body)
}
