package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	localUserID     = "user_id"
	localTokenState = "token_state"
)

type tokenState int

const (
	tokenAbsent tokenState = iota
	tokenRejected
	tokenAccepted
)

type MyClaims struct {
	UID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// bearer returns the raw token from an "Authorization: Bearer x" header.
func bearer(c *fiber.Ctx) (string, bool) {
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(auth[7:])
	return tok, tok != ""
}

// subjectOf verifies an HS256 token and returns its uid (falling back to sub).
func subjectOf(tokenStr, secret string) (string, bool) {
	var claims MyClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", false
	}
	if claims.UID != "" {
		return claims.UID, true
	}
	return claims.Subject, claims.Subject != ""
}

// JWTUidOnly identifies the caller without enforcing anything: a valid token
// sets Locals("user_id"), a missing or rejected one only records its state.
// Protect turns that state into the 401 on routes that need a user.
func JWTUidOnly(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, ok := bearer(c)
		if !ok {
			c.Locals(localTokenState, tokenAbsent)
			return c.Next()
		}
		uid, ok := subjectOf(tok, secret)
		if !ok {
			c.Locals(localTokenState, tokenRejected)
			return c.Next()
		}
		c.Locals(localTokenState, tokenAccepted)
		c.Locals(localUserID, uid)
		return c.Next()
	}
}

func stateOf(c *fiber.Ctx) tokenState {
	s, _ := c.Locals(localTokenState).(tokenState)
	return s
}
