package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-instagram/dto"
	"mini-instagram/internal/apperr"
	"mini-instagram/internal/models"
	"mini-instagram/internal/repository/repotest"
)

const testSecret = "test-secret"

func newAuth() (*AuthService, *repotest.DB) {
	db := repotest.NewDB()
	return NewAuthService(db.Users(), testSecret, time.Hour), db
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	reg, err := auth.Register(ctx, dto.RegisterRequest{Name: " Vivian ", Email: "Vivian@Mini.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Vivian", reg.User.Name)
	assert.Equal(t, "vivian@mini.com", reg.User.Email)
	assert.Equal(t, models.RoleConsumer, reg.User.Role)
	assert.NotEmpty(t, reg.Token)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(reg.Token, claims, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID.Hex(), claims["uid"])
	assert.Equal(t, reg.User.ID.Hex(), claims["sub"])

	login, err := auth.Login(ctx, dto.LoginRequest{Email: "VIVIAN@mini.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "vivian@mini.com", Password: "wrong!!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "nobody@mini.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "vivian@mini.com"})
	assert.ErrorIs(t, err, ErrLoginFieldsMissing)
}

func TestRegisterRejects(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	_, err := auth.Register(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAuthFieldsRequired)

	_, err = auth.Register(ctx, dto.RegisterRequest{Name: "A", Email: "not-an-email", Password: "secret1"})
	assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))

	_, err = auth.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@b.co", Password: "123"})
	assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))

	_, err = auth.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)
	_, err = auth.Register(ctx, dto.RegisterRequest{Name: "B", Email: "A@B.CO", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSeedCreatorIsIdempotent(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	u, created, err := auth.SeedCreator(ctx, "Creator", "creator@mini.com", "creator123")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleCreator, u.Role)

	again, created, err := auth.SeedCreator(ctx, "Creator", "creator@mini.com", "creator123")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "creator@mini.com", Password: "creator123"})
	assert.NoError(t, err)
}

func TestMe(t *testing.T) {
	auth, db := newAuth()
	u := db.AddUser(models.User{Name: "Lee", Email: "lee@mini.com", Role: models.RoleCreator})

	me, err := auth.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "creator", me.Role)
}
