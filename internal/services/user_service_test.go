package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-instagram/internal/models"
	"mini-instagram/internal/repository/repotest"
)

func TestUserSearch(t *testing.T) {
	db := repotest.NewDB()
	svc := NewUserService(db.Users())
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		db.AddUser(models.User{Name: fmt.Sprintf("Sam %02d", i), Email: fmt.Sprintf("sam%02d@mini.com", i)})
	}
	db.AddUser(models.User{Name: "Robin", Email: "robin@photos.io"})

	got, err := svc.Search(ctx, "SAM")
	require.NoError(t, err)
	assert.Len(t, got, 10)

	got, err = svc.Search(ctx, "photos")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Robin", got[0].Name)

	got, err = svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserSearchNewestFirst(t *testing.T) {
	db := repotest.NewDB()
	svc := NewUserService(db.Users())
	now := time.Now()

	db.AddUser(models.User{Name: "Amy Sam", Email: "amy@mini.com", CreatedAt: now.Add(-time.Hour)})
	db.AddUser(models.User{Name: "Zed Sam", Email: "zed@mini.com", CreatedAt: now})
	db.AddUser(models.User{Name: "Bo Sam", Email: "bo@mini.com", CreatedAt: now.Add(-time.Minute)})

	got, err := svc.Search(context.Background(), "sam")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Zed Sam", "Bo Sam", "Amy Sam"}, []string{got[0].Name, got[1].Name, got[2].Name})
	require.NoError(t, err)
	assert.Empty(t, got)
}
