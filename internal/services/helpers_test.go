package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"mini-instagram/internal/models"
	"mini-instagram/internal/repository/repotest"
)

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) ResolveURL(ctx context.Context, id string) (string, bool) {
	args := m.Called(ctx, id)
	return args.String(0), args.Bool(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type fixture struct {
	db       *repotest.DB
	media    *MockMediaStore
	posts    *PostService
	comments *CommentService
	likes    *LikeService
	creator  models.User
	other    models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := repotest.NewDB()
	media := &MockMediaStore{}
	f := &fixture{
		db:       db,
		media:    media,
		posts:    NewPostService(db.Posts(), db.Comments(), db.Users(), media),
		comments: NewCommentService(db.Posts(), db.Comments(), db.Users()),
		likes:    NewLikeService(db.Posts(), db.Comments(), db.Users()),
		creator:  db.AddUser(models.User{Name: "Ansel Adams", Email: "ansel@mini.com", Role: models.RoleCreator}),
		other:    db.AddUser(models.User{Name: "Dora Maar", Email: "dora@mini.com", Role: models.RoleConsumer}),
	}
	t.Cleanup(func() { media.AssertExpectations(t) })
	return f
}

// seedPost stores a post directly, bypassing media resolution.
func (f *fixture) seedPost(t *testing.T, title string, at time.Time) models.Post {
	t.Helper()
	p := models.Post{
		ID:           bson.NewObjectID(),
		MediaID:      "media-" + title,
		MediaURL:     "/uploads/media-" + title + ".jpg",
		MediaType:    models.MediaImage,
		Title:        title,
		Creator:      f.creator.ID,
		TaggedPeople: []bson.ObjectID{},
		Likes:        []bson.ObjectID{},
		Comments:     []bson.ObjectID{},
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	require.NoError(t, f.db.Posts().Create(context.Background(), &p))
	return p
}
