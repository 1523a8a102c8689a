package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"mini-instagram/bootstrap"
	"mini-instagram/database"
	"mini-instagram/internal/models"
)

// testDB returns a throwaway database on MONGO_URI, dropped after the test.
func testDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, uri)
	require.NoError(t, err)

	db := client.Database("mini_instagram_test_" + bson.NewObjectID().Hex())
	require.NoError(t, bootstrap.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func msNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func newPost(creator bson.ObjectID, title string, at time.Time) *models.Post {
	return &models.Post{
		MediaID:   bson.NewObjectID().Hex(),
		MediaURL:  "/uploads/x.jpg",
		MediaType: models.MediaImage,
		Title:     title,
		Creator:   creator,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestMongoToggleLikeTwiceRestoresPost(t *testing.T) {
	db := testDB(t)
	posts := NewMongoPostRepo(db)
	ctx := context.Background()

	p := newPost(bson.NewObjectID(), "sunset", msNow())
	require.NoError(t, posts.Create(ctx, p))
	fan, other := bson.NewObjectID(), bson.NewObjectID()

	liked, got, err := posts.ToggleLike(ctx, p.ID, other)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []bson.ObjectID{other}, got.Likes)

	liked, got, err = posts.ToggleLike(ctx, p.ID, fan)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.ElementsMatch(t, []bson.ObjectID{other, fan}, got.Likes)

	liked, got, err = posts.ToggleLike(ctx, p.ID, fan)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, []bson.ObjectID{other}, got.Likes)

	stored, err := posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{other}, stored.Likes)

	_, _, err = posts.ToggleLike(ctx, bson.NewObjectID(), fan)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestMongoSaveKeepsCreator(t *testing.T) {
	db := testDB(t)
	posts := NewMongoPostRepo(db)
	ctx := context.Background()

	owner := bson.NewObjectID()
	p := newPost(owner, "before", msNow())
	p.Caption = "old caption"
	require.NoError(t, posts.Create(ctx, p))

	edit := *p
	edit.Creator = bson.NewObjectID()
	edit.Title = "after"
	edit.Caption = ""
	edit.MediaType = models.MediaVideo
	edit.TaggedPeople = nil
	require.NoError(t, posts.Save(ctx, &edit))

	stored, err := posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, stored.Creator)
	assert.Equal(t, "after", stored.Title)
	assert.Empty(t, stored.Caption)
	assert.Equal(t, models.MediaVideo, stored.MediaType)
	assert.Empty(t, stored.TaggedPeople)

	missing := newPost(owner, "ghost", msNow())
	missing.ID = bson.NewObjectID()
	assert.ErrorIs(t, posts.Save(ctx, missing), mongo.ErrNoDocuments)
}

func TestMongoCommentIDsFollowPushAndPull(t *testing.T) {
	db := testDB(t)
	posts := NewMongoPostRepo(db)
	ctx := context.Background()

	p := newPost(bson.NewObjectID(), "t", msNow())
	require.NoError(t, posts.Create(ctx, p))
	c1, c2 := bson.NewObjectID(), bson.NewObjectID()

	require.NoError(t, posts.PushComment(ctx, p.ID, c1))
	require.NoError(t, posts.PushComment(ctx, p.ID, c2))
	require.NoError(t, posts.PullComment(ctx, p.ID, c1))

	stored, err := posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{c2}, stored.Comments)

	assert.ErrorIs(t, posts.PushComment(ctx, bson.NewObjectID(), c1), mongo.ErrNoDocuments)
}

func TestMongoSearchTitlesJoinsCreatorName(t *testing.T) {
	db := testDB(t)
	posts := NewMongoPostRepo(db)
	users := NewMongoUserRepo(db)
	ctx := context.Background()

	cleo := &models.User{Name: "Cleo", Email: "cleo@mini.com", Role: models.RoleCreator, CreatedAt: msNow()}
	require.NoError(t, users.Create(ctx, cleo))

	base := msNow()
	older := newPost(cleo.ID, "Beach day", base.Add(-time.Minute))
	newer := newPost(bson.NewObjectID(), "", base)
	newer.Caption = "beach again"
	unrelated := newPost(cleo.ID, "a.b", base)
	for _, p := range []*models.Post{older, newer, unrelated} {
		require.NoError(t, posts.Create(ctx, p))
	}

	hits, err := posts.SearchTitles(ctx, "BEACH", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, newer.ID, hits[0].ID)
	assert.Empty(t, hits[0].Title)
	assert.Equal(t, "beach again", hits[0].Caption)
	assert.Empty(t, hits[0].CreatorName)

	assert.Equal(t, older.ID, hits[1].ID)
	assert.Equal(t, "Cleo", hits[1].CreatorName)

	hits, err = posts.SearchTitles(ctx, "beach", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	// regex metacharacters are matched literally
	hits, err = posts.SearchTitles(ctx, "a.", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, unrelated.ID, hits[0].ID)

	hits, err = posts.SearchTitles(ctx, "  ", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMongoCommentPagingAcrossEqualTimestamps(t *testing.T) {
	db := testDB(t)
	comments := NewMongoCommentRepo(db)
	ctx := context.Background()

	postID, author := bson.NewObjectID(), bson.NewObjectID()
	at := msNow()

	var want []bson.ObjectID
	for i := 0; i < 5; i++ {
		c := &models.Comment{Post: postID, User: author, Text: "same instant", CreatedAt: at, UpdatedAt: at}
		require.NoError(t, comments.Create(ctx, c))
		want = append([]bson.ObjectID{c.ID}, want...)
	}
	earlier := &models.Comment{Post: postID, User: author, Text: "first", CreatedAt: at.Add(-time.Second)}
	require.NoError(t, comments.Create(ctx, earlier))
	want = append(want, earlier.ID)
	require.NoError(t, comments.Create(ctx, &models.Comment{Post: bson.NewObjectID(), User: author, Text: "elsewhere", CreatedAt: at}))

	var got []bson.ObjectID
	cur := ""
	pages := 0
	for {
		items, next, err := comments.ListByPostNewestFirst(ctx, postID, cur, 2)
		require.NoError(t, err)
		pages++
		for _, c := range items {
			got = append(got, c.ID)
		}
		if next == nil {
			break
		}
		cur = *next
		require.Less(t, pages, 10)
	}
	assert.Equal(t, 3, pages)
	assert.Equal(t, want, got)

	all, next, err := comments.ListByPostNewestFirst(ctx, postID, "", 0)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Len(t, all, 6)

	_, _, err = comments.ListByPostNewestFirst(ctx, postID, "%%%", 2)
	assert.True(t, errors.Is(err, ErrInvalidCursor))

	n, err := comments.DeleteByPost(ctx, postID)
	require.NoError(t, err)
	assert.EqualValues(t, 6, n)
}

func TestMongoUserSearchNewestFirst(t *testing.T) {
	db := testDB(t)
	users := NewMongoUserRepo(db)
	ctx := context.Background()

	base := msNow()
	for i, name := range []string{"Amy Sam", "Zed Sam", "Bo Sam"} {
		u := &models.User{Name: name, Email: name[:2] + "@mini.com", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, users.Create(ctx, u))
	}
	require.NoError(t, users.Create(ctx, &models.User{Name: "Robin", Email: "robin@photos.io", CreatedAt: base}))

	got, err := users.Search(ctx, "SAM", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Bo Sam", "Zed Sam", "Amy Sam"}, []string{got[0].Name, got[1].Name, got[2].Name})

	got, err = users.Search(ctx, "sam", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = users.Search(ctx, "photos.io", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Robin", got[0].Name)

	err = users.Create(ctx, &models.User{Name: "Dup", Email: "robin@photos.io"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}
