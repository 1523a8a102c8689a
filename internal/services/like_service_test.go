package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestToggleLike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPost(t, "p", time.Now())

	res, err := f.likes.Toggle(ctx, f.other.ID, p.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.LikeCount)
	assert.Equal(t, "Ansel Adams", res.Post.Creator.Name)

	res, err = f.likes.Toggle(ctx, f.creator.ID, p.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 2, res.LikeCount)

	res, err = f.likes.Toggle(ctx, f.other.ID, p.ID.Hex())
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 1, res.LikeCount)

	stored, _ := f.db.Post(p.ID)
	assert.Equal(t, []bson.ObjectID{f.creator.ID}, stored.Likes)
}

func TestToggleLike_MissingPost(t *testing.T) {
	f := newFixture(t)

	_, err := f.likes.Toggle(context.Background(), f.other.ID, bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.likes.Toggle(context.Background(), f.other.ID, "zzz")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestToggleLike_ConcurrentEvenTogglesCancelOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPost(t, "p", time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.likes.Toggle(ctx, f.other.ID, p.ID.Hex())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, _ := f.db.Post(p.ID)
	assert.Empty(t, stored.Likes)
}

func TestListLikes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPost(t, "p", time.Now())

	_, err := f.likes.Toggle(ctx, f.other.ID, p.ID.Hex())
	require.NoError(t, err)
	_, err = f.likes.Toggle(ctx, f.creator.ID, p.ID.Hex())
	require.NoError(t, err)

	users, err := f.likes.List(ctx, p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Dora Maar", users[0].Name)
	assert.Equal(t, "dora@mini.com", users[0].Email)
	assert.Equal(t, "Ansel Adams", users[1].Name)

	_, err = f.likes.List(ctx, bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrPostNotFound)
}
