package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"mini-instagram/dto"
	"mini-instagram/internal/apperr"
)

func TestCreateComment_AppendsToPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPost(t, "p", time.Now())

	c, err := f.comments.Create(ctx, f.other.ID, p.ID.Hex(), "  nice shot  ")
	require.NoError(t, err)
	assert.Equal(t, "nice shot", c.Text)
	assert.Equal(t, "Dora Maar", c.User.Name)
	assert.Equal(t, p.ID, c.Post)

	stored, _ := f.db.Post(p.ID)
	assert.Equal(t, []bson.ObjectID{c.ID}, stored.Comments)
}

func TestCreateComment_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPost(t, "p", time.Now())

	_, err := f.comments.Create(ctx, f.other.ID, p.ID.Hex(), "   ")
	assert.ErrorIs(t, err, ErrCommentInputRequired)

	_, err = f.comments.Create(ctx, f.other.ID, "", "hello")
	assert.ErrorIs(t, err, ErrCommentInputRequired)

	_, err = f.comments.Create(ctx, f.other.ID, bson.NewObjectID().Hex(), "hello")
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, 0, f.db.CommentCount())
}

func TestUpdateComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPost(t, "p", time.Now())
	c, err := f.comments.Create(ctx, f.other.ID, p.ID.Hex(), "draft")
	require.NoError(t, err)

	_, err = f.comments.Update(ctx, f.creator.ID, c.ID.Hex(), "hijack")
	assert.ErrorIs(t, err, ErrCommentEditForbidden)

	_, err = f.comments.Update(ctx, f.other.ID, c.ID.Hex(), "  ")
	assert.ErrorIs(t, err, ErrCommentTextRequired)

	_, err = f.comments.Update(ctx, f.other.ID, bson.NewObjectID().Hex(), "x")
	assert.ErrorIs(t, err, ErrCommentNotFound)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	got, err := f.comments.Update(ctx, f.other.ID, c.ID.Hex(), " final ")
	require.NoError(t, err)
	assert.Equal(t, "final", got.Text)

	stored, _ := f.db.Comment(c.ID)
	assert.Equal(t, "final", stored.Text)
}

func TestDeleteComment_PullsFromPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPost(t, "p", time.Now())
	a, err := f.comments.Create(ctx, f.other.ID, p.ID.Hex(), "a")
	require.NoError(t, err)
	b, err := f.comments.Create(ctx, f.creator.ID, p.ID.Hex(), "b")
	require.NoError(t, err)

	assert.ErrorIs(t, f.comments.Delete(ctx, f.creator.ID, a.ID.Hex()), ErrCommentDeleteForbidden)

	require.NoError(t, f.comments.Delete(ctx, f.other.ID, a.ID.Hex()))
	stored, _ := f.db.Post(p.ID)
	assert.Equal(t, []bson.ObjectID{b.ID}, stored.Comments)
	_, ok := f.db.Comment(a.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, f.comments.Delete(ctx, f.other.ID, a.ID.Hex()), ErrCommentNotFound)
}

func TestListComments_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedPost(t, "p", time.Now())

	var ids []bson.ObjectID
	for _, txt := range []string{"1", "2", "3", "4", "5"} {
		c, err := f.comments.Create(ctx, f.other.ID, p.ID.Hex(), txt)
		require.NoError(t, err)
		ids = append(ids, c.ID)
		time.Sleep(2 * time.Millisecond)
	}

	all, next, err := f.comments.ListForPost(ctx, p.ID.Hex(), dto.Page{})
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, all, 5)
	assert.Equal(t, "5", all[0].Text)

	page1, next, err := f.comments.ListForPost(ctx, p.ID.Hex(), dto.Page{Limit: 2})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"5", "4"}, texts(page1))

	page2, next, err := f.comments.ListForPost(ctx, p.ID.Hex(), dto.Page{Limit: 2, Cursor: *next})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"3", "2"}, texts(page2))

	page3, next, err := f.comments.ListForPost(ctx, p.ID.Hex(), dto.Page{Limit: 2, Cursor: *next})
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, []string{"1"}, texts(page3))

	_, _, err = f.comments.ListForPost(ctx, p.ID.Hex(), dto.Page{Limit: 2, Cursor: "garbage!"})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func texts(cs []dto.CommentResp) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Text)
	}
	return out
}
