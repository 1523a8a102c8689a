package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"mini-instagram/internal/models"
)

const (
	ColUsers    = "users"
	ColPosts    = "posts"
	ColComments = "comments"
)

var (
	ErrInvalidCursor  = errors.New("invalid cursor")
	ErrDuplicateEmail = errors.New("duplicate email")
)

// Lookups that miss return mongo.ErrNoDocuments.

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	ListNewestFirst(ctx context.Context) ([]models.Post, error)
	SearchTitles(ctx context.Context, q string, limit int64) ([]models.PostTitleHit, error)
	// Save writes every mutable field; creator is never touched.
	Save(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id bson.ObjectID) error
	PushComment(ctx context.Context, postID, commentID bson.ObjectID) error
	PullComment(ctx context.Context, postID, commentID bson.ObjectID) error
	// ToggleLike removes userID from likes if present, otherwise adds it.
	ToggleLike(ctx context.Context, postID, userID bson.ObjectID) (liked bool, p *models.Post, err error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error)
	// FindByIDs returns the matching comments newest-first.
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Comment, error)
	// ListByPostNewestFirst pages with a cursor when limit > 0, otherwise returns everything.
	ListByPostNewestFirst(ctx context.Context, postID bson.ObjectID, cursorStr string, limit int64) ([]models.Comment, *string, error)
	UpdateText(ctx context.Context, id bson.ObjectID, text string, at time.Time) error
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteByPost(ctx context.Context, postID bson.ObjectID) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error)
	Search(ctx context.Context, q string, limit int64) ([]models.User, error)
}

func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}

func orEmpty(ids []bson.ObjectID) []bson.ObjectID {
	if ids == nil {
		return []bson.ObjectID{}
	}
	return ids
}
