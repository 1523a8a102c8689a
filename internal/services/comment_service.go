package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"mini-instagram/dto"
	"mini-instagram/internal/models"
	"mini-instagram/internal/repository"
	"mini-instagram/internal/utils"
)

// CommentService keeps comments and the parent post's comment list in step.
// The two writes are not transactional.
type CommentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	present  presenter
}

func NewCommentService(posts repository.PostRepository, comments repository.CommentRepository, users repository.UserRepository) *CommentService {
	return &CommentService{
		posts:    posts,
		comments: comments,
		present:  presenter{users: users, comments: comments},
	}
}

// ListForPost returns comments newest-first. page.Limit 0 returns all of them.
func (s *CommentService) ListForPost(ctx context.Context, postID string, page dto.Page) ([]dto.CommentResp, *string, error) {
	oid, err := parseID(postID, ErrPostNotFound)
	if err != nil {
		return nil, nil, err
	}

	items, next, err := s.comments.ListByPostNewestFirst(ctx, oid, page.Cursor, page.Limit)
	if errors.Is(err, repository.ErrInvalidCursor) {
		return nil, nil, ErrInvalidCursor
	}
	if err != nil {
		return nil, nil, err
	}

	out, err := s.present.commentList(ctx, items)
	if err != nil {
		return nil, nil, err
	}
	return out, next, nil
}

func (s *CommentService) Create(ctx context.Context, authorID bson.ObjectID, postID, text string) (*dto.CommentResp, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.TrimSpace(postID) == "" {
		return nil, ErrCommentInputRequired
	}
	oid, err := parseID(postID, ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.FindByID(ctx, oid); err != nil {
		return nil, notFoundAs(err, ErrPostNotFound)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	c := models.Comment{
		ID:        bson.NewObjectID(),
		Post:      oid,
		User:      authorID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, &c); err != nil {
		return nil, err
	}
	if err := s.posts.PushComment(ctx, oid, c.ID); err != nil {
		utils.Logger.Warn("comment stored but post list not updated",
			zap.String("comment_id", c.ID.Hex()), zap.String("post_id", oid.Hex()), zap.Error(err))
		return nil, notFoundAs(err, ErrPostNotFound)
	}

	out, err := s.present.commentList(ctx, []models.Comment{c})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *CommentService) Update(ctx context.Context, requesterID bson.ObjectID, id, text string) (*dto.CommentResp, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentTextRequired
	}
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.User != requesterID {
		return nil, ErrCommentEditForbidden
	}

	c.Text = text
	c.UpdatedAt = time.Now().UTC()
	if err := s.comments.UpdateText(ctx, c.ID, c.Text, c.UpdatedAt); err != nil {
		return nil, notFoundAs(err, ErrCommentNotFound)
	}

	out, err := s.present.commentList(ctx, []models.Comment{*c})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *CommentService) Delete(ctx context.Context, requesterID bson.ObjectID, id string) error {
	c, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if c.User != requesterID {
		return ErrCommentDeleteForbidden
	}

	// the parent may already be gone; the comment is still removed
	if err := s.posts.PullComment(ctx, c.Post, c.ID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return notFoundAs(s.comments.Delete(ctx, c.ID), ErrCommentNotFound)
}

func (s *CommentService) find(ctx context.Context, id string) (*models.Comment, error) {
	oid, err := parseID(id, ErrCommentNotFound)
	if err != nil {
		return nil, err
	}
	c, err := s.comments.FindByID(ctx, oid)
	if err != nil {
		return nil, notFoundAs(err, ErrCommentNotFound)
	}
	return c, nil
}
