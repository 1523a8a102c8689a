package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"mini-instagram/dto"
	"mini-instagram/internal/repository"
)

type LikeService struct {
	posts   repository.PostRepository
	present presenter
}

func NewLikeService(posts repository.PostRepository, comments repository.CommentRepository, users repository.UserRepository) *LikeService {
	return &LikeService{
		posts:   posts,
		present: presenter{users: users, comments: comments},
	}
}

// Toggle flips the requester's membership in the post's like set.
func (s *LikeService) Toggle(ctx context.Context, userID bson.ObjectID, postID string) (*dto.LikeResult, error) {
	oid, err := parseID(postID, ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	liked, p, err := s.posts.ToggleLike(ctx, oid, userID)
	if err != nil {
		return nil, notFoundAs(err, ErrPostNotFound)
	}

	post, err := s.present.post(ctx, *p)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResult{Post: post, Liked: liked, LikeCount: len(p.Likes)}, nil
}

// List returns the likers in like order.
func (s *LikeService) List(ctx context.Context, postID string) ([]dto.UserRef, error) {
	oid, err := parseID(postID, ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	p, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return nil, notFoundAs(err, ErrPostNotFound)
	}

	users, err := s.present.userMap(ctx, p.Likes)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserRef, 0, len(p.Likes))
	for _, id := range p.Likes {
		if u, ok := users[id]; ok {
			out = append(out, dto.NewUserRef(u))
		}
	}
	return out, nil
}
