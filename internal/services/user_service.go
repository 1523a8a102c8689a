package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"mini-instagram/config"
	"mini-instagram/dto"
	"mini-instagram/internal/models"
	"mini-instagram/internal/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Search matches name or email, capped at config.TypeaheadLimit. Blank yields nothing.
func (s *UserService) Search(ctx context.Context, q string) ([]dto.UserRef, error) {
	out := []dto.UserRef{}
	if strings.TrimSpace(q) == "" {
		return out, nil
	}
	users, err := s.users.Search(ctx, q, config.TypeaheadLimit)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out = append(out, dto.NewUserRef(u))
	}
	return out, nil
}

// Viewer loads the authenticated user behind a token.
func (s *UserService) Viewer(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return u, nil
}
