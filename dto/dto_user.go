package dto

import (
	"mini-instagram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserRef is the denormalized identity embedded in posts, comments and like lists.
type UserRef struct {
	ID    bson.ObjectID `json:"_id"`
	Name  string        `json:"name"`
	Email string        `json:"email,omitempty"`
}

type UserPublic struct {
	ID    bson.ObjectID `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  string        `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  UserPublic `json:"user"`
	Token string     `json:"token"`
}

func NewUserRef(u models.User) UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

func NewUserPublic(u models.User) UserPublic {
	return UserPublic{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
