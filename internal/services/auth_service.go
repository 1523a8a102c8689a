package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mini-instagram/dto"
	"mini-instagram/internal/apperr"
	"mini-instagram/internal/models"
	"mini-instagram/internal/repository"
	"mini-instagram/internal/utils"
)

type AuthService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl}
}

// IssueToken signs an HS256 token carrying the user id as uid and sub.
func (s *AuthService) IssueToken(userID bson.ObjectID) (string, error) {
	claims := jwt.MapClaims{
		"uid": userID.Hex(),
		"sub": userID.Hex(),
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Register creates a consumer account and logs it in.
func (s *AuthService) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, ErrAuthFieldsRequired
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, apperr.Wrap(apperr.BadRequest, err.Error(), err)
	}

	u, err := s.createUser(ctx, in.Name, in.Email, in.Password, models.RoleConsumer)
	if err != nil {
		return nil, err
	}
	return s.authResponse(u)
}

func (s *AuthService) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, ErrLoginFieldsMissing
	}

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.authResponse(u)
}

func (s *AuthService) Me(ctx context.Context, id bson.ObjectID) (*dto.UserPublic, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	pub := dto.NewUserPublic(*u)
	return &pub, nil
}

// SeedCreator makes sure a creator account exists for email. created is false
// when the account was already there.
func (s *AuthService) SeedCreator(ctx context.Context, name, email, password string) (u *models.User, created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	u, err = s.createUser(ctx, name, email, password, models.RoleCreator)
	if err != nil {
		return nil, false, err
	}
	utils.Logger.Info("creator seeded", zap.String("email", email))
	return u, true, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password, role string) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           bson.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) authResponse(u *models.User) (*dto.AuthResponse, error) {
	token, err := s.IssueToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.NewUserPublic(*u), Token: token}, nil
}
