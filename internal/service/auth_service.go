package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"github.com/fakhrymubarak/city-dashboard/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	Users    repository.UserRepository
	Sessions repository.SessionRepository
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository) *AuthService {
	return &AuthService{Users: users, Sessions: sessions}
}

// Register stores a new user with a bcrypt hash of password.
// A taken username returns repository.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.Users.Create(ctx, &model.User{Username: username, PasswordHash: string(hash)})
}

// Login checks the password and opens a session, returning its ID.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.Sessions.Create(ctx, user.ID)
}

// Logout ends a session. Unknown sessions are ignored.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, sessionID)
}

// ResolveSession returns the user ID owning sessionID.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (string, error) {
	return s.Sessions.Get(ctx, sessionID)
}
