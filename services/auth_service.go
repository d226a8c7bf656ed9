package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Password string `json:"password"`
}

// AuthService checks the organizer password. Tokens are issued by the HTTP layer.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) error
}

type authService struct {
	passwordHash []byte
	logger       *slog.Logger
}

// NewAuthService takes the bcrypt hash of the organizer password. An empty hash disables login.
func NewAuthService(passwordHash string, logger *slog.Logger) AuthService {
	return &authService{
		passwordHash: []byte(passwordHash),
		logger:       logger,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) error {
	if len(s.passwordHash) == 0 || input.Password == "" {
		return ErrAuthenticationFailed
	}

	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.WarnContext(ctx, "organizer login rejected")
			return ErrAuthenticationFailed
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}
