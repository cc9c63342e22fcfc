package services

import (
	"context"

	"github.com/poslite/poslite_backend/internal/core/domain"
)

// UserSvcFacade defines operations for user accounts and authentication.
type UserSvcFacade interface {
	// RegisterUser creates a user with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, username string, password string, name string) (*domain.User, error)

	// AuthenticateUser verifies credentials and returns the user on success.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
