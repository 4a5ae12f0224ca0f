package users

import (
	"context"

	"github.com/akshatj27/signspeak/internal/server/models"
)

// Repository is the persistence contract for user accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateHistory(ctx context.Context, userID string, history string) error
}
