package videos

import (
	"context"

	"github.com/akshatj27/signspeak/internal/server/models"
)

// Repository is the persistence contract for uploaded videos. All reads and
// writes that take a userID are ownership-scoped: a video belonging to a
// different user behaves exactly like a missing one.
type Repository interface {
	Create(ctx context.Context, video *models.Video) (*models.Video, error)
	GetByIDForUser(ctx context.Context, userID string, videoID string) (*models.Video, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Video, error)
	Delete(ctx context.Context, videoID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	UpdateInference(ctx context.Context, userID string, videoID string, data []models.Inference, processedVideoURI string) error
}
