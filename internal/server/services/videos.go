package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/akshatj27/signspeak/internal/common"
	"github.com/akshatj27/signspeak/internal/dbx"
	"github.com/akshatj27/signspeak/internal/logging"
	"github.com/akshatj27/signspeak/internal/server/models"
	"github.com/akshatj27/signspeak/internal/server/repositories/repomanager"
	"github.com/akshatj27/signspeak/internal/server/storage"
)

type VideoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     storage.ObjectStorage
	logger      logging.Logger
}

func NewVideoService(db *sql.DB, repomanager repomanager.RepositoryManager, store storage.ObjectStorage, logger logging.Logger) *VideoService {
	return &VideoService{
		db:          db,
		repomanager: repomanager,
		storage:     store,
		logger:      logger.With("module", "video_service"),
	}
}

// userPrefix is the storage key namespace holding all of a user's clips.
func userPrefix(userID string) string {
	return fmt.Sprintf("users/%s/", userID)
}

func storageKey(userID string, filename string) string {
	return userPrefix(userID) + uuid.NewString() + filepath.Ext(filename)
}

// List returns the caller's videos, oldest first.
func (s *VideoService) List(ctx context.Context, userID string) ([]*models.Video, error) {

	videoRepo := s.repomanager.Videos(s.db)

	userVideos, err := videoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return userVideos, nil
}

// Get fetches one video. A malformed id yields ErrorInvalidID; a video that
// does not exist or belongs to someone else yields ErrorForbidden, so callers
// cannot probe for other users' video ids.
func (s *VideoService) Get(ctx context.Context, userID string, videoID string) (*models.Video, error) {

	if _, err := uuid.Parse(videoID); err != nil {
		return nil, common.ErrorInvalidID
	}

	videoRepo := s.repomanager.Videos(s.db)

	video, err := videoRepo.GetByIDForUser(ctx, userID, videoID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorForbidden
		}
		return nil, common.ErrorInternal
	}

	return video, nil
}

// Add uploads the clip to object storage and records it with status queued.
// If the insert fails after the upload succeeded, the orphaned object is
// deleted before the error is returned.
func (s *VideoService) Add(ctx context.Context, userID string, filename string, contentType string, file io.Reader) (*models.Video, error) {

	name := filename
	if name == "" {
		name = "untitled"
	}

	key := storageKey(userID, filename)

	url, err := s.storage.Upload(ctx, key, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("storage upload error: %w", err)
	}

	video := &models.Video{
		UserID:   userID,
		URL:      url,
		PublicID: key,
		Name:     name,
		Status:   models.StatusQueued,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		videoRepo := s.repomanager.Videos(tx)
		_, err := videoRepo.Create(ctx, video)
		return err
	})
	if err != nil {
		// Compensate: do not leave an unreferenced object behind.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Error(ctx, "orphaned object cleanup failed", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("error creating video: %w", err)
	}

	return video, nil
}

// Delete validates ownership, removes the stored object, then the record.
func (s *VideoService) Delete(ctx context.Context, userID string, videoID string) error {

	if _, err := uuid.Parse(videoID); err != nil {
		return common.ErrorInvalidID
	}

	videoRepo := s.repomanager.Videos(s.db)

	video, err := videoRepo.GetByIDForUser(ctx, userID, videoID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorForbidden
		}
		return common.ErrorInternal
	}

	if err := s.storage.Delete(ctx, video.PublicID); err != nil {
		return fmt.Errorf("storage delete error: %w", err)
	}

	if err := videoRepo.Delete(ctx, videoID); err != nil {
		return common.ErrorInternal
	}

	return nil
}

// DeleteAll removes every stored object under the user's prefix and every
// video record referencing them.
func (s *VideoService) DeleteAll(ctx context.Context, userID string) error {

	if err := s.storage.DeletePrefix(ctx, userPrefix(userID)); err != nil {
		return fmt.Errorf("storage delete error: %w", err)
	}

	videoRepo := s.repomanager.Videos(s.db)

	if err := videoRepo.DeleteAllForUser(ctx, userID); err != nil {
		return common.ErrorInternal
	}

	return nil
}

// UpdateInference is the pipeline write-back: it stores the inference
// sequence, the annotated output address, and flips status to processed.
func (s *VideoService) UpdateInference(ctx context.Context, userID string, videoID string, data []models.Inference, processedVideoURI string) error {

	if _, err := uuid.Parse(userID); err != nil {
		return common.ErrorInvalidID
	}
	if _, err := uuid.Parse(videoID); err != nil {
		return common.ErrorInvalidID
	}

	videoRepo := s.repomanager.Videos(s.db)

	err := videoRepo.UpdateInference(ctx, userID, videoID, data, processedVideoURI)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}
