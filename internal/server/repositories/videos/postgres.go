package videos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akshatj27/signspeak/internal/common"
	"github.com/akshatj27/signspeak/internal/dbx"
	"github.com/akshatj27/signspeak/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, video *models.Video) (*models.Video, error) {

	query :=
		`INSERT INTO videos (user_id, url, public_id, name, status)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		video.UserID, video.URL, video.PublicID, video.Name, video.Status).Scan(&video.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return video, nil
}

func (r *PostgresRepository) GetByIDForUser(ctx context.Context, userID string, videoID string) (*models.Video, error) {
	query :=
		`SELECT id, user_id, url, public_id, name, status, processed_video_uri, processed_data FROM videos
		 WHERE id = $1 AND user_id = $2
		 `

	video := &models.Video{}
	var rawData []byte
	err := r.db.QueryRowContext(ctx, query, videoID, userID).Scan(
		&video.ID, &video.UserID, &video.URL, &video.PublicID,
		&video.Name, &video.Status, &video.ProcessedVideoURI, &rawData)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(rawData, &video.ProcessedData); err != nil {
		return nil, fmt.Errorf("processed_data decode error: %w", err)
	}

	return video, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Video, error) {
	query :=
		`SELECT id, user_id, url, public_id, name, status, processed_video_uri, processed_data FROM videos
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Video{}
	for rows.Next() {
		video := &models.Video{}
		var rawData []byte
		err := rows.Scan(&video.ID, &video.UserID, &video.URL, &video.PublicID,
			&video.Name, &video.Status, &video.ProcessedVideoURI, &rawData)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(rawData, &video.ProcessedData); err != nil {
			return nil, fmt.Errorf("processed_data decode error: %w", err)
		}
		result = append(result, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, videoID string) error {
	query :=
		`DELETE FROM videos
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, videoID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query :=
		`DELETE FROM videos
		 WHERE user_id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateInference(ctx context.Context, userID string, videoID string, data []models.Inference, processedVideoURI string) error {

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("processed_data encode error: %w", err)
	}

	query :=
		`UPDATE videos SET processed_data = $3, processed_video_uri = $4, status = $5
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, videoID, userID, rawData, processedVideoURI, models.StatusProcessed)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
