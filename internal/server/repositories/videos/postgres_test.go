package videos

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akshatj27/signspeak/internal/common"
	"github.com/akshatj27/signspeak/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const selectCols = `id,\s*user_id,\s*url,\s*public_id,\s*name,\s*status,\s*processed_video_uri,\s*processed_data`

func videoRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "url", "public_id", "name", "status", "processed_video_uri", "processed_data"}).
		AddRow("v-1", "u-1", "http://host/videos/users/u-1/key.mp4", "users/u-1/key.mp4", "clip.mp4", "queued", "", []byte(`[]`))
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+videos\s*\(user_id,\s*url,\s*public_id,\s*name,\s*status\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow("v-1")
	mock.ExpectQuery(q).
		WithArgs("u-1", "http://host/videos/users/u-1/key.mp4", "users/u-1/key.mp4", "clip.mp4", "queued").
		WillReturnRows(rows)

	v := &models.Video{
		UserID:   "u-1",
		URL:      "http://host/videos/users/u-1/key.mp4",
		PublicID: "users/u-1/key.mp4",
		Name:     "clip.mp4",
		Status:   models.StatusQueued,
	}
	got, err := repo.Create(context.Background(), v)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "v-1" {
		t.Fatalf("unexpected video: %+v", got)
	}
}

func TestGetByIDForUser_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+videos\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectQuery(q).
		WithArgs("v-1", "u-1").
		WillReturnRows(videoRow())

	got, err := repo.GetByIDForUser(context.Background(), "u-1", "v-1")
	if err != nil {
		t.Fatalf("GetByIDForUser error: %v", err)
	}
	if got.ID != "v-1" || got.Status != models.StatusQueued || len(got.ProcessedData) != 0 {
		t.Fatalf("unexpected video: %+v", got)
	}
}

func TestGetByIDForUser_WrongOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+videos\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectQuery(q).
		WithArgs("v-1", "u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIDForUser(context.Background(), "u-2", "v-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestListByUser_DecodesInferences(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+videos\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s*$`

	data := []byte(`[{"word":"hello","probability":"0.93","current_duration":"1.2","sentence_till_now":"hello","llm_prediction":"Hello!"}]`)
	rows := sqlmock.NewRows([]string{"id", "user_id", "url", "public_id", "name", "status", "processed_video_uri", "processed_data"}).
		AddRow("v-1", "u-1", "http://host/v1.mp4", "users/u-1/a.mp4", "a.mp4", "processed", "http://host/v1-out.mp4", data).
		AddRow("v-2", "u-1", "http://host/v2.mp4", "users/u-1/b.mp4", "b.mp4", "queued", "", []byte(`[]`))
	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(got))
	}
	if len(got[0].ProcessedData) != 1 || got[0].ProcessedData[0].Word != "hello" {
		t.Fatalf("unexpected processed data: %+v", got[0].ProcessedData)
	}
	if got[1].Status != models.StatusQueued || len(got[1].ProcessedData) != 0 {
		t.Fatalf("unexpected second video: %+v", got[1])
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+videos\s+WHERE\s+user_id\s*=\s*\$1`

	rows := sqlmock.NewRows([]string{"id", "user_id", "url", "public_id", "name", "status", "processed_video_uri", "processed_data"})
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+videos\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteAllForUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+videos\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteAllForUser(context.Background(), "u-1"); err != nil {
		t.Fatalf("DeleteAllForUser error: %v", err)
	}
}

func TestUpdateInference_SetsProcessed(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+videos\s+SET\s+processed_data\s*=\s*\$3,\s*processed_video_uri\s*=\s*\$4,\s*status\s*=\s*\$5\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	data := []models.Inference{{Word: "hi", Probability: "0.8", CurrentDuration: "0.5", SentenceTillNow: "hi", LLMPrediction: "Hi"}}
	raw := []byte(`[{"word":"hi","probability":"0.8","current_duration":"0.5","sentence_till_now":"hi","llm_prediction":"Hi"}]`)

	mock.ExpectExec(q).
		WithArgs("v-1", "u-1", raw, "http://host/out.mp4", "processed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateInference(context.Background(), "u-1", "v-1", data, "http://host/out.mp4")
	if err != nil {
		t.Fatalf("UpdateInference error: %v", err)
	}
}

func TestUpdateInference_WrongOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+videos\s+SET\s+processed_data`

	mock.ExpectExec(q).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateInference(context.Background(), "u-2", "v-1", []models.Inference{}, "")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
