package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/akshatj27/signspeak/internal/common"
	"github.com/akshatj27/signspeak/internal/dbx"
	"github.com/akshatj27/signspeak/internal/server/models"
	usersrepo "github.com/akshatj27/signspeak/internal/server/repositories/users"
	videosrepo "github.com/akshatj27/signspeak/internal/server/repositories/videos"
)

// --- in-memory fakes shared by the service tests ---

type fakeUsersRepo struct {
	byID      map[string]*models.User
	createErr error
	updateErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email || existing.UserName == u.UserName {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = fmt.Sprintf("u-%d", len(f.byID)+1)
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) UpdateHistory(ctx context.Context, userID string, history string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.History = history
	return nil
}

type fakeVideosRepo struct {
	byID      map[string]*models.Video
	nextID    string
	createErr error
}

func newFakeVideosRepo() *fakeVideosRepo {
	return &fakeVideosRepo{byID: map[string]*models.Video{}, nextID: "v-1"}
}

func (f *fakeVideosRepo) Create(ctx context.Context, v *models.Video) (*models.Video, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	v.ID = f.nextID
	f.byID[v.ID] = v
	return v, nil
}

func (f *fakeVideosRepo) GetByIDForUser(ctx context.Context, userID, videoID string) (*models.Video, error) {
	v, ok := f.byID[videoID]
	if !ok || v.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return v, nil
}

func (f *fakeVideosRepo) ListByUser(ctx context.Context, userID string) ([]*models.Video, error) {
	result := []*models.Video{}
	for _, v := range f.byID {
		if v.UserID == userID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (f *fakeVideosRepo) Delete(ctx context.Context, videoID string) error {
	if _, ok := f.byID[videoID]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, videoID)
	return nil
}

func (f *fakeVideosRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	for id, v := range f.byID {
		if v.UserID == userID {
			delete(f.byID, id)
		}
	}
	return nil
}

func (f *fakeVideosRepo) UpdateInference(ctx context.Context, userID, videoID string, data []models.Inference, processedVideoURI string) error {
	v, ok := f.byID[videoID]
	if !ok || v.UserID != userID {
		return common.ErrorNotFound
	}
	v.ProcessedData = data
	v.ProcessedVideoURI = processedVideoURI
	v.Status = models.StatusProcessed
	return nil
}

type fakeRepoManager struct {
	users  *fakeUsersRepo
	videos *fakeVideosRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newFakeUsersRepo(), videos: newFakeVideosRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeRepoManager) Videos(dbx.DBTX) videosrepo.Repository        { return m.videos }

type fakeStorage struct {
	baseURL         string
	uploaded        map[string]string
	deleted         []string
	deletedPrefixes []string
	uploadErr       error
	deleteErr       error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{baseURL: "http://storage.local/videos/", uploaded: map[string]string{}}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	b, _ := io.ReadAll(body)
	f.uploaded[key] = string(b)
	return f.baseURL + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	delete(f.uploaded, key)
	return nil
}

func (f *fakeStorage) DeletePrefix(ctx context.Context, prefix string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedPrefixes = append(f.deletedPrefixes, prefix)
	for key := range f.uploaded {
		if strings.HasPrefix(key, prefix) {
			delete(f.uploaded, key)
		}
	}
	return nil
}
