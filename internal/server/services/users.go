// Package services implements the application logic between the HTTP layer
// and the repositories: accounts, videos, gesture history, and translation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/akshatj27/signspeak/internal/common"
	"github.com/akshatj27/signspeak/internal/server/auth"
	sc "github.com/akshatj27/signspeak/internal/server/config"
	"github.com/akshatj27/signspeak/internal/server/models"
	"github.com/akshatj27/signspeak/internal/server/repositories/repomanager"
)

// bcryptCost matches the work factor the platform has always used.
const bcryptCost = 10

// UserDetails is the profile projection returned to the account owner.
// Videos carry the joined per-video projection, never the password hash.
type UserDetails struct {
	Name        string
	UserName    string
	Email       string
	PhoneNumber string
	Videos      []*models.Video
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewUserService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// Register creates an account with a bcrypt-hashed password. A user with the
// same email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, username, password, phoneNumber string) (*models.User, error) {

	userRepo := s.repomanager.Users(s.db)

	_, err := userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Name:        name,
		Email:       email,
		UserName:    username,
		Password:    string(hash),
		PhoneNumber: phoneNumber,
	}

	user, err = userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks credentials and issues a signed token bound to the user id.
// Unknown email surfaces as ErrorNotFound, a wrong password as
// ErrorUnauthorized; the HTTP layer decides the observable status codes.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {

	userRepo := s.repomanager.Users(s.db)

	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.config.SecretKey), s.config.TokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// GetDetails returns the owner's profile with the joined video projection.
func (s *UserService) GetDetails(ctx context.Context, userID string) (*UserDetails, error) {

	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrorInvalidID
	}

	userRepo := s.repomanager.Users(s.db)
	videoRepo := s.repomanager.Videos(s.db)

	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	userVideos, err := videoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &UserDetails{
		Name:        user.Name,
		UserName:    user.UserName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Videos:      userVideos,
	}, nil
}

// GetHistory returns the accumulated gesture token log.
func (s *UserService) GetHistory(ctx context.Context, userID string) (string, error) {

	userRepo := s.repomanager.Users(s.db)

	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	return user.History, nil
}

// AppendGesture concatenates gesture onto the history with a space separator
// and returns the updated value. The separator is written even onto an empty
// history, so the very first append starts with a leading space; clients have
// depended on that shape since the first release.
func (s *UserService) AppendGesture(ctx context.Context, userID string, gesture string) (string, error) {

	userRepo := s.repomanager.Users(s.db)

	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	updated := user.History + " " + gesture

	if err := userRepo.UpdateHistory(ctx, userID, updated); err != nil {
		return "", common.ErrorInternal
	}

	return updated, nil
}

// ClearHistory resets the gesture log to empty.
func (s *UserService) ClearHistory(ctx context.Context, userID string) error {

	userRepo := s.repomanager.Users(s.db)

	err := userRepo.UpdateHistory(ctx, userID, "")
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}
