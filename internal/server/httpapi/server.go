// Package httpapi exposes the REST surface: user accounts, videos, gesture
// history, and the translation passthrough.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshatj27/signspeak/internal/logging"
	"github.com/akshatj27/signspeak/internal/server/models"
	"github.com/akshatj27/signspeak/internal/server/services"
)

// UserProvider is what the user/history handlers need from the service layer.
type UserProvider interface {
	Register(ctx context.Context, name, email, username, password, phoneNumber string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetDetails(ctx context.Context, userID string) (*services.UserDetails, error)
	GetHistory(ctx context.Context, userID string) (string, error)
	AppendGesture(ctx context.Context, userID string, gesture string) (string, error)
	ClearHistory(ctx context.Context, userID string) error
}

// VideoProvider is what the video handlers need from the service layer.
type VideoProvider interface {
	List(ctx context.Context, userID string) ([]*models.Video, error)
	Get(ctx context.Context, userID string, videoID string) (*models.Video, error)
	Add(ctx context.Context, userID string, filename string, contentType string, file io.Reader) (*models.Video, error)
	Delete(ctx context.Context, userID string, videoID string) error
	DeleteAll(ctx context.Context, userID string) error
	UpdateInference(ctx context.Context, userID string, videoID string, data []models.Inference, processedVideoURI string) error
}

// Translator forwards a sentence to the LLM endpoint.
type Translator interface {
	Translate(ctx context.Context, sentence string, targetLanguage string) (string, error)
}

type HTTPServer struct {
	address        string
	logger         logging.Logger
	users          UserProvider
	videos         VideoProvider
	translator     Translator
	jwtSecret      []byte
	pipelineToken  string
	maxUploadBytes int64
}

func NewHTTPServer(a string, l logging.Logger, us UserProvider, vs VideoProvider, ts Translator, secretKey string, pipelineToken string, maxUploadBytes int64) *HTTPServer {
	return &HTTPServer{
		address:        a,
		logger:         l.With("module", "http_server"),
		users:          us,
		videos:         vs,
		translator:     ts,
		jwtSecret:      []byte(secretKey),
		pipelineToken:  pipelineToken,
		maxUploadBytes: maxUploadBytes,
	}
}

// Router constructs the Gin engine with all resource routes registered.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())
	r.MaxMultipartMemory = s.maxUploadBytes

	s.registerUserRoutes(r)
	s.registerVideoRoutes(r)
	s.registerHistoryRoutes(r)
	s.registerTextRoutes(r)

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
