package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshatj27/signspeak/internal/common"
	"github.com/akshatj27/signspeak/internal/server/models"
)

// The cross-owner messages deliberately do not distinguish an unknown video
// id from someone else's: both look the same to the caller. The wording is
// per-verb and clients string-match it.
const (
	crossOwnerGetMessage    = "Invalid video id / You don't have permission to get details of this video!"
	crossOwnerDeleteMessage = "Invalid video id / You don't have permission to delete this video!"
)

// registerVideoRoutes registers the per-user video resource plus the
// pipeline-facing inference callback.
func (s *HTTPServer) registerVideoRoutes(r *gin.Engine) {
	videos := r.Group("/videos")
	videos.GET("", s.verifyToken(), s.handleGetVideos)
	videos.POST("", s.verifyToken(), s.handleAddVideo)
	videos.DELETE("", s.verifyToken(), s.handleDeleteVideo)
	videos.DELETE("/all", s.verifyToken(), s.handleDeleteAllVideos)
	videos.PUT("", s.verifyPipelineToken(), s.handleUpdateVideoDetails)
}

// videoResponse is the projection returned to clients; storage handles and
// the owner id stay server-side.
type videoResponse struct {
	VideoID           string             `json:"videoId"`
	URL               string             `json:"url"`
	Name              string             `json:"name"`
	Status            string             `json:"status"`
	ProcessedVideoURI string             `json:"processed_video_uri"`
	ProcessedData     []models.Inference `json:"processed_data"`
}

func toVideoResponse(v *models.Video) videoResponse {
	data := v.ProcessedData
	if data == nil {
		data = []models.Inference{}
	}
	return videoResponse{
		VideoID:           v.ID,
		URL:               v.URL,
		Name:              v.Name,
		Status:            v.Status,
		ProcessedVideoURI: v.ProcessedVideoURI,
		ProcessedData:     data,
	}
}

func toVideoResponses(vs []*models.Video) []videoResponse {
	result := make([]videoResponse, 0, len(vs))
	for _, v := range vs {
		result = append(result, toVideoResponse(v))
	}
	return result
}

// handleGetVideos lists the caller's videos, or fetches a single one when a
// videoId query parameter is present.
func (s *HTTPServer) handleGetVideos(c *gin.Context) {
	userID := currentUserID(c)

	if videoID := c.Query("videoId"); videoID != "" {
		video, err := s.videos.Get(c.Request.Context(), userID, videoID)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrorInvalidID):
				respondError(c, http.StatusUnprocessableEntity, "Invalid video id!")
			case errors.Is(err, common.ErrorForbidden):
				respondError(c, http.StatusForbidden, crossOwnerGetMessage)
			default:
				s.logger.Error(c.Request.Context(), "get video failed", "error", err)
				respondError(c, http.StatusInternalServerError, "Internal server error!")
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Video fetched successfully!", "video": toVideoResponse(video)})
		return
	}

	userVideos, err := s.videos.List(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error(c.Request.Context(), "list videos failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error!")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Videos fetched successfully!", "videos": toVideoResponses(userVideos)})
}

func (s *HTTPServer) handleAddVideo(c *gin.Context) {
	userID := currentUserID(c)

	// Enforce the upload cap; MaxMultipartMemory only bounds buffering.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Video file not found!")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Video file not found!")
		return
	}
	defer file.Close()

	video, err := s.videos.Add(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		s.logger.Error(c.Request.Context(), "add video failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error!")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Videos uploaded successfully!",
		"url":     video.URL,
		"userId":  userID,
		"videoId": video.ID,
	})
}

type deleteVideoRequest struct {
	VideoID string `json:"videoId"`
}

func (s *HTTPServer) handleDeleteVideo(c *gin.Context) {
	userID := currentUserID(c)

	var req deleteVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VideoID == "" {
		respondError(c, http.StatusBadRequest, "Missing parameters!")
		return
	}

	err := s.videos.Delete(c.Request.Context(), userID, req.VideoID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidID):
			respondError(c, http.StatusUnprocessableEntity, "Invalid video id!")
		case errors.Is(err, common.ErrorForbidden):
			respondError(c, http.StatusForbidden, crossOwnerDeleteMessage)
		default:
			s.logger.Error(c.Request.Context(), "delete video failed", "error", err)
			respondError(c, http.StatusInternalServerError, "Internal server error!")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully!"})
}

func (s *HTTPServer) handleDeleteAllVideos(c *gin.Context) {
	userID := currentUserID(c)

	if err := s.videos.DeleteAll(c.Request.Context(), userID); err != nil {
		s.logger.Error(c.Request.Context(), "delete all videos failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error!")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Videos deleted successfully!"})
}

type updateVideoDetailsRequest struct {
	UserID            string             `json:"userId"`
	VideoID           string             `json:"videoId"`
	Inference         []models.Inference `json:"inference"`
	ProcessedVideoURI string             `json:"processedVideoUri"`
}

// handleUpdateVideoDetails is the pipeline write-back; it is authenticated by
// the pipeline credential, not a user token.
func (s *HTTPServer) handleUpdateVideoDetails(c *gin.Context) {
	var req updateVideoDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing parameters!")
		return
	}

	if req.UserID == "" || req.VideoID == "" || req.Inference == nil {
		respondError(c, http.StatusBadRequest, "Missing parameters!")
		return
	}

	err := s.videos.UpdateInference(c.Request.Context(), req.UserID, req.VideoID, req.Inference, req.ProcessedVideoURI)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidID):
			respondError(c, http.StatusBadRequest, "Missing parameters!")
		case errors.Is(err, common.ErrorNotFound):
			respondError(c, http.StatusNotFound, "Video not found!")
		default:
			s.logger.Error(c.Request.Context(), "update video details failed", "error", err)
			respondError(c, http.StatusInternalServerError, "Internal server error!")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video details updated successfully!"})
}
