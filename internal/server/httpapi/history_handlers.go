package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshatj27/signspeak/internal/common"
)

// registerHistoryRoutes registers the append-only gesture log.
func (s *HTTPServer) registerHistoryRoutes(r *gin.Engine) {
	history := r.Group("/history", s.verifyToken())
	history.GET("", s.handleGetHistory)
	history.POST("", s.handleAppendHistory)
	history.DELETE("", s.handleClearHistory)
}

func (s *HTTPServer) handleGetHistory(c *gin.Context) {
	userID := currentUserID(c)

	history, err := s.users.GetHistory(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(c, http.StatusNotFound, "User not found!")
			return
		}
		s.logger.Error(c.Request.Context(), "get history failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error!")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gesture history fetched successfully!", "history": history})
}

type appendHistoryRequest struct {
	Gesture string `json:"gesture"`
}

func (s *HTTPServer) handleAppendHistory(c *gin.Context) {
	userID := currentUserID(c)

	var req appendHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Gesture == "" {
		respondError(c, http.StatusBadRequest, "Missing gesture!")
		return
	}

	updated, err := s.users.AppendGesture(c.Request.Context(), userID, req.Gesture)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(c, http.StatusNotFound, "User not found!")
			return
		}
		s.logger.Error(c.Request.Context(), "append history failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error!")
		return
	}

	// "succesfully" preserved verbatim; clients string-match these bodies.
	c.JSON(http.StatusOK, gin.H{"message": "Gesture history updated succesfully!", "updatedHistory": updated})
}

func (s *HTTPServer) handleClearHistory(c *gin.Context) {
	userID := currentUserID(c)

	if err := s.users.ClearHistory(c.Request.Context(), userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(c, http.StatusNotFound, "User not found!")
			return
		}
		s.logger.Error(c.Request.Context(), "clear history failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error!")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gesture history deleted succesfully!"})
}
