package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerTextRoutes registers the translation passthrough.
func (s *HTTPServer) registerTextRoutes(r *gin.Engine) {
	text := r.Group("/text", s.verifyToken())
	text.POST("/translate", s.handleTranslate)
}

type translateRequest struct {
	Sentence string `json:"sentence"`
	Language string `json:"language"`
}

func (s *HTTPServer) handleTranslate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing parameters!")
		return
	}

	if req.Sentence == "" || req.Language == "" {
		respondError(c, http.StatusBadRequest, "Missing parameters!")
		return
	}

	translated, err := s.translator.Translate(c.Request.Context(), req.Sentence, req.Language)
	if err != nil {
		s.logger.Error(c.Request.Context(), "translate failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error!")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": translated})
}
