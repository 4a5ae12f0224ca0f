package httpapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshatj27/signspeak/internal/server/auth"
)

// AccessTokenHeader carries the user token issued at login.
const AccessTokenHeader = "x-access-token"

// PipelineTokenHeader carries the shared secret presented by the ML pipeline
// on result callbacks. End-user tokens are not accepted there.
const PipelineTokenHeader = "x-pipeline-token"

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "userID"

// verifyToken authenticates a request by the access token header and stores
// the bound user id in the request context.
func (s *HTTPServer) verifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AccessTokenHeader)
		if token == "" {
			respondError(c, http.StatusForbidden, "Missing token!")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid token!")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// verifyPipelineToken authenticates the pipeline callback with its dedicated
// credential, compared in constant time.
func (s *HTTPServer) verifyPipelineToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(PipelineTokenHeader)
		if token == "" {
			respondError(c, http.StatusForbidden, "Missing token!")
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(s.pipelineToken)) != 1 {
			respondError(c, http.StatusUnauthorized, "Invalid token!")
			return
		}

		c.Next()
	}
}

// corsMiddleware keeps the SPA working from any origin, as the original
// deployment did.
func (s *HTTPServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+AccessTokenHeader+", "+PipelineTokenHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// currentUserID reads the id placed by verifyToken.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
