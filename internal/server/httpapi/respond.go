package httpapi

import (
	"github.com/gin-gonic/gin"
)

// errorBody is the error shape every endpoint returns.
type errorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// respondError writes the error body and stops the handler chain.
func respondError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorBody{Message: message, StatusCode: statusCode})
}
