package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshatj27/signspeak/internal/common"
)

// registerUserRoutes registers registration, login, and profile retrieval.
func (s *HTTPServer) registerUserRoutes(r *gin.Engine) {
	user := r.Group("/user")
	user.POST("/register", s.handleRegister)
	user.POST("/login", s.handleLogin)
	user.GET("/details", s.verifyToken(), s.handleGetDetails)
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	UserName    string `json:"username"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

func (s *HTTPServer) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing parameters!")
		return
	}

	if req.Name == "" || req.Email == "" || req.UserName == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Missing parameters!")
		return
	}

	_, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.UserName, req.Password, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			respondError(c, http.StatusConflict, "User already exists!")
			return
		}
		s.logger.Error(c.Request.Context(), "register failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error!")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully!"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *HTTPServer) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing parameters!")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Missing parameters!")
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			// Typo preserved verbatim; clients string-match this body.
			respondError(c, http.StatusNotFound, "User doesn't not exist. Kindly register!")
		case errors.Is(err, common.ErrorUnauthorized):
			// The original reported credential mismatch as 404, and clients
			// key off that.
			respondError(c, http.StatusNotFound, "Invalid Credentials")
		default:
			s.logger.Error(c.Request.Context(), "login failed", "error", err)
			respondError(c, http.StatusInternalServerError, "Internal server error!")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User logged in successfully!", "auth": token})
}

func (s *HTTPServer) handleGetDetails(c *gin.Context) {
	userID := currentUserID(c)

	details, err := s.users.GetDetails(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidID):
			respondError(c, http.StatusForbidden, "Invalid token!")
		case errors.Is(err, common.ErrorNotFound):
			respondError(c, http.StatusNotFound, "User not found!")
		default:
			s.logger.Error(c.Request.Context(), "get details failed", "error", err)
			respondError(c, http.StatusInternalServerError, "Internal server error!")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":        details.Name,
		"username":    details.UserName,
		"email":       details.Email,
		"phoneNumber": details.PhoneNumber,
		"videos":      toVideoResponses(details.Videos),
	})
}
