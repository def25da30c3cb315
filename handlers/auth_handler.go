package handlers

import (
	"errors"
	"net/http"

	"lexassist-backend/auth"
	"lexassist-backend/models"
	"lexassist-backend/service"

	"github.com/gin-gonic/gin"
)

// sessionCookie carries the session token for the server-rendered pages.
const sessionCookie = "lexassist_session"

// AuthHandler handles registration, login and profile routes.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Register handles POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInUse):
			respondError(c, http.StatusConflict, "EMAIL_IN_USE", "An account with this email already exists")
		case errors.Is(err, service.ErrInvalidRole):
			respondError(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be litigant, lawyer or admin")
		default:
			respondError(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Registration failed, please try again")
		}
		return
	}

	respondOK(c, http.StatusCreated, gin.H{"user": result.User})
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "LOGIN_FAILED", "Login failed, please try again")
		return
	}

	// The cookie lets the server-rendered dashboard identify the user.
	c.SetCookie(sessionCookie, result.Token, int(auth.TokenExpiry.Seconds()), "/", "", false, true)

	respondOK(c, http.StatusOK, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

// UpdateProfileRequest represents the request body for a profile update
type UpdateProfileRequest struct {
	Data struct {
		Name string `json:"name"`
	} `json:"data"`
}

// UpdateProfile handles POST /api/update-profile. The user id comes
// from the validated token, never from the request body.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req.Data.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Profile update failed")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"user": user})
}

// GetProfile handles GET /api/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "PROFILE_FAILED", "Could not load profile")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"user": user})
}
