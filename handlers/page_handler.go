package handlers

import (
	"log"
	"net/http"

	"lexassist-backend/auth"
	"lexassist-backend/models"
	"lexassist-backend/render"
	"lexassist-backend/service"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the server-rendered HTML pages. API clients use
// the /api routes; these pages exist for browser traffic.
type PageHandler struct {
	jwtService  *auth.JWTService
	authService *service.AuthService
	caseService *service.CaseService
}

// NewPageHandler creates a new page handler
func NewPageHandler(jwtService *auth.JWTService, authService *service.AuthService, caseService *service.CaseService) *PageHandler {
	return &PageHandler{
		jwtService:  jwtService,
		authService: authService,
		caseService: caseService,
	}
}

// Landing handles GET /
func (h *PageHandler) Landing(c *gin.Context) {
	user := h.sessionUser(c)
	html := render.Page("AI-Assisted Legal Services", render.LandingBody(), user, false)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Dashboard handles GET /dashboard. Unauthenticated browsers are
// redirected to the landing page.
func (h *PageHandler) Dashboard(c *gin.Context) {
	user := h.sessionUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	cases, err := h.caseService.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("Failed to load cases for dashboard of user %s: %v", user.ID, err)
		cases = nil
	}

	html := render.Page("Dashboard", render.CaseListBody(cases), user, true)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// sessionUser resolves the current user from the session cookie, or
// nil for anonymous visitors.
func (h *PageHandler) sessionUser(c *gin.Context) *models.User {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return nil
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}

	user, err := h.authService.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
