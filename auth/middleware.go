package auth

import (
	"log"
	"net/http"
	"strings"

	"lexassist-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the middleware for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
	ContextRole   = "user_role"
)

// Middleware holds the token verifier used for auth checks.
type Middleware struct {
	jwt *JWTService
}

// NewMiddleware creates a bearer-token authentication middleware.
func NewMiddleware(jwt *JWTService) *Middleware {
	return &Middleware{jwt: jwt}
}

// authenticate validates the bearer token and puts the caller's
// identity into the request context. On failure it aborts the request
// with a 401 and reports false. It never advances the handler chain;
// that is the caller's decision.
func (m *Middleware) authenticate(c *gin.Context) (*Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authorization header required",
			},
		})
		return nil, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := m.jwt.ValidateToken(tokenString)
	if err != nil {
		log.Printf("Token verification failed: %v", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TOKEN",
				"message": "Invalid or expired token",
			},
		})
		return nil, false
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRole, claims.Role)
	return claims, true
}

// RequireUser validates the bearer token and puts the caller's
// identity into the request context.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireRole validates the token and additionally requires one of the
// given roles. The role comes from the validated token, never from a
// client-supplied field. The handler chain only advances after the
// role check passes.
func (m *Middleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		for _, allowed := range roles {
			if claims.Role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient role for this operation",
			},
		})
	}
}

// UserIDFromContext returns the authenticated user's id.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// RoleFromContext returns the authenticated user's role, or the empty
// role when unauthenticated.
func RoleFromContext(c *gin.Context) models.UserRole {
	v, exists := c.Get(ContextRole)
	if !exists {
		return ""
	}
	role, _ := v.(models.UserRole)
	return role
}
