package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/student-admin-service/internal/auth"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/services"
)

// AuthTokenMiddleware authenticates requests by bearer token and
// enforces role requirements per route group.
type AuthTokenMiddleware struct {
	authService services.AuthService
}

func NewAuthTokenMiddleware(authService services.AuthService) *AuthTokenMiddleware {
	return &AuthTokenMiddleware{authService: authService}
}

// AuthMiddleware resolves the bearer token to a stored user and puts
// the user on the request context.
func (m *AuthTokenMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		user, err := m.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Set("current_user", user)

		c.Next()
	}
}

// RequireRoleMiddleware rejects callers whose role does not satisfy the
// required one. Must run after AuthMiddleware.
func (m *AuthTokenMiddleware) RequireRoleMiddleware(required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		if err := m.authService.Authorize(user, required); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Insufficient permissions",
			})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user from the request context,
// or nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get("current_user"); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
