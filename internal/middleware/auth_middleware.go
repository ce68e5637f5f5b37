package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
	"github.com/prasadasw/examportal/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	ContextPrincipalID = "principalID"
	ContextRole        = "role"
)

// AuthMiddleware validates bearer tokens and enforces role requirements.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the Authorization header and stores the principal id and
// role in the request context. The role comes from the token itself; handlers
// never query identity tables to classify a caller.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextPrincipalID, claims.PrincipalID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RoleRequired rejects callers whose token role does not match. JWTAuth must
// run first.
func (m *AuthMiddleware) RoleRequired(requiredRole auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != string(requiredRole) {
			detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "You don't have permission for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
			return
		}

		c.Next()
	}
}

// PrincipalID returns the authenticated principal's id from the context.
func PrincipalID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextPrincipalID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
