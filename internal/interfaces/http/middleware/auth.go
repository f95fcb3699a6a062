package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"inkwell/internal/infrastructure/auth"
	"inkwell/internal/resource/jsonapi"
	"inkwell/internal/shared/authorization"
	"inkwell/internal/shared/constants"
	"inkwell/internal/shared/logger"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, log logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     log,
	}
}

// Identify resolves the bearer token into a principal when one is present.
// Requests without a token continue as guests; the capability layer decides
// whether that is enough. A token that is present but invalid is rejected so
// callers never silently lose their identity.
func (m *AuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			jsonapi.Unauthorized(c)
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			jsonapi.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, &authorization.Principal{
			UUID:  claims.UserUUID,
			Email: claims.Email,
			Role:  claims.Role,
		})

		c.Next()
	}
}

// PrincipalFrom extracts the request principal, nil for guests.
func PrincipalFrom(c *gin.Context) *authorization.Principal {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil
	}
	principal, ok := value.(*authorization.Principal)
	if !ok {
		return nil
	}
	return principal
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
