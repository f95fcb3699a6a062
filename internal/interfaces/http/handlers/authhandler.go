package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/auth"
	"inkwell/internal/resource/jsonapi"
	"inkwell/internal/shared/logger"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthHandler issues and refreshes the bearer tokens the resource surface
// authenticates with.
type AuthHandler struct {
	users      content.UserRepository
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthHandler(users content.UserRepository, hasher *auth.PasswordHasher, jwtService *auth.JWTService, log logger.Interface) *AuthHandler {
	return &AuthHandler{
		users:      users,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     log.Named("auth"),
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonapi.Unauthorized(c)
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Errorw("login lookup failed", "error", err)
		jsonapi.ServerError(c)
		return
	}
	// A missing account and a wrong password answer identically.
	if user == nil || !h.hasher.Compare(user.PasswordHash, req.Password) {
		jsonapi.Unauthorized(c)
		return
	}

	pair, err := h.jwtService.Generate(user.UUID, user.Email, user.Role)
	if err != nil {
		h.logger.Errorw("token generation failed", "error", err)
		jsonapi.ServerError(c)
		return
	}

	h.logger.Infow("user logged in", "email", user.Email)
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonapi.Unauthorized(c)
		return
	}

	claims, err := h.jwtService.Verify(req.RefreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		jsonapi.Unauthorized(c)
		return
	}

	// Re-read the account so revocation and role changes take effect on
	// refresh rather than at token expiry.
	user, err := h.users.FindByUUID(c.Request.Context(), claims.UserUUID)
	if err != nil {
		h.logger.Errorw("refresh lookup failed", "error", err)
		jsonapi.ServerError(c)
		return
	}
	if user == nil {
		jsonapi.Unauthorized(c)
		return
	}

	pair, err := h.jwtService.Generate(user.UUID, user.Email, user.Role)
	if err != nil {
		h.logger.Errorw("token generation failed", "error", err)
		jsonapi.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	})
}
