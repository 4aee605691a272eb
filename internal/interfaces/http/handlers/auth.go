// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/cart"
	"github.com/soulmedev/AromeNoir/internal/domain/user"
	"github.com/soulmedev/AromeNoir/internal/interfaces/http/middleware"
	"github.com/soulmedev/AromeNoir/internal/pkg/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	users      *user.Service
	carts      *cart.Service
	jwtManager *auth.JWTManager
	config     *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users:      user.NewService(db, cfg),
		carts:      cart.NewService(db, redisClient, cfg),
		jwtManager: auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry),
		config:     cfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newUser, err := h.users.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken), errors.Is(err, user.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		}
		return
	}

	tokens, err := h.issueTokens(newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
		return
	}

	// A cart built before registering moves to the new account
	sessionID := middleware.GetSessionID(c)
	if sessionID != "" {
		if err := h.carts.MergeSessionIntoUser(c.Request.Context(), newUser.ID, sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   newUser,
		"tokens": tokens,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authUser, err := h.users.Authenticate(&req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	tokens, err := h.issueTokens(authUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
		return
	}

	// Fold the guest cart into the account cart
	sessionID := middleware.GetSessionID(c)
	if sessionID != "" {
		if err := h.carts.MergeSessionIntoUser(c.Request.Context(), authUser.ID, sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   authUser,
		"tokens": tokens,
	})
}

// Logout handles POST /auth/logout. The account cart is mirrored back
// into the session so the browser keeps seeing it.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	sessionID := middleware.GetSessionID(c)

	if sessionID != "" {
		if err := h.carts.MirrorUserIntoSession(c.Request.Context(), userID, sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mirror cart"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	profile, err := h.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// UpdateProfile handles PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.users.UpdateProfile(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (h *AuthHandler) issueTokens(u *user.User) (gin.H, error) {
	accessToken, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email, u.Username)
	if err != nil {
		return nil, err
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(u.ID, u.Email, u.Username)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	}, nil
}
