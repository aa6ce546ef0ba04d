package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lotodata/megasena-backend/internal/config"
	"github.com/lotodata/megasena-backend/internal/utils"
	"go.uber.org/zap"
)

// AuthHandler issues API tokens for the protected endpoints.
type AuthHandler struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, logger: logger}
}

// TokenRequest is the POST /auth/token body.
type TokenRequest struct {
	AdminKey string `json:"admin_key" binding:"required"`
}

// IssueToken handles POST /auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	if h.cfg.JWT.Secret == "" || h.cfg.Auth.AdminKeyHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"erro": "authentication is not configured"})
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "admin_key is required"})
		return
	}

	if !utils.CheckAdminKey(req.AdminKey, h.cfg.Auth.AdminKeyHash) {
		h.logger.Warn("admin key rejected", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"erro": "invalid admin key"})
		return
	}

	token, err := utils.GenerateJWT("admin", "admin", h.cfg)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": h.cfg.JWT.ExpiresIn,
	})
}
