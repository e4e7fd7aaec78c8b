// Package handler exposes the admin settings endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountdomain "trading_backend/internal/feature/accounts/domain"
	"trading_backend/internal/feature/settings/domain"
)

// SettingsUsecase is the settings surface consumed by this handler.
type SettingsUsecase interface {
	GetDefaultAccountSettings(ctx context.Context) (domain.DefaultAccountSettings, error)
	SaveDefaultAccountSettings(ctx context.Context, settings domain.DefaultAccountSettings) error
	GetBuyCommissions(ctx context.Context) (accountdomain.Commissions, error)
	SaveBuyCommissions(ctx context.Context, commissions accountdomain.Commissions) error
	GetSellCommissions(ctx context.Context) (accountdomain.Commissions, error)
	SaveSellCommissions(ctx context.Context, commissions accountdomain.Commissions) error
}

// SettingsHandler handles the admin settings endpoints.
type SettingsHandler struct {
	uc SettingsUsecase
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(uc SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetDefaultAccountSettings handles GET /settings/accounts.
func (h *SettingsHandler) GetDefaultAccountSettings(c *gin.Context) {
	settings, err := h.uc.GetDefaultAccountSettings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveDefaultAccountSettings handles PUT /settings/accounts.
func (h *SettingsHandler) SaveDefaultAccountSettings(c *gin.Context) {
	var settings domain.DefaultAccountSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.uc.SaveDefaultAccountSettings(c.Request.Context(), settings); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetBuyCommissions handles GET /settings/commissions/buy.
func (h *SettingsHandler) GetBuyCommissions(c *gin.Context) {
	h.getCommissions(c, h.uc.GetBuyCommissions)
}

// SaveBuyCommissions handles PUT /settings/commissions/buy.
func (h *SettingsHandler) SaveBuyCommissions(c *gin.Context) {
	h.saveCommissions(c, h.uc.SaveBuyCommissions)
}

// GetSellCommissions handles GET /settings/commissions/sell.
func (h *SettingsHandler) GetSellCommissions(c *gin.Context) {
	h.getCommissions(c, h.uc.GetSellCommissions)
}

// SaveSellCommissions handles PUT /settings/commissions/sell.
func (h *SettingsHandler) SaveSellCommissions(c *gin.Context) {
	h.saveCommissions(c, h.uc.SaveSellCommissions)
}

func (h *SettingsHandler) getCommissions(c *gin.Context, get func(context.Context) (accountdomain.Commissions, error)) {
	commissions, err := get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, commissions)
}

func (h *SettingsHandler) saveCommissions(c *gin.Context, save func(context.Context, accountdomain.Commissions) error) {
	var commissions accountdomain.Commissions
	if err := c.ShouldBindJSON(&commissions); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := save(c.Request.Context(), commissions); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps settings errors to HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSettingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "setting not found"})
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
