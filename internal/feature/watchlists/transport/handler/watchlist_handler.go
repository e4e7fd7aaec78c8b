// Package handler provides the HTTP handlers of the watchlists feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountsdomain "trading_backend/internal/feature/accounts/domain"
	"trading_backend/internal/feature/watchlists/domain"
	"trading_backend/internal/feature/watchlists/transport/http/dto"
	"trading_backend/internal/feature/watchlists/usecase"
	"trading_backend/internal/platform/jwt"
)

// WatchlistsUsecase defines the usecase interface consumed by the handlers.
type WatchlistsUsecase interface {
	CreateWatchlist(ctx context.Context, userID uuid.UUID, name string, symbols []string) (uuid.UUID, error)
	ListWatchlists(ctx context.Context, userID uuid.UUID) ([]usecase.WatchlistInfo, error)
	GetWatchlistDetails(ctx context.Context, userID, watchlistID uuid.UUID) (*usecase.WatchlistDetails, error)
	RenameWatchlist(ctx context.Context, userID, watchlistID uuid.UUID, name string) error
	DeleteWatchlist(ctx context.Context, userID, watchlistID uuid.UUID) error
	AddSymbol(ctx context.Context, userID, watchlistID uuid.UUID, symbol string) error
	RemoveSymbol(ctx context.Context, userID, watchlistID uuid.UUID, symbol string) error
}

// WatchlistHandler handles the HTTP requests of the watchlists feature.
type WatchlistHandler struct {
	uc WatchlistsUsecase
}

// NewWatchlistHandler creates a new WatchlistHandler with the given usecase.
func NewWatchlistHandler(uc WatchlistsUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List handles GET /watchlists.
func (h *WatchlistHandler) List(c *gin.Context) {
	watchlists, err := h.uc.ListWatchlists(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if watchlists == nil {
		watchlists = []usecase.WatchlistInfo{}
	}
	c.JSON(http.StatusOK, watchlists)
}

// Create handles POST /watchlists.
func (h *WatchlistHandler) Create(c *gin.Context) {
	var req dto.CreateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.uc.CreateWatchlist(c.Request.Context(), currentUserID(c), req.Name, req.Symbols)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateWatchlistResponse{ID: id.String()})
}

// Get handles GET /watchlists/:id.
func (h *WatchlistHandler) Get(c *gin.Context) {
	watchlistID, ok := pathID(c)
	if !ok {
		return
	}

	details, err := h.uc.GetWatchlistDetails(c.Request.Context(), currentUserID(c), watchlistID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Rename handles PUT /watchlists/:id.
func (h *WatchlistHandler) Rename(c *gin.Context) {
	watchlistID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.RenameWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.uc.RenameWatchlist(c.Request.Context(), currentUserID(c), watchlistID, req.Name); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /watchlists/:id.
func (h *WatchlistHandler) Delete(c *gin.Context) {
	watchlistID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteWatchlist(c.Request.Context(), currentUserID(c), watchlistID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddSymbol handles PUT /watchlists/:id/symbols/:symbol.
func (h *WatchlistHandler) AddSymbol(c *gin.Context) {
	watchlistID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.AddSymbol(c.Request.Context(), currentUserID(c), watchlistID, c.Param("symbol")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveSymbol handles DELETE /watchlists/:id/symbols/:symbol.
func (h *WatchlistHandler) RemoveSymbol(c *gin.Context) {
	watchlistID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.RemoveSymbol(c.Request.Context(), currentUserID(c), watchlistID, c.Param("symbol")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// currentUserID returns the authenticated user set by the JWT middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(jwtmw.ContextUserID).(uuid.UUID)
}

// pathID parses the :id path parameter; on failure it writes a 404 and
// reports false, because a malformed id can never name a watchlist.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrWatchlistNotFound.Error()})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrWatchlistNotFound), errors.Is(err, accountsdomain.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
