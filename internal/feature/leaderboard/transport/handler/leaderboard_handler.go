// Package handler provides the HTTP handlers of the leaderboard feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trading_backend/internal/feature/leaderboard/usecase"
	"trading_backend/internal/platform/jwt"
	"trading_backend/internal/shared/pagination"
)

// LeaderboardUsecase defines the usecase interface consumed by the handlers.
type LeaderboardUsecase interface {
	GetUsers(ctx context.Context, currentUserID uuid.UUID, pageNumber, pageSize int) (pagination.Page[usecase.Entry], error)
	GetNeighbors(ctx context.Context, currentUserID uuid.UUID, neighborCount int) ([]usecase.Entry, error)
}

// LeaderboardHandler handles the HTTP requests of the leaderboard feature.
type LeaderboardHandler struct {
	uc LeaderboardUsecase
}

// NewLeaderboardHandler creates a new LeaderboardHandler with the given usecase.
func NewLeaderboardHandler(uc LeaderboardUsecase) *LeaderboardHandler {
	return &LeaderboardHandler{uc: uc}
}

// List handles GET /leaderboard.
//
// Endpoint example: GET /leaderboard?pageNumber=1&pageSize=25
func (h *LeaderboardHandler) List(c *gin.Context) {
	pageNumber, ok := queryInt(c, "pageNumber", 1, 1, 1000)
	if !ok {
		return
	}
	pageSize, ok := queryInt(c, "pageSize", 25, 1, 100)
	if !ok {
		return
	}

	page, err := h.uc.GetUsers(c.Request.Context(), currentUserID(c), pageNumber, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Me handles GET /leaderboard/me.
//
// Endpoint example: GET /leaderboard/me?neighborCount=2
func (h *LeaderboardHandler) Me(c *gin.Context) {
	neighborCount, ok := queryInt(c, "neighborCount", 2, 0, 50)
	if !ok {
		return
	}

	entries, err := h.uc.GetNeighbors(c.Request.Context(), currentUserID(c), neighborCount)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotRanked) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// currentUserID returns the authenticated user set by the JWT middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(jwtmw.ContextUserID).(uuid.UUID)
}

// queryInt parses an optional integer query parameter with bounds.
func queryInt(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw := c.DefaultQuery(name, strconv.Itoa(def))
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer between " +
			strconv.Itoa(min) + " and " + strconv.Itoa(max)})
		return 0, false
	}
	return v, true
}
