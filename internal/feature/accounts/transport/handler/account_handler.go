// Package handler provides the HTTP handlers of the accounts feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trading_backend/internal/feature/accounts/domain"
	"trading_backend/internal/feature/accounts/domain/entity"
	"trading_backend/internal/feature/accounts/transport/http/dto"
	"trading_backend/internal/feature/accounts/usecase"
	"trading_backend/internal/platform/jwt"
	"trading_backend/internal/shared/pagination"
)

// AccountsUsecase defines the usecase interface consumed by the handlers.
// Following Go convention, the interface is defined on the consumer side.
type AccountsUsecase interface {
	CreateAccount(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, error)
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]usecase.AccountInfo, error)
	GetAccountDetails(ctx context.Context, userID, accountID uuid.UUID) (*usecase.AccountDetails, error)
	DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error
	ResetAccount(ctx context.Context, userID, accountID uuid.UUID) error
	BuyShares(ctx context.Context, userID, accountID uuid.UUID, symbol string, quantity, nonce int64) error
	SellShares(ctx context.Context, userID, accountID uuid.UUID, symbol string, quantity, nonce int64) error
	ListTransactions(ctx context.Context, userID, accountID uuid.UUID, from, to time.Time, pageNumber, pageSize int) (pagination.Page[entity.Transaction], error)
}

// AccountHandler handles the HTTP requests of the accounts feature.
type AccountHandler struct {
	uc AccountsUsecase
}

// NewAccountHandler creates a new AccountHandler with the given usecase.
func NewAccountHandler(uc AccountsUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.uc.CreateAccount(c.Request.Context(), currentUserID(c), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateAccountResponse{ID: id.String()})
}

// List handles GET /accounts.
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.uc.ListAccounts(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if accounts == nil {
		accounts = []usecase.AccountInfo{}
	}
	c.JSON(http.StatusOK, accounts)
}

// Get handles GET /accounts/:id.
func (h *AccountHandler) Get(c *gin.Context) {
	accountID, ok := pathID(c)
	if !ok {
		return
	}

	details, err := h.uc.GetAccountDetails(c.Request.Context(), currentUserID(c), accountID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Delete handles DELETE /accounts/:id.
func (h *AccountHandler) Delete(c *gin.Context) {
	accountID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteAccount(c.Request.Context(), currentUserID(c), accountID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset handles POST /accounts/:id/reset.
func (h *AccountHandler) Reset(c *gin.Context) {
	accountID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.ResetAccount(c.Request.Context(), currentUserID(c), accountID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PlaceOrder handles POST /accounts/:id/orders.
func (h *AccountHandler) PlaceOrder(c *gin.Context) {
	accountID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	switch req.Side {
	case dto.OrderSideBuy:
		err = h.uc.BuyShares(c.Request.Context(), currentUserID(c), accountID, req.Symbol, req.Quantity, req.Nonce)
	case dto.OrderSideSell:
		err = h.uc.SellShares(c.Request.Context(), currentUserID(c), accountID, req.Symbol, req.Quantity, req.Nonce)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// ListTransactions handles GET /accounts/:id/transactions.
//
// Endpoint example:
// GET /accounts/:id/transactions?startDate=2026-01-01&endDate=2026-02-01&pageNumber=1&pageSize=20
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	accountID, ok := pathID(c)
	if !ok {
		return
	}

	pageNumber, ok := queryInt(c, "pageNumber", 1, 1, 1000)
	if !ok {
		return
	}
	pageSize, ok := queryInt(c, "pageSize", 20, 1, 100)
	if !ok {
		return
	}
	from, ok := queryTime(c, "startDate")
	if !ok {
		return
	}
	to, ok := queryTime(c, "endDate")
	if !ok {
		return
	}

	page, err := h.uc.ListTransactions(c.Request.Context(), currentUserID(c), accountID, from, to, pageNumber, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionPage(page))
}

// currentUserID returns the authenticated user set by the JWT middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(jwtmw.ContextUserID).(uuid.UUID)
}

// pathID parses the :id path parameter; on failure it writes a 404 and
// reports false, because a malformed id can never name an account.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrAccountNotFound.Error()})
		return uuid.Nil, false
	}
	return id, true
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

// queryTime parses an optional date query parameter, accepting either a
// date or a full RFC 3339 timestamp. A missing parameter yields the zero
// time, which leaves that end of the range unbounded.
func queryTime(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a date or RFC 3339 timestamp"})
		return time.Time{}, false
	}
	return t, true
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsInvalidTrade(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
