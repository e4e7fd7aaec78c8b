package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	accountdomain "trading_backend/internal/feature/accounts/domain"
	"trading_backend/internal/feature/settings/domain"
)

// mockSettingsUsecase is a func-field mock of the SettingsUsecase interface.
type mockSettingsUsecase struct {
	GetDefaultAccountSettingsFunc  func(ctx context.Context) (domain.DefaultAccountSettings, error)
	SaveDefaultAccountSettingsFunc func(ctx context.Context, settings domain.DefaultAccountSettings) error
	GetBuyCommissionsFunc          func(ctx context.Context) (accountdomain.Commissions, error)
	SaveBuyCommissionsFunc         func(ctx context.Context, commissions accountdomain.Commissions) error
	GetSellCommissionsFunc         func(ctx context.Context) (accountdomain.Commissions, error)
	SaveSellCommissionsFunc        func(ctx context.Context, commissions accountdomain.Commissions) error
}

func (m *mockSettingsUsecase) GetDefaultAccountSettings(ctx context.Context) (domain.DefaultAccountSettings, error) {
	if m.GetDefaultAccountSettingsFunc != nil {
		return m.GetDefaultAccountSettingsFunc(ctx)
	}
	return domain.DefaultAccountSettings{}, domain.ErrSettingNotFound
}

func (m *mockSettingsUsecase) SaveDefaultAccountSettings(ctx context.Context, settings domain.DefaultAccountSettings) error {
	if m.SaveDefaultAccountSettingsFunc != nil {
		return m.SaveDefaultAccountSettingsFunc(ctx, settings)
	}
	return nil
}

func (m *mockSettingsUsecase) GetBuyCommissions(ctx context.Context) (accountdomain.Commissions, error) {
	if m.GetBuyCommissionsFunc != nil {
		return m.GetBuyCommissionsFunc(ctx)
	}
	return accountdomain.Commissions{}, domain.ErrSettingNotFound
}

func (m *mockSettingsUsecase) SaveBuyCommissions(ctx context.Context, commissions accountdomain.Commissions) error {
	if m.SaveBuyCommissionsFunc != nil {
		return m.SaveBuyCommissionsFunc(ctx, commissions)
	}
	return nil
}

func (m *mockSettingsUsecase) GetSellCommissions(ctx context.Context) (accountdomain.Commissions, error) {
	if m.GetSellCommissionsFunc != nil {
		return m.GetSellCommissionsFunc(ctx)
	}
	return accountdomain.Commissions{}, domain.ErrSettingNotFound
}

func (m *mockSettingsUsecase) SaveSellCommissions(ctx context.Context, commissions accountdomain.Commissions) error {
	if m.SaveSellCommissionsFunc != nil {
		return m.SaveSellCommissionsFunc(ctx, commissions)
	}
	return nil
}

func newTestRouter(h *SettingsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/settings/accounts", h.GetDefaultAccountSettings)
	r.PUT("/settings/accounts", h.SaveDefaultAccountSettings)
	r.GET("/settings/commissions/buy", h.GetBuyCommissions)
	r.PUT("/settings/commissions/buy", h.SaveBuyCommissions)
	r.GET("/settings/commissions/sell", h.GetSellCommissions)
	r.PUT("/settings/commissions/sell", h.SaveSellCommissions)
	return r
}

func TestSettingsHandler_GetDefaultAccountSettings(t *testing.T) {
	t.Run("returns stored settings", func(t *testing.T) {
		mockUC := &mockSettingsUsecase{
			GetDefaultAccountSettingsFunc: func(ctx context.Context) (domain.DefaultAccountSettings, error) {
				return domain.DefaultAccountSettings{Name: "Default", InitialBalance: decimal.NewFromInt(1000000)}, nil
			},
		}
		router := newTestRouter(NewSettingsHandler(mockUC))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/settings/accounts", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"Default","initialBalance":"1000000"}`, w.Body.String())
	})

	t.Run("missing setting maps to not found", func(t *testing.T) {
		router := newTestRouter(NewSettingsHandler(&mockSettingsUsecase{}))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/settings/accounts", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSettingsHandler_SaveCommissions(t *testing.T) {
	t.Run("valid schedule is saved", func(t *testing.T) {
		var saved accountdomain.Commissions
		mockUC := &mockSettingsUsecase{
			SaveBuyCommissionsFunc: func(ctx context.Context, commissions accountdomain.Commissions) error {
				saved = commissions
				return nil
			},
		}
		router := newTestRouter(NewSettingsHandler(mockUC))

		body := `{"fixed":[{"min":0,"max":1000000,"value":"50"}],"percentage":[{"min":0,"max":1000000,"value":"1"}]}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/settings/commissions/buy", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Len(t, saved.Fixed, 1)
		assert.True(t, saved.Fixed[0].Value.Equal(decimal.NewFromInt(50)))
	})

	t.Run("validation failure maps to bad request", func(t *testing.T) {
		mockUC := &mockSettingsUsecase{
			SaveSellCommissionsFunc: func(ctx context.Context, commissions accountdomain.Commissions) error {
				return domain.NewValidation("The fixed commission table must contain at least one range.")
			},
		}
		router := newTestRouter(NewSettingsHandler(mockUC))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/settings/commissions/sell", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body maps to bad request", func(t *testing.T) {
		router := newTestRouter(NewSettingsHandler(&mockSettingsUsecase{}))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/settings/commissions/buy", strings.NewReader(`{not json`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
