package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading_backend/internal/feature/leaderboard/usecase"
	"trading_backend/internal/platform/jwt"
	"trading_backend/internal/shared/pagination"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type mockLeaderboardUsecase struct {
	GetUsersFunc     func(ctx context.Context, currentUserID uuid.UUID, pageNumber, pageSize int) (pagination.Page[usecase.Entry], error)
	GetNeighborsFunc func(ctx context.Context, currentUserID uuid.UUID, neighborCount int) ([]usecase.Entry, error)
}

func (m *mockLeaderboardUsecase) GetUsers(ctx context.Context, currentUserID uuid.UUID, pageNumber, pageSize int) (pagination.Page[usecase.Entry], error) {
	return m.GetUsersFunc(ctx, currentUserID, pageNumber, pageSize)
}

func (m *mockLeaderboardUsecase) GetNeighbors(ctx context.Context, currentUserID uuid.UUID, neighborCount int) ([]usecase.Entry, error) {
	return m.GetNeighborsFunc(ctx, currentUserID, neighborCount)
}

func newTestRouter(uc LeaderboardUsecase, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	})

	h := NewLeaderboardHandler(uc)
	r.GET("/leaderboard", h.List)
	r.GET("/leaderboard/me", h.Me)
	return r
}

func TestList(t *testing.T) {
	userID := uuid.New()

	t.Run("passes paging parameters through", func(t *testing.T) {
		uc := &mockLeaderboardUsecase{
			GetUsersFunc: func(ctx context.Context, currentUserID uuid.UUID, pageNumber, pageSize int) (pagination.Page[usecase.Entry], error) {
				assert.Equal(t, userID, currentUserID)
				assert.Equal(t, 3, pageNumber)
				assert.Equal(t, 10, pageSize)
				entries := []usecase.Entry{{
					Rank:          21,
					DisplayName:   "Trader",
					ProfitPercent: decimal.NewFromInt(5),
				}}
				return pagination.NewPage(entries, pageNumber, pageSize, 21), nil
			},
		}
		r := newTestRouter(uc, userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/leaderboard?pageNumber=3&pageSize=10", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"rank":21`)
		assert.Contains(t, w.Body.String(), `"totalRowCount":21`)
	})

	t.Run("defaults to page 1 of 25", func(t *testing.T) {
		uc := &mockLeaderboardUsecase{
			GetUsersFunc: func(ctx context.Context, currentUserID uuid.UUID, pageNumber, pageSize int) (pagination.Page[usecase.Entry], error) {
				assert.Equal(t, 1, pageNumber)
				assert.Equal(t, 25, pageSize)
				return pagination.NewPage([]usecase.Entry{}, pageNumber, pageSize, 0), nil
			},
		}
		r := newTestRouter(uc, userID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects out-of-range page size", func(t *testing.T) {
		uc := &mockLeaderboardUsecase{
			GetUsersFunc: func(ctx context.Context, currentUserID uuid.UUID, pageNumber, pageSize int) (pagination.Page[usecase.Entry], error) {
				t.Fatal("usecase must not be called")
				return pagination.Page[usecase.Entry]{}, nil
			},
		}
		r := newTestRouter(uc, userID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard?pageSize=500", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("usecase failure maps to 500", func(t *testing.T) {
		uc := &mockLeaderboardUsecase{
			GetUsersFunc: func(ctx context.Context, currentUserID uuid.UUID, pageNumber, pageSize int) (pagination.Page[usecase.Entry], error) {
				return pagination.Page[usecase.Entry]{}, errors.New("quote lookup failed")
			},
		}
		r := newTestRouter(uc, userID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestMe(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the neighbor window", func(t *testing.T) {
		uc := &mockLeaderboardUsecase{
			GetNeighborsFunc: func(ctx context.Context, currentUserID uuid.UUID, neighborCount int) ([]usecase.Entry, error) {
				assert.Equal(t, userID, currentUserID)
				assert.Equal(t, 5, neighborCount)
				return []usecase.Entry{
					{Rank: 4, DisplayName: "Above"},
					{Rank: 5, DisplayName: "Me", IsCurrentUser: true},
					{Rank: 6, DisplayName: "Below"},
				}, nil
			},
		}
		r := newTestRouter(uc, userID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard/me?neighborCount=5", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"isCurrentUser":true`)
		assert.Contains(t, w.Body.String(), `"displayName":"Above"`)
	})

	t.Run("rejects negative neighbor count", func(t *testing.T) {
		uc := &mockLeaderboardUsecase{
			GetNeighborsFunc: func(ctx context.Context, currentUserID uuid.UUID, neighborCount int) ([]usecase.Entry, error) {
				t.Fatal("usecase must not be called")
				return nil, nil
			},
		}
		r := newTestRouter(uc, userID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard/me?neighborCount=-1", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unranked user maps to 404", func(t *testing.T) {
		uc := &mockLeaderboardUsecase{
			GetNeighborsFunc: func(ctx context.Context, currentUserID uuid.UUID, neighborCount int) ([]usecase.Entry, error) {
				return nil, usecase.ErrUserNotRanked
			},
		}
		r := newTestRouter(uc, userID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard/me", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
