package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountdomain "trading_backend/internal/feature/accounts/domain"
	"trading_backend/internal/feature/settings/domain"
)

// mockSettingsRepository is a func-field mock of the SettingsRepository interface.
type mockSettingsRepository struct {
	GetByKeyFunc func(ctx context.Context, key string) (string, error)
	SaveFunc     func(ctx context.Context, key, value string) error
}

func (m *mockSettingsRepository) GetByKey(ctx context.Context, key string) (string, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return "", domain.ErrSettingNotFound
}

func (m *mockSettingsRepository) Save(ctx context.Context, key, value string) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, key, value)
	}
	return nil
}

// inMemorySettings is a map-backed repository for round-trip tests.
type inMemorySettings struct {
	values map[string]string
}

func newInMemorySettings() *inMemorySettings {
	return &inMemorySettings{values: map[string]string{}}
}

func (s *inMemorySettings) GetByKey(ctx context.Context, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", domain.ErrSettingNotFound
	}
	return v, nil
}

func (s *inMemorySettings) Save(ctx context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func validCommissions() accountdomain.Commissions {
	return accountdomain.Commissions{
		Fixed:      []accountdomain.CommissionRange{{Min: 0, Max: 1000000, Value: decimal.NewFromInt(50)}},
		Percentage: []accountdomain.CommissionRange{{Min: 0, Max: 1000000, Value: decimal.NewFromInt(1)}},
	}
}

func TestSettingsUsecase_DefaultAccountSettingsRoundTrip(t *testing.T) {
	uc := NewSettingsUsecase(newInMemorySettings())
	ctx := context.Background()

	in := domain.DefaultAccountSettings{Name: "Default", InitialBalance: decimal.NewFromInt(1000000)}
	require.NoError(t, uc.SaveDefaultAccountSettings(ctx, in))

	out, err := uc.GetDefaultAccountSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Default", out.Name)
	assert.True(t, out.InitialBalance.Equal(decimal.NewFromInt(1000000)))

	balance, err := uc.InitialBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1000000)))
}

func TestSettingsUsecase_SaveDefaultAccountSettings_Invalid(t *testing.T) {
	uc := NewSettingsUsecase(&mockSettingsRepository{
		SaveFunc: func(ctx context.Context, key, value string) error {
			t.Fatal("invalid settings must not be saved")
			return nil
		},
	})

	err := uc.SaveDefaultAccountSettings(context.Background(), domain.DefaultAccountSettings{
		Name:           "Default",
		InitialBalance: decimal.Zero,
	})
	assert.True(t, domain.IsValidation(err))
}

func TestSettingsUsecase_CommissionsRoundTrip(t *testing.T) {
	uc := NewSettingsUsecase(newInMemorySettings())
	ctx := context.Background()

	require.NoError(t, uc.SaveBuyCommissions(ctx, validCommissions()))

	out, err := uc.BuyCommissions(ctx)
	require.NoError(t, err)
	require.Len(t, out.Fixed, 1)
	assert.Equal(t, int64(1000000), out.Fixed[0].Max)
	assert.True(t, out.Fixed[0].Value.Equal(decimal.NewFromInt(50)))

	// Sell commissions live under their own key and stay unset.
	_, err = uc.SellCommissions(ctx)
	assert.ErrorIs(t, err, domain.ErrSettingNotFound)
}

func TestSettingsUsecase_SaveCommissions_Invalid(t *testing.T) {
	uc := NewSettingsUsecase(&mockSettingsRepository{
		SaveFunc: func(ctx context.Context, key, value string) error {
			t.Fatal("invalid commissions must not be saved")
			return nil
		},
	})
	ctx := context.Background()

	tests := []struct {
		name        string
		commissions accountdomain.Commissions
	}{
		{"empty fixed table", accountdomain.Commissions{
			Percentage: validCommissions().Percentage,
		}},
		{"empty percentage table", accountdomain.Commissions{
			Fixed: validCommissions().Fixed,
		}},
		{"inverted range", accountdomain.Commissions{
			Fixed:      []accountdomain.CommissionRange{{Min: 100, Max: 50, Value: decimal.NewFromInt(50)}},
			Percentage: validCommissions().Percentage,
		}},
		{"negative value", accountdomain.Commissions{
			Fixed:      []accountdomain.CommissionRange{{Min: 0, Max: 100, Value: decimal.NewFromInt(-1)}},
			Percentage: validCommissions().Percentage,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.SaveSellCommissions(ctx, tt.commissions)
			assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestSettingsUsecase_CorruptStoredValue(t *testing.T) {
	uc := NewSettingsUsecase(&mockSettingsRepository{
		GetByKeyFunc: func(ctx context.Context, key string) (string, error) {
			return "{not json", nil
		},
	})

	_, err := uc.GetBuyCommissions(context.Background())
	assert.True(t, domain.IsValidation(err))
}

func TestSettingsUsecase_SeedDefaults(t *testing.T) {
	repo := newInMemorySettings()
	uc := NewSettingsUsecase(repo)
	ctx := context.Background()

	require.NoError(t, uc.SeedDefaults(ctx))

	settings, err := uc.GetDefaultAccountSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.InitialBalance.Equal(decimal.NewFromInt(1000000)))

	buy, err := uc.GetBuyCommissions(ctx)
	require.NoError(t, err)
	assert.True(t, buy.Percentage[0].Value.Equal(decimal.NewFromInt(1)))

	sell, err := uc.GetSellCommissions(ctx)
	require.NoError(t, err)
	assert.True(t, sell.Percentage[0].Value.Equal(decimal.NewFromFloat(0.25)))
}

func TestSettingsUsecase_SeedDefaults_KeepsExistingValues(t *testing.T) {
	repo := newInMemorySettings()
	uc := NewSettingsUsecase(repo)
	ctx := context.Background()

	custom := domain.DefaultAccountSettings{Name: "Custom", InitialBalance: decimal.NewFromInt(50000)}
	require.NoError(t, uc.SaveDefaultAccountSettings(ctx, custom))

	require.NoError(t, uc.SeedDefaults(ctx))

	settings, err := uc.GetDefaultAccountSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Custom", settings.Name)
	assert.True(t, settings.InitialBalance.Equal(decimal.NewFromInt(50000)))
}
