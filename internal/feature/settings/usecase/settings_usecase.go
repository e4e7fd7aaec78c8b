// Package usecase implements reading and writing the system settings that
// drive account defaults and commission schedules.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	accountdomain "trading_backend/internal/feature/accounts/domain"
	accountusecase "trading_backend/internal/feature/accounts/usecase"
	"trading_backend/internal/feature/settings/domain"
)

// Storage keys for the individual settings documents.
const (
	KeyDefaultAccountSettings = "DEFAULT_ACCOUNT_SETTINGS"
	KeyBuyCommissions         = "BUY_COMMISSIONS"
	KeySellCommissions        = "SELL_COMMISSIONS"
)

// SettingsRepository persists settings documents as JSON strings by key.
// A missing key is reported with domain.ErrSettingNotFound.
type SettingsRepository interface {
	GetByKey(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}

// SettingsUsecase reads and writes the system settings.
type SettingsUsecase struct {
	repo SettingsRepository
}

// The accounts feature consumes settings through its own provider interface.
var _ accountusecase.SettingsProvider = (*SettingsUsecase)(nil)

// NewSettingsUsecase creates a new SettingsUsecase backed by the given repository.
func NewSettingsUsecase(repo SettingsRepository) *SettingsUsecase {
	return &SettingsUsecase{repo: repo}
}

// GetDefaultAccountSettings returns the stored defaults for new accounts.
func (u *SettingsUsecase) GetDefaultAccountSettings(ctx context.Context) (domain.DefaultAccountSettings, error) {
	var out domain.DefaultAccountSettings
	if err := u.load(ctx, KeyDefaultAccountSettings, &out); err != nil {
		return domain.DefaultAccountSettings{}, err
	}
	return out, nil
}

// SaveDefaultAccountSettings validates and stores the defaults for new accounts.
func (u *SettingsUsecase) SaveDefaultAccountSettings(ctx context.Context, settings domain.DefaultAccountSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return u.store(ctx, KeyDefaultAccountSettings, settings)
}

// GetBuyCommissions returns the commission schedule applied to purchases.
func (u *SettingsUsecase) GetBuyCommissions(ctx context.Context) (accountdomain.Commissions, error) {
	var out accountdomain.Commissions
	if err := u.load(ctx, KeyBuyCommissions, &out); err != nil {
		return accountdomain.Commissions{}, err
	}
	return out, nil
}

// SaveBuyCommissions validates and stores the commission schedule for purchases.
func (u *SettingsUsecase) SaveBuyCommissions(ctx context.Context, commissions accountdomain.Commissions) error {
	if err := domain.ValidateCommissions(commissions); err != nil {
		return err
	}
	return u.store(ctx, KeyBuyCommissions, commissions)
}

// GetSellCommissions returns the commission schedule applied to sales.
func (u *SettingsUsecase) GetSellCommissions(ctx context.Context) (accountdomain.Commissions, error) {
	var out accountdomain.Commissions
	if err := u.load(ctx, KeySellCommissions, &out); err != nil {
		return accountdomain.Commissions{}, err
	}
	return out, nil
}

// SaveSellCommissions validates and stores the commission schedule for sales.
func (u *SettingsUsecase) SaveSellCommissions(ctx context.Context, commissions accountdomain.Commissions) error {
	if err := domain.ValidateCommissions(commissions); err != nil {
		return err
	}
	return u.store(ctx, KeySellCommissions, commissions)
}

// InitialBalance returns the opening balance for new accounts.
func (u *SettingsUsecase) InitialBalance(ctx context.Context) (decimal.Decimal, error) {
	settings, err := u.GetDefaultAccountSettings(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return settings.InitialBalance, nil
}

// BuyCommissions implements the accounts settings provider.
func (u *SettingsUsecase) BuyCommissions(ctx context.Context) (accountdomain.Commissions, error) {
	return u.GetBuyCommissions(ctx)
}

// SellCommissions implements the accounts settings provider.
func (u *SettingsUsecase) SellCommissions(ctx context.Context) (accountdomain.Commissions, error) {
	return u.GetSellCommissions(ctx)
}

// SeedDefaults writes the built-in settings for any key that has no stored
// value yet. Existing values are never overwritten.
func (u *SettingsUsecase) SeedDefaults(ctx context.Context) error {
	seeds := []struct {
		key   string
		value any
	}{
		{KeyDefaultAccountSettings, domain.DefaultAccountSettings{
			Name:           "Default",
			InitialBalance: decimal.NewFromInt(1_000_000),
		}},
		{KeyBuyCommissions, accountdomain.Commissions{
			Fixed: []accountdomain.CommissionRange{
				{Min: 0, Max: 1_000_000, Value: decimal.NewFromInt(50)},
			},
			Percentage: []accountdomain.CommissionRange{
				{Min: 0, Max: 1_000_000, Value: decimal.NewFromInt(1)},
			},
		}},
		{KeySellCommissions, accountdomain.Commissions{
			Fixed: []accountdomain.CommissionRange{
				{Min: 0, Max: 1_000_000, Value: decimal.NewFromInt(50)},
			},
			Percentage: []accountdomain.CommissionRange{
				{Min: 0, Max: 1_000_000, Value: decimal.NewFromFloat(0.25)},
			},
		}},
	}

	for _, seed := range seeds {
		_, err := u.repo.GetByKey(ctx, seed.key)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrSettingNotFound) {
			return err
		}
		if err := u.store(ctx, seed.key, seed.value); err != nil {
			return err
		}
	}
	return nil
}

// load fetches a settings document and decodes it into dst. A stored value
// that no longer parses is reported as a validation failure so the admin
// surface can flag it.
func (u *SettingsUsecase) load(ctx context.Context, key string, dst any) error {
	raw, err := u.repo.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return domain.NewValidation("The stored value for %s is not valid JSON: %v.", key, err)
	}
	return nil
}

func (u *SettingsUsecase) store(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	return u.repo.Save(ctx, key, string(raw))
}
