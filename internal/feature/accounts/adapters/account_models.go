// Package adapters provides the persistence implementations for the
// accounts feature.
package adapters

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trading_backend/internal/feature/accounts/domain/entity"
)

// AccountModel is the persistence shape of the account aggregate root.
type AccountModel struct {
	ID        string          `gorm:"type:uuid;primaryKey"`
	UserID    string          `gorm:"type:uuid;index;not null"`
	Name      string          `gorm:"size:255;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric;not null"`
	LastNonce int64           `gorm:"not null"`

	Positions    []PositionModel    `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
	Transactions []TransactionModel `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name used by GORM.
func (AccountModel) TableName() string { return "accounts" }

// PositionModel is the persistence shape of a holding.
type PositionModel struct {
	ID           string          `gorm:"type:uuid;primaryKey"`
	AccountID    string          `gorm:"type:uuid;index;not null"`
	Symbol       string          `gorm:"size:16;not null"`
	Quantity     int64           `gorm:"not null"`
	AveragePrice decimal.Decimal `gorm:"type:numeric;not null"`
}

// TableName overrides the table name used by GORM.
func (PositionModel) TableName() string { return "positions" }

// TransactionModel is the persistence shape of one audit-log entry.
// Rows are append-only; they are never updated.
type TransactionModel struct {
	ID           string          `gorm:"type:uuid;primaryKey"`
	AccountID    string          `gorm:"type:uuid;index;not null"`
	TimestampUTC time.Time       `gorm:"index;not null"`
	Kind         int             `gorm:"not null"`
	Description  string          `gorm:"size:255;not null"`
	Amount       decimal.Decimal `gorm:"type:numeric;not null"`
	Balance      decimal.Decimal `gorm:"type:numeric;not null"`
}

// TableName overrides the table name used by GORM.
func (TransactionModel) TableName() string { return "transactions" }

func toAccountModel(a *entity.Account) AccountModel {
	m := AccountModel{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		Name:      a.Name,
		Balance:   a.Balance,
		LastNonce: a.LastNonce,
	}
	for _, p := range a.Positions {
		m.Positions = append(m.Positions, PositionModel{
			ID:           p.ID.String(),
			AccountID:    p.AccountID.String(),
			Symbol:       p.Symbol,
			Quantity:     p.Quantity,
			AveragePrice: p.AveragePrice,
		})
	}
	for _, t := range a.Transactions {
		m.Transactions = append(m.Transactions, TransactionModel{
			ID:           t.ID.String(),
			AccountID:    t.AccountID.String(),
			TimestampUTC: t.TimestampUTC,
			Kind:         int(t.Kind),
			Description:  t.Description,
			Amount:       t.Amount,
			Balance:      t.Balance,
		})
	}
	return m
}

func toAccountEntity(m *AccountModel) (*entity.Account, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}

	positions := make([]entity.Position, 0, len(m.Positions))
	for _, p := range m.Positions {
		pid, err := uuid.Parse(p.ID)
		if err != nil {
			return nil, err
		}
		positions = append(positions, entity.Position{
			ID:           pid,
			AccountID:    id,
			Symbol:       p.Symbol,
			Quantity:     p.Quantity,
			AveragePrice: p.AveragePrice,
		})
	}

	return entity.Rehydrate(id, userID, m.Name, m.Balance, m.LastNonce, positions, nil), nil
}

func toTransactionEntity(m *TransactionModel) (entity.Transaction, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return entity.Transaction{}, err
	}
	accountID, err := uuid.Parse(m.AccountID)
	if err != nil {
		return entity.Transaction{}, err
	}
	return entity.Transaction{
		ID:           id,
		AccountID:    accountID,
		TimestampUTC: m.TimestampUTC,
		Kind:         entity.TransactionKind(m.Kind),
		Description:  m.Description,
		Amount:       m.Amount,
		Balance:      m.Balance,
	}, nil
}
