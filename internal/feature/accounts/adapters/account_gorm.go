package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trading_backend/internal/feature/accounts/domain"
	"trading_backend/internal/feature/accounts/domain/entity"
	"trading_backend/internal/feature/accounts/usecase"
)

// accountGorm is the GORM implementation of the AccountRepository interface.
type accountGorm struct {
	db *gorm.DB
}

// Compile-time check that accountGorm implements AccountRepository.
var _ usecase.AccountRepository = (*accountGorm)(nil)

// NewAccountRepository creates a new GORM-backed account repository.
func NewAccountRepository(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// Save persists the aggregate. Positions are replaced wholesale so that
// closed positions disappear; transactions are append-only and inserted
// with a do-nothing conflict clause, so already stored entries are left
// untouched.
func (r *accountGorm) Save(ctx context.Context, account *entity.Account) error {
	m := toAccountModel(account)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := m
		row.Positions = nil
		row.Transactions = nil
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		if err := tx.Where("account_id = ?", m.ID).Delete(&PositionModel{}).Error; err != nil {
			return err
		}
		if len(m.Positions) > 0 {
			if err := tx.Create(&m.Positions).Error; err != nil {
				return err
			}
		}

		if len(m.Transactions) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m.Transactions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset persists the aggregate after a reset: all stored positions and
// transactions are discarded before the fresh state is written.
func (r *accountGorm) Reset(ctx context.Context, account *entity.Account) error {
	id := account.ID.String()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&PositionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&TransactionModel{}).Error; err != nil {
			return err
		}

		m := toAccountModel(account)
		row := m
		row.Positions = nil
		row.Transactions = nil
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		if len(m.Transactions) > 0 {
			if err := tx.Create(&m.Transactions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID rehydrates an account with its positions. The transaction log
// is not loaded here; it is paged separately via ListTransactions.
func (r *accountGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var m AccountModel
	err := r.db.WithContext(ctx).Preload("Positions").Where("id = ?", id.String()).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return toAccountEntity(&m)
}

// ListByUser returns all accounts owned by the user, with positions.
func (r *accountGorm) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var models []AccountModel
	err := r.db.WithContext(ctx).Preload("Positions").
		Where("user_id = ?", userID.String()).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]*entity.Account, 0, len(models))
	for i := range models {
		account, err := toAccountEntity(&models[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Delete removes the account together with its positions and transactions.
func (r *accountGorm) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id.String()).Delete(&PositionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id.String()).Delete(&TransactionModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id.String()).Delete(&AccountModel{}).Error
	})
}

// ListTransactions returns one page of the account's transactions ordered
// newest first, plus the total row count for the filter.
func (r *accountGorm) ListTransactions(ctx context.Context, accountID uuid.UUID, from, to time.Time, pageNumber, pageSize int) ([]entity.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&TransactionModel{}).Where("account_id = ?", accountID.String())
	if !from.IsZero() {
		q = q.Where("timestamp_utc >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("timestamp_utc <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []TransactionModel
	err := q.Order("timestamp_utc desc").
		Offset((pageNumber - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	transactions := make([]entity.Transaction, 0, len(models))
	for i := range models {
		txn, err := toTransactionEntity(&models[i])
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, total, nil
}
