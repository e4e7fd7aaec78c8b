package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading_backend/internal/feature/accounts/domain"
)

// testCommissions is the fee table used across the ledger tests:
// a flat $50 and 2% of the notional, both valid up to $10,000.
var testCommissions = domain.Commissions{
	Fixed: []domain.CommissionRange{
		{Min: 0, Max: 10000, Value: decimal.NewFromInt(50)},
	},
	Percentage: []domain.CommissionRange{
		{Min: 0, Max: 10000, Value: decimal.NewFromInt(2)},
	},
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// requireBalanced verifies the ledger invariant: the balance equals the
// signed sum of all transaction amounts, and every transaction snapshots
// the running balance at its point in the log.
func requireBalanced(t *testing.T, a *Account) {
	t.Helper()

	running := decimal.Zero
	for i, txn := range a.Transactions {
		running = running.Add(txn.Amount)
		require.True(t, txn.Balance.Equal(running),
			"transaction %d snapshot %s does not match running balance %s", i, txn.Balance, running)
	}
	require.True(t, a.Balance.Equal(running), "account balance %s does not match transaction sum %s", a.Balance, running)
}

func TestCreateNew(t *testing.T) {
	userID := uuid.New()

	account := CreateNew(userID, "Test Account", dec(5000))

	assert.Equal(t, userID, account.UserID)
	assert.True(t, account.Balance.Equal(dec(5000)))
	require.Len(t, account.Transactions, 1)
	assert.Equal(t, TransactionTransfer, account.Transactions[0].Kind)
	assert.True(t, account.Transactions[0].Amount.Equal(dec(5000)))
	assert.True(t, account.Transactions[0].Balance.Equal(dec(5000)))
	assert.Empty(t, account.Positions)
}

func TestReset(t *testing.T) {
	account := CreateNew(uuid.New(), "Test Account", dec(10000))
	require.NoError(t, account.BuyShares("AAA", 100, dec(50), testCommissions, 1))

	account.Reset(dec(5000), "Account reset")

	assert.True(t, account.Balance.Equal(dec(5000)))
	require.Len(t, account.Transactions, 1)
	assert.True(t, account.Transactions[0].Amount.Equal(dec(5000)))
	assert.Empty(t, account.Positions)
	assert.Equal(t, int64(1), account.LastNonce, "reset must not rewind the nonce watermark")
}

func TestBuyShares(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(10000))

		err := account.BuyShares("AAA", 100, dec(50), testCommissions, 1)

		require.NoError(t, err)
		// 10000 - 5000 notional - 100 (2%) - 50 fixed
		assert.True(t, account.Balance.Equal(dec(4850)), "balance is %s", account.Balance)
		require.Len(t, account.Transactions, 4)
		assert.Equal(t, TransactionBuy, account.Transactions[1].Kind)
		assert.Equal(t, TransactionCommission, account.Transactions[2].Kind)
		assert.Equal(t, TransactionCommission, account.Transactions[3].Kind)
		require.Len(t, account.Positions, 1)
		assert.Equal(t, int64(100), account.Positions[0].Quantity)
		// avg = (100*50 + 150 fees) / 100
		assert.True(t, account.Positions[0].AveragePrice.Equal(decimal.NewFromFloat(51.5)),
			"average price is %s", account.Positions[0].AveragePrice)
		requireBalanced(t, account)
	})

	t.Run("re-averages an existing position", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(100000))
		require.NoError(t, account.BuyShares("AAA", 100, dec(50), testCommissions, 1))
		require.NoError(t, account.BuyShares("AAA", 100, dec(60), testCommissions, 2))

		require.Len(t, account.Positions, 1)
		assert.Equal(t, int64(200), account.Positions[0].Quantity)
		// (100*51.5 + 100*60 + 170) / 200
		assert.True(t, account.Positions[0].AveragePrice.Equal(decimal.NewFromFloat(56.6)),
			"average price is %s", account.Positions[0].AveragePrice)
		requireBalanced(t, account)
	})

	t.Run("rejects a stale nonce", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(10000))

		err := account.BuyShares("AAA", 100, dec(50), testCommissions, 0)

		assert.True(t, domain.IsInvalidTrade(err), "expected InvalidTradeError, got %v", err)
		assert.True(t, account.Balance.Equal(dec(10000)))
		assert.Len(t, account.Transactions, 1)
	})

	t.Run("rejects when the balance is too low", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(5000))

		err := account.BuyShares("AAA", 100, dec(50), testCommissions, 1)

		require.True(t, domain.IsInvalidTrade(err), "expected InvalidTradeError, got %v", err)
		// 5150 total against a balance of 5000
		assert.Contains(t, err.Error(), "$150.00")
		assert.Empty(t, account.Positions)
		requireBalanced(t, account)
	})

	t.Run("rejects a notional above every commission range", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(100000))

		err := account.BuyShares("AAA", 1000, dec(50), testCommissions, 1)

		require.True(t, domain.IsInvalidTrade(err), "expected InvalidTradeError, got %v", err)
		assert.Contains(t, err.Error(), "$10000")
		assert.True(t, account.Balance.Equal(dec(100000)))
	})
}

func TestSellShares(t *testing.T) {
	t.Run("closing a position removes it", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(10000))
		require.NoError(t, account.BuyShares("AAA", 100, dec(50), testCommissions, 1))

		err := account.SellShares("AAA", 100, dec(50), testCommissions, 2)

		require.NoError(t, err)
		// 4850 + 5000 proceeds - 100 (2%) - 50 fixed
		assert.True(t, account.Balance.Equal(dec(9700)), "balance is %s", account.Balance)
		assert.Len(t, account.Transactions, 7)
		assert.Empty(t, account.Positions)
		requireBalanced(t, account)
	})

	t.Run("partial sell keeps the average price", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(10000))
		require.NoError(t, account.BuyShares("AAA", 100, dec(50), testCommissions, 1))
		avg := account.Positions[0].AveragePrice

		require.NoError(t, account.SellShares("AAA", 40, dec(55), testCommissions, 2))

		require.Len(t, account.Positions, 1)
		assert.Equal(t, int64(60), account.Positions[0].Quantity)
		assert.True(t, account.Positions[0].AveragePrice.Equal(avg))
		requireBalanced(t, account)
	})

	t.Run("rejects a replayed nonce", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(10000))
		require.NoError(t, account.BuyShares("AAA", 100, dec(50), testCommissions, 1))

		err := account.SellShares("AAA", 100, dec(50), testCommissions, 1)

		assert.True(t, domain.IsInvalidTrade(err), "expected InvalidTradeError, got %v", err)
		assert.True(t, account.Balance.Equal(dec(4850)))
		assert.Len(t, account.Transactions, 4)
	})

	t.Run("rejects an oversell", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(10000))
		require.NoError(t, account.BuyShares("AAA", 100, dec(50), testCommissions, 1))

		err := account.SellShares("AAA", 110, dec(50), testCommissions, 2)

		require.True(t, domain.IsInvalidTrade(err), "expected InvalidTradeError, got %v", err)
		assert.Contains(t, err.Error(), "only 100")
		assert.Equal(t, int64(100), account.Positions[0].Quantity)
	})

	t.Run("rejects a symbol that is not held", func(t *testing.T) {
		account := CreateNew(uuid.New(), "Test Account", dec(10000))

		err := account.SellShares("BBB", 10, dec(5), testCommissions, 1)

		require.True(t, domain.IsInvalidTrade(err), "expected InvalidTradeError, got %v", err)
		assert.Contains(t, err.Error(), "only 0")
	})
}

func TestTransactionDescriptions(t *testing.T) {
	account := CreateNew(uuid.New(), "Test Account", dec(10000))
	require.NoError(t, account.BuyShares("AAA", 100, dec(50), testCommissions, 1))
	require.NoError(t, account.SellShares("AAA", 100, dec(50), testCommissions, 2))

	require.Len(t, account.Transactions, 7)
	assert.Equal(t, "Purchased 100 shares of AAA for $50.00 each", account.Transactions[1].Description)
	assert.Equal(t, "Brokerage Fee 2.00%", account.Transactions[2].Description)
	assert.Equal(t, "Brokerage Fee", account.Transactions[3].Description)
	assert.Equal(t, "Sold 100 shares of AAA for $50.00 each", account.Transactions[4].Description)
	assert.Equal(t, "Brokerage Fee 2.00%", account.Transactions[5].Description)
	assert.Equal(t, "Brokerage Fee", account.Transactions[6].Description)
}

func TestRehydrate(t *testing.T) {
	id, userID := uuid.New(), uuid.New()
	positions := []Position{{ID: uuid.New(), AccountID: id, Symbol: "AAA", Quantity: 100, AveragePrice: decimal.NewFromFloat(51.5)}}

	account := Rehydrate(id, userID, "Restored", dec(4850), 7, positions, nil)

	require.NoError(t, account.SellShares("AAA", 100, dec(50), testCommissions, 8))
	assert.Empty(t, account.Positions)
	assert.True(t, account.Balance.Equal(dec(9700)))
}
