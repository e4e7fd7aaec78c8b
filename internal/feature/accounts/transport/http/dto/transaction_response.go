package dto

import (
	"trading_backend/internal/feature/accounts/domain/entity"
	"trading_backend/internal/shared/pagination"
)

// TransactionResponse is one audit-log entry of an account.
type TransactionResponse struct {
	TimestampUTC string `json:"timestampUtc"`
	Kind         string `json:"kind"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	Balance      string `json:"balance"`
}

// FromTransaction converts a domain transaction into its API shape.
func FromTransaction(t entity.Transaction) TransactionResponse {
	return TransactionResponse{
		TimestampUTC: t.TimestampUTC.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Kind:         t.Kind.String(),
		Description:  t.Description,
		Amount:       t.Amount.StringFixed(2),
		Balance:      t.Balance.StringFixed(2),
	}
}

// TransactionPage converts a page of domain transactions into its API shape.
func TransactionPage(page pagination.Page[entity.Transaction]) pagination.Page[TransactionResponse] {
	items := make([]TransactionResponse, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, FromTransaction(t))
	}
	return pagination.Page[TransactionResponse]{
		Items:          items,
		PageNumber:     page.PageNumber,
		PageSize:       page.PageSize,
		TotalPageCount: page.TotalPageCount,
		TotalRowCount:  page.TotalRowCount,
	}
}
