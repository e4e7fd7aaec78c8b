// Package dto defines the request and response payloads of the accounts API.
package dto

// CreateAccountRequest is the payload for opening a new trading account.
type CreateAccountRequest struct {
	// Name is the display name of the account.
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateAccountResponse returns the identifier of the newly opened account.
type CreateAccountResponse struct {
	ID string `json:"id"`
}
