// Package dto defines the request/response shapes of the HTTP API.
package dto

import (
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/shopspring/decimal"
)

// OperationRequest is the body of POST /api/v1/wallets/:wallet_uuid/operation.
// Amount accepts both JSON numbers and numeric strings; precision is
// preserved either way.
type OperationRequest struct {
	OperationType string          `json:"operation_type" binding:"required,oneof=DEPOSIT WITHDRAW"`
	Amount        decimal.Decimal `json:"amount"`
}

// WalletResponse describes a single wallet. Balances are rendered as
// fixed two-decimal strings so clients never see float artifacts.
type WalletResponse struct {
	WalletUUID string `json:"wallet_uuid"`
	Balance    string `json:"balance"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// WalletListResponse wraps the wallet collection.
type WalletListResponse struct {
	Wallets []WalletResponse `json:"wallets"`
	Count   int              `json:"count"`
}

// OperationResponse is the committed outcome of a deposit or withdrawal.
type OperationResponse struct {
	OperationID   int64  `json:"operation_id"`
	WalletUUID    string `json:"wallet_uuid"`
	OperationType string `json:"operation_type"`
	Amount        string `json:"amount"`
	Balance       string `json:"balance"`
	Timestamp     string `json:"timestamp"`
}

// DeleteResponse confirms a wallet deletion.
type DeleteResponse struct {
	Message    string `json:"message"`
	WalletUUID string `json:"wallet_uuid"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// ToWalletResponse converts a domain wallet to its API shape.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	resp := WalletResponse{
		WalletUUID: w.ID.String(),
		Balance:    w.Balance.StringFixed(2),
	}
	if !w.CreatedAt.IsZero() {
		resp.CreatedAt = w.CreatedAt.Format(timeLayout)
	}
	return resp
}

// ToOperationResponse converts a committed operation result to its API shape.
func ToOperationResponse(r *ports.OperationResult) OperationResponse {
	return OperationResponse{
		OperationID:   r.OperationID,
		WalletUUID:    r.WalletID.String(),
		OperationType: string(r.Type),
		Amount:        r.Amount.StringFixed(2),
		Balance:       r.NewBalance.StringFixed(2),
		Timestamp:     r.Timestamp.Format(timeLayout),
	}
}
