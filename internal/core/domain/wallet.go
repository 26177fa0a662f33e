package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is an account holding a non-negative monetary balance.
// The balance is mutated only inside a store transaction that holds the
// wallet's row lock; outside a transaction it always equals the net sum
// of the wallet's committed operations.
type Wallet struct {
	ID        uuid.UUID       `json:"wallet_uuid"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewWallet creates a wallet with a fresh random id and a zero balance.
func NewWallet() *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.New(),
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanWithdraw reports whether the wallet holds enough funds for amount.
func (w *Wallet) CanWithdraw(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(w.Balance)
}
