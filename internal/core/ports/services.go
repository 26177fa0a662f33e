package ports

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService atomically applies monetary operations to wallets.
type LedgerService interface {
	// Apply validates req against the locked wallet state, persists the
	// new balance together with the operation record, and returns the
	// committed result. On any failure nothing is persisted.
	Apply(ctx context.Context, walletID uuid.UUID, req OperationRequest) (*OperationResult, error)
}

// OperationRequest holds validated input for one wallet operation.
type OperationRequest struct {
	Type   domain.OperationType
	Amount decimal.Decimal
}

// OperationResult is the committed outcome of a wallet operation.
type OperationResult struct {
	OperationID int64
	WalletID    uuid.UUID
	Type        domain.OperationType
	Amount      decimal.Decimal
	NewBalance  decimal.Decimal
	Timestamp   time.Time
}

// WalletService manages wallet lifecycle and read-only queries.
type WalletService interface {
	Create(ctx context.Context) (*domain.Wallet, error)
	GetBalance(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	List(ctx context.Context) ([]domain.Wallet, error)
	// Delete removes the wallet and all its operations. Deleting an
	// absent wallet reports a not-found error rather than succeeding.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BalanceCache is a short-lived read cache for wallet balances.
// Reads through it are non-locking and may observe slightly stale values,
// which the balance-query contract allows.
type BalanceCache interface {
	// Get returns the cached balance and true, or false on a miss.
	Get(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, bool, error)
	Set(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal, ttl time.Duration) error
	Invalidate(ctx context.Context, walletID uuid.UUID) error
}
