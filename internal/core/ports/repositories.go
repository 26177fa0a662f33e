package ports

import (
	"context"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside a transaction and rely on the row
// lock taken by GetByIDForUpdate to serialize concurrent mutators.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	// GetByID performs a non-locking read. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	// GetByIDForUpdate acquires the wallet's row lock for the lifetime of
	// tx. Returns nil, nil when absent.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	List(ctx context.Context) ([]domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
	// Delete removes the wallet; the store's FK cascade removes its
	// operations in the same atomic unit. Returns false when absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// OperationRepository defines persistence for the append-only operation log.
type OperationRepository interface {
	// Create appends an operation row inside tx and fills op.ID and
	// op.Timestamp with the store-assigned values.
	Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
