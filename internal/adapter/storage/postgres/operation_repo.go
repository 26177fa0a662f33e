package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// OperationRepo implements ports.OperationRepository.
type OperationRepo struct {
	pool Pool
}

// NewOperationRepo creates a new OperationRepo.
func NewOperationRepo(pool Pool) *OperationRepo {
	return &OperationRepo{pool: pool}
}

// Create appends an operation record inside the given transaction.
// The serial id and the commit-time timestamp come back from the store
// and are written into op.
func (r *OperationRepo) Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	query := `INSERT INTO operations (wallet_id, operation_type, amount, timestamp)
		VALUES ($1, $2, $3, NOW())
		RETURNING operation_id, timestamp`

	err := tx.QueryRow(ctx, query, op.WalletID, op.Type, op.Amount).
		Scan(&op.ID, &op.Timestamp)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}
