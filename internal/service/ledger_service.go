package service

import (
	"context"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl applies deposits and withdrawals atomically. Each call
// runs in its own database transaction and takes the wallet's row lock, so
// concurrent operations on the same wallet execute one at a time.
type LedgerServiceImpl struct {
	walletRepo ports.WalletRepository
	opRepo     ports.OperationRepository
	transactor ports.DBTransactor
	cache      ports.BalanceCache
	log        zerolog.Logger
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	opRepo ports.OperationRepository,
	transactor ports.DBTransactor,
	cache ports.BalanceCache,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo: walletRepo,
		opRepo:     opRepo,
		transactor: transactor,
		cache:      cache,
		log:        log,
	}
}

// Apply validates req, locks the wallet row, mutates the balance and appends
// the operation record in a single transaction. On any failure the
// transaction is rolled back and the wallet is untouched.
func (s *LedgerServiceImpl) Apply(ctx context.Context, walletID uuid.UUID, req ports.OperationRequest) (*ports.OperationResult, error) {
	// Validate before touching the database; invalid requests must not
	// acquire the row lock.
	if !req.Type.Valid() {
		return nil, apperror.ErrUnprocessable("operation_type must be DEPOSIT or WITHDRAW")
	}
	if !domain.ValidAmount(req.Amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	newBalance := wallet.Balance
	switch req.Type {
	case domain.OperationTypeDeposit:
		newBalance = newBalance.Add(req.Amount)
	case domain.OperationTypeWithdraw:
		if !wallet.CanWithdraw(req.Amount) {
			return nil, apperror.ErrInsufficientFunds()
		}
		newBalance = newBalance.Sub(req.Amount)
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, walletID, newBalance); err != nil {
		return nil, apperror.InternalError(err)
	}

	op := &domain.Operation{
		WalletID: walletID,
		Type:     req.Type,
		Amount:   req.Amount,
	}
	if err := s.opRepo.Create(ctx, dbTx, op); err != nil {
		return nil, apperror.InternalError(err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(err)
	}

	// The commit is the source of truth; a failed invalidation only means
	// readers may see a stale balance until the TTL expires.
	if err := s.cache.Invalidate(ctx, walletID); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", walletID.String()).Msg("Failed to invalidate balance cache")
	}

	s.log.Info().
		Int64("operation_id", op.ID).
		Str("wallet_id", walletID.String()).
		Str("operation_type", string(req.Type)).
		Str("amount", req.Amount.String()).
		Str("new_balance", newBalance.String()).
		Msg("Operation applied")

	return &ports.OperationResult{
		OperationID: op.ID,
		WalletID:    walletID,
		Type:        req.Type,
		Amount:      req.Amount,
		NewBalance:  newBalance,
		Timestamp:   op.Timestamp,
	}, nil
}
