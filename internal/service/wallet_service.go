package service

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// balanceCacheTTL bounds how stale a cached balance can get when an
// invalidation is lost.
const balanceCacheTTL = 30 * time.Second

// WalletServiceImpl manages wallet lifecycle and balance queries.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	cache      ports.BalanceCache
	log        zerolog.Logger
}

// NewWalletService creates a new wallet service.
func NewWalletService(walletRepo ports.WalletRepository, cache ports.BalanceCache, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		cache:      cache,
		log:        log,
	}
}

// Create provisions a new wallet with a zero balance.
func (s *WalletServiceImpl) Create(ctx context.Context) (*domain.Wallet, error) {
	wallet := domain.NewWallet()
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.InternalError(err)
	}

	s.log.Info().Str("wallet_id", wallet.ID.String()).Msg("Wallet created")
	return wallet, nil
}

// GetBalance returns the wallet with its current balance. The read goes
// through the cache and does not take the row lock, so it may trail a
// concurrent mutation by up to balanceCacheTTL.
func (s *WalletServiceImpl) GetBalance(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	balance, found, err := s.cache.Get(ctx, id)
	if err != nil {
		// Fall through to the database on cache failure.
		s.log.Warn().Err(err).Str("wallet_id", id.String()).Msg("Balance cache read failed")
	} else if found {
		return &domain.Wallet{ID: id, Balance: balance}, nil
	}

	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	if err := s.cache.Set(ctx, id, wallet.Balance, balanceCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", id.String()).Msg("Balance cache write failed")
	}

	return wallet, nil
}

// List returns all wallets.
func (s *WalletServiceImpl) List(ctx context.Context) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return wallets, nil
}

// Delete removes the wallet together with its operation history.
func (s *WalletServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.walletRepo.Delete(ctx, id)
	if err != nil {
		return apperror.InternalError(err)
	}
	if !found {
		return apperror.ErrWalletNotFound()
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", id.String()).Msg("Failed to invalidate balance cache")
	}

	s.log.Info().Str("wallet_id", id.String()).Msg("Wallet deleted")
	return nil
}
