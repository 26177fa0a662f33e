package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
	ops     *inMemoryOperationRepo
}

func newInMemoryWalletRepo(ops *inMemoryOperationRepo) *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet), ops: ops}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) List(ctx context.Context) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Wallet, 0, len(r.wallets))
	for _, w := range r.wallets {
		result = append(result, *w)
	}
	return result, nil
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance = balance
	return nil
}

func (r *inMemoryWalletRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wallets[id]; !ok {
		return false, nil
	}
	delete(r.wallets, id)
	r.ops.deleteByWallet(id)
	return true, nil
}

// --- In-Memory Operation Repo ---

type inMemoryOperationRepo struct {
	mu     sync.Mutex
	nextID int64
	ops    []domain.Operation
}

func newInMemoryOperationRepo() *inMemoryOperationRepo {
	return &inMemoryOperationRepo{}
}

func (r *inMemoryOperationRepo) Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	op.ID = r.nextID
	if op.Timestamp.IsZero() {
		op.Timestamp = time.Now().UTC()
	}
	r.ops = append(r.ops, *op)
	return nil
}

func (r *inMemoryOperationRepo) countByWallet(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.WalletID == id {
			n++
		}
	}
	return n
}

func (r *inMemoryOperationRepo) deleteByWallet(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.ops[:0]
	for _, op := range r.ops {
		if op.WalletID != id {
			kept = append(kept, op)
		}
	}
	r.ops = kept
}

// --- In-Memory Transactor ---

// inMemoryTransactor emulates row locking with a single mutex: Begin blocks
// until the previous transaction commits or rolls back, giving the same
// one-at-a-time ordering the database provides with SELECT ... FOR UPDATE.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &lockTx{release: &t.mu}, nil
}

// lockTx holds the transactor lock until Commit or Rollback.
type lockTx struct {
	release *sync.Mutex
	once    sync.Once
}

func (t *lockTx) done() {
	t.once.Do(t.release.Unlock)
}

func (t *lockTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *lockTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *lockTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *lockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *lockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *lockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *lockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *lockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *lockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *lockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *lockTx) Conn() *pgx.Conn { return nil }
