package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOperationRepo(mock)
	walletID := uuid.New()
	assignedAt := time.Now().UTC().Truncate(time.Microsecond)

	op := &domain.Operation{
		WalletID: walletID,
		Type:     domain.OperationTypeDeposit,
		Amount:   decimal.RequireFromString("100.00"),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO operations").
		WithArgs(walletID, domain.OperationTypeDeposit, op.Amount).
		WillReturnRows(pgxmock.NewRows([]string{"operation_id", "timestamp"}).
			AddRow(int64(42), assignedAt))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, op)
	require.NoError(t, err)

	assert.Equal(t, int64(42), op.ID, "store-assigned id must be written back")
	assert.Equal(t, assignedAt, op.Timestamp, "store-assigned timestamp must be written back")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationRepo_Create_StoreFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOperationRepo(mock)

	op := &domain.Operation{
		WalletID: uuid.New(),
		Type:     domain.OperationTypeWithdraw,
		Amount:   decimal.RequireFromString("5.00"),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO operations").
		WithArgs(op.WalletID, op.Type, op.Amount).
		WillReturnError(errors.New("connection reset"))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, op)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert operation")
	assert.NoError(t, mock.ExpectationsWereMet())
}
