package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType is the kind of monetary operation applied to a wallet.
type OperationType string

const (
	OperationTypeDeposit  OperationType = "DEPOSIT"
	OperationTypeWithdraw OperationType = "WITHDRAW"
)

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	return t == OperationTypeDeposit || t == OperationTypeWithdraw
}

// Operation is an immutable, timestamped record of a single deposit or
// withdrawal. ID and Timestamp are assigned by the store at commit.
// Operations are append-only; they are removed only by the cascade when
// their wallet is deleted.
type Operation struct {
	ID        int64           `json:"operation_id"`
	WalletID  uuid.UUID       `json:"wallet_uuid"`
	Type      OperationType   `json:"operation_type"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// ValidAmount reports whether amount is a well-formed operation amount:
// strictly positive with at most two decimal places.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.Sign() > 0 && amount.Equal(amount.Round(2))
}
