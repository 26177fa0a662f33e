package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Ledger Business Logic (WAL) ----

func ErrInsufficientFunds() *AppError {
	return New("WAL_001", "Insufficient funds", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_002", "Amount must be positive with at most two decimal places", http.StatusBadRequest)
}

func ErrWalletNotFound() *AppError {
	return New("WAL_003", "Wallet not found", http.StatusNotFound)
}

// ErrUnprocessable reports a request that fails schema validation
// (malformed body, unknown operation type, bad wallet id).
func ErrUnprocessable(message string) *AppError {
	return New("WAL_004", message, http.StatusUnprocessableEntity)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps a store or other unexpected failure. The enclosing
// transaction is always rolled back before this is reported, so the
// caller may safely retry the whole operation.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
