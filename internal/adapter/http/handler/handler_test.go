package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerTestDeps struct {
	walletSvc *mocks.MockWalletService
	ledgerSvc *mocks.MockLedgerService
	router    *gin.Engine
}

func setupHandlerTest(t *testing.T) handlerTestDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	walletSvc := mocks.NewMockWalletService(ctrl)
	ledgerSvc := mocks.NewMockLedgerService(ctrl)

	router := SetupRouter(RouterDeps{
		WalletSvc: walletSvc,
		LedgerSvc: ledgerSvc,
		Logger:    zerolog.Nop(),
	})
	return handlerTestDeps{walletSvc: walletSvc, ledgerSvc: ledgerSvc, router: router}
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestCreateWallet(t *testing.T) {
	deps := setupHandlerTest(t)
	wallet := &domain.Wallet{
		ID:        uuid.New(),
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}

	deps.walletSvc.EXPECT().Create(gomock.Any()).Return(wallet, nil)

	w, env := doRequest(t, deps.router, http.MethodPost, "/api/v1/wallets", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, env.RequestID)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, wallet.ID.String(), data["wallet_uuid"])
	assert.Equal(t, "0.00", data["balance"])
}

func TestGetBalance(t *testing.T) {
	deps := setupHandlerTest(t)
	wallet := &domain.Wallet{
		ID:      uuid.New(),
		Balance: decimal.RequireFromString("150.75"),
	}

	deps.walletSvc.EXPECT().GetBalance(gomock.Any(), wallet.ID).Return(wallet, nil)

	w, env := doRequest(t, deps.router, http.MethodGet, "/api/v1/wallets/"+wallet.ID.String(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "150.75", data["balance"])
}

func TestGetBalance_NotFound(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	deps.walletSvc.EXPECT().GetBalance(gomock.Any(), walletID).Return(nil, apperror.ErrWalletNotFound())

	w, env := doRequest(t, deps.router, http.MethodGet, "/api/v1/wallets/"+walletID.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "WAL_003", env.ErrorCode)
}

func TestGetBalance_InvalidUUID(t *testing.T) {
	deps := setupHandlerTest(t)

	// No service expectation: the handler rejects the path parameter.
	w, env := doRequest(t, deps.router, http.MethodGet, "/api/v1/wallets/not-a-uuid", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "WAL_004", env.ErrorCode)
}

func TestApplyOperation_Deposit(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	deps.ledgerSvc.EXPECT().
		Apply(gomock.Any(), walletID, gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID, req ports.OperationRequest) (*ports.OperationResult, error) {
			assert.Equal(t, domain.OperationTypeDeposit, req.Type)
			assert.True(t, req.Amount.Equal(decimal.RequireFromString("1000.50")))
			return &ports.OperationResult{
				OperationID: 7,
				WalletID:    id,
				Type:        req.Type,
				Amount:      req.Amount,
				NewBalance:  decimal.RequireFromString("1000.50"),
				Timestamp:   time.Now().UTC(),
			}, nil
		})

	w, env := doRequest(t, deps.router, http.MethodPost,
		"/api/v1/wallets/"+walletID.String()+"/operation",
		`{"operation_type":"DEPOSIT","amount":1000.50}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, float64(7), data["operation_id"])
	assert.Equal(t, "DEPOSIT", data["operation_type"])
	assert.Equal(t, "1000.50", data["balance"])
}

func TestApplyOperation_AmountAsString(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	deps.ledgerSvc.EXPECT().
		Apply(gomock.Any(), walletID, gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID, req ports.OperationRequest) (*ports.OperationResult, error) {
			assert.True(t, req.Amount.Equal(decimal.RequireFromString("25.99")))
			return &ports.OperationResult{
				WalletID:   id,
				Type:       req.Type,
				Amount:     req.Amount,
				NewBalance: req.Amount,
				Timestamp:  time.Now().UTC(),
			}, nil
		})

	w, _ := doRequest(t, deps.router, http.MethodPost,
		"/api/v1/wallets/"+walletID.String()+"/operation",
		`{"operation_type":"DEPOSIT","amount":"25.99"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplyOperation_InsufficientFunds(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	deps.ledgerSvc.EXPECT().
		Apply(gomock.Any(), walletID, gomock.Any()).
		Return(nil, apperror.ErrInsufficientFunds())

	w, env := doRequest(t, deps.router, http.MethodPost,
		"/api/v1/wallets/"+walletID.String()+"/operation",
		`{"operation_type":"WITHDRAW","amount":1000}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WAL_001", env.ErrorCode)
}

func TestApplyOperation_InvalidAmount(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	deps.ledgerSvc.EXPECT().
		Apply(gomock.Any(), walletID, gomock.Any()).
		Return(nil, apperror.ErrInvalidAmount())

	w, env := doRequest(t, deps.router, http.MethodPost,
		"/api/v1/wallets/"+walletID.String()+"/operation",
		`{"operation_type":"DEPOSIT","amount":-5}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WAL_002", env.ErrorCode)
}

func TestApplyOperation_UnknownType(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	// Binding rejects the body before the service is consulted.
	w, env := doRequest(t, deps.router, http.MethodPost,
		"/api/v1/wallets/"+walletID.String()+"/operation",
		`{"operation_type":"TRANSFER","amount":10}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "WAL_004", env.ErrorCode)
}

func TestApplyOperation_MalformedBody(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	w, env := doRequest(t, deps.router, http.MethodPost,
		"/api/v1/wallets/"+walletID.String()+"/operation",
		`{"operation_type":`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "WAL_004", env.ErrorCode)
}

func TestApplyOperation_WalletNotFound(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	deps.ledgerSvc.EXPECT().
		Apply(gomock.Any(), walletID, gomock.Any()).
		Return(nil, apperror.ErrWalletNotFound())

	w, env := doRequest(t, deps.router, http.MethodPost,
		"/api/v1/wallets/"+walletID.String()+"/operation",
		`{"operation_type":"DEPOSIT","amount":10}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "WAL_003", env.ErrorCode)
}

func TestListWallets(t *testing.T) {
	deps := setupHandlerTest(t)
	wallets := []domain.Wallet{
		{ID: uuid.New(), Balance: decimal.RequireFromString("1.00")},
		{ID: uuid.New(), Balance: decimal.RequireFromString("2.50")},
	}

	deps.walletSvc.EXPECT().List(gomock.Any()).Return(wallets, nil)

	w, env := doRequest(t, deps.router, http.MethodGet, "/api/v1/wallets", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Wallets []map[string]any `json:"wallets"`
		Count   int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Count)
	assert.Len(t, data.Wallets, 2)
	assert.Equal(t, "2.50", data.Wallets[1]["balance"])
}

func TestListWallets_Empty(t *testing.T) {
	deps := setupHandlerTest(t)

	deps.walletSvc.EXPECT().List(gomock.Any()).Return([]domain.Wallet{}, nil)

	w, env := doRequest(t, deps.router, http.MethodGet, "/api/v1/wallets", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Wallets []map[string]any `json:"wallets"`
		Count   int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 0, data.Count)
	assert.NotNil(t, data.Wallets, "wallets renders as [] not null")
}

func TestDeleteWallet(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	deps.walletSvc.EXPECT().Delete(gomock.Any(), walletID).Return(nil)

	w, env := doRequest(t, deps.router, http.MethodDelete, "/api/v1/wallets/"+walletID.String(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, walletID.String(), data["wallet_uuid"])
}

func TestDeleteWallet_NotFound(t *testing.T) {
	deps := setupHandlerTest(t)
	walletID := uuid.New()

	deps.walletSvc.EXPECT().Delete(gomock.Any(), walletID).Return(apperror.ErrWalletNotFound())

	w, env := doRequest(t, deps.router, http.MethodDelete, "/api/v1/wallets/"+walletID.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "WAL_003", env.ErrorCode)
}

func TestUnknownError_Maps500(t *testing.T) {
	deps := setupHandlerTest(t)

	deps.walletSvc.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))

	w, env := doRequest(t, deps.router, http.MethodGet, "/api/v1/wallets", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "SYS_000", env.ErrorCode)
}

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck(t *testing.T) {
	router := SetupRouter(RouterDeps{
		WalletSvc: nil,
		LedgerSvc: nil,
		HealthCheckers: []ports.HealthChecker{
			stubChecker{name: "postgresql"},
			stubChecker{name: "redis"},
		},
		Logger: zerolog.Nop(),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestHealthCheck_Degraded(t *testing.T) {
	router := SetupRouter(RouterDeps{
		HealthCheckers: []ports.HealthChecker{
			stubChecker{name: "postgresql"},
			stubChecker{name: "redis", err: errors.New("connection refused")},
		},
		Logger: zerolog.Nop(),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}
