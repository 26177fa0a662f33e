package handler

import (
	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet-related endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
	ledgerSvc ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, ledgerSvc ports.LedgerService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, ledgerSvc: ledgerSvc}
}

// CreateWallet handles POST /api/v1/wallets.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	wallet, err := h.walletSvc.Create(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToWalletResponse(wallet))
}

// ApplyOperation handles POST /api/v1/wallets/:wallet_uuid/operation.
func (h *WalletHandler) ApplyOperation(c *gin.Context) {
	walletID, err := parseWalletUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrUnprocessable(err.Error()))
		return
	}

	result, err := h.ledgerSvc.Apply(c.Request.Context(), walletID, ports.OperationRequest{
		Type:   domain.OperationType(req.OperationType),
		Amount: req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToOperationResponse(result))
}

// GetBalance handles GET /api/v1/wallets/:wallet_uuid.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	walletID, err := parseWalletUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet, err := h.walletSvc.GetBalance(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToWalletResponse(wallet))
}

// ListWallets handles GET /api/v1/wallets.
func (h *WalletHandler) ListWallets(c *gin.Context) {
	wallets, err := h.walletSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, dto.ToWalletResponse(&wallets[i]))
	}

	response.OK(c, dto.WalletListResponse{Wallets: items, Count: len(items)})
}

// DeleteWallet handles DELETE /api/v1/wallets/:wallet_uuid.
func (h *WalletHandler) DeleteWallet(c *gin.Context) {
	walletID, err := parseWalletUUID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.walletSvc.Delete(c.Request.Context(), walletID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.DeleteResponse{
		Message:    "Wallet deleted",
		WalletUUID: walletID.String(),
	})
}

// parseWalletUUID extracts and validates the wallet_uuid path parameter.
func parseWalletUUID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("wallet_uuid"))
	if err != nil {
		return uuid.Nil, apperror.ErrUnprocessable("wallet_uuid must be a valid UUID")
	}
	return id, nil
}
