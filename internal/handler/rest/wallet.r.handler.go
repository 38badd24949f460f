package hrest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"settlement-service/internal/domain"
	"settlement-service/internal/usecase"
	"settlement-service/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type WalletHandler struct {
	walletUC     *usecase.WalletUsecase
	withdrawalUC *usecase.WithdrawalUsecase
	validate     *validator.Validate
}

func NewWalletHandler(walletUC *usecase.WalletUsecase, withdrawalUC *usecase.WithdrawalUsecase) *WalletHandler {
	return &WalletHandler{
		walletUC:     walletUC,
		withdrawalUC: withdrawalUC,
		validate:     validator.New(),
	}
}

// GetWallet returns the wallet with earnings aggregates, creating a zero
// wallet on first read. GET /wallet?user_id=
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(w, http.StatusBadRequest, "user_id required")
		return
	}

	stmt, err := h.walletUC.GetWallet(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stmt)
}

// RequestWithdrawal creates a pending payout request. POST /wallet/withdrawals
func (h *WalletHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req domain.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "missing required fields")
		return
	}

	wd, err := h.withdrawalUC.RequestWithdrawal(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"withdrawal_id": wd.ID,
		"status":        wd.Status,
		"message":       "Withdrawal request created",
	})
}

// ListWithdrawals returns the user's payout requests.
// GET /wallet/withdrawals?user_id=
func (h *WalletHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(w, http.StatusBadRequest, "user_id required")
		return
	}

	list, err := h.withdrawalUC.ListByUser(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"withdrawals": list})
}

type withdrawalStatusJSON struct {
	Status string `json:"status" validate:"required"`
}

// UpdateWithdrawalStatus advances the payout lifecycle.
// PATCH /wallet/withdrawals/{id}
func (h *WalletHandler) UpdateWithdrawalStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "invalid withdrawal id")
		return
	}

	var in withdrawalStatusJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "status required")
		return
	}

	wd, err := h.withdrawalUC.UpdateStatus(r.Context(), id, domain.WithdrawalStatus(in.Status))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, wd)
}
