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

type PaymentHandler struct {
	settlementUC *usecase.SettlementUsecase
	validate     *validator.Validate
}

func NewPaymentHandler(settlementUC *usecase.SettlementUsecase) *PaymentHandler {
	return &PaymentHandler{
		settlementUC: settlementUC,
		validate:     validator.New(),
	}
}

// CreatePayment settles a purchase. POST /payments
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "missing required fields")
		return
	}

	res, err := h.settlementUC.SettlePurchase(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

// ListTransactions returns the caller's recent ledger rows.
// GET /payments?user_id=
func (h *PaymentHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(w, http.StatusBadRequest, "user_id required")
		return
	}

	history, err := h.settlementUC.History(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"transactions": history})
}

// GetTransactionByRef resolves a reference code to its ledger row.
// GET /payments/ref/{reference}
func (h *PaymentHandler) GetTransactionByRef(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "reference")

	txn, err := h.settlementUC.GetByReference(r.Context(), ref)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, txn)
}

// GetSplits returns the commission breakdown of one transaction.
// GET /payments/{id}/splits
func (h *PaymentHandler) GetSplits(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	splits, err := h.settlementUC.Splits(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"splits": splits})
}

// ListPurchases returns the caller's purchase records.
// GET /payments/purchases?user_id=
func (h *PaymentHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(w, http.StatusBadRequest, "user_id required")
		return
	}

	purchases, err := h.settlementUC.Purchases(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"purchases": purchases})
}
