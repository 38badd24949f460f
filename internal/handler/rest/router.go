package hrest

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the REST surface.
func NewRouter(payment *PaymentHandler, wallet *WalletHandler, admin *AdminHandler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", payment.CreatePayment)
		r.Get("/", payment.ListTransactions)
		r.Get("/purchases", payment.ListPurchases)
		r.Get("/ref/{reference}", payment.GetTransactionByRef)
		r.Get("/{id}/splits", payment.GetSplits)
	})

	r.Route("/wallet", func(r chi.Router) {
		r.Get("/", wallet.GetWallet)
		r.Route("/withdrawals", func(r chi.Router) {
			r.Post("/", wallet.RequestWithdrawal)
			r.Get("/", wallet.ListWithdrawals)
			r.Patch("/{id}", wallet.UpdateWithdrawalStatus)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/settings", admin.ListSettings)
		r.Put("/settings", admin.UpsertSetting)
		r.Get("/reports/commissions", admin.CommissionReport)
	})

	return r
}
