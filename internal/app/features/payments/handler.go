// internal/app/features/payments/handler.go
package payments

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	paymentstore "github.com/dalemusser/waygo/internal/app/store/payments"
	"github.com/dalemusser/waygo/internal/app/system/httpjson"
	"github.com/dalemusser/waygo/internal/app/system/inputval"
	"github.com/dalemusser/waygo/internal/app/system/timeouts"
	"github.com/dalemusser/waygo/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Store interface {
	List(ctx context.Context) ([]models.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
	Create(ctx context.Context, p models.Payment) (models.Payment, error)
}

type Handler struct {
	Payments Store
	Log      *zap.Logger
}

func NewHandler(payments Store, logger *zap.Logger) *Handler {
	return &Handler{Payments: payments, Log: logger}
}

type paymentRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Amount string `json:"amount" validate:"required,numeric"`
}

type intentRequest struct {
	Price models.Amount `json:"price" validate:"required"`
}

type paymentResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Payment *models.Payment `json:"payment,omitempty"`
}

type intentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Amount  int64  `json:"amount"`
}

// ServeList handles GET /payments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list payments")
	defer cancel()

	list, err := h.Payments.List(ctx)
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch payments")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeByEmail handles GET /payments/{email}.
func (h *Handler) ServeByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list payments by email")
	defer cancel()

	email := chi.URLParam(r, "email")
	if u, err := url.PathUnescape(email); err == nil {
		email = u
	}
	list, err := h.Payments.ListByEmail(ctx, email)
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch payments")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeCreate handles POST /payments.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var in models.Payment
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to record payment")
		return
	}
	if err := inputval.Struct(paymentRequest{Email: in.Email, Amount: string(in.Amount)}); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to record payment")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "record payment")
	defer cancel()

	p, err := h.Payments.Create(ctx, in)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to record payment")
		return
	}
	h.Log.Info("payment recorded",
		zap.String("email", p.Email),
		zap.String("amount", string(p.Amount)),
		zap.String("transaction_id", p.TransactionID))
	httpjson.Write(w, http.StatusOK, paymentResult{Success: true, Message: "Payment recorded successfully", Payment: &p})
}

// ServeCreateIntent handles POST /create-payment-intent. No gateway is
// configured, so a valid price gets 501 with the amount in minor units.
func (h *Handler) ServeCreateIntent(w http.ResponseWriter, r *http.Request) {
	var in intentRequest
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to create payment intent")
		return
	}
	if err := inputval.Struct(in); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to create payment intent")
		return
	}
	price, err := paymentstore.ParseAmount(string(in.Price))
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to create payment intent")
		return
	}

	cents := price.Shift(2).Round(0).IntPart()
	h.Log.Warn("payment intent requested but no gateway is configured", zap.Int64("amount", cents))
	httpjson.Write(w, http.StatusNotImplemented, intentResult{
		Success: false,
		Message: fmt.Sprintf("Payment gateway not configured (amount %d)", cents),
		Amount:  cents,
	})
}
