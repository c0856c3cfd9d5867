// internal/app/features/coupons/handler.go
package coupons

import (
	"context"
	"net/http"

	"github.com/dalemusser/waygo/internal/app/system/httpjson"
	"github.com/dalemusser/waygo/internal/app/system/inputval"
	"github.com/dalemusser/waygo/internal/app/system/timeouts"
	"github.com/dalemusser/waygo/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Store interface {
	List(ctx context.Context) ([]models.Coupon, error)
	GetByID(ctx context.Context, hexID string) (models.Coupon, error)
	Create(ctx context.Context, c models.Coupon) (models.Coupon, error)
	Patch(ctx context.Context, hexID string, fields map[string]any) (models.Coupon, error)
	Delete(ctx context.Context, hexID string) error
}

type Handler struct {
	Coupons Store
	Log     *zap.Logger
}

func NewHandler(coupons Store, logger *zap.Logger) *Handler {
	return &Handler{Coupons: coupons, Log: logger}
}

type createRequest struct {
	Code         string `json:"code" validate:"required,max=32"`
	Discount     string `json:"discount" validate:"required,numeric"`
	DiscountType string `json:"discountType" validate:"omitempty,oneof=percent flat"`
}

type couponResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Coupon  *models.Coupon `json:"coupon,omitempty"`
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list coupons")
	defer cancel()

	list, err := h.Coupons.List(ctx)
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch coupons")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get coupon")
	defer cancel()

	c, err := h.Coupons.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch coupon")
		return
	}
	httpjson.Write(w, http.StatusOK, c)
}

// ServeCreate handles POST /coupons. A code already in use is 409.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var in models.Coupon
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to create coupon")
		return
	}
	if err := inputval.Struct(createRequest{Code: in.Code, Discount: string(in.Discount), DiscountType: in.DiscountType}); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to create coupon")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create coupon")
	defer cancel()

	c, err := h.Coupons.Create(ctx, in)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to create coupon")
		return
	}
	h.Log.Info("coupon created", zap.String("code", c.Code))
	httpjson.Write(w, http.StatusCreated, couponResult{Success: true, Message: "Coupon created successfully", Coupon: &c})
}

func (h *Handler) ServePatch(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := httpjson.Decode(w, r, &fields); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update coupon")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "patch coupon")
	defer cancel()

	c, err := h.Coupons.Patch(ctx, chi.URLParam(r, "id"), fields)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update coupon")
		return
	}
	httpjson.Write(w, http.StatusOK, couponResult{Success: true, Message: "Coupon updated successfully", Coupon: &c})
}

func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete coupon")
	defer cancel()

	if err := h.Coupons.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to delete coupon")
		return
	}
	httpjson.Write(w, http.StatusOK, couponResult{Success: true, Message: "Coupon deleted successfully"})
}
