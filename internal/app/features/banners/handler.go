// internal/app/features/banners/handler.go
package banners

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
	List(ctx context.Context) ([]models.Banner, error)
	GetByID(ctx context.Context, hexID string) (models.Banner, error)
	Create(ctx context.Context, b models.Banner) (models.Banner, error)
	Patch(ctx context.Context, hexID string, fields map[string]any) (models.Banner, error)
	Replace(ctx context.Context, hexID string, b models.Banner) (models.Banner, error)
	Delete(ctx context.Context, hexID string) error
}

type Handler struct {
	Banners Store
	Log     *zap.Logger
}

func NewHandler(banners Store, logger *zap.Logger) *Handler {
	return &Handler{Banners: banners, Log: logger}
}

type bannerRequest struct {
	Title string `json:"title" validate:"required"`
	Link  string `json:"link" validate:"omitempty,url"`
	Image string `json:"image" validate:"omitempty,url"`
}

type bannerResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Banner  *models.Banner `json:"banner,omitempty"`
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list banners")
	defer cancel()

	list, err := h.Banners.List(ctx)
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch banners")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get banner")
	defer cancel()

	b, err := h.Banners.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch banner")
		return
	}
	httpjson.Write(w, http.StatusOK, b)
}

// decodeBanner reads and validates a full banner body.
func decodeBanner(w http.ResponseWriter, r *http.Request) (models.Banner, error) {
	var in models.Banner
	if err := httpjson.Decode(w, r, &in); err != nil {
		return models.Banner{}, err
	}
	if err := inputval.Struct(bannerRequest{Title: in.Title, Link: in.Link, Image: in.Image}); err != nil {
		return models.Banner{}, err
	}
	return in, nil
}

func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decodeBanner(w, r)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to create banner")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create banner")
	defer cancel()

	b, err := h.Banners.Create(ctx, in)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to create banner")
		return
	}
	httpjson.Write(w, http.StatusCreated, bannerResult{Success: true, Message: "Banner created successfully", Banner: &b})
}

func (h *Handler) ServePatch(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := httpjson.Decode(w, r, &fields); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update banner")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "patch banner")
	defer cancel()

	b, err := h.Banners.Patch(ctx, chi.URLParam(r, "id"), fields)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update banner")
		return
	}
	httpjson.Write(w, http.StatusOK, bannerResult{Success: true, Message: "Banner updated successfully", Banner: &b})
}

func (h *Handler) ServeReplace(w http.ResponseWriter, r *http.Request) {
	in, err := decodeBanner(w, r)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update banner")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "replace banner")
	defer cancel()

	b, err := h.Banners.Replace(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update banner")
		return
	}
	httpjson.Write(w, http.StatusOK, bannerResult{Success: true, Message: "Banner updated successfully", Banner: &b})
}

func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete banner")
	defer cancel()

	if err := h.Banners.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to delete banner")
		return
	}
	httpjson.Write(w, http.StatusOK, bannerResult{Success: true, Message: "Banner deleted successfully"})
}
