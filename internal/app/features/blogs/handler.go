// internal/app/features/blogs/handler.go
package blogs

import (
	"context"
	"net/http"

	"github.com/dalemusser/waygo/internal/app/system/httpjson"
	"github.com/dalemusser/waygo/internal/app/system/timeouts"
	"github.com/dalemusser/waygo/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Store interface {
	List(ctx context.Context) ([]models.Blog, error)
	GetByID(ctx context.Context, hexID string) (models.Blog, error)
}

type Handler struct {
	Blogs Store
	Log   *zap.Logger
}

func NewHandler(blogs Store, logger *zap.Logger) *Handler {
	return &Handler{Blogs: blogs, Log: logger}
}

// ServeList handles GET /blogs.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list blogs")
	defer cancel()

	list, err := h.Blogs.List(ctx)
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch blogs")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeGet handles GET /blogs/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get blog")
	defer cancel()

	b, err := h.Blogs.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch blog")
		return
	}
	httpjson.Write(w, http.StatusOK, b)
}
