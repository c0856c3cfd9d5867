// internal/app/features/buses/handler.go
package buses

import (
	"context"
	"net/http"

	"github.com/dalemusser/waygo/internal/app/policy/routepolicy"
	busstore "github.com/dalemusser/waygo/internal/app/store/buses"
	"github.com/dalemusser/waygo/internal/app/system/httpjson"
	"github.com/dalemusser/waygo/internal/app/system/inputval"
	"github.com/dalemusser/waygo/internal/app/system/timeouts"
	"github.com/dalemusser/waygo/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Store is the bus collection surface the handlers use.
type Store interface {
	routepolicy.RouteFinder
	List(ctx context.Context) ([]models.Bus, error)
	GetByID(ctx context.Context, hexID string) (models.Bus, error)
	Create(ctx context.Context, b models.Bus) (models.Bus, error)
	Delete(ctx context.Context, hexID string) error
}

type Handler struct {
	Buses        Store
	ReverseBlock bool
	Log          *zap.Logger
}

// NewHandler builds a bus Handler. reverseBlock turns on the rule that a
// from/to search fails when the opposite direction is also served.
func NewHandler(buses Store, reverseBlock bool, logger *zap.Logger) *Handler {
	return &Handler{Buses: buses, ReverseBlock: reverseBlock, Log: logger}
}

type addBusRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

type busResult struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	InsertedID string      `json:"insertedId,omitempty"`
	Bus        *models.Bus `json:"bus,omitempty"`
}

// ServeList handles GET /allbus.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list buses")
	defer cancel()

	buses, err := h.Buses.List(ctx)
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch buses")
		return
	}
	httpjson.Write(w, http.StatusOK, buses)
}

// ServeGet handles GET /allbus/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get bus")
	defer cancel()

	b, err := h.Buses.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch bus")
		return
	}
	httpjson.Write(w, http.StatusOK, b)
}

// ServeSearch handles GET /searchbus?from=&to=.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "search buses")
	defer cancel()

	q := routepolicy.Query{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	buses, err := routepolicy.Search(ctx, h.Buses, q, routepolicy.Options{ReverseBlock: h.ReverseBlock})
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to search buses")
		return
	}
	httpjson.Write(w, http.StatusOK, buses)
}

// ServeAdd handles POST /addbus. Every field besides from and to is kept
// as sent.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	var in models.Bus
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to add bus")
		return
	}
	if err := inputval.Struct(addBusRequest{From: in.From, To: in.To}); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to add bus")
		return
	}
	if err := busstore.CheckPrice(in.Field("price")); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to add bus")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add bus")
	defer cancel()

	b, err := h.Buses.Create(ctx, in)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to add bus")
		return
	}
	h.Log.Info("bus added", zap.String("id", b.ID.Hex()), zap.String("from", b.From), zap.String("to", b.To))
	httpjson.Write(w, http.StatusCreated, busResult{
		Success:    true,
		Message:    "Bus added successfully",
		InsertedID: b.ID.Hex(),
		Bus:        &b,
	})
}

// ServeDelete handles DELETE /allbus/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete bus")
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Buses.Delete(ctx, id); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to delete bus")
		return
	}
	h.Log.Info("bus deleted", zap.String("id", id))
	httpjson.Write(w, http.StatusOK, busResult{Success: true, Message: "Bus deleted successfully"})
}
