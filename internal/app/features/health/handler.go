package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waygo/internal/app/system/httpjson"
	"github.com/dalemusser/waygo/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client Pinger
	Log    *zap.Logger
	now    func() time.Time
}

// NewHandler constructs a health Handler with the Mongo client and logger.
func NewHandler(client Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Log:    logger,
		now:    time.Now,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// Serve handles GET /health. It always answers 200 while the process is up:
//
//	{ "success":true, "message":"CWT Backend is running", "timestamp":"…", "database":"connected" }
//
// A failed Mongo ping only changes "database" to "disconnected".
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{
		Success:   true,
		Message:   "CWT Backend is running",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Database:  "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Warn("health-check: mongo ping failed", zap.Error(err))
		resp.Database = "disconnected"
	}

	httpjson.Write(w, http.StatusOK, resp)
}
