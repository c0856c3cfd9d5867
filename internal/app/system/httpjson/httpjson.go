// Package httpjson writes and reads the JSON bodies used by every endpoint.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"go.uber.org/zap"
)

// MaxBodyBytes caps request bodies. Documents in this service are small.
const MaxBodyBytes = 1 << 20

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"success":false,"message":msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, Result{Success: false, Message: msg})
}

// LookupError writes {"error":msg}, the shape read endpoints use.
func LookupError(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Fail writes err as a Result. Known error kinds keep their message;
// anything else is logged and replaced by fallback.
func Fail(w http.ResponseWriter, log *zap.Logger, err error, fallback string) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Error(fallback, zap.Error(err))
	}
	Error(w, status, apperr.Message(err, fallback))
}

// FailLookup is Fail for read endpoints.
func FailLookup(w http.ResponseWriter, log *zap.Logger, err error, fallback string) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Error(fallback, zap.Error(err))
	}
	LookupError(w, status, apperr.Message(err, fallback))
}

// Result is the envelope shared by mutating endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Decode reads a JSON body into dst. A missing, oversized, or malformed
// body is reported as apperr.ErrValidation.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.Validation("Request body is required")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Validation("Request body is required")
		case errors.As(err, &tooBig):
			return apperr.Validation(fmt.Sprintf("Request body exceeds %d bytes", tooBig.Limit))
		default:
			return apperr.Validation("Invalid JSON body")
		}
	}
	return nil
}
