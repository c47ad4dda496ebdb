package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/middleware/trace"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, errorResponse{
		Error:     msg,
		RequestID: trace.GetRequestID(ctx),
	})
}

// writeDomainError maps ledger errors onto HTTP statuses. Persistence
// errors never reach here; mutation handlers report those as a degraded
// success instead.
func writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case core.IsValidation(err):
		writeError(ctx, w, http.StatusUnprocessableEntity, err.Error())
	case core.IsNotFound(err):
		writeError(ctx, w, http.StatusNotFound, err.Error())
	default:
		slog.ErrorContext(ctx, "Unexpected handler error", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "internal error")
	}
}

// persistedStatus converts a mutation's write-through outcome into the
// persisted flag and client warning. The in-memory change is already
// applied either way.
func persistedStatus(err error) (bool, string) {
	if err == nil {
		return true, ""
	}
	return false, "change applied but not persisted; it may not survive a restart"
}
