// Package httphandler exposes the storefront over HTTP/JSON.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cheiadearte/storefront/internal/core/port"
	"github.com/cheiadearte/storefront/internal/core/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

// writeServiceErr translates core-service failures into HTTP
// statuses. Unknown errors surface as 503 without leaking details.
func writeServiceErr(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidPostalCode):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrUnauthenticated):
		http.Error(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrNoShippingSelected),
		errors.Is(err, service.ErrIncompleteProfile):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		log.Error("unexpected service failure", "err", err)
	}
}
