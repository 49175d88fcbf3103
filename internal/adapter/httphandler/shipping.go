package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cheiadearte/storefront/internal/core/port"
)

// POST v1/shipping/quotes JSON {"cep" string} (200 OK, 400 Bad request)

type ShippingHandler struct {
	quoter port.ShippingQuoter
}

func RegisterShipping(mux *http.ServeMux, quoter port.ShippingQuoter) {
	h := ShippingHandler{quoter}
	mux.HandleFunc("POST /v1/shipping/quotes", h.PostQuotes)
}

func (h ShippingHandler) PostQuotes(w http.ResponseWriter, r *http.Request) {
	const op = "ShippingHandler.PostQuotes"
	log := slog.With("op", op)

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	options, err := h.quoter.QuoteShipping(
		r.Context(), sessionID(r), req.CEP,
	)
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}

	resp := make([]ShippingOption, 0, len(options))
	for _, o := range options {
		resp = append(resp, shippingOptionFromDomain(o))
	}
	writeJSON(w, http.StatusOK, resp)
}
