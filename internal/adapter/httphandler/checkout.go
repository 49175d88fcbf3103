package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
)

// POST v1/checkout JSON {"customer_id"} (200 OK, 401, 409)
// GET v1/checkout/result/{outcome}?status=&external_reference= (200 OK)
// POST v1/payments/notifications?data.id= Headers x-signature, x-request-id (200 OK, 400)
// GET v1/orders/{id}/status (200 OK, 404 Not found)

type CheckoutHandler struct {
	starter  port.CheckoutStarter
	resolver port.ReturnResolver
	notified port.PaymentNotifiedHandler
	statuses port.OrderStatusGetter
}

func RegisterCheckout(
	mux *http.ServeMux,
	starter port.CheckoutStarter,
	resolver port.ReturnResolver,
	notified port.PaymentNotifiedHandler,
	statuses port.OrderStatusGetter,
) {
	h := CheckoutHandler{starter, resolver, notified, statuses}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
	mux.HandleFunc("GET /v1/checkout/result/{outcome}", h.GetResult)
	mux.HandleFunc("POST /v1/payments/notifications", h.PostNotification)
	mux.HandleFunc("GET /v1/orders/{id}/status", h.GetOrderStatus)
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	redirect, err := h.starter.Checkout(
		r.Context(), sessionID(r), req.CustomerID,
	)
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}

	log.Info("checkout started", "orderID", redirect.OrderID)
	writeJSON(w, http.StatusOK, CheckoutResponse{
		OrderID:     redirect.OrderID,
		CheckoutURL: redirect.CheckoutURL,
	})
}

func (h CheckoutHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.GetResult"
	log := slog.With("op", op)

	query := r.URL.Query()
	outcome, err := h.resolver.ResolveReturn(
		r.Context(), sessionID(r),
		r.PathValue("outcome"),
		query.Get("status"),
		query.Get("external_reference"),
	)
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, CheckoutResult{Outcome: string(outcome)})
}

func (h CheckoutHandler) PostNotification(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CheckoutHandler.PostNotification"
	log := slog.With("op", op)

	n := domain.PaymentNotification{
		PaymentID: r.URL.Query().Get("data.id"),
		RequestID: r.Header.Get("x-request-id"),
	}
	n.Timestamp, n.Signature = parseSignatureHeader(
		r.Header.Get("x-signature"),
	)

	if err := h.notified.HandlePaymentNotification(r.Context(), n); err != nil {
		log.Warn("notification rejected",
			"paymentID", n.PaymentID, "err", err)
		http.Error(w, "rejected", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h CheckoutHandler) GetOrderStatus(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CheckoutHandler.GetOrderStatus"
	log := slog.With("op", op)

	orderID := r.PathValue("id")
	status, err := h.statuses.GetOrderStatus(r.Context(), orderID)
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, OrderStatus{
		OrderID: orderID,
		Status:  string(status),
	})
}

// parseSignatureHeader splits the processor's "ts=...,v1=..." header.
func parseSignatureHeader(header string) (ts, v1 string) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	return ts, v1
}
