package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cheiadearte/storefront/internal/core/port"
)

// GET v1/cart (200 OK)
// POST v1/cart/items JSON {"product_id", "quantity", "model", "aroma"} (200 OK, 400 Bad request)
// DELETE v1/cart/items/{key} (200 OK)
// DELETE v1/cart (204 No content)
// PUT v1/cart/shipping JSON shipping option (204 No content, 409 Conflict)

type CartHandler struct {
	reader   port.CartReader
	adder    port.CartItemAdder
	remover  port.CartItemRemover
	clearer  port.CartClearer
	selector port.ShippingSelector
}

func RegisterCart(
	mux *http.ServeMux,
	reader port.CartReader,
	adder port.CartItemAdder,
	remover port.CartItemRemover,
	clearer port.CartClearer,
	selector port.ShippingSelector,
) {
	h := CartHandler{reader, adder, remover, clearer, selector}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("DELETE /v1/cart/items/{key}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
	mux.HandleFunc("PUT /v1/cart/shipping", h.PutShipping)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	cart, err := h.reader.GetCart(r.Context(), sessionID(r))
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, cartFromDomain(cart))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	cart, err := h.adder.AddItem(
		r.Context(), sessionID(r),
		req.ProductID, req.Quantity, req.Model, req.Aroma,
	)
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}

	log.Info("item added", "productID", req.ProductID, "qty", req.Quantity)
	writeJSON(w, http.StatusOK, cartFromDomain(cart))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	cart, err := h.remover.RemoveItem(
		r.Context(), sessionID(r), r.PathValue("key"),
	)
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, cartFromDomain(cart))
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"
	log := slog.With("op", op)

	if err := h.clearer.ClearCart(r.Context(), sessionID(r)); err != nil {
		writeServiceErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) PutShipping(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutShipping"
	log := slog.With("op", op)

	var opt ShippingOption
	if err := json.NewDecoder(r.Body).Decode(&opt); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.selector.SelectShipping(
		r.Context(), sessionID(r), shippingOptionToDomain(opt),
	)
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
