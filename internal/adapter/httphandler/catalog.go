package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/cheiadearte/storefront/internal/core/port"
)

// GET v1/departments (200 OK)
// GET v1/departments/{id}/products (200 OK)
// GET v1/products/{id} (200 OK, 404 Not found)
// GET v1/postal-codes/{cep} (200 OK, 400, 404)

type CatalogHandler struct {
	catalog   port.CatalogReader
	addresses port.AddressFinder
}

func RegisterCatalog(
	mux *http.ServeMux,
	catalog port.CatalogReader,
	addresses port.AddressFinder,
) {
	h := CatalogHandler{catalog, addresses}
	mux.HandleFunc("GET /v1/departments", h.GetDepartments)
	mux.HandleFunc("GET /v1/departments/{id}/products", h.GetDepartmentProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/postal-codes/{cep}", h.GetAddress)
}

func (h CatalogHandler) GetDepartments(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CatalogHandler.GetDepartments"
	log := slog.With("op", op)

	departments, err := h.catalog.Departments(r.Context())
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}

	resp := make([]Department, 0, len(departments))
	for _, d := range departments {
		resp = append(resp, departmentFromDomain(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CatalogHandler) GetDepartmentProducts(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CatalogHandler.GetDepartmentProducts"
	log := slog.With("op", op)

	products, err := h.catalog.DepartmentProducts(
		r.Context(), r.PathValue("id"),
	)
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}

	resp := make([]Product, 0, len(products))
	for _, p := range products {
		resp = append(resp, productFromDomain(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	product, err := h.catalog.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, productFromDomain(product))
}

func (h CatalogHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetAddress"
	log := slog.With("op", op)

	address, err := h.addresses.FindAddress(r.Context(), r.PathValue("cep"))
	if err != nil {
		writeServiceErr(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, addressFromDomain(address))
}
