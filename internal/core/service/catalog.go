package service

import (
	"context"
	"fmt"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
)

var _ port.CatalogReader = (*CatalogService)(nil)
var _ port.AddressFinder = (*CatalogService)(nil)

// A CatalogService serves storefront browsing and the postal-code
// address autofill.
type CatalogService struct {
	products port.ProductsStorage
	postal   port.PostalLookup
}

func NewCatalogService(
	products port.ProductsStorage, postal port.PostalLookup,
) CatalogService {
	return CatalogService{products, postal}
}

func (s CatalogService) Departments(
	ctx context.Context,
) ([]domain.Department, error) {
	const op = "CatalogService.Departments"

	ds, err := s.products.ReadDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ds, nil
}

func (s CatalogService) DepartmentProducts(
	ctx context.Context, departmentID string,
) ([]domain.Product, error) {
	const op = "CatalogService.DepartmentProducts"

	ps, err := s.products.ReadDepartmentProducts(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s CatalogService) Product(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "CatalogService.Product"

	p, err := s.products.ReadProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s CatalogService) FindAddress(
	ctx context.Context, cep string,
) (domain.Address, error) {
	const op = "CatalogService.FindAddress"

	sanitized := domain.SanitizeCEP(cep)
	if len(sanitized) != 8 {
		return domain.Address{}, fmt.Errorf("%s: %w", op, ErrInvalidPostalCode)
	}

	addr, err := s.postal.LookupAddress(ctx, sanitized)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}
	return addr, nil
}
