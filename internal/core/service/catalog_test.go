package service_test

import (
	"errors"
	"testing"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
	"github.com/cheiadearte/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogServiceFindAddress(t *testing.T) {
	salvadorAddr := domain.Address{
		Street:       "Avenida Sete de Setembro",
		Neighborhood: "Vitória",
		City:         "Salvador",
		State:        "BA",
		CEP:          "40080-001",
	}

	t.Run("SanitizesBeforeLookup", func(t *testing.T) {
		postal := new(MockPostalLookup)
		postal.On("LookupAddress", mock.Anything, "40080001").
			Return(salvadorAddr, nil)
		s := service.NewCatalogService(new(MockProductsStorage), postal)

		addr, err := s.FindAddress(t.Context(), "40080-001")
		require.NoError(t, err)
		assert.Equal(t, salvadorAddr, addr)
		postal.AssertExpectations(t)
	})

	t.Run("RejectsMalformedCode", func(t *testing.T) {
		postal := new(MockPostalLookup)
		s := service.NewCatalogService(new(MockProductsStorage), postal)

		for _, cep := range []string{"", "4008", "40080-0011", "abcdefgh"} {
			_, err := s.FindAddress(t.Context(), cep)
			require.Error(t, err, "cep %q", cep)
			assert.ErrorIs(t, err, service.ErrInvalidPostalCode)
		}
		postal.AssertNotCalled(t, "LookupAddress", mock.Anything, mock.Anything)
	})

	t.Run("UnknownCodePassesThrough", func(t *testing.T) {
		postal := new(MockPostalLookup)
		postal.On("LookupAddress", mock.Anything, "99999999").
			Return(domain.Address{}, port.ErrNotFound)
		s := service.NewCatalogService(new(MockProductsStorage), postal)

		_, err := s.FindAddress(t.Context(), "99999-999")
		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestCatalogServiceBrowsing(t *testing.T) {
	t.Run("Departments", func(t *testing.T) {
		products := new(MockProductsStorage)
		products.On("ReadDepartments", mock.Anything).
			Return([]domain.Department{{DepartmentID: "velas-aromaticas"}}, nil)
		s := service.NewCatalogService(products, new(MockPostalLookup))

		ds, err := s.Departments(t.Context())
		require.NoError(t, err)
		require.Len(t, ds, 1)
		assert.Equal(t, "velas-aromaticas", ds[0].DepartmentID)
	})

	t.Run("ProductErrorWrapped", func(t *testing.T) {
		products := new(MockProductsStorage)
		readErr := errors.New("connection reset")
		products.On("ReadProduct", mock.Anything, "vela-1").
			Return(domain.Product{}, readErr)
		s := service.NewCatalogService(products, new(MockPostalLookup))

		_, err := s.Product(t.Context(), "vela-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, readErr)
	})
}
