package service_test

import (
	"errors"
	"testing"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cartWithSubtotal(amount string) domain.Cart {
	price := decimal.RequireFromString(amount)
	return domain.Cart{Items: []domain.CartItem{{
		Product: domain.Product{
			ProductID: "velas-aromaticas-1",
			Name:      "Vela A",
			Price:     price,
		},
		Quantity:     1,
		DisplayPrice: price,
	}}}
}

func optionNames(options []domain.ShippingOption) []string {
	names := make([]string, 0, len(options))
	for _, o := range options {
		names = append(names, o.Name)
	}
	return names
}

func TestQuoteShipping(t *testing.T) {
	t.Run("MalformedCEPSkipsRemoteCall", func(t *testing.T) {
		carts := new(MockCartReader)
		rates := new(MockRateProvider)
		s := service.NewShippingService(
			carts, rates, service.DefaultShippingPolicy(),
		)

		_, err := s.QuoteShipping(t.Context(), testSession, "4000-00")
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrInvalidPostalCode)
		rates.AssertNotCalled(t, "CalculateRates")
	})

	t.Run("SalvadorPrefixBelowThreshold", func(t *testing.T) {
		carts := new(MockCartReader)
		rates := new(MockRateProvider)
		carts.On("GetCart", mock.Anything, testSession).
			Return(cartWithSubtotal("80.00"), nil)
		rates.On("CalculateRates", mock.Anything, "40000000", mock.Anything).
			Return(nil, nil)

		s := service.NewShippingService(
			carts, rates, service.DefaultShippingPolicy(),
		)
		options, err := s.QuoteShipping(t.Context(), testSession, "40000-000")
		require.NoError(t, err)

		names := optionNames(options)
		assert.Contains(t, names, "Retirada Local")
		assert.Contains(t, names, "Entrega Local (Salvador/BA)")
		assert.NotContains(t, names, "Frete Grátis (Promoção)")
	})

	t.Run("NonLocalPrefixExcludesLocalDelivery", func(t *testing.T) {
		carts := new(MockCartReader)
		rates := new(MockRateProvider)
		carts.On("GetCart", mock.Anything, testSession).
			Return(cartWithSubtotal("80.00"), nil)
		rates.On("CalculateRates", mock.Anything, "01310100", mock.Anything).
			Return(nil, nil)

		s := service.NewShippingService(
			carts, rates, service.DefaultShippingPolicy(),
		)
		options, err := s.QuoteShipping(t.Context(), testSession, "01310-100")
		require.NoError(t, err)

		assert.NotContains(t, optionNames(options), "Entrega Local (Salvador/BA)")
	})

	t.Run("FreeShippingAtThreshold", func(t *testing.T) {
		carts := new(MockCartReader)
		rates := new(MockRateProvider)
		carts.On("GetCart", mock.Anything, testSession).
			Return(cartWithSubtotal("300.00"), nil)
		rates.On("CalculateRates", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil)

		s := service.NewShippingService(
			carts, rates, service.DefaultShippingPolicy(),
		)
		options, err := s.QuoteShipping(t.Context(), testSession, "01310-100")
		require.NoError(t, err)

		var free *domain.ShippingOption
		for i := range options {
			if options[i].Source == domain.ShippingSourceFreePromo {
				free = &options[i]
			}
		}
		require.NotNil(t, free)
		assert.True(t, free.Price.IsZero())
	})

	t.Run("SortedAscendingByPrice", func(t *testing.T) {
		carts := new(MockCartReader)
		rates := new(MockRateProvider)
		carts.On("GetCart", mock.Anything, testSession).
			Return(cartWithSubtotal("80.00"), nil)
		rates.On("CalculateRates", mock.Anything, "40000000", mock.Anything).
			Return([]domain.ShippingOption{
				{
					OptionID: "2", Name: "SEDEX",
					Price:  decimal.RequireFromString("32.10"),
					Source: domain.ShippingSourceCarrier,
				},
				{
					OptionID: "1", Name: "PAC",
					Price:  decimal.RequireFromString("21.50"),
					Source: domain.ShippingSourceCarrier,
				},
			}, nil)

		s := service.NewShippingService(
			carts, rates, service.DefaultShippingPolicy(),
		)
		options, err := s.QuoteShipping(t.Context(), testSession, "40000-000")
		require.NoError(t, err)

		for i := 1; i < len(options); i++ {
			assert.False(t,
				options[i].Price.LessThan(options[i-1].Price),
				"options out of order at %d", i,
			)
		}
		assert.Equal(t, "Retirada Local", options[0].Name)
	})

	t.Run("CarrierFailureDegradesToFixedOptions", func(t *testing.T) {
		carts := new(MockCartReader)
		rates := new(MockRateProvider)
		carts.On("GetCart", mock.Anything, testSession).
			Return(cartWithSubtotal("80.00"), nil)
		rates.On("CalculateRates", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("network down"))

		s := service.NewShippingService(
			carts, rates, service.DefaultShippingPolicy(),
		)
		options, err := s.QuoteShipping(t.Context(), testSession, "40000-000")
		require.NoError(t, err)

		names := optionNames(options)
		assert.Contains(t, names, "Retirada Local")
		assert.Contains(t, names, "Entrega Local (Salvador/BA)")
	})

	t.Run("TiesKeepFixedBeforeCarrier", func(t *testing.T) {
		carts := new(MockCartReader)
		rates := new(MockRateProvider)
		carts.On("GetCart", mock.Anything, testSession).
			Return(cartWithSubtotal("300.00"), nil)
		rates.On("CalculateRates", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.ShippingOption{{
				OptionID: "3", Name: "Mini Envios",
				Price:  decimal.Zero,
				Source: domain.ShippingSourceCarrier,
			}}, nil)

		s := service.NewShippingService(
			carts, rates, service.DefaultShippingPolicy(),
		)
		options, err := s.QuoteShipping(t.Context(), testSession, "01310-100")
		require.NoError(t, err)

		// All three zero-price options, synthesized first.
		require.GreaterOrEqual(t, len(options), 3)
		assert.Equal(t, domain.ShippingSourcePickup, options[0].Source)
		assert.Equal(t, domain.ShippingSourceFreePromo, options[1].Source)
		assert.Equal(t, domain.ShippingSourceCarrier, options[2].Source)
	})
}
