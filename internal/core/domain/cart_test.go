package domain_test

import (
	"testing"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineKey(t *testing.T) {
	t.Run("NoVariant", func(t *testing.T) {
		assert.Equal(t, "vela-1-none-none", domain.LineKey("vela-1", "", ""))
	})

	t.Run("FullVariant", func(t *testing.T) {
		assert.Equal(t,
			"vela-1-Grande-Lavanda",
			domain.LineKey("vela-1", "Grande", "Lavanda"),
		)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		assert.NotEqual(t,
			domain.LineKey("vela-1", "grande", ""),
			domain.LineKey("vela-1", "Grande", ""),
		)
	})
}

func TestCartAdd(t *testing.T) {
	product := domain.Product{
		ProductID: "vela-1",
		Name:      "Vela A",
		Price:     decimal.RequireFromString("40.00"),
	}

	t.Run("MergeEqualKeys", func(t *testing.T) {
		var cart domain.Cart
		item := domain.CartItem{
			Product: product, Quantity: 1, DisplayPrice: product.Price,
		}
		cart.Add(item)
		cart.Add(item)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("DistinctVariants", func(t *testing.T) {
		var cart domain.Cart
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1,
			SelectedAroma: "Lavanda", DisplayPrice: product.Price,
		})
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1,
			SelectedAroma: "Baunilha", DisplayPrice: product.Price,
		})

		assert.Len(t, cart.Items, 2)
	})

	t.Run("InsertionOrderPreserved", func(t *testing.T) {
		var cart domain.Cart
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1,
			SelectedAroma: "Lavanda", DisplayPrice: product.Price,
		})
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1,
			SelectedAroma: "Baunilha", DisplayPrice: product.Price,
		})

		require.Len(t, cart.Items, 2)
		assert.Equal(t, "Lavanda", cart.Items[0].SelectedAroma)
		assert.Equal(t, "Baunilha", cart.Items[1].SelectedAroma)
	})
}

func TestCartDerived(t *testing.T) {
	product := domain.Product{
		ProductID: "vela-1",
		Name:      "Vela A",
		Price:     decimal.RequireFromString("40.00"),
	}

	var cart domain.Cart
	cart.Add(domain.CartItem{
		Product: product, Quantity: 2, DisplayPrice: product.Price,
	})

	assert.True(t,
		cart.Total().Equal(decimal.RequireFromString("80.00")),
		"total = %s", cart.Total(),
	)
	assert.Equal(t, 2, cart.Count())

	cart.Remove(domain.LineKey("vela-1", "", ""))
	assert.True(t, cart.Total().IsZero())
	assert.Zero(t, cart.Count())
}

func TestCartRemove(t *testing.T) {
	product := domain.Product{
		ProductID: "vela-1", Price: decimal.NewFromInt(10),
	}
	shipping := domain.ShippingOption{
		OptionID: "retirada-local",
		Source:   domain.ShippingSourcePickup,
	}

	t.Run("AbsentKeyNoop", func(t *testing.T) {
		var cart domain.Cart
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1, DisplayPrice: product.Price,
		})
		cart.Remove("missing-none-none")
		assert.Len(t, cart.Items, 1)
	})

	t.Run("LastLineClearsShipping", func(t *testing.T) {
		var cart domain.Cart
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1, DisplayPrice: product.Price,
		})
		cart.Shipping = &shipping

		cart.Remove(domain.LineKey("vela-1", "", ""))

		assert.True(t, cart.Empty())
		assert.Nil(t, cart.Shipping)
	})

	t.Run("NonLastLineKeepsShipping", func(t *testing.T) {
		var cart domain.Cart
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1, DisplayPrice: product.Price,
		})
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1,
			SelectedModel: "Grande", DisplayPrice: product.Price,
		})
		cart.Shipping = &shipping

		cart.Remove(domain.LineKey("vela-1", "", ""))

		assert.NotNil(t, cart.Shipping)
	})
}

func TestCartClear(t *testing.T) {
	product := domain.Product{
		ProductID: "vela-1", Price: decimal.NewFromInt(10),
	}

	var cart domain.Cart
	cart.Add(domain.CartItem{
		Product: product, Quantity: 3, DisplayPrice: product.Price,
	})
	cart.Shipping = &domain.ShippingOption{OptionID: "frete-gratis"}

	cart.Clear()

	assert.True(t, cart.Empty())
	assert.Nil(t, cart.Shipping)
	assert.Zero(t, cart.Count())
}

func TestCartClone(t *testing.T) {
	product := domain.Product{
		ProductID: "vela-1", Price: decimal.NewFromInt(10),
	}

	t.Run("MutationsDoNotReachClone", func(t *testing.T) {
		var cart domain.Cart
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1, DisplayPrice: product.Price,
		})

		clone := cart.Clone()
		cart.Add(domain.CartItem{
			Product: product, Quantity: 4, DisplayPrice: product.Price,
		})

		require.Len(t, clone.Items, 1)
		assert.Equal(t, 1, clone.Items[0].Quantity)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("ShippingNotShared", func(t *testing.T) {
		var cart domain.Cart
		cart.Add(domain.CartItem{
			Product: product, Quantity: 1, DisplayPrice: product.Price,
		})
		cart.Shipping = &domain.ShippingOption{OptionID: "retirada-local"}

		clone := cart.Clone()
		cart.Shipping.OptionID = "frete-gratis"

		require.NotNil(t, clone.Shipping)
		assert.Equal(t, "retirada-local", clone.Shipping.OptionID)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		var cart domain.Cart
		clone := cart.Clone()
		assert.True(t, clone.Empty())
		assert.Nil(t, clone.Shipping)
	})
}

func TestEffectivePrice(t *testing.T) {
	product := domain.Product{
		ProductID: "aromatizador-1",
		Price:     decimal.RequireFromString("30.00"),
		Variations: []domain.Variation{
			{Model: "250ml", Aroma: "Alecrim", Price: decimal.RequireFromString("45.00")},
			{Model: "250ml", Aroma: "Alecrim", Price: decimal.RequireFromString("99.00")},
			{Model: "500ml", Aroma: "Alecrim", Price: decimal.RequireFromString("60.00")},
		},
	}

	t.Run("MatchingVariation", func(t *testing.T) {
		price := product.EffectivePrice("500ml", "Alecrim")
		assert.True(t, price.Equal(decimal.RequireFromString("60.00")))
	})

	t.Run("NoMatchFallsBackToBase", func(t *testing.T) {
		price := product.EffectivePrice("1l", "Alecrim")
		assert.True(t, price.Equal(decimal.RequireFromString("30.00")))
	})

	t.Run("DuplicatePairFirstWins", func(t *testing.T) {
		price := product.EffectivePrice("250ml", "Alecrim")
		assert.True(t, price.Equal(decimal.RequireFromString("45.00")))
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, domain.OrderStatusPending.CanTransition(domain.OrderStatusPaid))
	assert.True(t, domain.OrderStatusPending.CanTransition(domain.OrderStatusCancelled))
	assert.True(t, domain.OrderStatusPaid.CanTransition(domain.OrderStatusShipped))

	assert.False(t, domain.OrderStatusPaid.CanTransition(domain.OrderStatusPending))
	assert.False(t, domain.OrderStatusCancelled.CanTransition(domain.OrderStatusPaid))
	assert.False(t, domain.OrderStatusShipped.CanTransition(domain.OrderStatusPaid))
}

func TestSanitizeCEP(t *testing.T) {
	assert.Equal(t, "40000000", domain.SanitizeCEP("40000-000"))
	assert.Equal(t, "40000000", domain.SanitizeCEP(" 40.000 000 "))
	assert.Equal(t, "", domain.SanitizeCEP("abc"))
}
