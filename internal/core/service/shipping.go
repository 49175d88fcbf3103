package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.ShippingQuoter = (*ShippingService)(nil)

const shopLogoURL = "https://cdn-icons-png.flaticon.com/512/869/869636.png"

// A ShippingPolicy carries the shop's fixed-rate shipping rules.
type ShippingPolicy struct {
	LocalPrefixes     []string
	LocalPrice        decimal.Decimal
	LocalDeliveryDays int
	FreeThreshold     decimal.Decimal
	FreeDeliveryDays  int
}

// DefaultShippingPolicy mirrors the shop's observed rules: local
// delivery in Salvador/BA for R$15 and free shipping from R$250.
func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		LocalPrefixes:     []string{"40", "41"},
		LocalPrice:        decimal.NewFromInt(15),
		LocalDeliveryDays: 2,
		FreeThreshold:     decimal.NewFromInt(250),
		FreeDeliveryDays:  5,
	}
}

// A ShippingService aggregates remote carrier rates with the shop's
// synthesized fixed-rate options into one price-sorted list.
type ShippingService struct {
	carts  port.CartReader
	rates  port.RateProvider
	policy ShippingPolicy
}

func NewShippingService(
	carts port.CartReader, rates port.RateProvider, policy ShippingPolicy,
) ShippingService {
	return ShippingService{carts, rates, policy}
}

func (s ShippingService) QuoteShipping(
	ctx context.Context, sessionID, destinationCEP string,
) ([]domain.ShippingOption, error) {
	const op = "ShippingService.QuoteShipping"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cep := domain.SanitizeCEP(destinationCEP)
	if len(cep) != 8 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPostalCode)
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	options := s.fixedOptions(cep, cart.Total())
	options = append(options, s.carrierOptions(ctx, cep, cart)...)

	slices.SortStableFunc(options,
		func(a, b domain.ShippingOption) int {
			return a.Price.Cmp(b.Price)
		})

	return options, nil
}

// carrierOptions queries the remote rate provider. Provider
// failures degrade to zero remote options so the synthesized ones
// still surface.
func (s ShippingService) carrierOptions(
	ctx context.Context, cep string, cart domain.Cart,
) []domain.ShippingOption {
	const op = "ShippingService.carrierOptions"

	parcels := make([]domain.Parcel, 0, len(cart.Items))
	for _, item := range cart.Items {
		parcels = append(parcels, domain.Parcel{
			ProductID:    item.Product.ProductID,
			WidthCM:      item.Product.Dimensions.WidthCM,
			HeightCM:     item.Product.Dimensions.HeightCM,
			LengthCM:     item.Product.Dimensions.LengthCM,
			WeightGrams:  item.Product.Dimensions.WeightGrams,
			InsuredValue: item.DisplayPrice,
			Quantity:     item.Quantity,
		})
	}

	options, err := s.rates.CalculateRates(ctx, cep, parcels)
	if err != nil {
		slog.Warn("carrier rate lookup failed", "op", op, "err", err)
		return nil
	}
	return options
}

func (s ShippingService) fixedOptions(
	cep string, subtotal decimal.Decimal,
) []domain.ShippingOption {
	options := []domain.ShippingOption{{
		OptionID:     "retirada-local",
		Name:         "Retirada Local",
		Price:        decimal.Zero,
		DeliveryDays: 1,
		Company:      domain.ShippingCompany{Name: "Loja Física", PictureURL: shopLogoURL},
		Source:       domain.ShippingSourcePickup,
	}}

	if s.localDestination(cep) {
		options = append(options, domain.ShippingOption{
			OptionID:     "entrega-salvador",
			Name:         "Entrega Local (Salvador/BA)",
			Price:        s.policy.LocalPrice,
			DeliveryDays: s.policy.LocalDeliveryDays,
			Company:      domain.ShippingCompany{Name: "Cheia de Arte", PictureURL: shopLogoURL},
			Source:       domain.ShippingSourceLocalDelivery,
		})
	}

	if subtotal.GreaterThanOrEqual(s.policy.FreeThreshold) {
		options = append(options, domain.ShippingOption{
			OptionID:     "frete-gratis",
			Name:         "Frete Grátis (Promoção)",
			Price:        decimal.Zero,
			DeliveryDays: s.policy.FreeDeliveryDays,
			Company:      domain.ShippingCompany{Name: "Cheia de Arte", PictureURL: shopLogoURL},
			Source:       domain.ShippingSourceFreePromo,
		})
	}

	return options
}

func (s ShippingService) localDestination(cep string) bool {
	for _, prefix := range s.policy.LocalPrefixes {
		if strings.HasPrefix(cep, prefix) {
			return true
		}
	}
	return false
}
