package domain

import "github.com/shopspring/decimal"

// ShippingSource discriminates where a shipping option came from:
// the remote carrier-rate lookup or one of the locally synthesized
// fixed-rate options.
type ShippingSource string

const (
	ShippingSourceCarrier       ShippingSource = "carrier"
	ShippingSourcePickup        ShippingSource = "pickup"
	ShippingSourceLocalDelivery ShippingSource = "local_delivery"
	ShippingSourceFreePromo     ShippingSource = "free_promo"
)

type (
	ShippingOption struct {
		OptionID     string
		Name         string
		Price        decimal.Decimal
		DeliveryDays int
		Company      ShippingCompany
		Source       ShippingSource
	}

	ShippingCompany struct {
		Name       string
		PictureURL string
	}
)

// Free reports whether the option costs nothing.
func (o ShippingOption) Free() bool {
	return o.Price.IsZero()
}

// SanitizeCEP strips every non-digit character from a postal code.
func SanitizeCEP(s string) string {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	return string(digits)
}

// A Parcel describes one cart line for the carrier-rate request.
// Dimensions are centimeters, weight is grams, the insured value is
// the line's frozen display price.
type Parcel struct {
	ProductID    string
	WidthCM      float64
	HeightCM     float64
	LengthCM     float64
	WeightGrams  float64
	InsuredValue decimal.Decimal
	Quantity     int
}
