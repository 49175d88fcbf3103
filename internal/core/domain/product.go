package domain

import "github.com/shopspring/decimal"

type (
	Product struct {
		ProductID    string
		Name         string
		Description  string
		Price        decimal.Decimal
		ImageURL     string
		DepartmentID string
		Models       []string
		Aromas       []string
		Dimensions   ProductDimensions
		Variations   []Variation
	}

	ProductDimensions struct {
		WeightGrams float64
		HeightCM    float64
		WidthCM     float64
		LengthCM    float64
	}

	Variation struct {
		Model string
		Aroma string
		Price decimal.Decimal
	}

	Department struct {
		DepartmentID string
		Name         string
		ImageURL     string
	}
)

// EffectivePrice resolves the price for the given variant selection.
//
// The first variation matching (model, aroma) wins, otherwise the
// base price applies. Duplicate variations with equal (model, aroma)
// pairs are a data-entry mistake and never override the first one.
func (p Product) EffectivePrice(model, aroma string) decimal.Decimal {
	for _, v := range p.Variations {
		if v.Model == model && v.Aroma == aroma {
			return v.Price
		}
	}
	return p.Price
}

// FindVariation returns the first variation matching the selection.
func (p Product) FindVariation(model, aroma string) (Variation, bool) {
	for _, v := range p.Variations {
		if v.Model == model && v.Aroma == aroma {
			return v, true
		}
	}
	return Variation{}, false
}
