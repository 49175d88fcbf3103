package httphandler

import (
	"github.com/shopspring/decimal"

	"github.com/cheiadearte/storefront/internal/core/domain"
)

type (
	Department struct {
		DepartmentID string `json:"department_id"`
		Name         string `json:"name"`
		ImageURL     string `json:"image_url,omitempty"`
	}

	Product struct {
		ProductID    string          `json:"product_id"`
		Name         string          `json:"name"`
		Description  string          `json:"description"`
		Price        decimal.Decimal `json:"price"`
		ImageURL     string          `json:"image_url,omitempty"`
		DepartmentID string          `json:"department_id"`
		Models       []string        `json:"models,omitempty"`
		Aromas       []string        `json:"aromas,omitempty"`
		Variations   []Variation     `json:"variations,omitempty"`
	}

	Variation struct {
		Model string          `json:"model"`
		Aroma string          `json:"aroma"`
		Price decimal.Decimal `json:"price"`
	}

	CartItem struct {
		Key           string          `json:"key"`
		ProductID     string          `json:"product_id"`
		Name          string          `json:"name"`
		ImageURL      string          `json:"image_url,omitempty"`
		Quantity      int             `json:"quantity"`
		SelectedModel string          `json:"selected_model,omitempty"`
		SelectedAroma string          `json:"selected_aroma,omitempty"`
		UnitPrice     decimal.Decimal `json:"unit_price"`
		LineTotal     decimal.Decimal `json:"line_total"`
	}

	Cart struct {
		Items    []CartItem      `json:"items"`
		Shipping *ShippingOption `json:"shipping,omitempty"`
		Subtotal decimal.Decimal `json:"subtotal"`
		Count    int             `json:"count"`
	}

	ShippingOption struct {
		OptionID     string          `json:"option_id"`
		Name         string          `json:"name"`
		Price        decimal.Decimal `json:"price"`
		DeliveryDays int             `json:"delivery_days"`
		CompanyName  string          `json:"company_name,omitempty"`
		CompanyLogo  string          `json:"company_logo,omitempty"`
		Source       string          `json:"source"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Model     string `json:"model,omitempty"`
		Aroma     string `json:"aroma,omitempty"`
	}

	QuoteRequest struct {
		CEP string `json:"cep"`
	}

	CheckoutRequest struct {
		CustomerID string `json:"customer_id"`
	}

	CheckoutResponse struct {
		OrderID     string `json:"order_id"`
		CheckoutURL string `json:"checkout_url"`
	}

	CheckoutResult struct {
		Outcome string `json:"outcome"`
	}

	OrderStatus struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}

	Address struct {
		CEP          string `json:"cep"`
		Street       string `json:"street"`
		Neighborhood string `json:"neighborhood"`
		City         string `json:"city"`
		State        string `json:"state"`
	}
)

func departmentFromDomain(d domain.Department) Department {
	return Department{
		DepartmentID: d.DepartmentID,
		Name:         d.Name,
		ImageURL:     d.ImageURL,
	}
}

func productFromDomain(p domain.Product) Product {
	vp := Product{
		ProductID:    p.ProductID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		DepartmentID: p.DepartmentID,
		Models:       p.Models,
		Aromas:       p.Aromas,
	}
	for _, v := range p.Variations {
		vp.Variations = append(vp.Variations, Variation(v))
	}
	return vp
}

func shippingOptionFromDomain(o domain.ShippingOption) ShippingOption {
	return ShippingOption{
		OptionID:     o.OptionID,
		Name:         o.Name,
		Price:        o.Price,
		DeliveryDays: o.DeliveryDays,
		CompanyName:  o.Company.Name,
		CompanyLogo:  o.Company.PictureURL,
		Source:       string(o.Source),
	}
}

func shippingOptionToDomain(o ShippingOption) domain.ShippingOption {
	return domain.ShippingOption{
		OptionID:     o.OptionID,
		Name:         o.Name,
		Price:        o.Price,
		DeliveryDays: o.DeliveryDays,
		Company: domain.ShippingCompany{
			Name:       o.CompanyName,
			PictureURL: o.CompanyLogo,
		},
		Source: domain.ShippingSource(o.Source),
	}
}

func cartFromDomain(c domain.Cart) Cart {
	vc := Cart{
		Items:    []CartItem{},
		Subtotal: c.Total(),
		Count:    c.Count(),
	}
	for _, item := range c.Items {
		vc.Items = append(vc.Items, CartItem{
			Key:           item.Key(),
			ProductID:     item.Product.ProductID,
			Name:          item.Product.Name,
			ImageURL:      item.Product.ImageURL,
			Quantity:      item.Quantity,
			SelectedModel: item.SelectedModel,
			SelectedAroma: item.SelectedAroma,
			UnitPrice:     item.DisplayPrice,
			LineTotal:     item.LineTotal(),
		})
	}
	if c.Shipping != nil {
		opt := shippingOptionFromDomain(*c.Shipping)
		vc.Shipping = &opt
	}
	return vc
}

func addressFromDomain(a domain.Address) Address {
	return Address{
		CEP:          a.CEP,
		Street:       a.Street,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
	}
}
