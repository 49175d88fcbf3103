package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

const absentVariant = "none"

// LineKey computes the cart line identity for a product and its
// variant selection: "<id>-<model>-<aroma>" with "none" substituted
// for absent parts. Model and aroma are taken verbatim, two variants
// differing only in casing produce distinct lines.
func LineKey(productID, model, aroma string) string {
	if model == "" {
		model = absentVariant
	}
	if aroma == "" {
		aroma = absentVariant
	}
	return strings.Join([]string{productID, model, aroma}, "-")
}

type CartItem struct {
	Product       Product
	Quantity      int
	SelectedModel string
	SelectedAroma string
	DisplayPrice  decimal.Decimal
}

func (i CartItem) Key() string {
	return LineKey(i.Product.ProductID, i.SelectedModel, i.SelectedAroma)
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.DisplayPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// A Cart is an ordered collection of line items with an optional
// shipping selection. Insertion order is preserved for display.
type Cart struct {
	Items    []CartItem
	Shipping *ShippingOption
}

// Add merges the item into an existing line with an equal identity
// key, summing quantities, or appends a new line.
func (c *Cart) Add(item CartItem) {
	key := item.Key()
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the line with the given identity key.
// Removing an absent key is a no-op. An empty cart never keeps a
// shipping selection.
func (c *Cart) Remove(key string) {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	if c.Empty() {
		c.Shipping = nil
	}
}

// Clone returns a copy that shares no mutable state with the
// receiver: the line slice and the shipping selection are copied,
// so later mutations of either cart leave the other untouched.
func (c *Cart) Clone() Cart {
	clone := Cart{Items: slices.Clone(c.Items)}
	if c.Shipping != nil {
		shipping := *c.Shipping
		clone.Shipping = &shipping
	}
	return clone
}

func (c *Cart) Clear() {
	c.Items = nil
	c.Shipping = nil
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Total is the sum of display price times quantity over all lines,
// recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Count is the sum of line quantities.
func (c *Cart) Count() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
