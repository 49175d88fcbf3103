package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidTransition is returned when an order status update
// violates the forward-only transition rules.
var ErrInvalidTransition = errors.New("invalid order status transition")

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CanTransition reports whether an order may move from s to next.
// Orders only move forward: pending to paid or cancelled, paid to
// shipped.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPaid || next == OrderStatusCancelled
	case OrderStatusPaid:
		return next == OrderStatusShipped
	}
	return false
}

type (
	Order struct {
		OrderID        string
		CustomerID     string
		Status         OrderStatus
		TotalAmount    decimal.Decimal
		ShippingCost   decimal.Decimal
		ShippingMethod string
		Items          []OrderItem
		IdempotencyKey string
		CreatedAt      time.Time
		UpdatedAt      time.Time
	}

	// An OrderItem is a snapshot of a cart line captured at
	// checkout time.
	OrderItem struct {
		ProductID string
		Name      string
		Model     string
		Aroma     string
		UnitPrice decimal.Decimal
		Quantity  int
	}
)

// PaymentStatus values as reported by the payment processor.
const (
	PaymentStatusApproved   = "approved"
	PaymentStatusPending    = "pending"
	PaymentStatusInProcess  = "in_process"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusRejected   = "rejected"
)

// CheckoutOutcome is the user-visible result of a checkout return
// route or a payment notification.
type CheckoutOutcome string

const (
	CheckoutOutcomeSuccess    CheckoutOutcome = "success"
	CheckoutOutcomeProcessing CheckoutOutcome = "processing"
	CheckoutOutcomeFailure    CheckoutOutcome = "failure"
)
