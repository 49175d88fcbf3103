package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
)

var _ port.ReturnResolver = (*OrderService)(nil)
var _ port.PaymentNotifiedHandler = (*OrderService)(nil)
var _ port.OrderStatusGetter = (*OrderService)(nil)

// An OrderService reconciles order state with the payment
// processor. Return routes are a best-effort projection for the
// customer, the signed webhook notification is the trusted path
// that actually settles payment state.
type OrderService struct {
	orders  port.OrdersStorage
	gateway port.PaymentGateway
	carts   port.CartClearer
	events  port.OrderEventsProducer
	view    port.OrderStatusView
}

func NewOrderService(
	orders port.OrdersStorage,
	gateway port.PaymentGateway,
	carts port.CartClearer,
	events port.OrderEventsProducer,
	view port.OrderStatusView,
) OrderService {
	return OrderService{orders, gateway, carts, events, view}
}

// ResolveReturn maps the processor's redirect parameters to a
// user-visible outcome. An approved status with a usable external
// reference marks the order paid; processing statuses leave it
// pending; a rejected status leaves the order untouched. Without
// usable parameters the route path alone decides, best effort.
func (s OrderService) ResolveReturn(
	ctx context.Context, sessionID, route, status, externalRef string,
) (domain.CheckoutOutcome, error) {
	const op = "OrderService.ResolveReturn"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case status == domain.PaymentStatusApproved && externalRef != "":
		err := s.markPaid(ctx, externalRef)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		s.clearCart(ctx, sessionID)
		return domain.CheckoutOutcomeSuccess, nil

	case processingStatus(status) && externalRef != "":
		s.clearCart(ctx, sessionID)
		return domain.CheckoutOutcomeProcessing, nil

	case status == domain.PaymentStatusRejected:
		return domain.CheckoutOutcomeFailure, nil
	}

	// Direct navigation without processor parameters: infer from
	// the route path alone.
	switch {
	case strings.Contains(route, "success"):
		s.clearCart(ctx, sessionID)
		return domain.CheckoutOutcomeSuccess, nil
	case strings.Contains(route, "pending"):
		s.clearCart(ctx, sessionID)
		return domain.CheckoutOutcomeProcessing, nil
	}
	return domain.CheckoutOutcomeFailure, nil
}

// HandlePaymentNotification settles order state from the
// processor's webhook. The notification signature is verified and
// the payment is fetched back from the processor before any state
// changes, client-supplied parameters alone never mutate an order.
func (s OrderService) HandlePaymentNotification(
	ctx context.Context, n domain.PaymentNotification,
) error {
	const op = "OrderService.HandlePaymentNotification"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.gateway.VerifyNotification(n); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	payment, err := s.gateway.ReadPayment(ctx, n.PaymentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if payment.ExternalReference == "" {
		log.Warn("payment without external reference",
			"paymentID", payment.PaymentID)
		return nil
	}

	switch payment.Status {
	case domain.PaymentStatusApproved:
		err = s.markPaid(ctx, payment.ExternalReference)
	case domain.PaymentStatusRejected:
		err = s.updateStatus(
			ctx, payment.ExternalReference, domain.OrderStatusCancelled,
		)
	default:
		// Pending-like statuses keep the order pending.
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s OrderService) GetOrderStatus(
	ctx context.Context, orderID string,
) (domain.OrderStatus, error) {
	const op = "OrderService.GetOrderStatus"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	status, ok, err := s.view.ReadOrderStatus(ctx, orderID)
	if err == nil && ok {
		return status, nil
	}
	if err != nil {
		slog.Warn("order status view unavailable, falling back to storage",
			"op", op, "err", err)
	}

	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return order.Status, nil
}

func (s OrderService) markPaid(ctx context.Context, orderID string) error {
	return s.updateStatus(ctx, orderID, domain.OrderStatusPaid)
}

func (s OrderService) updateStatus(
	ctx context.Context, orderID string, status domain.OrderStatus,
) error {
	const op = "OrderService.updateStatus"
	log := slog.With("op", op)

	err := s.orders.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			// Already settled, e.g. the webhook raced the
			// return route.
			log.Info("order already settled", "orderID", orderID)
			return nil
		}
		return err
	}

	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		log.Warn("failed to read order for event",
			"orderID", orderID, "err", err)
		return nil
	}

	if err := s.events.ProduceOrderEvent(ctx, order); err != nil {
		log.Warn("failed to produce order event",
			"orderID", orderID, "err", err)
	}
	return nil
}

func (s OrderService) clearCart(ctx context.Context, sessionID string) {
	const op = "OrderService.clearCart"

	if sessionID == "" {
		return
	}
	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		slog.Warn("failed to clear cart", "op", op, "err", err)
	}
}

func processingStatus(status string) bool {
	switch status {
	case domain.PaymentStatusPending,
		domain.PaymentStatusInProcess,
		domain.PaymentStatusAuthorized:
		return true
	}
	return false
}
