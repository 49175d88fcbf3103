package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
	"github.com/google/uuid"
)

var _ port.CheckoutStarter = (*CheckoutService)(nil)

// idempotencyWindow bounds how long a retried checkout attempt maps
// to the same pending order.
const idempotencyWindow = 10 * time.Minute

// A CheckoutService converts the session's cart and shipping
// selection into a persisted pending order and a hosted checkout
// URL at the payment processor.
type CheckoutService struct {
	carts    port.CartReader
	profiles port.ProfilesStorage
	orders   port.OrdersStorage
	gateway  port.PaymentGateway
	events   port.OrderEventsProducer
	now      func() time.Time
}

func NewCheckoutService(
	carts port.CartReader,
	profiles port.ProfilesStorage,
	orders port.OrdersStorage,
	gateway port.PaymentGateway,
	events port.OrderEventsProducer,
) CheckoutService {
	return CheckoutService{
		carts:    carts,
		profiles: profiles,
		orders:   orders,
		gateway:  gateway,
		events:   events,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for idempotency-key
// bucketing.
func (s CheckoutService) WithClock(now func() time.Time) CheckoutService {
	s.now = now
	return s
}

func (s CheckoutService) Checkout(
	ctx context.Context, sessionID, customerID string,
) (port.CheckoutRedirect, error) {
	const op = "CheckoutService.Checkout"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return port.CheckoutRedirect{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, profile, err := s.checkPreconditions(ctx, sessionID, customerID)
	if err != nil {
		return port.CheckoutRedirect{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.createOrder(ctx, cart, customerID)
	if err != nil {
		return port.CheckoutRedirect{}, fmt.Errorf("%s: %w", op, err)
	}

	checkoutURL, err := s.gateway.CreatePreference(
		ctx, s.buildPreference(cart, profile, order),
	)
	if err != nil {
		// The pending order stays, a retry within the
		// idempotency window reuses it.
		return port.CheckoutRedirect{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.events.ProduceOrderEvent(ctx, order); err != nil {
		log.Warn("failed to produce order event",
			"orderID", order.OrderID, "err", err)
	}

	log.Info("checkout started", "orderID", order.OrderID)
	return port.CheckoutRedirect{
		OrderID:     order.OrderID,
		CheckoutURL: checkoutURL,
	}, nil
}

// checkPreconditions validates cart, shipping selection,
// authentication and profile completeness, in that order. The first
// failing check short-circuits and no order is created.
func (s CheckoutService) checkPreconditions(
	ctx context.Context, sessionID, customerID string,
) (domain.Cart, domain.Profile, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, domain.Profile{}, err
	}

	if cart.Empty() {
		return domain.Cart{}, domain.Profile{}, ErrEmptyCart
	}

	if cart.Shipping == nil {
		return domain.Cart{}, domain.Profile{}, ErrNoShippingSelected
	}

	if customerID == "" {
		return domain.Cart{}, domain.Profile{}, ErrUnauthenticated
	}

	profile, err := s.profiles.ReadProfile(ctx, customerID)
	if err != nil {
		return domain.Cart{}, domain.Profile{}, err
	}

	if !profile.Complete() {
		return domain.Cart{}, domain.Profile{}, ErrIncompleteProfile
	}

	return cart, profile, nil
}

func (s CheckoutService) createOrder(
	ctx context.Context, cart domain.Cart, customerID string,
) (domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.Product.ProductID,
			Name:      line.Product.Name,
			Model:     line.SelectedModel,
			Aroma:     line.SelectedAroma,
			UnitPrice: line.DisplayPrice,
			Quantity:  line.Quantity,
		})
	}

	order := domain.Order{
		OrderID:        uuid.NewString(),
		CustomerID:     customerID,
		Status:         domain.OrderStatusPending,
		TotalAmount:    cart.Total().Add(cart.Shipping.Price),
		ShippingCost:   cart.Shipping.Price,
		ShippingMethod: cart.Shipping.Name,
		Items:          items,
		IdempotencyKey: s.idempotencyKey(cart, customerID),
	}

	return s.orders.CreateOrder(ctx, order)
}

// idempotencyKey hashes the customer, the cart content, the
// shipping selection and a coarse time bucket. Re-clicking checkout
// inside the window upserts onto the same pending order instead of
// creating a duplicate.
func (s CheckoutService) idempotencyKey(
	cart domain.Cart, customerID string,
) string {
	h := sha256.New()
	h.Write([]byte(customerID))
	for _, line := range cart.Items {
		h.Write([]byte(line.Key()))
		h.Write([]byte(strconv.Itoa(line.Quantity)))
		h.Write([]byte(line.DisplayPrice.String()))
	}
	h.Write([]byte(cart.Shipping.OptionID))

	bucket := s.now().UTC().Truncate(idempotencyWindow)
	h.Write([]byte(strconv.FormatInt(bucket.Unix(), 10)))

	return hex.EncodeToString(h.Sum(nil))
}

func (s CheckoutService) buildPreference(
	cart domain.Cart, profile domain.Profile, order domain.Order,
) domain.CheckoutPreference {
	items := make([]domain.PreferenceItem, 0, len(cart.Items)+1)
	for _, line := range cart.Items {
		items = append(items, domain.PreferenceItem{
			ItemID:     line.Key(),
			Title:      preferenceTitle(line),
			UnitPrice:  line.DisplayPrice,
			Quantity:   line.Quantity,
			PictureURL: line.Product.ImageURL,
		})
	}

	// A non-pickup paid shipping choice becomes a synthetic line
	// item so the processor charges it.
	shipping := cart.Shipping
	if shipping.Source != domain.ShippingSourcePickup && !shipping.Free() {
		items = append(items, domain.PreferenceItem{
			ItemID:    "frete-" + shipping.OptionID,
			Title:     "Frete: " + shipping.Name,
			UnitPrice: shipping.Price,
			Quantity:  1,
		})
	}

	name, surname := splitFullName(profile.FullName)
	return domain.CheckoutPreference{
		Items: items,
		Payer: domain.PreferencePayer{
			Name:    name,
			Surname: surname,
			Email:   profile.Email,
			TaxID:   profile.TaxID,
		},
		ExternalReference: order.OrderID,
	}
}

func preferenceTitle(line domain.CartItem) string {
	title := line.Product.Name
	switch {
	case line.SelectedModel != "" && line.SelectedAroma != "":
		title += " (" + line.SelectedModel + " / " + line.SelectedAroma + ")"
	case line.SelectedModel != "":
		title += " (" + line.SelectedModel + ")"
	case line.SelectedAroma != "":
		title += " (" + line.SelectedAroma + ")"
	}
	return title
}

func splitFullName(fullName string) (name, surname string) {
	for i := 0; i < len(fullName); i++ {
		if fullName[i] == ' ' {
			return fullName[:i], fullName[i+1:]
		}
	}
	return fullName, ""
}
