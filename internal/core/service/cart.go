package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
)

var _ port.CartReader = (*CartService)(nil)
var _ port.CartItemAdder = (*CartService)(nil)
var _ port.CartItemRemover = (*CartService)(nil)
var _ port.CartClearer = (*CartService)(nil)
var _ port.ShippingSelector = (*CartService)(nil)

// A CartService keeps one cart per session in memory and writes a
// snapshot through to storage on every mutation. Snapshots are
// loaded lazily on the first access of a session and the last write
// wins. Returned carts are detached copies of the live state, safe
// to read after the call. A failed snapshot write degrades silently:
// the mutation stays applied in memory and the failure is only
// logged.
type CartService struct {
	mu        sync.Mutex
	carts     map[string]*domain.Cart
	snapshots port.CartSnapshots
	products  port.ProductsStorage
}

func NewCartService(
	snapshots port.CartSnapshots, products port.ProductsStorage,
) *CartService {
	return &CartService{
		carts:     make(map[string]*domain.Cart),
		snapshots: snapshots,
		products:  products,
	}
}

func (s *CartService) GetCart(
	ctx context.Context, sessionID string,
) (domain.Cart, error) {
	const op = "CartService.GetCart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return cart.Clone(), nil
}

func (s *CartService) AddItem(
	ctx context.Context, sessionID, productID string,
	quantity int, model, aroma string,
) (domain.Cart, error) {
	const op = "CartService.AddItem"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	if quantity < 1 {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}

	product, err := s.products.ReadProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	item := domain.CartItem{
		Product:       product,
		Quantity:      quantity,
		SelectedModel: model,
		SelectedAroma: aroma,
		DisplayPrice:  product.EffectivePrice(model, aroma),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart.Add(item)
	s.persist(ctx, sessionID, cart)
	return cart.Clone(), nil
}

func (s *CartService) RemoveItem(
	ctx context.Context, sessionID, lineKey string,
) (domain.Cart, error) {
	const op = "CartService.RemoveItem"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart.Remove(lineKey)
	s.persist(ctx, sessionID, cart)
	return cart.Clone(), nil
}

func (s *CartService) ClearCart(
	ctx context.Context, sessionID string,
) error {
	const op = "CartService.ClearCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cart(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cart.Clear()
	s.persist(ctx, sessionID, cart)
	return nil
}

func (s *CartService) SelectShipping(
	ctx context.Context, sessionID string, option domain.ShippingOption,
) error {
	const op = "CartService.SelectShipping"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cart(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cart.Empty() {
		return fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	cart.Shipping = &option
	s.persist(ctx, sessionID, cart)
	return nil
}

// cart returns the session's live cart, loading the stored snapshot
// on first access. Callers must hold s.mu.
func (s *CartService) cart(
	ctx context.Context, sessionID string,
) (*domain.Cart, error) {
	if cart, ok := s.carts[sessionID]; ok {
		return cart, nil
	}

	snapshot, ok, err := s.snapshots.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart := &domain.Cart{}
	if ok {
		*cart = snapshot
	}
	s.carts[sessionID] = cart
	return cart, nil
}

func (s *CartService) persist(
	ctx context.Context, sessionID string, cart *domain.Cart,
) {
	const op = "CartService.persist"

	err := s.snapshots.SaveCart(ctx, sessionID, *cart)
	if err != nil {
		slog.Warn("failed to save cart snapshot",
			"op", op, "sessionID", sessionID, "err", err)
	}
}
