package port

import (
	"context"

	"github.com/cheiadearte/storefront/internal/core/domain"
)

// Inbound ports implemented by the core services.

type CartReader interface {
	GetCart(ctx context.Context, sessionID string) (domain.Cart, error)
}

type CartItemAdder interface {
	AddItem(
		ctx context.Context, sessionID, productID string,
		quantity int, model, aroma string,
	) (domain.Cart, error)
}

type CartItemRemover interface {
	RemoveItem(
		ctx context.Context, sessionID, lineKey string,
	) (domain.Cart, error)
}

type CartClearer interface {
	ClearCart(ctx context.Context, sessionID string) error
}

type ShippingSelector interface {
	SelectShipping(
		ctx context.Context, sessionID string, option domain.ShippingOption,
	) error
}

type ShippingQuoter interface {
	QuoteShipping(
		ctx context.Context, sessionID, destinationCEP string,
	) ([]domain.ShippingOption, error)
}

type CheckoutRedirect struct {
	OrderID     string
	CheckoutURL string
}

type CheckoutStarter interface {
	Checkout(
		ctx context.Context, sessionID, customerID string,
	) (CheckoutRedirect, error)
}

type ReturnResolver interface {
	ResolveReturn(
		ctx context.Context, sessionID, route, status, externalRef string,
	) (domain.CheckoutOutcome, error)
}

type PaymentNotifiedHandler interface {
	HandlePaymentNotification(
		ctx context.Context, n domain.PaymentNotification,
	) error
}

type OrderStatusGetter interface {
	GetOrderStatus(
		ctx context.Context, orderID string,
	) (domain.OrderStatus, error)
}

type CatalogReader interface {
	Departments(ctx context.Context) ([]domain.Department, error)
	DepartmentProducts(
		ctx context.Context, departmentID string,
	) ([]domain.Product, error)
	Product(ctx context.Context, productID string) (domain.Product, error)
}

type AddressFinder interface {
	FindAddress(ctx context.Context, cep string) (domain.Address, error)
}

// Outbound ports implemented by the adapters.

type CartSnapshots interface {
	LoadCart(
		ctx context.Context, sessionID string,
	) (domain.Cart, bool, error)
	SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error
}

type ProductsStorage interface {
	ReadDepartments(ctx context.Context) ([]domain.Department, error)
	ReadDepartmentProducts(
		ctx context.Context, departmentID string,
	) ([]domain.Product, error)
	ReadProduct(ctx context.Context, productID string) (domain.Product, error)
	StoreProducts(ctx context.Context, ps []domain.Product) error
}

type OrdersStorage interface {
	// CreateOrder persists the order keyed on its idempotency key.
	// A retry carrying an already-seen key returns the previously
	// created order instead of a new row.
	CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (domain.Order, error)
	UpdateOrderStatus(
		ctx context.Context, orderID string, status domain.OrderStatus,
	) error
}

type ProfilesStorage interface {
	ReadProfile(
		ctx context.Context, customerID string,
	) (domain.Profile, error)
}

type RateProvider interface {
	CalculateRates(
		ctx context.Context, destinationCEP string, parcels []domain.Parcel,
	) ([]domain.ShippingOption, error)
}

type PaymentGateway interface {
	CreatePreference(
		ctx context.Context, pref domain.CheckoutPreference,
	) (checkoutURL string, err error)
	ReadPayment(
		ctx context.Context, paymentID string,
	) (domain.Payment, error)
	VerifyNotification(n domain.PaymentNotification) error
}

type PostalLookup interface {
	LookupAddress(ctx context.Context, cep string) (domain.Address, error)
}

type OrderEventsProducer interface {
	ProduceOrderEvent(ctx context.Context, o domain.Order) error
}

type OrderStatusView interface {
	ReadOrderStatus(
		ctx context.Context, orderID string,
	) (domain.OrderStatus, bool, error)
}
