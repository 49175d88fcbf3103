package service_test

import (
	"context"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCartSnapshots struct {
	mock.Mock
}

func (m *MockCartSnapshots) LoadCart(
	ctx context.Context, sessionID string,
) (domain.Cart, bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.Cart), args.Bool(1), args.Error(2)
}

func (m *MockCartSnapshots) SaveCart(
	ctx context.Context, sessionID string, cart domain.Cart,
) error {
	args := m.Called(ctx, sessionID, cart)
	return args.Error(0)
}

type MockProductsStorage struct {
	mock.Mock
}

func (m *MockProductsStorage) ReadDepartments(
	ctx context.Context,
) ([]domain.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockProductsStorage) ReadDepartmentProducts(
	ctx context.Context, departmentID string,
) ([]domain.Product, error) {
	args := m.Called(ctx, departmentID)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductsStorage) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) StoreProducts(
	ctx context.Context, ps []domain.Product,
) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) CalculateRates(
	ctx context.Context, destinationCEP string, parcels []domain.Parcel,
) ([]domain.ShippingOption, error) {
	args := m.Called(ctx, destinationCEP, parcels)
	if v := args.Get(0); v != nil {
		return v.([]domain.ShippingOption), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCartReader struct {
	mock.Mock
}

func (m *MockCartReader) GetCart(
	ctx context.Context, sessionID string,
) (domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

type MockCartClearer struct {
	mock.Mock
}

func (m *MockCartClearer) ClearCart(
	ctx context.Context, sessionID string,
) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockProfilesStorage struct {
	mock.Mock
}

func (m *MockProfilesStorage) ReadProfile(
	ctx context.Context, customerID string,
) (domain.Profile, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(domain.Profile), args.Error(1)
}

type MockOrdersStorage struct {
	mock.Mock
}

func (m *MockOrdersStorage) CreateOrder(
	ctx context.Context, o domain.Order,
) (domain.Order, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) ReadOrder(
	ctx context.Context, orderID string,
) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) UpdateOrderStatus(
	ctx context.Context, orderID string, status domain.OrderStatus,
) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePreference(
	ctx context.Context, pref domain.CheckoutPreference,
) (string, error) {
	args := m.Called(ctx, pref)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) ReadPayment(
	ctx context.Context, paymentID string,
) (domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(domain.Payment), args.Error(1)
}

func (m *MockPaymentGateway) VerifyNotification(
	n domain.PaymentNotification,
) error {
	args := m.Called(n)
	return args.Error(0)
}

type MockOrderEventsProducer struct {
	mock.Mock
}

func (m *MockOrderEventsProducer) ProduceOrderEvent(
	ctx context.Context, o domain.Order,
) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockOrderStatusView struct {
	mock.Mock
}

func (m *MockOrderStatusView) ReadOrderStatus(
	ctx context.Context, orderID string,
) (domain.OrderStatus, bool, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.OrderStatus), args.Bool(1), args.Error(2)
}

type MockPostalLookup struct {
	mock.Mock
}

func (m *MockPostalLookup) LookupAddress(
	ctx context.Context, cep string,
) (domain.Address, error) {
	args := m.Called(ctx, cep)
	return args.Get(0).(domain.Address), args.Error(1)
}
