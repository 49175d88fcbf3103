package service_test

import (
	"testing"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orders  *MockOrdersStorage
	gateway *MockPaymentGateway
	carts   *MockCartClearer
	events  *MockOrderEventsProducer
	view    *MockOrderStatusView
	service service.OrderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orders:  new(MockOrdersStorage),
		gateway: new(MockPaymentGateway),
		carts:   new(MockCartClearer),
		events:  new(MockOrderEventsProducer),
		view:    new(MockOrderStatusView),
	}
	f.service = service.NewOrderService(
		f.orders, f.gateway, f.carts, f.events, f.view,
	)
	return f
}

func TestResolveReturn(t *testing.T) {
	t.Run("ApprovedMarksPaidAndClearsCart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.orders.On("UpdateOrderStatus",
			mock.Anything, "order-1", domain.OrderStatusPaid).Return(nil)
		f.orders.On("ReadOrder", mock.Anything, "order-1").
			Return(domain.Order{
				OrderID: "order-1", Status: domain.OrderStatusPaid,
			}, nil)
		f.events.On("ProduceOrderEvent", mock.Anything, mock.Anything).
			Return(nil)
		f.carts.On("ClearCart", mock.Anything, testSession).Return(nil)

		outcome, err := f.service.ResolveReturn(
			t.Context(), testSession, "success", "approved", "order-1",
		)
		require.NoError(t, err)
		assert.Equal(t, domain.CheckoutOutcomeSuccess, outcome)
		f.orders.AssertExpectations(t)
		f.carts.AssertExpectations(t)
	})

	t.Run("ProcessingStatusesLeaveOrderPending", func(t *testing.T) {
		for _, status := range []string{"pending", "in_process", "authorized"} {
			t.Run(status, func(t *testing.T) {
				f := newOrderFixture(t)
				f.carts.On("ClearCart", mock.Anything, testSession).Return(nil)

				outcome, err := f.service.ResolveReturn(
					t.Context(), testSession, "pending", status, "order-1",
				)
				require.NoError(t, err)
				assert.Equal(t, domain.CheckoutOutcomeProcessing, outcome)
				f.orders.AssertNotCalled(t, "UpdateOrderStatus")
				f.carts.AssertExpectations(t)
			})
		}
	})

	t.Run("RejectedKeepsCartAndOrder", func(t *testing.T) {
		f := newOrderFixture(t)

		outcome, err := f.service.ResolveReturn(
			t.Context(), testSession, "failure", "rejected", "order-1",
		)
		require.NoError(t, err)
		assert.Equal(t, domain.CheckoutOutcomeFailure, outcome)
		f.orders.AssertNotCalled(t, "UpdateOrderStatus")
		f.carts.AssertNotCalled(t, "ClearCart")
	})

	t.Run("DirectNavigationFallsBackToRoute", func(t *testing.T) {
		f := newOrderFixture(t)
		f.carts.On("ClearCart", mock.Anything, testSession).Return(nil)

		outcome, err := f.service.ResolveReturn(
			t.Context(), testSession, "success", "", "",
		)
		require.NoError(t, err)
		assert.Equal(t, domain.CheckoutOutcomeSuccess, outcome)
		f.orders.AssertNotCalled(t, "UpdateOrderStatus")
	})
}

func TestHandlePaymentNotification(t *testing.T) {
	notification := domain.PaymentNotification{
		PaymentID: "pay-1",
		RequestID: "req-1",
		Timestamp: "1700000000",
		Signature: "abc",
	}

	t.Run("InvalidSignatureRejected", func(t *testing.T) {
		f := newOrderFixture(t)
		f.gateway.On("VerifyNotification", notification).
			Return(assert.AnError)

		err := f.service.HandlePaymentNotification(t.Context(), notification)
		require.Error(t, err)
		f.gateway.AssertNotCalled(t, "ReadPayment")
		f.orders.AssertNotCalled(t, "UpdateOrderStatus")
	})

	t.Run("ApprovedPaymentSettlesOrder", func(t *testing.T) {
		f := newOrderFixture(t)
		f.gateway.On("VerifyNotification", notification).Return(nil)
		f.gateway.On("ReadPayment", mock.Anything, "pay-1").
			Return(domain.Payment{
				PaymentID:         "pay-1",
				Status:            domain.PaymentStatusApproved,
				ExternalReference: "order-1",
			}, nil)
		f.orders.On("UpdateOrderStatus",
			mock.Anything, "order-1", domain.OrderStatusPaid).Return(nil)
		f.orders.On("ReadOrder", mock.Anything, "order-1").
			Return(domain.Order{
				OrderID: "order-1", Status: domain.OrderStatusPaid,
			}, nil)
		f.events.On("ProduceOrderEvent", mock.Anything, mock.Anything).
			Return(nil)

		err := f.service.HandlePaymentNotification(t.Context(), notification)
		require.NoError(t, err)
		f.orders.AssertExpectations(t)
	})

	t.Run("AlreadySettledOrderIsIdempotent", func(t *testing.T) {
		f := newOrderFixture(t)
		f.gateway.On("VerifyNotification", notification).Return(nil)
		f.gateway.On("ReadPayment", mock.Anything, "pay-1").
			Return(domain.Payment{
				PaymentID:         "pay-1",
				Status:            domain.PaymentStatusApproved,
				ExternalReference: "order-1",
			}, nil)
		f.orders.On("UpdateOrderStatus",
			mock.Anything, "order-1", domain.OrderStatusPaid).
			Return(domain.ErrInvalidTransition)

		err := f.service.HandlePaymentNotification(t.Context(), notification)
		require.NoError(t, err)
		f.events.AssertNotCalled(t, "ProduceOrderEvent")
	})

	t.Run("PendingPaymentKeepsOrderUntouched", func(t *testing.T) {
		f := newOrderFixture(t)
		f.gateway.On("VerifyNotification", notification).Return(nil)
		f.gateway.On("ReadPayment", mock.Anything, "pay-1").
			Return(domain.Payment{
				PaymentID:         "pay-1",
				Status:            domain.PaymentStatusInProcess,
				ExternalReference: "order-1",
			}, nil)

		err := f.service.HandlePaymentNotification(t.Context(), notification)
		require.NoError(t, err)
		f.orders.AssertNotCalled(t, "UpdateOrderStatus")
	})
}

func TestGetOrderStatus(t *testing.T) {
	t.Run("ServedFromView", func(t *testing.T) {
		f := newOrderFixture(t)
		f.view.On("ReadOrderStatus", mock.Anything, "order-1").
			Return(domain.OrderStatusPaid, true, nil)

		status, err := f.service.GetOrderStatus(t.Context(), "order-1")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPaid, status)
		f.orders.AssertNotCalled(t, "ReadOrder")
	})

	t.Run("ViewMissFallsBackToStorage", func(t *testing.T) {
		f := newOrderFixture(t)
		f.view.On("ReadOrderStatus", mock.Anything, "order-1").
			Return(domain.OrderStatus(""), false, nil)
		f.orders.On("ReadOrder", mock.Anything, "order-1").
			Return(domain.Order{
				OrderID: "order-1", Status: domain.OrderStatusPending,
			}, nil)

		status, err := f.service.GetOrderStatus(t.Context(), "order-1")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPending, status)
	})
}
