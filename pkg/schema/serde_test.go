package schema_test

import (
	"context"
	"testing"

	"github.com/cheiadearte/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeOrderEventV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeOrderEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("IdentifierAndSubjectOpts", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderEventSchemaTextV1,
		).Return(schemaID, nil)

		_, err := schema.NewSerdeOrderEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderEventSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeOrderEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		eventValue1 := schema.OrderEventV1{
			OrderID:        "testOrderID",
			CustomerID:     "testCustomerID",
			Status:         "pending",
			TotalAmount:    "95.00",
			ShippingCost:   "15.00",
			ShippingMethod: "Entrega Local (Salvador/BA)",
			Items: []schema.OrderItemV1{
				{
					ProductID: "testProductID",
					Title:     "Vela Aromática",
					Model:     "Grande",
					Aroma:     "Lavanda",
					UnitPrice: "40.00",
					Quantity:  2,
				},
			},
			OccurredAt: 1724900000000,
		}

		encodedData, err := serde.Encode(eventValue1)
		require.NoError(t, err)

		var eventValue2 schema.OrderEventV1
		err = serde.Decode(encodedData, &eventValue2)
		require.NoError(t, err)

		assert.Equal(t, eventValue1.OrderID, eventValue2.OrderID)
		assert.Equal(t, eventValue1.CustomerID, eventValue2.CustomerID)
		assert.Equal(t, eventValue1.Status, eventValue2.Status)
		assert.Equal(t, eventValue1.TotalAmount, eventValue2.TotalAmount)
		assert.Equal(t, eventValue1.ShippingCost, eventValue2.ShippingCost)
		assert.Equal(t,
			eventValue1.ShippingMethod, eventValue2.ShippingMethod)
		assert.Equal(t, eventValue1.OccurredAt, eventValue2.OccurredAt)

		require.Len(t, eventValue2.Items, len(eventValue1.Items))
		for i, v := range eventValue2.Items {
			assert.Equal(t, eventValue1.Items[i], v)
		}
	})
}
