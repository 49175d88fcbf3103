package schema

const OrderEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "orders",
	"name": "order_event",
	"fields" : [
		{"name": "order_id", "type": "string"},
		{"name": "customer_id", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "total_amount", "type": "string"},
		{"name": "shipping_cost", "type": "string"},
		{"name": "shipping_method", "type": "string"},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_item",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "title", "type": "string"},
					{"name": "model", "type": "string"},
					{"name": "aroma", "type": "string"},
					{"name": "unit_price", "type": "string"},
					{"name": "quantity", "type": "int"}
				]
			}
		}},
		{"name": "occurred_at", "type": "long"}
	]
}`

type (
	// An OrderEventV1 mirrors an order snapshot at the moment its
	// status is recorded. Money fields travel as decimal strings so
	// consumers never re-round amounts.
	OrderEventV1 struct {
		OrderID        string         `avro:"order_id"`
		CustomerID     string         `avro:"customer_id"`
		Status         string         `avro:"status"`
		TotalAmount    string         `avro:"total_amount"`
		ShippingCost   string         `avro:"shipping_cost"`
		ShippingMethod string         `avro:"shipping_method"`
		Items          []OrderItemV1  `avro:"items"`
		OccurredAt     int64          `avro:"occurred_at"`
	}

	OrderItemV1 struct {
		ProductID string `avro:"product_id"`
		Title     string `avro:"title"`
		Model     string `avro:"model"`
		Aroma     string `avro:"aroma"`
		UnitPrice string `avro:"unit_price"`
		Quantity  int    `avro:"quantity"`
	}
)
