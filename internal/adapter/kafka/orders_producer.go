package kafka

import (
	"context"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
	"github.com/cheiadearte/storefront/pkg/schema"
)

var _ port.OrderEventsProducer = (*OrderEventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// An OrderEventsProducer emits one [domain.Order] snapshot per
// status change, keyed by order ID so the stream compacts per order.
type OrderEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewOrderEventsProducer(
	opts ...ProducerOpt,
) (OrderEventsProducer, error) {
	const op = "NewOrderEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrderEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "OrderEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return OrderEventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p OrderEventsProducer) Close() {
	p.producer.close()
}

func (p OrderEventsProducer) ProduceOrderEvent(
	ctx context.Context, o domain.Order,
) error {
	const op = "ProduceOrderEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(o)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p OrderEventsProducer) createRecord(
	o domain.Order,
) (r kgo.Record, err error) {
	const op = "createRecord"

	s := p.toSchema(o)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(s.OrderID)
	r = kgo.Record{Key: msgKey, Value: b}

	return r, nil
}

func (OrderEventsProducer) toSchema(o domain.Order) schema.OrderEventV1 {
	return orderToSchemaV1(o)
}
