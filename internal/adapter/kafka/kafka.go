// Package kafka carries the order-event stream: a franz-go producer
// emits order snapshots, a goka processor folds them into a
// per-order status group table, and a goka view serves reads.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lovoo/goka"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/pkg/schema"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(v domain.Order) (s schema.OrderEventV1) {
	s.OrderID = v.OrderID
	s.CustomerID = v.CustomerID
	s.Status = string(v.Status)
	s.TotalAmount = v.TotalAmount.StringFixed(2)
	s.ShippingCost = v.ShippingCost.StringFixed(2)
	s.ShippingMethod = v.ShippingMethod
	s.OccurredAt = v.UpdatedAt.UnixMilli()

	s.Items = make([]schema.OrderItemV1, len(v.Items))
	for i := range v.Items {
		s.Items[i].ProductID = v.Items[i].ProductID
		s.Items[i].Title = v.Items[i].Name
		s.Items[i].Model = v.Items[i].Model
		s.Items[i].Aroma = v.Items[i].Aroma
		s.Items[i].UnitPrice = v.Items[i].UnitPrice.StringFixed(2)
		s.Items[i].Quantity = v.Items[i].Quantity
	}
	return
}
