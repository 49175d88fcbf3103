package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"

	"github.com/cheiadearte/storefront/pkg/schema"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An orderEventCodec used for serde [schema.OrderEventV1]
type orderEventCodec struct {
	serde Serde
}

func newOrderEventCodec(s Serde) orderEventCodec {
	return orderEventCodec{s}
}

func (c orderEventCodec) Encode(v any) ([]byte, error) {
	const op = "orderEventCodec.Encode"
	if _, ok := v.(schema.OrderEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderEventCodec) Decode(data []byte) (any, error) {
	const op = "orderEventCodec.Decode"
	var s schema.OrderEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A statusValue is the latest known status for a particular order
type statusValue string

// A statusValueCodec used for serde [statusValue]
type statusValueCodec struct{}

func (statusValueCodec) Encode(v any) ([]byte, error) {
	const op = "statusValueCodec.Encode"
	sv, ok := v.(statusValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return []byte(sv), nil
}

func (statusValueCodec) Decode(data []byte) (any, error) {
	return statusValue(data), nil
}

// An OrderStatusProcessor folds order events from the stream topic
// into a per-order status group table.
type OrderStatusProcessor struct {
	opPrefix string
	proc     processor
}

func NewOrderStatusProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	orderEventSerde Serde,
) (*OrderStatusProcessor, error) {
	const op = "NewOrderStatusProcessor"

	var p OrderStatusProcessor

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newOrderEventCodec(orderEventSerde),
			p.processFn,
		),
		goka.Persist(statusValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.opPrefix = "OrderStatusProcessor"
	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *OrderStatusProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *OrderStatusProcessor) Close() {
	p.proc.close()
}

func (p *OrderStatusProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.OrderEventV1)
	v := statusValue(event.Status)
	ctx.SetValue(v)
	log.Info(
		"set order status",
		"orderID", event.OrderID,
		"status", event.Status,
	)
}
