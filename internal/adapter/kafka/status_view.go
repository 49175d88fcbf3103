package kafka

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
)

var _ port.OrderStatusView = (*OrderStatusView)(nil)

// An OrderStatusView serves reads from the order-status group table
// without touching the primary store.
type OrderStatusView struct {
	gv *goka.View
}

func NewOrderStatusView(
	seedBrokers []string, groupTable string,
) (*OrderStatusView, error) {
	const op = "NewOrderStatusView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		statusValueCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &OrderStatusView{gv}, nil
}

func (v *OrderStatusView) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "OrderStatusView.Run"
	log := slog.With("op", op)

	defer wg.Done()

	go func() {
		defer stopFn()
		if err := v.gv.Run(ctx); err != nil {
			log.Error("stopped", "err", err)
			return
		}
		log.Info("stopped")
	}()

	log.Info("preparing...")
	select {
	case <-ctx.Done():
	case <-v.gv.WaitRunning():
	}
	log.Info("running")
}

// ReadOrderStatus reports the table's latest status for the order.
// A missing key means the view has not seen the order yet; callers
// fall back to the primary store.
func (v *OrderStatusView) ReadOrderStatus(
	ctx context.Context, orderID string,
) (domain.OrderStatus, bool, error) {
	const op = "OrderStatusView.ReadOrderStatus"

	if err := ctx.Err(); err != nil {
		return "", false, opErr(err, op)
	}

	value, err := v.gv.Get(orderID)
	if err != nil {
		return "", false, opErr(err, op)
	}
	if value == nil {
		return "", false, nil
	}

	sv, ok := value.(statusValue)
	if !ok {
		return "", false, opErr(ErrInvalidValueType, op)
	}
	return domain.OrderStatus(sv), true, nil
}
