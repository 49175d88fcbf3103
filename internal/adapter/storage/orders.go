package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.OrdersStorage = (*OrdersRepository)(nil)

type orderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Model     string          `json:"model,omitempty"`
	Aroma     string          `json:"aroma,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

// CreateOrder inserts the order keyed on its idempotency key.
// A conflicting key returns the previously created row, so a
// checkout retry inside the idempotency window never produces a
// duplicate order.
func (r OrdersRepository) CreateOrder(
	ctx context.Context, o domain.Order,
) (domain.Order, error) {
	const op = "OrdersRepository.CreateOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	itemsB, err := json.Marshal(toItemRows(o.Items))
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO orders (
			order_id, customer_id, status, total_amount,
			shipping_cost, shipping_method, items, idempotency_key,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		ON CONFLICT (idempotency_key) DO UPDATE
			SET updated_at = now()
		RETURNING order_id, customer_id, status, total_amount,
			shipping_cost, shipping_method, items, idempotency_key,
			created_at, updated_at;
	`

	row := r.sqldb.QueryRowContext(ctx, query,
		o.OrderID, o.CustomerID, string(o.Status), o.TotalAmount,
		o.ShippingCost, o.ShippingMethod, string(itemsB), o.IdempotencyKey,
	)

	stored, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return stored, nil
}

func (r OrdersRepository) ReadOrder(
	ctx context.Context, orderID string,
) (domain.Order, error) {
	const op = "OrdersRepository.ReadOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT order_id, customer_id, status, total_amount,
			shipping_cost, shipping_method, items, idempotency_key,
			created_at, updated_at
		FROM orders WHERE order_id = $1;`

	o, err := scanOrder(r.sqldb.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, port.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

// UpdateOrderStatus moves the order to the given status. The
// current row is locked and the forward-only transition rules are
// enforced inside the transaction.
func (r OrdersRepository) UpdateOrderStatus(
	ctx context.Context, orderID string, status domain.OrderStatus,
) (updateErr error) {
	const op = "OrdersRepository.UpdateOrderStatus"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if updateErr == nil {
			if err := tx.Commit(); err != nil {
				updateErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE order_id = $1 FOR UPDATE;`,
		orderID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, port.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if !domain.OrderStatus(current).CanTransition(status) {
		return fmt.Errorf("%s: %s to %s: %w",
			op, current, status, domain.ErrInvalidTransition)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = now()
		 WHERE order_id = $2;`,
		string(status), orderID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func scanOrder(row *sql.Row) (domain.Order, error) {
	var (
		o      domain.Order
		status string
		itemsS string
	)
	err := row.Scan(
		&o.OrderID, &o.CustomerID, &status, &o.TotalAmount,
		&o.ShippingCost, &o.ShippingMethod, &itemsS, &o.IdempotencyKey,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)

	var items []orderItem
	if err := json.Unmarshal([]byte(itemsS), &items); err != nil {
		return domain.Order{}, err
	}
	o.Items = fromItemRows(items)
	return o, nil
}

func toItemRows(items []domain.OrderItem) []orderItem {
	rows := make([]orderItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, orderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Model:     it.Model,
			Aroma:     it.Aroma,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return rows
}

func fromItemRows(rows []orderItem) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.OrderItem{
			ProductID: row.ProductID,
			Name:      row.Name,
			Model:     row.Model,
			Aroma:     row.Aroma,
			UnitPrice: row.UnitPrice,
			Quantity:  row.Quantity,
		})
	}
	return items
}
