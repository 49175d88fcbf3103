package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
)

var _ port.CartSnapshots = (*CartsRepository)(nil)

// A CartsRepository persists one serialized cart snapshot per
// session. The snapshot is written whole on every cart mutation and
// the last write wins.
type CartsRepository struct {
	sqldb sqldb
}

func NewCartsRepository(sqldb sqldb) CartsRepository {
	return CartsRepository{sqldb}
}

func (r CartsRepository) LoadCart(
	ctx context.Context, sessionID string,
) (domain.Cart, bool, error) {
	const op = "CartsRepository.LoadCart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, false, fmt.Errorf("%s: %w", op, err)
	}

	var snapshotS string
	err := r.sqldb.QueryRowContext(ctx,
		`SELECT snapshot FROM cart_snapshots WHERE session_id = $1;`,
		sessionID,
	).Scan(&snapshotS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, false, nil
		}
		return domain.Cart{}, false, fmt.Errorf("%s: %w", op, err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(snapshotS), &cart); err != nil {
		return domain.Cart{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return cart, true, nil
}

func (r CartsRepository) SaveCart(
	ctx context.Context, sessionID string, cart domain.Cart,
) error {
	const op = "CartsRepository.SaveCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	snapshotB, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = r.sqldb.ExecContext(ctx,
		`INSERT INTO cart_snapshots (session_id, snapshot, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (session_id) DO UPDATE SET
			snapshot = EXCLUDED.snapshot,
			updated_at = now();`,
		sessionID, string(snapshotB),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
