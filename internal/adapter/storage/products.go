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

var _ port.ProductsStorage = (*ProductsRepository)(nil)

type variationRow struct {
	Model string          `json:"model"`
	Aroma string          `json:"aroma"`
	Price decimal.Decimal `json:"price"`
}

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) ReadDepartments(
	ctx context.Context,
) ([]domain.Department, error) {
	const op = "ProductsRepository.ReadDepartments"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.sqldb.QueryContext(ctx,
		`SELECT department_id, name, image_url
		 FROM departments ORDER BY name ASC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ds []domain.Department
	for rows.Next() {
		var d domain.Department
		err := rows.Scan(&d.DepartmentID, &d.Name, &d.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ds = append(ds, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ds, nil
}

func (r ProductsRepository) ReadDepartmentProducts(
	ctx context.Context, departmentID string,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ReadDepartmentProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.sqldb.QueryContext(ctx,
		productSelect+` WHERE department_id = $1 ORDER BY name ASC;`,
		departmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "ProductsRepository.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	row := r.sqldb.QueryRowContext(ctx,
		productSelect+` WHERE product_id = $1;`, productID,
	)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, port.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// StoreProducts upserts the back-office product catalog.
func (r ProductsRepository) StoreProducts(
	ctx context.Context, ps []domain.Product,
) (storeErr error) {
	const op = "ProductsRepository.StoreProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO products (
			product_id, name, description, price, image_url,
			department_id, models, aromas, weight_grams,
			height_cm, width_cm, length_cm, variations
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (product_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			image_url = EXCLUDED.image_url,
			department_id = EXCLUDED.department_id,
			models = EXCLUDED.models,
			aromas = EXCLUDED.aromas,
			weight_grams = EXCLUDED.weight_grams,
			height_cm = EXCLUDED.height_cm,
			width_cm = EXCLUDED.width_cm,
			length_cm = EXCLUDED.length_cm,
			variations = EXCLUDED.variations;
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, p := range ps {
		modelsB, err := json.Marshal(p.Models)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		aromasB, err := json.Marshal(p.Aromas)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		variationsB, err := json.Marshal(toVariationRows(p.Variations))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		_, err = stmt.ExecContext(ctx,
			p.ProductID, p.Name, p.Description, p.Price, p.ImageURL,
			p.DepartmentID, string(modelsB), string(aromasB),
			p.Dimensions.WeightGrams, p.Dimensions.HeightCM,
			p.Dimensions.WidthCM, p.Dimensions.LengthCM,
			string(variationsB),
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

const productSelect = `
	SELECT product_id, name, description, price, image_url,
		department_id, models, aromas, weight_grams,
		height_cm, width_cm, length_cm, variations
	FROM products`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p          domain.Product
		modelsS    string
		aromasS    string
		variationS string
	)
	err := row.Scan(
		&p.ProductID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.DepartmentID, &modelsS, &aromasS, &p.Dimensions.WeightGrams,
		&p.Dimensions.HeightCM, &p.Dimensions.WidthCM,
		&p.Dimensions.LengthCM, &variationS,
	)
	if err != nil {
		return domain.Product{}, err
	}

	if err := json.Unmarshal([]byte(modelsS), &p.Models); err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal([]byte(aromasS), &p.Aromas); err != nil {
		return domain.Product{}, err
	}

	var vrs []variationRow
	if err := json.Unmarshal([]byte(variationS), &vrs); err != nil {
		return domain.Product{}, err
	}
	p.Variations = fromVariationRows(vrs)
	return p, nil
}

func toVariationRows(vs []domain.Variation) []variationRow {
	rows := make([]variationRow, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, variationRow{v.Model, v.Aroma, v.Price})
	}
	return rows
}

func fromVariationRows(rows []variationRow) []domain.Variation {
	vs := make([]domain.Variation, 0, len(rows))
	for _, row := range rows {
		vs = append(vs, domain.Variation{
			Model: row.Model, Aroma: row.Aroma, Price: row.Price,
		})
	}
	return vs
}
