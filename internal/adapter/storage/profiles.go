package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
)

var _ port.ProfilesStorage = (*ProfilesRepository)(nil)

type ProfilesRepository struct {
	sqldb sqldb
}

func NewProfilesRepository(sqldb sqldb) ProfilesRepository {
	return ProfilesRepository{sqldb}
}

func (r ProfilesRepository) ReadProfile(
	ctx context.Context, customerID string,
) (domain.Profile, error) {
	const op = "ProfilesRepository.ReadProfile"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT customer_id, email, full_name, tax_id, phone,
			address_street, address_number, address_complement,
			address_neighborhood, address_city, address_state,
			cep, approved
		FROM profiles WHERE customer_id = $1;`

	var p domain.Profile
	err := r.sqldb.QueryRowContext(ctx, query, customerID).Scan(
		&p.CustomerID, &p.Email, &p.FullName, &p.TaxID, &p.Phone,
		&p.Address.Street, &p.Address.Number, &p.Address.Complement,
		&p.Address.Neighborhood, &p.Address.City, &p.Address.State,
		&p.Address.CEP, &p.Approved,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, fmt.Errorf("%s: %w", op, port.ErrNotFound)
		}
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
