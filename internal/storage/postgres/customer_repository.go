package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Get(id string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return r.get(ctx, id)
}

// Random выбирает клиента через ORDER BY random().
func (r *customerRepository) Random() (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM customers ORDER BY random() LIMIT 1`).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("pick random customer: %w", err)
	}
	return r.get(ctx, id)
}

func (r *customerRepository) get(ctx context.Context, id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, firstname, lastname, email, group_id, default_billing, default_shipping
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Firstname, &c.Lastname, &c.Email, &c.GroupID, &c.DefaultBillingID, &c.DefaultShippingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}

	addresses, err := r.loadAddresses(ctx, c.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	c.Addresses = addresses
	return c, nil
}

func (r *customerRepository) loadAddresses(ctx context.Context, customerID string) ([]domain.CustomerAddress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, firstname, lastname, street, city, region_id, region, postcode, country_id, telephone
		FROM customer_addresses
		WHERE customer_id = $1
		ORDER BY position ASC, id ASC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.CustomerAddress
	for rows.Next() {
		var (
			addr   domain.CustomerAddress
			street []byte
		)
		if err := rows.Scan(
			&addr.ID, &addr.Firstname, &addr.Lastname, &street, &addr.City,
			&addr.RegionID, &addr.Region, &addr.Postcode, &addr.CountryID, &addr.Telephone,
		); err != nil {
			return nil, fmt.Errorf("scan customer address: %w", err)
		}
		if err := json.Unmarshal(street, &addr.Street); err != nil {
			return nil, fmt.Errorf("decode street of address %s: %w", addr.ID, err)
		}
		addresses = append(addresses, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer addresses: %w", err)
	}
	return addresses, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
