package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт PostgreSQL-реализацию CartRepository.
// Корзина хранится снимком в JSONB, ключевые поля продублированы в колонках.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{db: store.DB()}
}

func (r *cartRepository) Save(cart domain.Cart) error {
	if cart.ID == "" {
		return fmt.Errorf("%w: cart id is required", domain.ErrInvalidInput)
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", cart.ID, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO carts (id, store_id, customer_id, is_active, payload, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE
		SET store_id = EXCLUDED.store_id,
		    customer_id = EXCLUDED.customer_id,
		    is_active = EXCLUDED.is_active,
		    payload = EXCLUDED.payload,
		    updated_at = EXCLUDED.updated_at
	`, cart.ID, cart.StoreID, cart.CustomerID, cart.IsActive, payload, cart.CreatedAt, cart.UpdatedAt); err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}

func (r *cartRepository) Get(id string) (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM carts WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("select cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart %s: %w", id, err)
	}
	return cart, nil
}

var _ domain.CartRepository = (*cartRepository)(nil)
