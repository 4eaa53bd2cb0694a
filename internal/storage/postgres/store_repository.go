package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

type storeRepository struct {
	db *sql.DB
}

// NewStoreRepository создаёт PostgreSQL-реализацию StoreRepository.
func NewStoreRepository(store *Store) domain.StoreRepository {
	return &storeRepository{db: store.DB()}
}

func (r *storeRepository) Get(id string) (domain.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var s domain.Store
	err := r.db.QueryRowContext(ctx, `
		SELECT id, code, name, website_id, group_id, is_active
		FROM stores
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Code, &s.Name, &s.WebsiteID, &s.GroupID, &s.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Store{}, domain.ErrStoreNotFound
		}
		return domain.Store{}, fmt.Errorf("select store: %w", err)
	}
	return s, nil
}

// DefaultStoreID проходит цепочку website по умолчанию → группа → store одним запросом.
func (r *storeRepository) DefaultStoreID() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		websiteCode string
		storeID     sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT w.code, s.id
		FROM websites w
		LEFT JOIN store_groups g ON g.id = w.default_group_id
		LEFT JOIN stores s ON s.id = g.default_store_id
		WHERE w.is_default
		ORDER BY w.id
		LIMIT 1
	`).Scan(&websiteCode, &storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("default website: %w", domain.ErrStoreNotFound)
		}
		return "", fmt.Errorf("select default store: %w", err)
	}
	if !storeID.Valid {
		return "", fmt.Errorf("default store of website %q: %w", websiteCode, domain.ErrStoreNotFound)
	}
	return storeID.String, nil
}

var _ domain.StoreRepository = (*storeRepository)(nil)
