package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

type configurableRepository struct {
	db *sql.DB
}

// NewConfigurableRepository создаёт PostgreSQL-реализацию ConfigurableRepository.
func NewConfigurableRepository(store *Store) domain.ConfigurableRepository {
	return &configurableRepository{db: store.DB()}
}

func (r *configurableRepository) ParentIDsByChild(childID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT parent_id
		FROM product_super_links
		WHERE child_id = $1
		ORDER BY parent_id
	`, childID)
	if err != nil {
		return nil, fmt.Errorf("query configurable parents: %w", err)
	}
	defer rows.Close()

	var parents []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan configurable parent: %w", err)
		}
		parents = append(parents, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate configurable parents: %w", err)
	}
	return parents, nil
}

var _ domain.ConfigurableRepository = (*configurableRepository)(nil)
