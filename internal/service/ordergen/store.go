package ordergen

import (
	"fmt"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// defaultStore лениво вычисляет store по умолчанию один раз за процесс.
// Конвейер однопоточный, поэтому блокировка не нужна.
type defaultStore struct {
	repo domain.StoreRepository
	id   string
}

func (d *defaultStore) ID() (string, error) {
	if d.id != "" {
		return d.id, nil
	}
	id, err := d.repo.DefaultStoreID()
	if err != nil {
		return "", fmt.Errorf("resolve default store: %w", err)
	}
	d.id = id
	return id, nil
}
