package memory

import (
	"math/rand/v2"
	"sync"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// productRepositoryInMemory: каталог товаров с индексом по SKU.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	order  []string
	items  map[string]domain.Product
	bySKU  map[string]string
	picker *picker
}

// NewProductRepository создаёт in-memory каталог.
func NewProductRepository(products []domain.Product, rnd *rand.Rand) domain.ProductRepository {
	repo := &productRepositoryInMemory{
		items:  make(map[string]domain.Product, len(products)),
		bySKU:  make(map[string]string, len(products)),
		picker: newPicker(rnd),
	}
	for _, p := range products {
		if _, exists := repo.items[p.ID]; !exists {
			repo.order = append(repo.order, p.ID)
		}
		repo.items[p.ID] = p
		repo.bySKU[p.SKU] = p.ID
	}
	return repo
}

// Get возвращает товар по идентификатору.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// GetBySKU ищет товар с точным совпадением SKU.
func (r *productRepositoryInMemory) GetBySKU(sku string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySKU[sku]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return r.items[id], nil
}

// Random выбирает товар среди подходящих под LIKE-шаблон (пустой шаблон: весь каталог).
func (r *productRepositoryInMemory) Random(skuPattern string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := r.order
	if skuPattern != "" {
		matcher := likeMatcher(skuPattern)
		candidates = make([]string, 0, len(r.order))
		for _, id := range r.order {
			if matcher.MatchString(r.items[id].SKU) {
				candidates = append(candidates, id)
			}
		}
	}
	if len(candidates) == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return r.items[candidates[r.picker.intN(len(candidates))]], nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
