package memory

import (
	"fmt"
	"sync"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// storeRepositoryInMemory хранит иерархию website → group → store.
type storeRepositoryInMemory struct {
	mu       sync.RWMutex
	websites []domain.Website
	groups   map[string]domain.StoreGroup
	stores   map[string]domain.Store
}

// NewStoreRepository создаёт in-memory репозиторий магазинов.
func NewStoreRepository(websites []domain.Website, groups []domain.StoreGroup, stores []domain.Store) domain.StoreRepository {
	repo := &storeRepositoryInMemory{
		websites: append([]domain.Website(nil), websites...),
		groups:   make(map[string]domain.StoreGroup, len(groups)),
		stores:   make(map[string]domain.Store, len(stores)),
	}
	for _, g := range groups {
		repo.groups[g.ID] = g
	}
	for _, s := range stores {
		repo.stores[s.ID] = s
	}
	return repo
}

// Get возвращает store view по идентификатору.
func (r *storeRepositoryInMemory) Get(id string) (domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.stores[id]
	if !ok {
		return domain.Store{}, domain.ErrStoreNotFound
	}
	return store, nil
}

// DefaultStoreID проходит цепочку: website по умолчанию → его группа → её store.
func (r *storeRepositoryInMemory) DefaultStoreID() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var website *domain.Website
	for i := range r.websites {
		if r.websites[i].IsDefault {
			website = &r.websites[i]
			break
		}
	}
	if website == nil {
		return "", fmt.Errorf("default website: %w", domain.ErrStoreNotFound)
	}
	group, ok := r.groups[website.DefaultGroupID]
	if !ok {
		return "", fmt.Errorf("default group %q of website %q: %w", website.DefaultGroupID, website.Code, domain.ErrStoreNotFound)
	}
	if _, ok := r.stores[group.DefaultStoreID]; !ok {
		return "", fmt.Errorf("default store %q of group %q: %w", group.DefaultStoreID, group.ID, domain.ErrStoreNotFound)
	}
	return group.DefaultStoreID, nil
}

var _ domain.StoreRepository = (*storeRepositoryInMemory)(nil)
