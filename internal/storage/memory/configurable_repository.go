package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

type configurableRepositoryInMemory struct {
	mu      sync.RWMutex
	parents map[string]map[string]struct{}
}

// NewConfigurableRepository создаёт in-memory хранилище связей родитель → ребёнок.
func NewConfigurableRepository(links []domain.SuperLink) domain.ConfigurableRepository {
	repo := &configurableRepositoryInMemory{parents: make(map[string]map[string]struct{})}
	for _, link := range links {
		set, ok := repo.parents[link.ChildID]
		if !ok {
			set = make(map[string]struct{})
			repo.parents[link.ChildID] = set
		}
		set[link.ParentID] = struct{}{}
	}
	return repo
}

// ParentIDsByChild возвращает отсортированный список родителей товара (пустой, если их нет).
func (r *configurableRepositoryInMemory) ParentIDsByChild(childID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.parents[childID]
	result := make([]string, 0, len(set))
	for id := range set {
		result = append(result, id)
	}
	sort.Strings(result)
	return result, nil
}

var _ domain.ConfigurableRepository = (*configurableRepositoryInMemory)(nil)
