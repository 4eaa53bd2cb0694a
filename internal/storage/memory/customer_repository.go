package memory

import (
	"math/rand/v2"
	"sync"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// customerRepositoryInMemory хранит клиентов в порядке загрузки.
type customerRepositoryInMemory struct {
	mu     sync.RWMutex
	order  []string
	items  map[string]domain.Customer
	picker *picker
}

// NewCustomerRepository создаёт in-memory репозиторий клиентов.
// rnd может быть nil: тогда используется глобальный генератор.
func NewCustomerRepository(customers []domain.Customer, rnd *rand.Rand) domain.CustomerRepository {
	repo := &customerRepositoryInMemory{
		items:  make(map[string]domain.Customer, len(customers)),
		picker: newPicker(rnd),
	}
	for _, c := range customers {
		if _, exists := repo.items[c.ID]; !exists {
			repo.order = append(repo.order, c.ID)
		}
		repo.items[c.ID] = cloneCustomer(c)
	}
	return repo
}

// Get возвращает клиента или ErrCustomerNotFound.
func (r *customerRepositoryInMemory) Get(id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return cloneCustomer(customer), nil
}

// Random выбирает клиента равновероятно из всех сохранённых.
func (r *customerRepositoryInMemory) Random() (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	id := r.order[r.picker.intN(len(r.order))]
	return cloneCustomer(r.items[id]), nil
}

func cloneCustomer(c domain.Customer) domain.Customer {
	out := c
	if c.Addresses != nil {
		out.Addresses = make([]domain.CustomerAddress, len(c.Addresses))
		for i, addr := range c.Addresses {
			out.Addresses[i] = domain.CustomerAddress{ID: addr.ID, Address: addr.Address.Clone()}
		}
	}
	return out
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
