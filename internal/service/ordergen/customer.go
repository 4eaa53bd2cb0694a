package ordergen

import (
	"errors"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// CustomerResolver находит клиента по идентификатору или выбирает случайного.
type CustomerResolver struct {
	repo domain.CustomerRepository
}

// NewCustomerResolver создаёт резолвер клиентов.
func NewCustomerResolver(repo domain.CustomerRepository) *CustomerResolver {
	return &CustomerResolver{repo: repo}
}

// Resolve возвращает клиента итерации. Повторный вызов в той же итерации отдаёт
// закэшированного клиента без обращения к репозиторию.
func (r *CustomerResolver) Resolve(state *State, explicitID string) (domain.Customer, error) {
	if state.Customer != nil {
		return *state.Customer, nil
	}

	var (
		customer domain.Customer
		err      error
	)
	if explicitID != "" {
		customer, err = r.repo.Get(explicitID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Customer{}, domain.NotFoundError("Couldn't find customer by ID: %s", explicitID)
		}
	} else {
		customer, err = pickOne(r.repo.Random, "")
	}
	if err != nil {
		return domain.Customer{}, err
	}

	state.Customer = &customer
	return customer, nil
}
