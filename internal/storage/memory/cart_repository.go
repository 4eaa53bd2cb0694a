package memory

import (
	"errors"
	"sync"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

type cartRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Cart
}

// NewCartRepository создаёт in-memory хранилище корзин.
func NewCartRepository() domain.CartRepository {
	return &cartRepositoryInMemory{items: make(map[string]domain.Cart)}
}

// Save создаёт или перезаписывает корзину.
func (r *cartRepositoryInMemory) Save(cart domain.Cart) error {
	if cart.ID == "" {
		return errors.New("cart id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[cart.ID] = cloneCart(cart)
	return nil
}

// Get возвращает корзину или ErrCartNotFound.
func (r *cartRepositoryInMemory) Get(id string) (domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.items[id]
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	out := cart
	out.Items = append([]domain.CartItem(nil), cart.Items...)
	out.BillingAddress = cart.BillingAddress.Clone()
	out.ShippingAddress = cart.ShippingAddress.Clone()
	return out
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)
