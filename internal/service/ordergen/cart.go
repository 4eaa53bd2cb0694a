package ordergen

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	"github.com/vladislavdragonenkov/ordergen/internal/service/payment"
)

// SupportedShippingMethods: поддерживаемые коды доставки; первый используется по умолчанию.
var SupportedShippingMethods = []string{domain.ShippingFlatRate, domain.ShippingTableRate}

// ShippingMethod проверяет явно заданный код доставки или возвращает код по умолчанию.
func ShippingMethod(code string) (string, error) {
	if code == "" {
		return SupportedShippingMethods[0], nil
	}
	if !slices.Contains(SupportedShippingMethods, code) {
		return "", domain.InvalidInputError("Shipping method is not supported.")
	}
	return code, nil
}

// CartAssembler заполняет корзину итерации в строгом порядке: клиент и магазин, позиция,
// адрес оплаты, адрес доставки, метод доставки, метод оплаты.
type CartAssembler struct {
	service domain.CartService
	stores  domain.StoreRepository
	def     *defaultStore
	now     func() time.Time
}

// NewCartAssembler создаёт сборщик корзины.
func NewCartAssembler(service domain.CartService, stores domain.StoreRepository) *CartAssembler {
	return &CartAssembler{
		service: service,
		stores:  stores,
		def:     &defaultStore{repo: stores},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Assemble создаёт корзину для клиента и товара из state и сохраняет её в state.Cart.
func (a *CartAssembler) Assemble(state *State, opts Options) (*domain.Cart, error) {
	if state.Customer == nil || state.Product == nil {
		return nil, errors.New("customer and product must be resolved before cart assembly")
	}
	customer := *state.Customer

	cart, err := a.cart(state, opts.StoreID)
	if err != nil {
		return nil, err
	}

	res, err := a.service.AddProduct(cart, *state.Product, 1)
	if err != nil {
		return nil, err
	}
	if res.Rejected() {
		return nil, domain.InvalidInputError("Error: %s", res.Rejection)
	}
	if err := a.service.CheckItem(cart, res.Item); err != nil {
		return nil, err
	}

	cart.BillingAddress = BillingAddressFor(customer)
	cart.ShippingAddress = ShippingAddressFor(customer)

	method, err := ShippingMethod(opts.Shipping)
	if err != nil {
		return nil, err
	}
	cart.ShippingMethod = method
	cart.CollectShippingRates = true
	if err := a.service.CollectShippingRates(cart); err != nil {
		return nil, err
	}

	if err := a.service.SetPaymentMethod(cart, payment.MethodCheckMoneyOrder); err != nil {
		return nil, err
	}
	return cart, nil
}

// cart возвращает корзину итерации, создавая её и привязывая к клиенту и магазину.
func (a *CartAssembler) cart(state *State, storeOverride string) (*domain.Cart, error) {
	if state.Cart != nil {
		return state.Cart, nil
	}

	storeID := storeOverride
	if storeID == "" {
		id, err := a.def.ID()
		if err != nil {
			return nil, err
		}
		storeID = id
	} else if _, err := a.stores.Get(storeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundError("Couldn't find store by ID: %s", storeID)
		}
		return nil, fmt.Errorf("load store %s: %w", storeID, err)
	}

	now := a.now()
	cart := &domain.Cart{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cart.AssignCustomer(*state.Customer)

	state.Cart = cart
	return cart, nil
}
