package ordergen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// Wildcard: маркер, переключающий поиск по SKU в режим случайного выбора по шаблону.
const Wildcard = "%"

const noProductsMessage = "No products are matching the criteria"

// ProductResolver находит товар по SKU, по шаблону SKU или случайно и проверяет,
// что его можно заказать отдельно.
type ProductResolver struct {
	products      domain.ProductRepository
	configurables domain.ConfigurableRepository
}

// NewProductResolver создаёт резолвер товаров.
func NewProductResolver(products domain.ProductRepository, configurables domain.ConfigurableRepository) *ProductResolver {
	return &ProductResolver{products: products, configurables: configurables}
}

// Resolve возвращает товар итерации.
func (r *ProductResolver) Resolve(state *State, input string) (domain.Product, error) {
	if state.Product != nil {
		return *state.Product, nil
	}

	var (
		product domain.Product
		err     error
	)
	if input != "" && !strings.Contains(input, Wildcard) {
		product, err = r.products.GetBySKU(input)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Product{}, domain.InvalidInputError("Couldn't find product by SKU: %s", input)
		}
	} else {
		product, err = pickOne(func() (domain.Product, error) {
			return r.products.Random(input)
		}, noProductsMessage)
		if err == nil {
			// Выборка отдаёт только идентификатор записи; перечитываем товар целиком.
			product, err = r.products.Get(product.ID)
		}
	}
	if err != nil {
		return domain.Product{}, err
	}

	if err := r.checkEligible(product); err != nil {
		return domain.Product{}, err
	}

	state.Product = &product
	return product, nil
}

// checkEligible отклоняет дочерние товары configurable: отдельно их заказать нельзя.
func (r *ProductResolver) checkEligible(product domain.Product) error {
	parents, err := r.configurables.ParentIDsByChild(product.ID)
	if err != nil {
		return fmt.Errorf("load configurable parents of %s: %w", product.ID, err)
	}
	if len(parents) > 0 {
		return domain.IneligibleProductError("Product (%s) is a child of configurable, can't use this.", product.ID)
	}
	return nil
}
