// Package inventory проверяет складские остатки товаров перед добавлением в корзину.
package inventory

import (
	"fmt"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// Checker: проверка остатков по данным каталога (StockQty/InStock).
type Checker struct{}

// NewChecker возвращает проверку остатков по каталогу.
func NewChecker() *Checker {
	return &Checker{}
}

// Check возвращает *domain.KindError вида ErrInventoryUnavailable; Msg: причина для покупателя.
func (c *Checker) Check(product domain.Product, qty int32) error {
	if !product.InStock {
		return &domain.KindError{Kind: domain.ErrInventoryUnavailable, Msg: "This product is out of stock."}
	}
	if qty > product.StockQty {
		return &domain.KindError{
			Kind: domain.ErrInventoryUnavailable,
			Msg:  fmt.Sprintf("The requested quantity for %q is not available.", product.Name),
		}
	}
	return nil
}

var _ domain.StockChecker = (*Checker)(nil)
