package domain

import "github.com/shopspring/decimal"

// ProductType: тип товара в каталоге.
type ProductType string

const (
	ProductTypeSimple       ProductType = "simple"
	ProductTypeVirtual      ProductType = "virtual"
	ProductTypeConfigurable ProductType = "configurable"
)

// ProductStatus: статус доступности товара на витрине.
type ProductStatus string

const (
	ProductStatusEnabled  ProductStatus = "enabled"
	ProductStatusDisabled ProductStatus = "disabled"
)

// Product описывает товар каталога.
// Связь configurable-родитель → дочерний товар хранится отдельно (ConfigurableRepository).
type Product struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Type     ProductType     `json:"type"`
	Status   ProductStatus   `json:"status"`
	Price    decimal.Decimal `json:"price"`
	Weight   decimal.Decimal `json:"weight"`
	StockQty int32           `json:"stock_qty"`
	InStock  bool            `json:"in_stock"`
}

// IsEnabled сообщает, что товар включён на витрине.
func (p Product) IsEnabled() bool {
	return p.Status == "" || p.Status == ProductStatusEnabled
}

// IsShippable сообщает, требует ли товар доставки.
func (p Product) IsShippable() bool {
	return p.Type != ProductTypeVirtual
}

// SuperLink связывает configurable-родителя с дочерним товаром.
type SuperLink struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
}
