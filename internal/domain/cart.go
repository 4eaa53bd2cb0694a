package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Коды методов доставки, которые поддерживает генератор.
const (
	ShippingFlatRate  = "flatrate_flatrate"
	ShippingTableRate = "tablerate_bestway"
)

// CartItem: позиция корзины.
type CartItem struct {
	ID        string          `json:"id" validate:"required"`
	ProductID string          `json:"product_id" validate:"required"`
	SKU       string          `json:"sku" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Qty       int32           `json:"qty" validate:"gt=0"`
	Price     decimal.Decimal `json:"price"`
	RowTotal  decimal.Decimal `json:"row_total"`
	Virtual   bool            `json:"is_virtual"`
}

// Totals: снимок итогов корзины или заказа. Считается CartService, а не конвейером.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Cart: рабочая транзакция (quote), которая накапливает позиции, адреса и методы
// до отправки в заказ. Используется ровно один раз.
type Cart struct {
	ID                   string          `json:"id"`
	StoreID              string          `json:"store_id"`
	CustomerID           string          `json:"customer_id"`
	CustomerEmail        string          `json:"customer_email"`
	CustomerFirstname    string          `json:"customer_firstname"`
	CustomerLastname     string          `json:"customer_lastname"`
	CustomerGroupID      int             `json:"customer_group_id"`
	Items                []CartItem      `json:"items"`
	BillingAddress       Address         `json:"billing_address"`
	ShippingAddress      Address         `json:"shipping_address"`
	ShippingMethod       string          `json:"shipping_method"`
	CollectShippingRates bool            `json:"collect_shipping_rates"`
	ShippingAmount       decimal.Decimal `json:"shipping_amount"`
	PaymentMethod        string          `json:"payment_method"`
	Totals               Totals          `json:"totals"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// AssignCustomer привязывает корзину к клиенту.
func (c *Cart) AssignCustomer(customer Customer) {
	c.CustomerID = customer.ID
	c.CustomerEmail = customer.Email
	c.CustomerFirstname = customer.Firstname
	c.CustomerLastname = customer.Lastname
	c.CustomerGroupID = customer.GroupID
}

// Missing возвращает список незаполненных частей корзины.
func (c *Cart) Missing() []string {
	var missing []string
	if c.CustomerID == "" {
		missing = append(missing, "customer")
	}
	if c.StoreID == "" {
		missing = append(missing, "store")
	}
	if len(c.Items) == 0 {
		missing = append(missing, "items")
	}
	if c.BillingAddress.IsZero() {
		missing = append(missing, "billing address")
	}
	if c.ShippingAddress.IsZero() {
		missing = append(missing, "shipping address")
	}
	if c.ShippingMethod == "" {
		missing = append(missing, "shipping method")
	}
	if c.PaymentMethod == "" {
		missing = append(missing, "payment method")
	}
	return missing
}

// AddItemResult описывает результат добавления товара в корзину: либо позиция, либо
// текстовая причина отказа (нет на складе, товар недоступен и т.п.).
type AddItemResult struct {
	Item      *CartItem
	Rejection string
}

// Rejected сообщает, что корзина отказалась добавлять товар.
func (r AddItemResult) Rejected() bool {
	return r.Item == nil || r.Rejection != ""
}
