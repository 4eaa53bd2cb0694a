package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает состояние заказа.
type OrderStatus string

const (
	// OrderStatusPending: заказ создан из корзины, оплата офлайн ещё не получена.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing: оплата получена, заказ в обработке.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusComplete: заказ выполнен.
	OrderStatusComplete OrderStatus = "complete"
	// OrderStatusCanceled: заказ отменён.
	OrderStatusCanceled OrderStatus = "canceled"
)

// Ошибки инвариантов заказа.
var (
	ErrCustomerRequired  = errors.New("customer_id is required")
	ErrStoreRequired     = errors.New("store_id is required")
	ErrItemsRequired     = errors.New("order must contain at least one item")
	ErrItemQtyInvalid    = errors.New("item qty must be greater than zero")
	ErrItemPriceInvalid  = errors.New("item price must be non-negative")
	ErrAmountMismatch    = errors.New("order subtotal does not match items sum")
	ErrIncrementRequired = errors.New("increment_id is required")
)

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	ID        string
	ProductID string
	SKU       string
	Name      string
	Qty       int32
	Price     decimal.Decimal
	RowTotal  decimal.Decimal
	CreatedAt time.Time
}

// Order: неизменяемый результат отправки заполненной корзины.
// Единственное поле, которое меняется после создания,: CreatedAt (backdating).
type Order struct {
	ID              string
	IncrementID     string
	CartID          string
	CustomerID      string
	CustomerEmail   string
	StoreID         string
	Status          OrderStatus
	Items           []OrderItem
	BillingAddress  Address
	ShippingAddress Address
	ShippingMethod  string
	PaymentMethod   string
	Totals          Totals
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.IncrementID == "" {
		errs = append(errs, ErrIncrementRequired)
	}
	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.StoreID == "" {
		errs = append(errs, ErrStoreRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	// Сверяем subtotal с суммой позиций: qty * price.
	calc := decimal.Zero
	for _, item := range o.Items {
		if item.Qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.Price.IsNegative() {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc = calc.Add(item.Price.Mul(decimal.NewFromInt32(item.Qty)))
	}
	if !calc.Equal(o.Totals.Subtotal) {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
