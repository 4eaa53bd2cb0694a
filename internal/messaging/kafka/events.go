package kafka

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// EventType определяет тип события
type EventType string

// EventTypeOrderGenerated: генератор создал и датировал заказ.
const EventTypeOrderGenerated EventType = "order.generated"

// TopicOrderEvents: topic по умолчанию для событий генератора.
const TopicOrderEvents = "ordergen.order.events"

// OrderItemPayload: позиция заказа в событии.
type OrderItemPayload struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Qty   int32           `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

// OrderGeneratedEvent представляет событие о созданном заказе
type OrderGeneratedEvent struct {
	EventType      EventType          `json:"event_type"`
	OrderID        string             `json:"order_id"`
	IncrementID    string             `json:"increment_id"`
	CustomerID     string             `json:"customer_id"`
	CustomerEmail  string             `json:"customer_email,omitempty"`
	StoreID        string             `json:"store_id"`
	Status         string             `json:"status"`
	ShippingMethod string             `json:"shipping_method"`
	PaymentMethod  string             `json:"payment_method"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	Items          []OrderItemPayload `json:"items"`
	// CreatedAt: дата создания заказа после сдвига в прошлое.
	CreatedAt time.Time `json:"created_at"`
	// Timestamp: момент публикации.
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderGeneratedEvent создает событие по заказу
func NewOrderGeneratedEvent(order domain.Order) *OrderGeneratedEvent {
	items := make([]OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemPayload{SKU: item.SKU, Name: item.Name, Qty: item.Qty, Price: item.Price})
	}
	return &OrderGeneratedEvent{
		EventType:      EventTypeOrderGenerated,
		OrderID:        order.ID,
		IncrementID:    order.IncrementID,
		CustomerID:     order.CustomerID,
		CustomerEmail:  order.CustomerEmail,
		StoreID:        order.StoreID,
		Status:         string(order.Status),
		ShippingMethod: order.ShippingMethod,
		PaymentMethod:  order.PaymentMethod,
		GrandTotal:     order.Totals.GrandTotal,
		Items:          items,
		CreatedAt:      order.CreatedAt,
		Timestamp:      time.Now().UTC(),
	}
}
