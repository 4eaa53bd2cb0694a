// Package checkout превращает заполненную корзину в заказ.
package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// Submitter: реализация domain.OrderSubmitter поверх репозиториев корзин и заказов.
type Submitter struct {
	carts  domain.CartRepository
	orders domain.OrderRepository
	now    func() time.Time
	logger *log.Entry
}

// NewSubmitter создаёт сервис оформления заказа.
func NewSubmitter(carts domain.CartRepository, orders domain.OrderRepository, logger *log.Entry) *Submitter {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	return &Submitter{
		carts:  carts,
		orders: orders,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// Submit создаёт заказ из корзины и деактивирует её. Корзина используется ровно один раз.
func (s *Submitter) Submit(cart *domain.Cart) (domain.Order, error) {
	if cart == nil {
		return domain.Order{}, errors.New("cart is nil")
	}
	if !cart.IsActive {
		return domain.Order{}, fmt.Errorf("cart %s: %w", cart.ID, domain.ErrCartConverted)
	}
	if missing := cart.Missing(); len(missing) > 0 {
		return domain.Order{}, fmt.Errorf("%w: missing %s", domain.ErrCartIncomplete, strings.Join(missing, ", "))
	}

	incrementID, err := s.orders.NextIncrementID()
	if err != nil {
		return domain.Order{}, fmt.Errorf("allocate increment id: %w", err)
	}

	now := s.now()
	order := domain.Order{
		ID:              uuid.NewString(),
		IncrementID:     incrementID,
		CartID:          cart.ID,
		CustomerID:      cart.CustomerID,
		CustomerEmail:   cart.CustomerEmail,
		StoreID:         cart.StoreID,
		Status:          domain.OrderStatusPending,
		Items:           make([]domain.OrderItem, 0, len(cart.Items)),
		BillingAddress:  cart.BillingAddress.Clone(),
		ShippingAddress: cart.ShippingAddress.Clone(),
		ShippingMethod:  cart.ShippingMethod,
		PaymentMethod:   cart.PaymentMethod,
		Totals:          cart.Totals,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Qty:       item.Qty,
			Price:     item.Price,
			RowTotal:  item.RowTotal,
			CreatedAt: now,
		})
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, fmt.Errorf("order invariants: %w", errors.Join(errs...))
	}

	if err := s.orders.Create(order); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	cart.IsActive = false
	cart.UpdatedAt = now
	if err := s.carts.Save(*cart); err != nil {
		// Заказ уже создан: возвращаем его вместе с ошибкой, чтобы вызывающий мог сообщить номер.
		return order, fmt.Errorf("deactivate cart %s after order %s: %w", cart.ID, order.IncrementID, err)
	}

	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"increment_id": order.IncrementID,
		"cart_id":      cart.ID,
		"grand_total":  order.Totals.GrandTotal.StringFixed(2),
	}).Info("order submitted")

	return order, nil
}

var _ domain.OrderSubmitter = (*Submitter)(nil)
