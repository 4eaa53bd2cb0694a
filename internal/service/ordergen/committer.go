package ordergen

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// DefaultMaxDaysAgo: верхняя граница сдвига даты заказа в прошлое (два года).
const DefaultMaxDaysAgo = 730

// DateLayout: формат даты создания заказа, без времени суток.
const DateLayout = "2006-01-02"

// Committer пересчитывает итоги, оформляет заказ и переписывает дату его создания.
type Committer struct {
	service    domain.CartService
	carts      domain.CartRepository
	submitter  domain.OrderSubmitter
	orders     domain.OrderRepository
	now        func() time.Time
	rnd        *rand.Rand
	maxDaysAgo int
}

// NewCommitter создаёт Committer. rnd может быть nil: тогда используется глобальный генератор;
// maxDaysAgo <= 0 заменяется на DefaultMaxDaysAgo.
func NewCommitter(
	service domain.CartService,
	carts domain.CartRepository,
	submitter domain.OrderSubmitter,
	orders domain.OrderRepository,
	now func() time.Time,
	rnd *rand.Rand,
	maxDaysAgo int,
) *Committer {
	if now == nil {
		now = time.Now
	}
	if maxDaysAgo <= 0 {
		maxDaysAgo = DefaultMaxDaysAgo
	}
	return &Committer{
		service:    service,
		carts:      carts,
		submitter:  submitter,
		orders:     orders,
		now:        now,
		rnd:        rnd,
		maxDaysAgo: maxDaysAgo,
	}
}

// Backdate выбирает дату создания: полночь дня, отстоящего от текущего на случайное
// число дней в [1, maxDaysAgo]. Текущий день берётся в часовом поясе часов (для
// time.Now это локальная дата оператора). Возвращает дату и число дней.
func (c *Committer) Backdate() (time.Time, int) {
	var days int
	if c.rnd != nil {
		days = 1 + c.rnd.IntN(c.maxDaysAgo)
	} else {
		days = 1 + rand.IntN(c.maxDaysAgo)
	}
	now := c.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -days), days
}

// Commit пересчитывает итоги корзины, сохраняет её, оформляет заказ и записывает
// в него createdAt. Если заказ создан, а дату переписать не удалось, возвращается
// ошибка ErrBackdateFailed с номером заказа: заказ остаётся с реальной датой создания.
func (c *Committer) Commit(cart *domain.Cart, createdAt time.Time) (domain.Order, error) {
	if err := c.service.CollectTotals(cart); err != nil {
		return domain.Order{}, fmt.Errorf("collect totals: %w", err)
	}
	if err := c.carts.Save(*cart); err != nil {
		return domain.Order{}, fmt.Errorf("save cart %s: %w", cart.ID, err)
	}

	order, err := c.submitter.Submit(cart)
	if err != nil {
		if order.IncrementID != "" {
			return order, fmt.Errorf("order %s submitted with errors: %w", order.IncrementID, err)
		}
		return domain.Order{}, err
	}

	order.CreatedAt = createdAt
	if err := c.orders.Save(order); err != nil {
		if domain.IsVersionConflict(err) {
			err = fmt.Errorf("order was modified concurrently: %w", err)
		}
		return order, fmt.Errorf("%w: order %s keeps its real creation date: %w", domain.ErrBackdateFailed, order.IncrementID, err)
	}
	order.Version++

	return order, nil
}
