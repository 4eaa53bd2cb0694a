// Package ordergen собирает тестовые заказы: выбирает клиента и товар, заполняет корзину,
// оформляет заказ и сдвигает дату его создания в прошлое.
package ordergen

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	"github.com/vladislavdragonenkov/ordergen/internal/metrics"
)

// Options: параметры запуска, общие для всех итераций партии.
type Options struct {
	// CustomerID задаёт клиента для всех итераций, пустое значение означает случайного.
	CustomerID string
	// Product: точный SKU или LIKE-шаблон с '%'. Пусто означает случайный товар.
	Product string
	// StoreID пуст для магазина по умолчанию.
	StoreID string
	// Shipping: код из SupportedShippingMethods, по умолчанию первый.
	Shipping string
}

// Dependencies: коллабораторы конвейера.
type Dependencies struct {
	Customers     domain.CustomerRepository
	Products      domain.ProductRepository
	Configurables domain.ConfigurableRepository
	Stores        domain.StoreRepository
	Carts         domain.CartRepository
	Orders        domain.OrderRepository
	CartService   domain.CartService
	Submitter     domain.OrderSubmitter

	// Необязательные.
	Publisher  domain.OrderEventPublisher
	Metrics    *metrics.PipelineMetrics
	Reporter   Reporter
	Logger     *log.Entry
	Rand       *rand.Rand
	Clock      func() time.Time
	MaxDaysAgo int
}

// Summary: итог партии.
type Summary struct {
	Requested    int
	Created      int
	Failed       int
	IncrementIDs []string
	// Interrupted: партия остановлена отменой контекста до исчерпания count.
	Interrupted bool
}

// Pipeline выполняет итерации строго последовательно; каждая итерация независима.
type Pipeline struct {
	customers *CustomerResolver
	products  *ProductResolver
	assembler *CartAssembler
	committer *Committer

	publisher domain.OrderEventPublisher
	metrics   *metrics.PipelineMetrics
	reporter  Reporter
	logger    *log.Entry
	now       func() time.Time
}

// NewPipeline проверяет зависимости и собирает конвейер.
func NewPipeline(deps Dependencies) (*Pipeline, error) {
	switch {
	case deps.Customers == nil:
		return nil, errors.New("customer repository is required")
	case deps.Products == nil || deps.Configurables == nil:
		return nil, errors.New("product and configurable repositories are required")
	case deps.Stores == nil:
		return nil, errors.New("store repository is required")
	case deps.Carts == nil || deps.Orders == nil:
		return nil, errors.New("cart and order repositories are required")
	case deps.CartService == nil || deps.Submitter == nil:
		return nil, errors.New("cart service and order submitter are required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.New().WithField("component", "ordergen")
	}
	reporter := deps.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}

	assembler := NewCartAssembler(deps.CartService, deps.Stores)
	assembler.now = func() time.Time { return now().UTC() }

	return &Pipeline{
		customers: NewCustomerResolver(deps.Customers),
		products:  NewProductResolver(deps.Products, deps.Configurables),
		assembler: assembler,
		committer: NewCommitter(deps.CartService, deps.Carts, deps.Submitter, deps.Orders, now, deps.Rand, deps.MaxDaysAgo),
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		reporter:  reporter,
		logger:    logger,
		now:       now,
	}, nil
}

// Run выполняет count итераций. Ошибка итерации сообщается и не прерывает партию.
func (p *Pipeline) Run(count int, opts Options) Summary {
	return p.RunContext(context.Background(), count, opts)
}

// RunContext как Run, но между итерациями проверяет ctx. Начатая итерация доводится до конца.
func (p *Pipeline) RunContext(ctx context.Context, count int, opts Options) Summary {
	if count < 0 {
		count = 0
	}
	summary := Summary{Requested: count}
	if p.metrics != nil {
		p.metrics.RecordBatchStarted(count)
	}

	for i := 1; i <= count; i++ {
		if ctx.Err() != nil {
			summary.Interrupted = true
			break
		}
		order, err := p.RunOnce(i, opts)
		if err != nil {
			summary.Failed++
			continue
		}
		summary.Created++
		summary.IncrementIDs = append(summary.IncrementIDs, order.IncrementID)
	}

	p.logger.WithFields(log.Fields{
		"requested":   summary.Requested,
		"created":     summary.Created,
		"failed":      summary.Failed,
		"interrupted": summary.Interrupted,
	}).Info("batch finished")
	return summary
}

// RunOnce выполняет одну итерацию с порядковым номером index (с единицы).
// Состояние итерации создаётся заново и очищается по её завершении.
func (p *Pipeline) RunOnce(index int, opts Options) (domain.Order, error) {
	state := NewState()
	defer state.Reset()

	started := p.now()
	p.reporter.Start(index)

	order, err := p.iterate(state, opts)

	if p.metrics != nil {
		p.metrics.RecordIterationDuration(p.now().Sub(started))
	}
	entry := p.logger.WithFields(log.Fields{"iteration": index, "stage": state.Stage})

	if err != nil {
		state.Stage = StageFailed
		kind := domain.ErrorKind(err)
		p.reporter.Failed(err)
		if p.metrics != nil {
			p.metrics.RecordIterationFailed(kind)
		}
		entry.WithError(err).WithField("kind", kind).Warn("iteration failed")
		return domain.Order{}, err
	}

	state.Stage = StageDone
	p.reporter.Created(order)
	if p.metrics != nil {
		p.metrics.RecordIterationSucceeded()
	}
	entry.WithFields(log.Fields{
		"increment_id": order.IncrementID,
		"created_at":   order.CreatedAt.Format(DateLayout),
	}).Info("order created")

	if p.publisher != nil {
		if err := p.publisher.PublishOrderCreated(order); err != nil {
			entry.WithError(err).WithField("increment_id", order.IncrementID).Warn("publish order event failed")
		}
	}
	return order, nil
}

func (p *Pipeline) iterate(state *State, opts Options) (domain.Order, error) {
	var customer domain.Customer
	if err := p.step(state, StageResolvingCustomer, func() (err error) {
		customer, err = p.customers.Resolve(state, opts.CustomerID)
		return err
	}); err != nil {
		return domain.Order{}, err
	}
	p.reporter.Customer(customer)

	var product domain.Product
	if err := p.step(state, StageResolvingProduct, func() (err error) {
		product, err = p.products.Resolve(state, opts.Product)
		return err
	}); err != nil {
		return domain.Order{}, err
	}
	p.reporter.Product(product)

	createdAt, days := p.committer.Backdate()
	state.CreatedAt = createdAt
	p.reporter.CreatedAt(createdAt)

	var cart *domain.Cart
	if err := p.step(state, StageAssemblingCart, func() (err error) {
		cart, err = p.assembler.Assemble(state, opts)
		return err
	}); err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	if err := p.step(state, StageCommitting, func() (err error) {
		order, err = p.committer.Commit(cart, state.CreatedAt)
		return err
	}); err != nil {
		return domain.Order{}, err
	}
	if p.metrics != nil {
		p.metrics.RecordBackdatedDays(days)
	}
	return order, nil
}

// step переводит итерацию в stage и замеряет длительность шага.
func (p *Pipeline) step(state *State, stage Stage, fn func() error) error {
	state.Stage = stage
	started := p.now()
	err := fn()
	if p.metrics != nil {
		p.metrics.RecordStepDuration(string(stage), p.now().Sub(started))
	}
	return err
}
