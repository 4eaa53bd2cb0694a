package ordergen

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	"github.com/vladislavdragonenkov/ordergen/internal/fixture"
	"github.com/vladislavdragonenkov/ordergen/internal/service/checkout"
	"github.com/vladislavdragonenkov/ordergen/internal/service/inventory"
	"github.com/vladislavdragonenkov/ordergen/internal/service/quote"
	"github.com/vladislavdragonenkov/ordergen/internal/storage/memory"
)

var fixedNow = time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testAddress(city string) domain.Address {
	return domain.Address{
		Firstname: "Jane",
		Lastname:  "Doe",
		Street:    []string{"1 Main St"},
		City:      city,
		RegionID:  "57",
		Region:    "Texas",
		Postcode:  "78701",
		CountryID: "US",
		Telephone: "512 555 0100",
	}
}

func testProduct(id, sku, name string) domain.Product {
	return domain.Product{
		ID:       id,
		SKU:      sku,
		Name:     name,
		Type:     domain.ProductTypeSimple,
		Status:   domain.ProductStatusEnabled,
		Price:    decimal.RequireFromString("34.00"),
		StockQty: 100,
		InStock:  true,
	}
}

// testFixture возвращает каталог для сценариев: клиент 42 с адресами, товар ABC-123,
// configurable WS12 с дочерним WS12-S.
func testFixture() fixture.Fixture {
	parent := testProduct("20", "WS12", "Radiant Tee")
	parent.Type = domain.ProductTypeConfigurable

	return fixture.Fixture{
		Websites:    []domain.Website{{ID: "1", Code: "base", IsDefault: true, DefaultGroupID: "1"}},
		StoreGroups: []domain.StoreGroup{{ID: "1", WebsiteID: "1", DefaultStoreID: "1"}},
		Stores: []domain.Store{
			{ID: "1", Code: "default", WebsiteID: "1", GroupID: "1", IsActive: true},
			{ID: "2", Code: "french", WebsiteID: "1", GroupID: "1", IsActive: true},
		},
		Customers: []domain.Customer{
			{
				ID: "42", Firstname: "Jane", Lastname: "Doe", Email: "jane@example.com", GroupID: 1,
				Addresses: []domain.CustomerAddress{
					{ID: "b", Address: testAddress("Austin")},
					{ID: "s", Address: testAddress("Dallas")},
				},
				DefaultBillingID: "b", DefaultShippingID: "s",
			},
			{ID: "7", Firstname: "John", Lastname: "Smith", Email: "john@example.com"},
		},
		Products: []domain.Product{
			testProduct("1", "ABC-123", "Joust Duffle Bag"),
			parent,
			testProduct("21", "WS12-S", "Radiant Tee-S"),
		},
		SuperLinks: []domain.SuperLink{{ParentID: "20", ChildID: "21"}},
	}
}

type harness struct {
	catalog  memory.Catalog
	deps     Dependencies
	output   *bytes.Buffer
	pipeline *Pipeline
}

func newHarness(t *testing.T, f fixture.Fixture, mutate ...func(*Dependencies)) *harness {
	t.Helper()

	catalog := memory.NewCatalog(f, rand.New(rand.NewPCG(7, 11)))
	out := &bytes.Buffer{}
	deps := Dependencies{
		Customers:     catalog.Customers,
		Products:      catalog.Products,
		Configurables: catalog.Configurables,
		Stores:        catalog.Stores,
		Carts:         catalog.Carts,
		Orders:        catalog.Orders,
		CartService:   quote.NewService(inventory.NewChecker(), decimal.Zero, nil),
		Submitter:     checkout.NewSubmitter(catalog.Carts, catalog.Orders, nil),
		Reporter:      NewConsoleReporter(out),
		Rand:          rand.New(rand.NewPCG(3, 5)),
		Clock:         fixedClock,
	}
	for _, m := range mutate {
		m(&deps)
	}

	pipeline, err := NewPipeline(deps)
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	return &harness{catalog: catalog, deps: deps, output: out, pipeline: pipeline}
}

// countingConfigurables считает проверки на configurable-родителя.
type countingConfigurables struct {
	domain.ConfigurableRepository
	calls int
}

func (c *countingConfigurables) ParentIDsByChild(id string) ([]string, error) {
	c.calls++
	return c.ConfigurableRepository.ParentIDsByChild(id)
}

// countingCustomers считает обращения к репозиторию клиентов.
type countingCustomers struct {
	domain.CustomerRepository
	calls int
}

func (c *countingCustomers) Get(id string) (domain.Customer, error) {
	c.calls++
	return c.CustomerRepository.Get(id)
}

func (c *countingCustomers) Random() (domain.Customer, error) {
	c.calls++
	return c.CustomerRepository.Random()
}

// conflictingOrders отвечает конфликтом версий на первые conflicts вызовов Save
// и увеличивает версию хранимого заказа, как сделал бы конкурентный писатель.
type conflictingOrders struct {
	domain.OrderRepository
	conflicts int
	saves     int
}

func (r *conflictingOrders) Save(order domain.Order) error {
	r.saves++
	if r.conflicts > 0 {
		r.conflicts--
		stored, err := r.OrderRepository.Get(order.ID)
		if err != nil {
			return err
		}
		if err := r.OrderRepository.Save(stored); err != nil {
			return err
		}
		return domain.ErrOrderVersionConflict
	}
	return r.OrderRepository.Save(order)
}

// failingSaveOrders создаёт заказы, но не даёт их перезаписать.
type failingSaveOrders struct {
	domain.OrderRepository
}

func (failingSaveOrders) Save(domain.Order) error {
	return errors.New("connection reset")
}

type recordingPublisher struct {
	orders []domain.Order
	err    error
}

func (p *recordingPublisher) PublishOrderCreated(order domain.Order) error {
	p.orders = append(p.orders, order)
	return p.err
}

func errorsIsInvalidInput(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput)
}
