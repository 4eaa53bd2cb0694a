package memory

import (
	"math/rand/v2"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	"github.com/vladislavdragonenkov/ordergen/internal/fixture"
)

// Catalog объединяет in-memory репозитории, заполненные из одной фикстуры.
type Catalog struct {
	Customers     domain.CustomerRepository
	Products      domain.ProductRepository
	Configurables domain.ConfigurableRepository
	Stores        domain.StoreRepository
	Carts         domain.CartRepository
	Orders        domain.OrderRepository
}

// NewCatalog строит набор репозиториев из фикстуры. rnd управляет случайным выбором.
func NewCatalog(f fixture.Fixture, rnd *rand.Rand) Catalog {
	return Catalog{
		Customers:     NewCustomerRepository(f.Customers, derive(rnd)),
		Products:      NewProductRepository(f.Products, derive(rnd)),
		Configurables: NewConfigurableRepository(f.SuperLinks),
		Stores:        NewStoreRepository(f.Websites, f.StoreGroups, f.Stores),
		Carts:         NewCartRepository(),
		Orders:        NewOrderRepository(),
	}
}

// derive отдаёт каждому репозиторию собственный источник, чтобы они не делили один rand.Rand.
func derive(rnd *rand.Rand) *rand.Rand {
	if rnd == nil {
		return nil
	}
	return rand.New(rand.NewPCG(rnd.Uint64(), rnd.Uint64()))
}
