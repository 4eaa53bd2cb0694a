package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	"github.com/vladislavdragonenkov/ordergen/internal/fixture"
)

func seededStore(t *testing.T) *Store {
	t.Helper()

	store := openPostgresStoreForIntegrationTest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Seed(ctx, fixture.Demo()); err != nil {
		t.Fatalf("seed demo fixture: %v", err)
	}
	// Повторный seed не должен падать.
	if err := store.Seed(ctx, fixture.Demo()); err != nil {
		t.Fatalf("reseed demo fixture: %v", err)
	}
	return store
}

func TestCustomerRepository_Postgres(t *testing.T) {
	repo := NewCustomerRepository(seededStore(t))

	c, err := repo.Get("1")
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if c.Name() != "Veronica Costello" || len(c.Addresses) != 1 {
		t.Fatalf("unexpected customer %+v", c)
	}
	billing, ok := c.DefaultBillingAddress()
	if !ok || billing.City == "" || len(billing.Street) == 0 {
		t.Fatalf("default billing address not loaded: %+v", billing)
	}

	if _, err := repo.Get("404"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}

	random, err := repo.Random()
	if err != nil || random.ID == "" {
		t.Fatalf("random customer: %+v, %v", random, err)
	}
}

func TestProductRepository_Postgres(t *testing.T) {
	repo := NewProductRepository(seededStore(t))

	p, err := repo.GetBySKU("ABC-123")
	if err != nil {
		t.Fatalf("get by sku: %v", err)
	}
	if p.ID != "1" || !p.Price.Equal(decimal.RequireFromString("34")) || p.Type != domain.ProductTypeSimple {
		t.Fatalf("unexpected product %+v", p)
	}

	for range 10 {
		p, err := repo.Random("WS12-%")
		if err != nil {
			t.Fatalf("random by pattern: %v", err)
		}
		if !strings.HasPrefix(p.SKU, "WS12-") {
			t.Fatalf("pattern not applied: %s", p.SKU)
		}
	}

	if _, err := repo.Random("NOPE-%"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := repo.Get("404"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestConfigurableAndStoreRepositories_Postgres(t *testing.T) {
	store := seededStore(t)

	parents, err := NewConfigurableRepository(store).ParentIDsByChild("3")
	if err != nil {
		t.Fatalf("parents by child: %v", err)
	}
	if len(parents) != 1 || parents[0] != "2" {
		t.Fatalf("unexpected parents %v", parents)
	}

	stores := NewStoreRepository(store)
	id, err := stores.DefaultStoreID()
	if err != nil || id != "1" {
		t.Fatalf("default store: %q, %v", id, err)
	}
	if _, err := stores.Get("99"); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestCartRepository_Postgres(t *testing.T) {
	repo := NewCartRepository(seededStore(t))

	now := time.Now().UTC().Round(time.Microsecond)
	cart := domain.Cart{
		ID:         "cart-1",
		StoreID:    "1",
		CustomerID: "1",
		IsActive:   true,
		Items: []domain.CartItem{
			{ID: "i1", ProductID: "1", SKU: "ABC-123", Name: "Bag", Qty: 1, Price: decimal.RequireFromString("34"), RowTotal: decimal.RequireFromString("34")},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Save(cart); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	cart.IsActive = false
	if err := repo.Save(cart); err != nil {
		t.Fatalf("update cart: %v", err)
	}

	got, err := repo.Get("cart-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if got.IsActive || len(got.Items) != 1 || !got.Items[0].RowTotal.Equal(decimal.RequireFromString("34")) {
		t.Fatalf("unexpected cart %+v", got)
	}

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
	if err := repo.Save(domain.Cart{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for cart without id, got %v", err)
	}
}
