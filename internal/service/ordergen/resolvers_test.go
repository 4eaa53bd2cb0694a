package ordergen

import (
	"errors"
	"strings"
	"testing"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	"github.com/vladislavdragonenkov/ordergen/internal/fixture"
	"github.com/vladislavdragonenkov/ordergen/internal/storage/memory"
)

func TestCustomerResolver_Explicit(t *testing.T) {
	catalog := memory.NewCatalog(testFixture(), nil)
	repo := &countingCustomers{CustomerRepository: catalog.Customers}
	resolver := NewCustomerResolver(repo)
	state := NewState()

	customer, err := resolver.Resolve(state, "42")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if customer.Email != "jane@example.com" {
		t.Fatalf("unexpected customer %+v", customer)
	}

	again, err := resolver.Resolve(state, "42")
	if err != nil || again.ID != "42" {
		t.Fatalf("cached resolve failed: %+v (%v)", again, err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected customer to be cached within iteration, repository calls: %d", repo.calls)
	}
}

func TestCustomerResolver_ExplicitMissing(t *testing.T) {
	resolver := NewCustomerResolver(memory.NewCatalog(testFixture(), nil).Customers)

	_, err := resolver.Resolve(NewState(), "999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !strings.Contains(err.Error(), "999") {
		t.Fatalf("message must name the id: %q", err.Error())
	}
}

func TestCustomerResolver_Random(t *testing.T) {
	resolver := NewCustomerResolver(memory.NewCatalog(testFixture(), nil).Customers)

	customer, err := resolver.Resolve(NewState(), "")
	if err != nil {
		t.Fatalf("random resolve failed: %v", err)
	}
	if customer.ID != "42" && customer.ID != "7" {
		t.Fatalf("unexpected customer %+v", customer)
	}

	empty := NewCustomerResolver(memory.NewCustomerRepository(nil, nil))
	_, err = empty.Resolve(NewState(), "")
	if !errors.Is(err, domain.ErrNotFound) || err.Error() != "No records match criteria" {
		t.Fatalf("expected 'No records match criteria', got %v", err)
	}
}

func TestProductResolver(t *testing.T) {
	catalog := memory.NewCatalog(testFixture(), nil)
	resolver := NewProductResolver(catalog.Products, catalog.Configurables)

	cases := []struct {
		name    string
		input   string
		wantID  string
		wantErr error
		message string
	}{
		{name: "exact sku", input: "ABC-123", wantID: "1"},
		{name: "exact sku missing", input: "NOPE-999", wantErr: domain.ErrInvalidInput, message: "Couldn't find product by SKU: NOPE-999"},
		{name: "exact sku is not a pattern", input: "ABC-12_", wantErr: domain.ErrInvalidInput, message: "Couldn't find product by SKU: ABC-12_"},
		{name: "pattern", input: "ABC%", wantID: "1"},
		{name: "pattern without matches", input: "NOPE%", wantErr: domain.ErrNotFound, message: "No products are matching the criteria"},
		{name: "explicit configurable child", input: "WS12-S", wantErr: domain.ErrIneligibleProduct, message: "Product (21) is a child of configurable, can't use this."},
		{name: "pattern lands on child", input: "%-S", wantErr: domain.ErrIneligibleProduct, message: "Product (21) is a child of configurable, can't use this."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := NewState()
			product, err := resolver.Resolve(state, tc.input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if err.Error() != tc.message {
					t.Fatalf("expected message %q, got %q", tc.message, err.Error())
				}
				if state.Product != nil {
					t.Fatal("failed resolution must not be cached")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if product.ID != tc.wantID {
				t.Fatalf("expected product %s, got %+v", tc.wantID, product)
			}
		})
	}
}

func TestProductResolver_IneligibleKindIsDistinct(t *testing.T) {
	catalog := memory.NewCatalog(testFixture(), nil)
	resolver := NewProductResolver(catalog.Products, catalog.Configurables)

	_, err := resolver.Resolve(NewState(), "WS12-S")
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("ineligible product must not look like a lookup failure: %v", err)
	}
	if kind := domain.ErrorKind(err); kind != "ineligible_product" {
		t.Fatalf("unexpected kind %q", kind)
	}
}

func TestProductResolver_EligibilityRunsForEveryIteration(t *testing.T) {
	catalog := memory.NewCatalog(testFixture(), nil)
	configurables := &countingConfigurables{ConfigurableRepository: catalog.Configurables}
	resolver := NewProductResolver(catalog.Products, configurables)

	for i := 0; i < 3; i++ {
		product, err := resolver.Resolve(NewState(), "ABC-123")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if product.ID != "1" {
			t.Fatalf("explicit sku must always resolve to the same product, got %s", product.ID)
		}
	}
	if configurables.calls != 3 {
		t.Fatalf("expected eligibility check per iteration, got %d", configurables.calls)
	}
}

func TestProductResolver_RandomOverWholeCatalog(t *testing.T) {
	f := fixture.Fixture{Products: []domain.Product{testProduct("1", "ABC-123", "Bag")}}
	catalog := memory.NewCatalog(f, nil)
	resolver := NewProductResolver(catalog.Products, catalog.Configurables)

	product, err := resolver.Resolve(NewState(), "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if product.SKU != "ABC-123" {
		t.Fatalf("unexpected product %+v", product)
	}

	empty := memory.NewCatalog(fixture.Fixture{}, nil)
	_, err = NewProductResolver(empty.Products, empty.Configurables).Resolve(NewState(), "")
	if !errors.Is(err, domain.ErrNotFound) || err.Error() != "No products are matching the criteria" {
		t.Fatalf("expected empty catalog error, got %v", err)
	}
}
