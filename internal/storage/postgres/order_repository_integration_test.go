package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

func sampleOrder(id, incrementID, customerID string, createdAt time.Time) domain.Order {
	addr := domain.Address{Firstname: "Jane", Lastname: "Doe", Street: []string{"1 Main St", "Apt 2"}, City: "Austin", CountryID: "US"}
	return domain.Order{
		ID:              id,
		IncrementID:     incrementID,
		CartID:          "cart-" + id,
		CustomerID:      customerID,
		CustomerEmail:   "jane@example.com",
		StoreID:         "1",
		Status:          domain.OrderStatusPending,
		BillingAddress:  addr,
		ShippingAddress: addr,
		ShippingMethod:  domain.ShippingFlatRate,
		PaymentMethod:   "checkmo",
		Items: []domain.OrderItem{
			{
				ID:        id + "-item-1",
				ProductID: "1",
				SKU:       "ABC-123",
				Name:      "Joust Duffle Bag",
				Qty:       2,
				Price:     decimal.RequireFromString("34.00"),
				RowTotal:  decimal.RequireFromString("68.00"),
				CreatedAt: createdAt,
			},
		},
		Totals: domain.Totals{
			Subtotal:   decimal.RequireFromString("68.00"),
			Shipping:   decimal.RequireFromString("10.00"),
			Tax:        decimal.Zero,
			GrandTotal: decimal.RequireFromString("78.00"),
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestOrderRepository_PostgresCreateGetListAndBackdate(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	inc1, err := repo.NextIncrementID()
	if err != nil {
		t.Fatalf("next increment id: %v", err)
	}
	inc2, err := repo.NextIncrementID()
	if err != nil {
		t.Fatalf("next increment id: %v", err)
	}
	if inc1 != "100000001" || inc2 != "100000002" {
		t.Fatalf("unexpected increment ids %s, %s", inc1, inc2)
	}

	now := time.Now().UTC().Round(time.Microsecond)
	order1 := sampleOrder("order-1", inc1, "customer-1", now.Add(-2*time.Minute))
	order2 := sampleOrder("order-2", inc2, "customer-1", now.Add(-time.Minute))

	if err := repo.Create(order1); err != nil {
		t.Fatalf("create order1: %v", err)
	}
	if err := repo.Create(order2); err != nil {
		t.Fatalf("create order2: %v", err)
	}

	got, err := repo.Get(order1.ID)
	if err != nil {
		t.Fatalf("get order1: %v", err)
	}
	if got.IncrementID != inc1 || got.CustomerID != "customer-1" || got.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected order payload: %+v", got)
	}
	if len(got.Items) != 1 || !got.Items[0].Price.Equal(decimal.RequireFromString("34")) {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if len(got.ShippingAddress.Street) != 2 || got.ShippingAddress.City != "Austin" {
		t.Fatalf("address not round-tripped: %+v", got.ShippingAddress)
	}
	if !got.Totals.GrandTotal.Equal(decimal.RequireFromString("78")) {
		t.Fatalf("unexpected grand total %s", got.Totals.GrandTotal)
	}

	listed, err := repo.ListByCustomer("customer-1", 1)
	if err != nil {
		t.Fatalf("list by customer with limit: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != order2.ID {
		t.Fatalf("unexpected list result with limit: %+v", listed)
	}

	backdated := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got.CreatedAt = backdated
	if err := repo.Save(got); err != nil {
		t.Fatalf("save order: %v", err)
	}

	updated, err := repo.Get(order1.ID)
	if err != nil {
		t.Fatalf("get updated order: %v", err)
	}
	if !updated.CreatedAt.Equal(backdated) {
		t.Fatalf("created_at not backdated: %s", updated.CreatedAt)
	}
	if updated.Version != got.Version+1 {
		t.Fatalf("unexpected version after save: got=%d want=%d", updated.Version, got.Version+1)
	}

	all, err := repo.ListByCustomer("customer-1", 0)
	if err != nil {
		t.Fatalf("list by customer without limit: %v", err)
	}
	if len(all) != 2 || all[1].ID != order1.ID {
		t.Fatalf("backdated order must sort last: %+v", all)
	}

	if err := repo.Save(got); !errors.Is(err, domain.ErrOrderVersionConflict) {
		t.Fatalf("expected version conflict on stale save, got %v", err)
	}
}

func TestOrderRepository_PostgresErrors(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	missing := sampleOrder("missing", "100000999", "customer-x", time.Now().UTC())
	if err := repo.Save(missing); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on save, got %v", err)
	}

	order := sampleOrder("dup", "100000500", "customer-x", time.Now().UTC())
	if err := repo.Create(order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(order); !errors.Is(err, domain.ErrOrderVersionConflict) {
		t.Fatalf("expected conflict on duplicate create, got %v", err)
	}
}
