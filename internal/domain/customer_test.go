package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

func TestCustomerDefaultAddresses(t *testing.T) {
	customer := domain.Customer{
		ID:        "42",
		Firstname: "Jane",
		Lastname:  "Doe",
		Addresses: []domain.CustomerAddress{
			{ID: "a1", Address: domain.Address{Firstname: "Jane", City: "Austin", Street: []string{"1 Main St"}}},
			{ID: "a2", Address: domain.Address{Firstname: "Jane", City: "Boston"}},
		},
		DefaultBillingID:  "a1",
		DefaultShippingID: "a2",
	}

	billing, ok := customer.DefaultBillingAddress()
	if !ok || billing.City != "Austin" {
		t.Fatalf("unexpected billing address: %+v ok=%v", billing, ok)
	}
	shipping, ok := customer.DefaultShippingAddress()
	if !ok || shipping.City != "Boston" {
		t.Fatalf("unexpected shipping address: %+v ok=%v", shipping, ok)
	}

	// Возвращается копия: изменения не протекают в клиента.
	billing.Street[0] = "changed"
	again, _ := customer.DefaultBillingAddress()
	if again.Street[0] != "1 Main St" {
		t.Fatalf("address street leaked: %v", again.Street)
	}

	if name := customer.Name(); name != "Jane Doe" {
		t.Fatalf("unexpected name %q", name)
	}
}

func TestCustomerDefaultAddresses_Missing(t *testing.T) {
	customer := domain.Customer{
		ID:               "7",
		Addresses:        []domain.CustomerAddress{{ID: "a1"}},
		DefaultBillingID: "unknown",
	}

	if _, ok := customer.DefaultBillingAddress(); ok {
		t.Fatal("expected no billing address for dangling id")
	}
	if _, ok := customer.DefaultShippingAddress(); ok {
		t.Fatal("expected no shipping address")
	}
}

func TestCartMissing(t *testing.T) {
	cart := domain.Cart{}
	if got := len(cart.Missing()); got != 7 {
		t.Fatalf("expected 7 missing parts for empty cart, got %d", got)
	}

	cart = domain.Cart{
		CustomerID:      "1",
		StoreID:         "1",
		Items:           []domain.CartItem{{ID: "i", Qty: 1}},
		BillingAddress:  domain.Address{City: "LA"},
		ShippingAddress: domain.Address{City: "LA"},
		ShippingMethod:  "flatrate_flatrate",
		PaymentMethod:   "checkmo",
	}
	if missing := cart.Missing(); len(missing) != 0 {
		t.Fatalf("expected complete cart, missing %v", missing)
	}
}

func TestAddItemResult_Rejected(t *testing.T) {
	if !(domain.AddItemResult{Rejection: "This product is out of stock."}).Rejected() {
		t.Fatal("expected rejection")
	}
	if !(domain.AddItemResult{}).Rejected() {
		t.Fatal("result without item must count as rejected")
	}
	if (domain.AddItemResult{Item: &domain.CartItem{}}).Rejected() {
		t.Fatal("result with item must not be rejected")
	}
}
