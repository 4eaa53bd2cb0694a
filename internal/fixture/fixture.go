// Package fixture описывает начальный набор данных каталога (магазины, клиенты, товары),
// которым заполняется хранилище генератора.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// Fixture: снимок каталога в формате JSON.
type Fixture struct {
	Websites    []domain.Website    `json:"websites"`
	StoreGroups []domain.StoreGroup `json:"store_groups"`
	Stores      []domain.Store      `json:"stores"`
	Customers   []domain.Customer   `json:"customers"`
	Products    []domain.Product    `json:"products"`
	SuperLinks  []domain.SuperLink  `json:"super_links"`
}

// Load читает фикстуру из JSON-файла. Неизвестные поля считаются ошибкой.
func Load(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	return f, nil
}

// Validate проверяет ссылочную целостность фикстуры.
func (f Fixture) Validate() error {
	products := make(map[string]domain.Product, len(f.Products))
	for _, p := range f.Products {
		if p.ID == "" || p.SKU == "" {
			return fmt.Errorf("product %q: id and sku are required", p.Name)
		}
		if _, dup := products[p.ID]; dup {
			return fmt.Errorf("duplicate product id %q", p.ID)
		}
		products[p.ID] = p
	}
	for _, link := range f.SuperLinks {
		parent, ok := products[link.ParentID]
		if !ok {
			return fmt.Errorf("super link parent %q: %w", link.ParentID, domain.ErrProductNotFound)
		}
		if parent.Type != domain.ProductTypeConfigurable {
			return fmt.Errorf("super link parent %q is %s, want configurable", link.ParentID, parent.Type)
		}
		if _, ok := products[link.ChildID]; !ok {
			return fmt.Errorf("super link child %q: %w", link.ChildID, domain.ErrProductNotFound)
		}
	}
	for _, c := range f.Customers {
		if c.ID == "" {
			return fmt.Errorf("customer %q: id is required", c.Email)
		}
	}
	stores := make(map[string]struct{}, len(f.Stores))
	for _, s := range f.Stores {
		stores[s.ID] = struct{}{}
	}
	for _, g := range f.StoreGroups {
		if _, ok := stores[g.DefaultStoreID]; g.DefaultStoreID != "" && !ok {
			return fmt.Errorf("group %q default store %q: %w", g.ID, g.DefaultStoreID, domain.ErrStoreNotFound)
		}
	}
	return nil
}

// Demo возвращает встроенный демонстрационный каталог: один website/group/store,
// клиенты с адресами и без, простые товары, виртуальный товар и configurable с детьми.
func Demo() Fixture {
	michigan := domain.Address{
		Firstname: "Veronica",
		Lastname:  "Costello",
		Street:    []string{"6146 Honey Bluff Parkway"},
		City:      "Calder",
		RegionID:  "33",
		Region:    "Michigan",
		Postcode:  "49628-7978",
		CountryID: "US",
		Telephone: "(555) 229-3326",
	}
	texas := domain.Address{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Street:    []string{"500 Congress Ave", "Suite 12"},
		City:      "Austin",
		RegionID:  "57",
		Region:    "Texas",
		Postcode:  "78701",
		CountryID: "US",
		Telephone: "512 555 0100",
	}

	return Fixture{
		Websites:    []domain.Website{{ID: "1", Code: "base", IsDefault: true, DefaultGroupID: "1"}},
		StoreGroups: []domain.StoreGroup{{ID: "1", WebsiteID: "1", DefaultStoreID: "1"}},
		Stores: []domain.Store{
			{ID: "1", Code: "default", Name: "Default Store View", WebsiteID: "1", GroupID: "1", IsActive: true},
		},
		Customers: []domain.Customer{
			{
				ID: "1", Firstname: "Veronica", Lastname: "Costello", Email: "roni_cost@example.com", GroupID: 1,
				Addresses:        []domain.CustomerAddress{{ID: "1", Address: michigan}},
				DefaultBillingID: "1", DefaultShippingID: "1",
			},
			{ID: "2", Firstname: "John", Lastname: "Smith", Email: "john.smith@example.com", GroupID: 1},
			{
				ID: "3", Firstname: "Ada", Lastname: "Lovelace", Email: "ada@example.com", GroupID: 1,
				Addresses:        []domain.CustomerAddress{{ID: "2", Address: texas}},
				DefaultBillingID: "2",
			},
		},
		Products: []domain.Product{
			{ID: "1", SKU: "ABC-123", Name: "Joust Duffle Bag", Type: domain.ProductTypeSimple, Status: domain.ProductStatusEnabled, Price: decimal.RequireFromString("34.00"), Weight: decimal.NewFromInt(1), StockQty: 100, InStock: true},
			{ID: "2", SKU: "WS12", Name: "Radiant Tee", Type: domain.ProductTypeConfigurable, Status: domain.ProductStatusEnabled, Price: decimal.RequireFromString("22.00"), InStock: true},
			{ID: "3", SKU: "WS12-S", Name: "Radiant Tee-S", Type: domain.ProductTypeSimple, Status: domain.ProductStatusEnabled, Price: decimal.RequireFromString("22.00"), Weight: decimal.NewFromInt(1), StockQty: 50, InStock: true},
			{ID: "4", SKU: "WS12-M", Name: "Radiant Tee-M", Type: domain.ProductTypeSimple, Status: domain.ProductStatusEnabled, Price: decimal.RequireFromString("22.00"), Weight: decimal.NewFromInt(1), StockQty: 50, InStock: true},
			{ID: "5", SKU: "24-MB04", Name: "Strive Shoulder Pack", Type: domain.ProductTypeSimple, Status: domain.ProductStatusEnabled, Price: decimal.RequireFromString("32.00"), Weight: decimal.NewFromInt(1), StockQty: 100, InStock: true},
			{ID: "6", SKU: "GIFT-25", Name: "Gift Card", Type: domain.ProductTypeVirtual, Status: domain.ProductStatusEnabled, Price: decimal.RequireFromString("25.00"), StockQty: 1000, InStock: true},
		},
		SuperLinks: []domain.SuperLink{
			{ParentID: "2", ChildID: "3"},
			{ParentID: "2", ChildID: "4"},
		},
	}
}
