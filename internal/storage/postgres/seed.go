package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ordergen/internal/fixture"
)

// Seed загружает каталог из фикстуры одной транзакцией. Существующие записи обновляются.
func (s *Store) Seed(ctx context.Context, f fixture.Fixture) (err error) {
	if s == nil || s.db == nil {
		return errors.New("postgres store is not initialized")
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("seed fixture: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if err != nil {
			rollback(tx)
		}
	}()

	for _, w := range f.Websites {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO websites (id, code, is_default, default_group_id)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (id) DO UPDATE
			SET code = EXCLUDED.code, is_default = EXCLUDED.is_default, default_group_id = EXCLUDED.default_group_id
		`, w.ID, w.Code, w.IsDefault, w.DefaultGroupID); err != nil {
			return fmt.Errorf("seed website %s: %w", w.ID, err)
		}
	}
	for _, g := range f.StoreGroups {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO store_groups (id, website_id, default_store_id)
			VALUES ($1,$2,$3)
			ON CONFLICT (id) DO UPDATE
			SET website_id = EXCLUDED.website_id, default_store_id = EXCLUDED.default_store_id
		`, g.ID, g.WebsiteID, g.DefaultStoreID); err != nil {
			return fmt.Errorf("seed store group %s: %w", g.ID, err)
		}
	}
	for _, st := range f.Stores {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO stores (id, code, name, website_id, group_id, is_active)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (id) DO UPDATE
			SET code = EXCLUDED.code, name = EXCLUDED.name, website_id = EXCLUDED.website_id,
			    group_id = EXCLUDED.group_id, is_active = EXCLUDED.is_active
		`, st.ID, st.Code, st.Name, st.WebsiteID, st.GroupID, st.IsActive); err != nil {
			return fmt.Errorf("seed store %s: %w", st.ID, err)
		}
	}

	for _, c := range f.Customers {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO customers (id, firstname, lastname, email, group_id, default_billing, default_shipping)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (id) DO UPDATE
			SET firstname = EXCLUDED.firstname, lastname = EXCLUDED.lastname, email = EXCLUDED.email,
			    group_id = EXCLUDED.group_id, default_billing = EXCLUDED.default_billing,
			    default_shipping = EXCLUDED.default_shipping
		`, c.ID, c.Firstname, c.Lastname, c.Email, c.GroupID, c.DefaultBillingID, c.DefaultShippingID); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.ID, err)
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM customer_addresses WHERE customer_id = $1`, c.ID); err != nil {
			return fmt.Errorf("reset addresses of customer %s: %w", c.ID, err)
		}
		for pos, addr := range c.Addresses {
			street, mErr := json.Marshal(addr.Street)
			if mErr != nil {
				err = fmt.Errorf("encode street of address %s: %w", addr.ID, mErr)
				return err
			}
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO customer_addresses (
					customer_id, id, position, firstname, lastname, street, city,
					region_id, region, postcode, country_id, telephone
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			`, c.ID, addr.ID, pos, addr.Firstname, addr.Lastname, street, addr.City,
				addr.RegionID, addr.Region, addr.Postcode, addr.CountryID, addr.Telephone); err != nil {
				return fmt.Errorf("seed address %s of customer %s: %w", addr.ID, c.ID, err)
			}
		}
	}

	for _, p := range f.Products {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO products (`+productColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (id) DO UPDATE
			SET sku = EXCLUDED.sku, name = EXCLUDED.name, type = EXCLUDED.type, status = EXCLUDED.status,
			    price = EXCLUDED.price, weight = EXCLUDED.weight, stock_qty = EXCLUDED.stock_qty,
			    in_stock = EXCLUDED.in_stock
		`, p.ID, p.SKU, p.Name, string(p.Type), string(p.Status), p.Price, p.Weight, p.StockQty, p.InStock); err != nil {
			return fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
	}
	for _, link := range f.SuperLinks {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO product_super_links (parent_id, child_id)
			VALUES ($1,$2)
			ON CONFLICT DO NOTHING
		`, link.ParentID, link.ChildID); err != nil {
			return fmt.Errorf("seed super link %s->%s: %w", link.ParentID, link.ChildID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
