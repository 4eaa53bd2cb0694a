package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

const productColumns = `id, sku, name, type, status, price, weight, stock_qty, in_stock`

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Get(id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

func (r *productRepository) GetBySKU(sku string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
}

// Random выбирает товар, SKU которого подходит под LIKE-шаблон. Пустой шаблон означает любой товар.
func (r *productRepository) Random(skuPattern string) (domain.Product, error) {
	if skuPattern == "" {
		skuPattern = "%"
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE sku LIKE $1
		ORDER BY random()
		LIMIT 1
	`, skuPattern))
}

func (r *productRepository) scanOne(row *sql.Row) (domain.Product, error) {
	var (
		p      domain.Product
		typ    string
		status string
	)
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &typ, &status, &p.Price, &p.Weight, &p.StockQty, &p.InStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	p.Type = domain.ProductType(typ)
	p.Status = domain.ProductStatus(status)
	return p, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
