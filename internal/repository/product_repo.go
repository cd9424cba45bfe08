// internal/repository/product_repo.go
package repository

import (
	"context"
	"encoding/json"
	"errors"

	"autoparts-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type productRepo struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (
			id, title, description, price, image, category, brand,
			part_number, compatibility, in_stock, specs, vendor_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	compatJSON, err := json.Marshal(product.Compatibility)
	if err != nil {
		return err
	}
	specsJSON, err := json.Marshal(product.Specs)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.Image,
		product.Category,
		product.Brand,
		product.PartNumber,
		compatJSON,
		product.InStock,
		specsJSON,
		product.VendorID,
	).Scan(&product.CreatedAt)
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := selectProductColumns + ` WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	return product, nil
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := selectProductColumns + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	return products, rows.Err()
}

const selectProductColumns = `
	SELECT
		id, title, description, price, image, category, brand,
		part_number, compatibility, in_stock, specs, vendor_id, created_at
	FROM products`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product    domain.Product
		compatJSON []byte
		specsJSON  []byte
	)

	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.Image,
		&product.Category,
		&product.Brand,
		&product.PartNumber,
		&compatJSON,
		&product.InStock,
		&specsJSON,
		&product.VendorID,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(compatJSON, &product.Compatibility); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(specsJSON, &product.Specs); err != nil {
		return nil, err
	}

	return &product, nil
}
