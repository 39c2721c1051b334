package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrNoCat    = errors.New("category not found")
	ErrCatTaken = errors.New("category name already in use")
)

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, name, price, original_price, images, description, features,
	sku, category, in_stock, created_at, updated_at`

func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetProduct(ctx context.Context, id string) (Product, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if p.ID == "" {
		p.ID = "P-" + uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, name, price, original_price, images, description, features,
		                     sku, category, in_stock, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.Images, p.Description, p.Features,
		p.SKU, p.Category, p.Stock, p.CreatedAt, p.UpdatedAt,
	)
	return p, err
}

func (r *Repo) UpdateProduct(ctx context.Context, p Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, price=$3, original_price=$4, images=$5, description=$6,
		    features=$7, sku=$8, category=$9, in_stock=$10, updated_at=now()
		WHERE id=$1`,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.Images, p.Description,
		p.Features, p.SKU, p.Category, p.Stock,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// AddCategory is a no-op for blank or duplicate names. Returns whether a
// row was actually added.
func (r *Repo) AddCategory(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	ct, err := r.DB.Exec(ctx, `INSERT INTO categories(name) VALUES ($1) ON CONFLICT DO NOTHING`, name)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

// RenameCategory rewrites the category row and every product referencing
// the old name in one transaction. Blank or identical new names are a
// no-op, not an error.
func (r *Repo) RenameCategory(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, `UPDATE categories SET name=$2 WHERE name=$1`, oldName, newName)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCatTaken
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNoCat
	}
	if _, err := tx.Exec(ctx, `UPDATE products SET category=$2 WHERE category=$1`, oldName, newName); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DeleteCategory removes only the category row. Products keep the stale
// category string until someone edits them.
func (r *Repo) DeleteCategory(ctx context.Context, name string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM categories WHERE name=$1`, name)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNoCat
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.Images, &p.Description,
		&p.Features, &p.SKU, &p.Category, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
