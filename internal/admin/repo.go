package admin

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Counts struct {
	Products       int64 `json:"products"`
	ActiveProducts int64 `json:"active_products"`
	Categories     int64 `json:"categories"`
	Subcategories  int64 `json:"subcategories"`
	Brands         int64 `json:"brands"`
	Tags           int64 `json:"tags"`
	Images         int64 `json:"images"`
	Users          int64 `json:"users"`
}

func (r *Repo) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE is_active = true),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM subcategories),
			(SELECT COUNT(*) FROM brands),
			(SELECT COUNT(*) FROM tags),
			(SELECT COUNT(*) FROM product_images),
			(SELECT COUNT(*) FROM users)
	`).Scan(
		&c.Products, &c.ActiveProducts, &c.Categories, &c.Subcategories,
		&c.Brands, &c.Tags, &c.Images, &c.Users,
	)
	return c, err
}

type RecentProduct struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     float64   `json:"price"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Repo) RecentProducts(ctx context.Context, limit int) ([]RecentProduct, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, price, is_active, created_at
		FROM products
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecentProduct
	for rows.Next() {
		var p RecentProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
