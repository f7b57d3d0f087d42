package categories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/category"
	"github.com/mzorab57/camera-sotre-backend/internal/domain/subcategory"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const categoryCols = `id, name, slug, image_url, is_active, created_at, updated_at`

func scanCategory(row pgx.Row) (category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *Repo) ListActive(ctx context.Context) ([]category.Category, error) {
	return r.list(ctx, `SELECT `+categoryCols+` FROM categories WHERE is_active = true ORDER BY name ASC`)
}

func (r *Repo) AdminListAll(ctx context.Context) ([]category.Category, error) {
	return r.list(ctx, `SELECT `+categoryCols+` FROM categories ORDER BY name ASC`)
}

func (r *Repo) list(ctx context.Context, q string) ([]category.Category, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) ByID(ctx context.Context, id int64) (category.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryCols+` FROM categories WHERE id = $1`, id))
}

func (r *Repo) BySlug(ctx context.Context, slug string) (category.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryCols+` FROM categories WHERE slug = $1`, slug))
}

// Subcategories lists a category's active subcategories with their active
// product counts.
func (r *Repo) Subcategories(ctx context.Context, categoryID int64) ([]subcategory.Subcategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.category_id, s.name, s.slug, s.type, s.image_url, s.is_active,
		       COUNT(p.id) AS product_count, s.created_at, s.updated_at
		FROM subcategories s
		LEFT JOIN products p ON p.subcategory_id = s.id AND p.is_active = true
		WHERE s.category_id = $1 AND s.is_active = true
		GROUP BY s.id
		ORDER BY s.name ASC
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []subcategory.Subcategory
	for rows.Next() {
		var s subcategory.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.Type, &s.ImageURL, &s.IsActive,
			&s.ProductCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, name, slug string, imageURL *string) (category.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `
		INSERT INTO categories (name, slug, image_url, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING `+categoryCols+`
	`, name, slug, imageURL))
}

func (r *Repo) Update(ctx context.Context, id int64, name, slug, imageURL *string, isActive *bool) (category.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `
		UPDATE categories
		SET name = COALESCE($2, name),
		    slug = COALESCE($3, slug),
		    image_url = COALESCE($4, image_url),
		    is_active = COALESCE($5, is_active),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+categoryCols+`
	`, id, name, slug, imageURL, isActive))
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
