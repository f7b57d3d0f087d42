package subcategories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/subcategory"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const subcategoryCols = `
	s.id, s.category_id, COALESCE(c.name, '') AS category_name,
	s.name, s.slug, s.type, s.image_url, s.is_active, s.created_at, s.updated_at`

const categoryJoin = ` LEFT JOIN categories c ON s.category_id = c.id`

func scanSubcategory(row pgx.Row) (subcategory.Subcategory, error) {
	var s subcategory.Subcategory
	err := row.Scan(&s.ID, &s.CategoryID, &s.CategoryName, &s.Name, &s.Slug, &s.Type,
		&s.ImageURL, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *Repo) List(ctx context.Context, categoryID *int64, activeOnly bool) ([]subcategory.Subcategory, error) {
	q := `SELECT ` + subcategoryCols + ` FROM subcategories s` + categoryJoin + ` WHERE true`
	args := []any{}
	if activeOnly {
		q += ` AND s.is_active = true`
	}
	if categoryID != nil {
		args = append(args, *categoryID)
		q += ` AND s.category_id = $1`
	}
	q += ` ORDER BY s.name ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []subcategory.Subcategory
	for rows.Next() {
		s, err := scanSubcategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) ByID(ctx context.Context, id int64) (subcategory.Subcategory, error) {
	return scanSubcategory(r.db.QueryRow(ctx,
		`SELECT `+subcategoryCols+` FROM subcategories s`+categoryJoin+` WHERE s.id = $1`, id))
}

// ProductSummary is the trimmed product row embedded in with-products
// listings.
type ProductSummary struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Price           float64 `json:"price"`
	IsFeatured      bool    `json:"is_featured"`
	PrimaryImageURL *string `json:"primary_image_url,omitempty"`
}

// Products lists up to limit active products of a subcategory, featured
// first.
func (r *Repo) Products(ctx context.Context, subcategoryID int64, limit int) ([]ProductSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.slug, p.price, p.is_featured,
		       (SELECT image_url FROM product_images WHERE product_id = p.id AND is_primary = true LIMIT 1)
		FROM products p
		WHERE p.subcategory_id = $1 AND p.is_active = true
		ORDER BY p.is_featured DESC, p.created_at DESC
		LIMIT $2
	`, subcategoryID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductSummary
	for rows.Next() {
		var p ProductSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.IsFeatured, &p.PrimaryImageURL); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

type CreateInput struct {
	CategoryID int64
	Name       string
	Slug       string
	Type       string
	ImageURL   *string
	IsActive   bool
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (subcategory.Subcategory, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO subcategories (category_id, name, slug, type, image_url, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, in.CategoryID, in.Name, in.Slug, in.Type, in.ImageURL, in.IsActive).Scan(&id)
	if err != nil {
		return subcategory.Subcategory{}, err
	}
	return r.ByID(ctx, id)
}

type UpdateInput struct {
	CategoryID *int64
	Name       *string
	Slug       *string
	Type       *string
	ImageURL   *string
	IsActive   *bool
}

func (r *Repo) Update(ctx context.Context, id int64, in UpdateInput) (subcategory.Subcategory, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE subcategories
		SET category_id = COALESCE($2, category_id),
		    name = COALESCE($3, name),
		    slug = COALESCE($4, slug),
		    type = COALESCE($5, type),
		    image_url = COALESCE($6, image_url),
		    is_active = COALESCE($7, is_active),
		    updated_at = now()
		WHERE id = $1
	`, id, in.CategoryID, in.Name, in.Slug, in.Type, in.ImageURL, in.IsActive)
	if err != nil {
		return subcategory.Subcategory{}, err
	}
	if ct.RowsAffected() == 0 {
		return subcategory.Subcategory{}, pgx.ErrNoRows
	}
	return r.ByID(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
