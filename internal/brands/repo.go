package brands

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/brand"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const brandCols = `id, name, slug, logo_url, description, is_active, created_at, updated_at`

func scanBrand(row pgx.Row) (brand.Brand, error) {
	var b brand.Brand
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL, &b.Description, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *Repo) List(ctx context.Context, activeOnly bool) ([]brand.Brand, error) {
	q := `SELECT ` + brandCols + ` FROM brands`
	if activeOnly {
		q += ` WHERE is_active = true`
	}
	q += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []brand.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) ByID(ctx context.Context, id int64) (brand.Brand, error) {
	return scanBrand(r.db.QueryRow(ctx, `SELECT `+brandCols+` FROM brands WHERE id = $1`, id))
}

func (r *Repo) Create(ctx context.Context, name, slug string, logoURL, description *string) (brand.Brand, error) {
	return scanBrand(r.db.QueryRow(ctx, `
		INSERT INTO brands (name, slug, logo_url, description, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING `+brandCols+`
	`, name, slug, logoURL, description))
}

func (r *Repo) Update(ctx context.Context, id int64, name, slug, logoURL, description *string, isActive *bool) (brand.Brand, error) {
	return scanBrand(r.db.QueryRow(ctx, `
		UPDATE brands
		SET name = COALESCE($2, name),
		    slug = COALESCE($3, slug),
		    logo_url = COALESCE($4, logo_url),
		    description = COALESCE($5, description),
		    is_active = COALESCE($6, is_active),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+brandCols+`
	`, id, name, slug, logoURL, description, isActive))
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
