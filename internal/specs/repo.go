package specs

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/product"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const specCols = `id, product_id, spec_name, spec_value, spec_group, display_order, created_at`

func scanSpec(row pgx.Row) (product.Specification, error) {
	var s product.Specification
	err := row.Scan(&s.ID, &s.ProductID, &s.SpecName, &s.SpecValue, &s.SpecGroup, &s.DisplayOrder, &s.CreatedAt)
	return s, err
}

func (r *Repo) ForProduct(ctx context.Context, productID int64) ([]product.Specification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+specCols+` FROM product_specifications
		WHERE product_id = $1
		ORDER BY spec_group NULLS FIRST, display_order ASC, id ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Specification
	for rows.Next() {
		s, err := scanSpec(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) ProductExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

type CreateInput struct {
	SpecName     string
	SpecValue    string
	SpecGroup    *string
	DisplayOrder int
}

func (r *Repo) Create(ctx context.Context, productID int64, in CreateInput) (product.Specification, error) {
	return scanSpec(r.db.QueryRow(ctx, `
		INSERT INTO product_specifications (product_id, spec_name, spec_value, spec_group, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+specCols+`
	`, productID, in.SpecName, in.SpecValue, in.SpecGroup, in.DisplayOrder))
}

// CreateBulk inserts a batch of rows in one transaction so a sheet import
// either lands whole or not at all.
func (r *Repo) CreateBulk(ctx context.Context, productID int64, ins []CreateInput) ([]product.Specification, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := make([]product.Specification, 0, len(ins))
	for _, in := range ins {
		s, err := scanSpec(tx.QueryRow(ctx, `
			INSERT INTO product_specifications (product_id, spec_name, spec_value, spec_group, display_order)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+specCols+`
		`, productID, in.SpecName, in.SpecValue, in.SpecGroup, in.DisplayOrder))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

type UpdateInput struct {
	SpecName     *string
	SpecValue    *string
	SpecGroup    *string
	DisplayOrder *int
}

func (r *Repo) Update(ctx context.Context, id int64, in UpdateInput) (product.Specification, error) {
	return scanSpec(r.db.QueryRow(ctx, `
		UPDATE product_specifications
		SET spec_name = COALESCE($2, spec_name),
		    spec_value = COALESCE($3, spec_value),
		    spec_group = COALESCE($4, spec_group),
		    display_order = COALESCE($5, display_order)
		WHERE id = $1
		RETURNING `+specCols+`
	`, id, in.SpecName, in.SpecValue, in.SpecGroup, in.DisplayOrder))
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM product_specifications WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
