package tags

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/tag"
	"github.com/mzorab57/camera-sotre-backend/internal/util"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const tagCols = `id, name, slug, created_at`

func scanTag(row pgx.Row) (tag.Tag, error) {
	var t tag.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	return t, err
}

func (r *Repo) List(ctx context.Context) ([]tag.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tagCols+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tag.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, name, slug string) (tag.Tag, error) {
	return scanTag(r.db.QueryRow(ctx, `
		INSERT INTO tags (name, slug) VALUES ($1, $2)
		RETURNING `+tagCols+`
	`, name, slug))
}

func (r *Repo) Update(ctx context.Context, id int64, name, slug *string) (tag.Tag, error) {
	return scanTag(r.db.QueryRow(ctx, `
		UPDATE tags
		SET name = COALESCE($2, name), slug = COALESCE($3, slug)
		WHERE id = $1
		RETURNING `+tagCols+`
	`, id, name, slug))
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) ProductExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// Attach links tag names to a product, creating missing tags by slug on the
// fly, and returns the product's full tag list.
func (r *Repo) Attach(ctx context.Context, productID int64, names []string) ([]tag.Tag, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, name := range names {
		slug := util.Slugify(name)

		var tagID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO tags (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET name = tags.name
			RETURNING id
		`, name, slug).Scan(&tagID)
		if err != nil {
			return nil, err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO product_tags (product_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, productID, tagID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.ForProduct(ctx, productID)
}

func (r *Repo) Detach(ctx context.Context, productID, tagID int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `
		DELETE FROM product_tags WHERE product_id = $1 AND tag_id = $2
	`, productID, tagID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) ForProduct(ctx context.Context, productID int64) ([]tag.Tag, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN product_tags pt ON pt.tag_id = t.id
		WHERE pt.product_id = $1
		ORDER BY t.name ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tag.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
