package images

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

const imageCols = `id, product_id, image_url, is_primary, display_order, created_at`

func scanImage(row pgx.Row) (product.Image, error) {
	var img product.Image
	err := row.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.IsPrimary, &img.DisplayOrder, &img.CreatedAt)
	return img, err
}

func (r *Repo) ForProduct(ctx context.Context, productID int64) ([]product.Image, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+imageCols+` FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, display_order ASC, id ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *Repo) ByID(ctx context.Context, id int64) (product.Image, error) {
	return scanImage(r.db.QueryRow(ctx, `SELECT `+imageCols+` FROM product_images WHERE id = $1`, id))
}

func (r *Repo) ProductExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// Create appends the image after the product's current gallery. Display
// orders are spaced by 10 so manual reordering can slot between rows.
func (r *Repo) Create(ctx context.Context, productID int64, imageURL string, isPrimary bool) (product.Image, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return product.Image{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	img, err := scanImage(tx.QueryRow(ctx, `
		INSERT INTO product_images (product_id, image_url, is_primary, display_order)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(display_order), -10) + 10 FROM product_images WHERE product_id = $1))
		RETURNING `+imageCols+`
	`, productID, imageURL, isPrimary))
	if err != nil {
		return product.Image{}, err
	}

	if isPrimary {
		if err := setPrimaryTx(ctx, tx, productID, img.ID); err != nil {
			return product.Image{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return product.Image{}, err
	}
	return img, nil
}

type UpdateInput struct {
	ImageURL     *string
	IsPrimary    *bool
	DisplayOrder *int
}

func (r *Repo) Update(ctx context.Context, id int64, in UpdateInput) (product.Image, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return product.Image{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	img, err := scanImage(tx.QueryRow(ctx, `
		UPDATE product_images
		SET image_url = COALESCE($2, image_url),
		    is_primary = COALESCE($3, is_primary),
		    display_order = COALESCE($4, display_order)
		WHERE id = $1
		RETURNING `+imageCols+`
	`, id, in.ImageURL, in.IsPrimary, in.DisplayOrder))
	if err != nil {
		return product.Image{}, err
	}

	if in.IsPrimary != nil && *in.IsPrimary {
		if err := setPrimaryTx(ctx, tx, img.ProductID, img.ID); err != nil {
			return product.Image{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return product.Image{}, err
	}
	return img, nil
}

// SetPrimary promotes one image and demotes the rest of the gallery in a
// single statement, so a product never ends up with two primaries.
func (r *Repo) SetPrimary(ctx context.Context, id int64) (product.Image, error) {
	img, err := r.ByID(ctx, id)
	if err != nil {
		return product.Image{}, err
	}
	_, err = r.db.Exec(ctx, `
		UPDATE product_images SET is_primary = (id = $2) WHERE product_id = $1
	`, img.ProductID, img.ID)
	if err != nil {
		return product.Image{}, err
	}
	return r.ByID(ctx, id)
}

func setPrimaryTx(ctx context.Context, tx pgx.Tx, productID, imageID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE product_images SET is_primary = (id = $2) WHERE product_id = $1
	`, productID, imageID)
	return err
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
