package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/product"
	"github.com/mzorab57/camera-sotre-backend/internal/domain/tag"
	"github.com/mzorab57/camera-sotre-backend/internal/pricing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// productCols selects the effective category (own, else inherited through
// the subcategory) into category_id so every consumer prices against the
// same hierarchy.
const productCols = `
	p.id, p.subcategory_id, COALESCE(p.category_id, s.category_id) AS category_id,
	COALESCE(s.name, '') AS subcategory_name, COALESCE(c.name, '') AS category_name,
	p.name, p.model, p.slug, p.sku, p.description, p.short_description,
	p.price, p.discount_price, p.type, p.brand, p.is_featured, p.is_active,
	p.meta_title, p.meta_description,
	(SELECT image_url FROM product_images WHERE product_id = p.id AND is_primary = true LIMIT 1) AS primary_image_url,
	p.created_at, p.updated_at`

const productJoins = `
	LEFT JOIN subcategories s ON p.subcategory_id = s.id
	LEFT JOIN categories c ON COALESCE(p.category_id, s.category_id) = c.id`

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.SubcategoryID, &p.CategoryID,
		&p.SubcategoryName, &p.CategoryName,
		&p.Name, &p.Model, &p.Slug, &p.SKU, &p.Description, &p.ShortDescription,
		&p.Price, &p.DiscountPrice, &p.Type, &p.Brand, &p.IsFeatured, &p.IsActive,
		&p.MetaTitle, &p.MetaDescription,
		&p.PrimaryImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

type ListFilter struct {
	CategoryID    *int64
	SubcategoryID *int64
	Brand         string
	Type          string
	IsFeatured    *bool
	IsActive      *bool
	MinPrice      *float64
	MaxPrice      *float64
	Search        string
	Page          int
	Limit         int
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]product.Product, int64, error) {
	where := []string{"true"}
	args := []any{}

	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("p.is_active = $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		where = append(where, fmt.Sprintf("(p.category_id = $%d OR s.category_id = $%d)", len(args), len(args)))
	}
	if f.SubcategoryID != nil {
		args = append(args, *f.SubcategoryID)
		where = append(where, fmt.Sprintf("p.subcategory_id = $%d", len(args)))
	}
	if f.Brand != "" {
		args = append(args, f.Brand)
		where = append(where, fmt.Sprintf("p.brand = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("p.type = $%d", len(args)))
	}
	if f.IsFeatured != nil {
		args = append(args, *f.IsFeatured)
		where = append(where, fmt.Sprintf("p.is_featured = $%d", len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		where = append(where, fmt.Sprintf("p.price >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		where = append(where, fmt.Sprintf("p.price <= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.model ILIKE $%d OR p.sku ILIKE $%d OR p.description ILIKE $%d)", n, n, n, n))
	}
	whereClause := "WHERE " + strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products p `+productJoins+` `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	q := fmt.Sprintf(`
		SELECT %s
		FROM products p
		%s
		%s
		ORDER BY p.is_featured DESC, p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, productCols, productJoins, whereClause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *Repo) ByID(ctx context.Context, id int64) (product.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products p
		`+productJoins+`
		WHERE p.id = $1
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		return product.Product{}, err
	}
	return r.loadDetails(ctx, p)
}

func (r *Repo) BySlug(ctx context.Context, slug string) (product.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products p
		`+productJoins+`
		WHERE p.slug = $1
	`, slug)
	p, err := scanProduct(row)
	if err != nil {
		return product.Product{}, err
	}
	return r.loadDetails(ctx, p)
}

func (r *Repo) loadDetails(ctx context.Context, p product.Product) (product.Product, error) {
	imgRows, err := r.db.Query(ctx, `
		SELECT id, product_id, image_url, is_primary, display_order, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, display_order ASC, id ASC
	`, p.ID)
	if err != nil {
		return product.Product{}, err
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var img product.Image
		if err := imgRows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.IsPrimary, &img.DisplayOrder, &img.CreatedAt); err != nil {
			return product.Product{}, err
		}
		p.Images = append(p.Images, img)
	}
	if err := imgRows.Err(); err != nil {
		return product.Product{}, err
	}

	specRows, err := r.db.Query(ctx, `
		SELECT id, product_id, spec_name, spec_value, spec_group, display_order, created_at
		FROM product_specifications
		WHERE product_id = $1
		ORDER BY display_order ASC, id ASC
	`, p.ID)
	if err != nil {
		return product.Product{}, err
	}
	defer specRows.Close()
	for specRows.Next() {
		var sp product.Specification
		if err := specRows.Scan(&sp.ID, &sp.ProductID, &sp.SpecName, &sp.SpecValue, &sp.SpecGroup, &sp.DisplayOrder, &sp.CreatedAt); err != nil {
			return product.Product{}, err
		}
		p.Specifications = append(p.Specifications, sp)
	}
	if err := specRows.Err(); err != nil {
		return product.Product{}, err
	}

	tagRows, err := r.db.Query(ctx, `
		SELECT t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN product_tags pt ON pt.tag_id = t.id
		WHERE pt.product_id = $1
		ORDER BY t.name ASC
	`, p.ID)
	if err != nil {
		return product.Product{}, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var t tag.Tag
		if err := tagRows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return product.Product{}, err
		}
		p.Tags = append(p.Tags, t)
	}
	return p, tagRows.Err()
}

type CreateInput struct {
	SubcategoryID    int64
	CategoryID       *int64
	Name             string
	Model            *string
	Slug             string
	SKU              *string
	Description      *string
	ShortDescription *string
	Price            float64
	DiscountPrice    *float64
	Type             string
	Brand            *string
	IsFeatured       bool
	IsActive         bool
	MetaTitle        *string
	MetaDescription  *string
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (product.Product, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (
			subcategory_id, category_id, name, model, slug, sku,
			description, short_description, price, discount_price,
			type, brand, is_featured, is_active, meta_title, meta_description
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id
	`, in.SubcategoryID, in.CategoryID, in.Name, in.Model, in.Slug, in.SKU,
		in.Description, in.ShortDescription, in.Price, in.DiscountPrice,
		in.Type, in.Brand, in.IsFeatured, in.IsActive, in.MetaTitle, in.MetaDescription,
	).Scan(&id)
	if err != nil {
		return product.Product{}, err
	}
	return r.ByID(ctx, id)
}

type UpdateInput struct {
	SubcategoryID    *int64
	CategoryID       *int64
	Name             *string
	Model            *string
	Slug             *string
	SKU              *string
	Description      *string
	ShortDescription *string
	Price            *float64
	DiscountPrice    *float64
	Type             *string
	Brand            *string
	IsFeatured       *bool
	IsActive         *bool
	MetaTitle        *string
	MetaDescription  *string
}

func (r *Repo) Update(ctx context.Context, id int64, in UpdateInput) (product.Product, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE products SET
			subcategory_id = COALESCE($2, subcategory_id),
			category_id = COALESCE($3, category_id),
			name = COALESCE($4, name),
			model = COALESCE($5, model),
			slug = COALESCE($6, slug),
			sku = COALESCE($7, sku),
			description = COALESCE($8, description),
			short_description = COALESCE($9, short_description),
			price = COALESCE($10, price),
			discount_price = COALESCE($11, discount_price),
			type = COALESCE($12, type),
			brand = COALESCE($13, brand),
			is_featured = COALESCE($14, is_featured),
			is_active = COALESCE($15, is_active),
			meta_title = COALESCE($16, meta_title),
			meta_description = COALESCE($17, meta_description),
			updated_at = now()
		WHERE id = $1
	`, id, in.SubcategoryID, in.CategoryID, in.Name, in.Model, in.Slug, in.SKU,
		in.Description, in.ShortDescription, in.Price, in.DiscountPrice,
		in.Type, in.Brand, in.IsFeatured, in.IsActive, in.MetaTitle, in.MetaDescription)
	if err != nil {
		return product.Product{}, err
	}
	if ct.RowsAffected() == 0 {
		return product.Product{}, pgx.ErrNoRows
	}
	return r.ByID(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) SubcategoryExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM subcategories WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// ForPricing implements pricing.ProductSource for active products.
func (r *Repo) ForPricing(ctx context.Context, ids []int64) ([]pricing.ProductInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.price, p.subcategory_id,
		       COALESCE(p.category_id, s.category_id), s.name, c.name
		FROM products p
		`+productJoins+`
		WHERE p.id = ANY($1) AND p.is_active = true
		ORDER BY p.id ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pricing.ProductInfo
	for rows.Next() {
		var pi pricing.ProductInfo
		if err := rows.Scan(&pi.ID, &pi.Name, &pi.Price, &pi.SubcategoryID, &pi.CategoryID, &pi.SubcategoryName, &pi.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, pi)
	}
	return out, rows.Err()
}
