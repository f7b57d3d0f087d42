package discounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/discount"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const discountCols = `
	d.id, d.name, COALESCE(d.description,''), d.discount_type, d.discount_value,
	d.target_type, d.target_id, d.start_date, d.end_date, d.is_active,
	d.priority, d.max_uses, d.min_order_amount, d.created_at, d.updated_at`

// target_name resolves against whichever table the discount points at; a
// dangling target simply yields NULL.
const targetNameCol = `
	CASE
		WHEN d.target_type = 'product' THEN p.name
		WHEN d.target_type = 'category' THEN c.name
		WHEN d.target_type = 'subcategory' THEN s.name
	END AS target_name`

const targetJoins = `
	LEFT JOIN products p ON d.target_type = 'product' AND d.target_id = p.id
	LEFT JOIN categories c ON d.target_type = 'category' AND d.target_id = c.id
	LEFT JOIN subcategories s ON d.target_type = 'subcategory' AND d.target_id = s.id`

func scanDiscount(row pgx.Row) (discount.Discount, error) {
	var d discount.Discount
	err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.DiscountType, &d.DiscountValue,
		&d.TargetType, &d.TargetID, &d.StartDate, &d.EndDate, &d.IsActive,
		&d.Priority, &d.MaxUses, &d.MinOrderAmount, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// DiscountsValidAt implements pricing.CandidateStore. NULL subcategory or
// category ids never match their level because SQL equality against NULL is
// never true.
func (r *Repo) DiscountsValidAt(ctx context.Context, now time.Time, productID int64, subcategoryID, categoryID *int64) ([]discount.Discount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+discountCols+`
		FROM discounts d
		WHERE d.is_active = true
		  AND d.start_date <= $1
		  AND (d.end_date IS NULL OR d.end_date >= $1)
		  AND (
			(d.target_type = 'product' AND d.target_id = $2) OR
			(d.target_type = 'subcategory' AND d.target_id = $3) OR
			(d.target_type = 'category' AND d.target_id = $4)
		  )
	`, now, productID, subcategoryID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []discount.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type CreateInput struct {
	Name           string
	Description    *string
	DiscountType   discount.Type
	DiscountValue  float64
	TargetType     discount.TargetType
	TargetID       int64
	StartDate      time.Time
	EndDate        *time.Time
	IsActive       bool
	Priority       int
	MaxUses        *int
	MinOrderAmount *float64
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (discount.Discount, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO discounts (
			name, description, discount_type, discount_value, target_type, target_id,
			start_date, end_date, is_active, priority, max_uses, min_order_amount
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING `+strings.ReplaceAll(discountCols, "d.", "")+`
	`, in.Name, in.Description, in.DiscountType, in.DiscountValue, in.TargetType, in.TargetID,
		in.StartDate, in.EndDate, in.IsActive, in.Priority, in.MaxUses, in.MinOrderAmount)
	return scanDiscount(row)
}

type UpdateInput struct {
	Name           *string
	Description    *string
	DiscountType   *discount.Type
	DiscountValue  *float64
	TargetType     *discount.TargetType
	TargetID       *int64
	StartDate      *time.Time
	EndDate        *time.Time
	IsActive       *bool
	Priority       *int
	MaxUses        *int
	MinOrderAmount *float64
}

func (r *Repo) Update(ctx context.Context, id int64, in UpdateInput) (discount.Discount, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE discounts SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			discount_type = COALESCE($4, discount_type),
			discount_value = COALESCE($5, discount_value),
			target_type = COALESCE($6, target_type),
			target_id = COALESCE($7, target_id),
			start_date = COALESCE($8, start_date),
			end_date = COALESCE($9, end_date),
			is_active = COALESCE($10, is_active),
			priority = COALESCE($11, priority),
			max_uses = COALESCE($12, max_uses),
			min_order_amount = COALESCE($13, min_order_amount),
			updated_at = now()
		WHERE id = $1
		RETURNING `+strings.ReplaceAll(discountCols, "d.", "")+`
	`, id, in.Name, in.Description, in.DiscountType, in.DiscountValue, in.TargetType, in.TargetID,
		in.StartDate, in.EndDate, in.IsActive, in.Priority, in.MaxUses, in.MinOrderAmount)
	return scanDiscount(row)
}

func (r *Repo) ByID(ctx context.Context, id int64) (discount.Discount, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+discountCols+`, `+targetNameCol+`
		FROM discounts d
		`+targetJoins+`
		WHERE d.id = $1
	`, id)

	var d discount.Discount
	var targetName *string
	err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.DiscountType, &d.DiscountValue,
		&d.TargetType, &d.TargetID, &d.StartDate, &d.EndDate, &d.IsActive,
		&d.Priority, &d.MaxUses, &d.MinOrderAmount, &d.CreatedAt, &d.UpdatedAt,
		&targetName,
	)
	if err != nil {
		return discount.Discount{}, err
	}
	if targetName != nil {
		d.TargetName = *targetName
	}
	return d, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

type ListFilter struct {
	TargetType *discount.TargetType
	IsActive   *bool
	Query      string
	Page       int
	Limit      int
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]discount.Discount, int64, error) {
	where := []string{"true"}
	args := []any{}

	if f.TargetType != nil {
		args = append(args, *f.TargetType)
		where = append(where, fmt.Sprintf("d.target_type = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("d.is_active = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where = append(where, fmt.Sprintf("d.name ILIKE $%d", len(args)))
	}
	whereClause := "WHERE " + strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM discounts d `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT `+discountCols+`, `+targetNameCol+`
		FROM discounts d
		`+targetJoins+`
		%s
		ORDER BY d.priority DESC, d.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectWithTargetName(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, rows.Err()
}

// ActiveNow lists discounts passing the validity invariant at now, with
// resolved target names, highest priority first.
func (r *Repo) ActiveNow(ctx context.Context, now time.Time) ([]discount.Discount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+discountCols+`, `+targetNameCol+`
		FROM discounts d
		`+targetJoins+`
		WHERE d.is_active = true
		  AND d.start_date <= $1
		  AND (d.end_date IS NULL OR d.end_date >= $1)
		ORDER BY d.priority DESC, d.created_at DESC
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := collectWithTargetName(rows)
	if err != nil {
		return nil, err
	}
	return out, rows.Err()
}

type LevelCounts struct {
	Total       int64 `json:"total"`
	Product     int64 `json:"product_level"`
	Subcategory int64 `json:"subcategory_level"`
	Category    int64 `json:"category_level"`
}

// CountActiveByLevel counts discounts passing the validity invariant at now,
// broken down by target level. Uses the same invariant as resolution so the
// reported numbers match what the storefront can actually see.
func (r *Repo) CountActiveByLevel(ctx context.Context, now time.Time) (LevelCounts, error) {
	var lc LevelCounts
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE target_type = 'product'),
			COUNT(*) FILTER (WHERE target_type = 'subcategory'),
			COUNT(*) FILTER (WHERE target_type = 'category')
		FROM discounts
		WHERE is_active = true
		  AND start_date <= $1
		  AND (end_date IS NULL OR end_date >= $1)
	`, now).Scan(&lc.Total, &lc.Product, &lc.Subcategory, &lc.Category)
	return lc, err
}

func collectWithTargetName(rows pgx.Rows) ([]discount.Discount, error) {
	var out []discount.Discount
	for rows.Next() {
		var d discount.Discount
		var targetName *string
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Description, &d.DiscountType, &d.DiscountValue,
			&d.TargetType, &d.TargetID, &d.StartDate, &d.EndDate, &d.IsActive,
			&d.Priority, &d.MaxUses, &d.MinOrderAmount, &d.CreatedAt, &d.UpdatedAt,
			&targetName,
		); err != nil {
			return nil, err
		}
		if targetName != nil {
			d.TargetName = *targetName
		}
		out = append(out, d)
	}
	return out, nil
}
