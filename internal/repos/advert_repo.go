package repos

import (
	"context"

	"buycycle/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AdvertRepo struct{ db *sqlx.DB }

func NewAdvertRepo(db *sqlx.DB) *AdvertRepo { return &AdvertRepo{db: db} }

// InsertIfAbsent keeps at most one advertisement per product.
func (r *AdvertRepo) InsertIfAbsent(ctx context.Context, a domain.Advertisement) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO advertise(id, product_id, seller_email, created_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(product_id) DO NOTHING
	`), a.ID, a.ProductID, a.SellerEmail, a.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *AdvertRepo) List(ctx context.Context) ([]domain.Advertisement, error) {
	out := []domain.Advertisement{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, product_id, seller_email, created_at
		FROM advertise
		ORDER BY created_at DESC, id
	`)
	return out, err
}

// ByProductIDs matches on the stored reference string as-is.
func (r *AdvertRepo) ByProductIDs(ctx context.Context, productIDs []string) ([]domain.Advertisement, error) {
	out := []domain.Advertisement{}
	if len(productIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, product_id, seller_email, created_at
		FROM advertise
		WHERE product_id IN (?)
		ORDER BY created_at, id
	`, productIDs)
	if err != nil {
		return nil, err
	}
	err = r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...)
	return out, err
}

func (r *AdvertRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM advertise WHERE product_id = ?`), productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
