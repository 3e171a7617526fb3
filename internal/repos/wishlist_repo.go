package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Add(ctx context.Context, email, productID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO wishlist(user_email, product_id, created_at)
	  VALUES(?, ?, ?)
	  ON CONFLICT(user_email, product_id) DO NOTHING
	`), email, productID, now())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *WishlistRepo) Remove(ctx context.Context, email, productID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM wishlist WHERE user_email=? AND product_id=?`), email, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ProductIDs returns the raw references in the principal's wishlist.
func (r *WishlistRepo) ProductIDs(ctx context.Context, email string) ([]string, error) {
	out := []string{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
	  SELECT product_id FROM wishlist
	  WHERE user_email = ?
	  ORDER BY created_at, product_id
	`), email)
	return out, err
}
