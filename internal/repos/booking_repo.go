package repos

import (
	"context"

	"buycycle/internal/domain"

	"github.com/jmoiron/sqlx"
)

const bookingCols = `id, product_id, product_title, buyer_email, buyer_name, seller_email, phone, meeting_location, created_at`

type BookingRepo struct{ db *sqlx.DB }

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

// InsertIfAbsent relies on the (buyer_email, product_id) unique index, so a
// repeated request is dropped by the store rather than checked-then-inserted.
func (r *BookingRepo) InsertIfAbsent(ctx context.Context, b domain.Booking) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO bookings(`+bookingCols+`)
	  VALUES(?,?,?,?,?,?,?,?,?)
	  ON CONFLICT(buyer_email, product_id) DO NOTHING
	`), b.ID, b.ProductID, b.ProductTitle, b.BuyerEmail, b.BuyerName, b.SellerEmail, b.Phone, b.MeetingLocation, b.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *BookingRepo) ListByBuyer(ctx context.Context, email string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+bookingCols+` FROM bookings
		WHERE buyer_email = ?
		ORDER BY created_at DESC, id
	`), email)
	return out, err
}

func (r *BookingRepo) ListBySeller(ctx context.Context, email string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+bookingCols+` FROM bookings
		WHERE seller_email = ?
		ORDER BY created_at DESC, id
	`), email)
	return out, err
}

func (r *BookingRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM bookings WHERE product_id = ?`), productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
