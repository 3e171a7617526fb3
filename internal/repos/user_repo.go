package repos

import (
	"context"
	"database/sql"
	"errors"

	"buycycle/internal/domain"

	"github.com/jmoiron/sqlx"
)

const userCols = `id,email,name,photo,role,created_at`

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// ByEmail returns (nil, nil) when no principal is stored under email.
func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT `+userCols+` FROM users WHERE email=?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ByEmails is the seller side of the product join.
func (r *UserRepo) ByEmails(ctx context.Context, emails []string) ([]domain.User, error) {
	out := []domain.User{}
	if len(emails) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT `+userCols+` FROM users WHERE email IN (?)`, emails)
	if err != nil {
		return nil, err
	}
	err = r.DB.SelectContext(ctx, &out, r.DB.Rebind(query), args...)
	return out, err
}

// List returns every user, or only the ones matching the non-empty filters.
func (r *UserRepo) List(ctx context.Context, email string, role domain.Role) ([]domain.User, error) {
	where := `1=1`
	args := []any{}
	if email != "" {
		where += ` AND email = ?`
		args = append(args, email)
	}
	if role != "" {
		where += ` AND role = ?`
		args = append(args, string(role))
	}
	out := []domain.User{}
	err := r.DB.SelectContext(ctx, &out, r.DB.Rebind(`SELECT `+userCols+` FROM users WHERE `+where+` ORDER BY created_at, email`), args...)
	return out, err
}

// InsertIfAbsent stores u unless its email is taken. inserted reports which happened.
func (r *UserRepo) InsertIfAbsent(ctx context.Context, u domain.User) (inserted bool, err error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO users(id,email,name,photo,role,created_at)
		VALUES(?,?,?,?,?,?)
		ON CONFLICT(email) DO NOTHING
	`), u.ID, u.Email, u.Name, u.Photo, string(u.Role), u.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the user row only. Products, bookings and wishlist rows that
// mention the email are left in place.
func (r *UserRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM users WHERE id=?`), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
