package repos

import (
	"context"
	"database/sql"
	"errors"

	"buycycle/internal/domain"

	"github.com/jmoiron/sqlx"
)

const productCols = `
    id, category_id, seller_email, seller_name, title, image, price, original_price,
    condition, years_of_use, location, phone, description, available, created_at`

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Insert(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO products(`+productCols+`)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`), p.ID, p.CategoryID, p.SellerEmail, p.SellerName, p.Title, p.Image, p.Price, p.OriginalPrice,
		p.Condition, p.YearsOfUse, p.Location, p.Phone, p.Description, p.Available, p.CreatedAt)
	return err
}

// Get returns (nil, nil) when the key is unknown.
func (r *ProductRepo) Get(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT `+productCols+` FROM products WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ByIDs fetches products by canonical keys. Unknown keys are simply absent.
func (r *ProductRepo) ByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	out := []domain.Product{}
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT `+productCols+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	err = r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...)
	return out, err
}

func (r *ProductRepo) ListByCategory(ctx context.Context, catID string) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
	  SELECT `+productCols+`
	  FROM products
	  WHERE category_id = ?
	  ORDER BY created_at DESC, id
	`), catID)
	return out, err
}

func (r *ProductRepo) ListBySeller(ctx context.Context, email string) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
	  SELECT `+productCols+`
	  FROM products
	  WHERE seller_email = ?
	  ORDER BY created_at DESC, id
	`), email)
	return out, err
}

func (r *ProductRepo) SetAvailable(ctx context.Context, id string, available bool) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE products SET available = ? WHERE id = ?`), available, id)
	return err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
