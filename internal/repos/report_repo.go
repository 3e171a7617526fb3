package repos

import (
	"context"

	"buycycle/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReportRepo struct{ db *sqlx.DB }

func NewReportRepo(db *sqlx.DB) *ReportRepo { return &ReportRepo{db: db} }

func (r *ReportRepo) Insert(ctx context.Context, rep domain.Report) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO report(id, reporter_email, product_id, payload, created_at)
		VALUES(?, ?, ?, ?, ?)
	`), rep.ID, rep.ReporterEmail, rep.ProductID, rep.Payload, rep.CreatedAt)
	return err
}

func (r *ReportRepo) List(ctx context.Context) ([]domain.Report, error) {
	out := []domain.Report{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, reporter_email, product_id, payload, created_at
		FROM report
		ORDER BY created_at DESC, id
	`)
	return out, err
}

func (r *ReportRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM report WHERE id = ?`), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
