package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"buycycle/internal/domain"
	"buycycle/internal/repos"
)

type ReportService struct {
	Repo *repos.ReportRepo
}

func NewReportService(r *repos.ReportRepo) *ReportService { return &ReportService{Repo: r} }

// Create stores body, which must be a JSON object, as the report payload.
// A string "productId" field is lifted onto the report.
func (s *ReportService) Create(ctx context.Context, reporter string, body []byte) (domain.WriteResult, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return domain.WriteResult{}, fmt.Errorf("%w: report body must be a JSON object", ErrInvalidInput)
	}
	rep := domain.Report{
		ID:            domain.NewID(),
		ReporterEmail: reporter,
		Payload:       string(body),
		CreatedAt:     now(),
	}
	if pid, ok := fields["productId"].(string); ok {
		rep.ProductID = strings.TrimSpace(pid)
	}
	if err := s.Repo.Insert(ctx, rep); err != nil {
		return domain.WriteResult{}, fmt.Errorf("insert report: %w", err)
	}
	return domain.WriteResult{Acknowledged: true, InsertedID: rep.ID}, nil
}

func (s *ReportService) List(ctx context.Context) ([]domain.Report, error) {
	return s.Repo.List(ctx)
}

func (s *ReportService) Delete(ctx context.Context, id string) (domain.WriteResult, error) {
	n, err := s.Repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("delete report %s: %w", id, err)
	}
	return domain.WriteResult{Acknowledged: true, DeletedCount: n}, nil
}
