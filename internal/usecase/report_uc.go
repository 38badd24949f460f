package usecase

import (
	"context"

	"settlement-service/internal/domain"
	"settlement-service/internal/repository"
)

// ReportUsecase aggregates historical commission totals. Pure read, no
// transactional scope.
type ReportUsecase struct {
	splits repository.CommissionRepository
}

func NewReportUsecase(splits repository.CommissionRepository) *ReportUsecase {
	return &ReportUsecase{splits: splits}
}

func (uc *ReportUsecase) CommissionTotals(ctx context.Context) ([]*domain.CommissionReport, error) {
	return uc.splits.TotalsByRecipientType(ctx)
}
