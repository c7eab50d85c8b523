// Package service holds the plan archive's business rules and the
// duty-status export. Services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/repo"
)

// ArchiveService records plans that reached ready and serves them back.
type ArchiveService struct {
	repo repo.PlanRepo
}

// NewArchiveService constructs an ArchiveService backed by the provided PlanRepo.
func NewArchiveService(r repo.PlanRepo) *ArchiveService {
	return &ArchiveService{repo: r}
}

// Save archives plan. A plan without a trip id cannot be looked up later
// and is rejected.
func (s *ArchiveService) Save(ctx context.Context, plan domain.Plan) error {
	if plan.Trip.ID <= 0 {
		return fmt.Errorf("service.ArchiveService.Save: %w: trip id is required", domain.ErrValidation)
	}
	if _, err := s.repo.Save(ctx, plan); err != nil {
		return fmt.Errorf("service.ArchiveService.Save: %w", err)
	}
	return nil
}

// Get returns the archived plan for tripID.
func (s *ArchiveService) Get(ctx context.Context, tripID int64) (domain.ArchivedPlan, error) {
	if tripID <= 0 {
		return domain.ArchivedPlan{}, fmt.Errorf("service.ArchiveService.Get: %w", domain.ErrNotFound)
	}
	a, err := s.repo.GetByTripID(ctx, tripID)
	if err != nil {
		return domain.ArchivedPlan{}, fmt.Errorf("service.ArchiveService.Get: %w", err)
	}
	return a, nil
}

// List returns one page of archived plan summaries, newest first.
func (s *ArchiveService) List(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.ArchivedPlan], error) {
	items, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return domain.Page[domain.ArchivedPlan]{}, fmt.Errorf("service.ArchiveService.List: %w", err)
	}
	return domain.Page[domain.ArchivedPlan]{Items: items, Total: total, Params: p}, nil
}

// Delete removes the archived plan for tripID.
func (s *ArchiveService) Delete(ctx context.Context, tripID int64) error {
	if err := s.repo.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.ArchiveService.Delete: %w", err)
	}
	return nil
}
