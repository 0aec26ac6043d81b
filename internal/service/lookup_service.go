package service

import (
	"context"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/repository"
	apperrors "github.com/spec-kit/failtrack/pkg/util"
)

// LookupService exposes the reference tables used by ticket forms.
type LookupService struct {
	lookups repository.LookupRepository
}

// NewLookupService constructs the service.
func NewLookupService(lookups repository.LookupRepository) *LookupService {
	return &LookupService{lookups: lookups}
}

// Lines lists production lines.
func (s *LookupService) Lines(ctx context.Context) ([]domain.Line, error) {
	lines, err := s.lookups.ListLines(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	return lines, nil
}

// MachinesByLine lists the machines installed on a line.
func (s *LookupService) MachinesByLine(ctx context.Context, lineID int64) ([]domain.Machine, error) {
	machines, err := s.lookups.ListMachinesByLine(ctx, lineID)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	return machines, nil
}

// Statuses lists ticket status labels.
func (s *LookupService) Statuses(ctx context.Context) ([]domain.Status, error) {
	statuses, err := s.lookups.ListStatuses(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	return statuses, nil
}
