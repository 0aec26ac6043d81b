package service

import (
	"context"
	"sort"
	"time"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/repository"
	apperrors "github.com/spec-kit/failtrack/pkg/util"
)

// MonthNamer resolves a month display name for a locale tag.
type MonthNamer interface {
	MonthName(tag string, month int) (string, error)
}

// ReportService groups a category's tickets into monthly report periods.
type ReportService struct {
	cfg      domain.CategoryConfig
	tickets  repository.TicketRepository
	months   MonthNamer
	location *time.Location
	missing  string
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	Config                domain.CategoryConfig
	TicketRepo            repository.TicketRepository
	Months                MonthNamer
	Location              *time.Location
	MissingRefPlaceholder string
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		cfg:      deps.Config,
		tickets:  deps.TicketRepo,
		months:   deps.Months,
		location: loc,
		missing:  deps.MissingRefPlaceholder,
	}
}

type period struct {
	year  int
	month int
}

// AvailablePeriods lists every month holding at least one ticket, most recent first.
func (s *ReportService) AvailablePeriods(ctx context.Context) ([]domain.ReportBucket, error) {
	created, err := s.tickets.FindCreationTimes(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}

	counts := make(map[period]int)
	for _, ts := range created {
		local := ts.In(s.location)
		counts[period{year: local.Year(), month: int(local.Month())}]++
	}

	buckets := make([]domain.ReportBucket, 0, len(counts))
	for p, count := range counts {
		name, err := s.months.MonthName(s.cfg.Locale, p.month)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		buckets = append(buckets, domain.ReportBucket{
			Year:        p.year,
			Month:       p.month,
			MonthName:   name,
			RecordCount: count,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year > buckets[j].Year
		}
		return buckets[i].Month > buckets[j].Month
	})
	return buckets, nil
}

// ExportPeriod returns the rows created in year/month, oldest first.
// An empty period is reported as ExportEmpty rather than an empty export.
func (s *ReportService) ExportPeriod(ctx context.Context, year, month int) (*domain.Export, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("invalid report period",
			map[string]any{"year": year, "month": month})
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 1, 0)
	rows, err := s.tickets.FindByPeriod(ctx, from, to)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewExportEmpty(year, month)
	}

	export := &domain.Export{
		Category:  s.cfg.Category,
		Year:      year,
		Month:     month,
		Title:     s.cfg.Title,
		SheetName: s.cfg.SheetName,
		Headers:   s.cfg.ExportHeaders,
		Rows:      make([]domain.ExportRow, 0, len(rows)),
	}
	for _, row := range rows {
		out := domain.ExportRow{
			ID:            row.ID,
			ApplicantName: row.ApplicantName,
			LineName:      s.orMissing(row.LineName),
			MachineName:   s.orMissing(row.MachineName),
			StatusName:    s.orMissing(row.StatusName),
			ResolvedAt:    s.resolvedAt(row),
		}
		if row.FaultDescription != nil {
			out.Description = *row.FaultDescription
		}
		if row.CreatedAt != nil {
			out.CreatedAt = *row.CreatedAt
		}
		export.Rows = append(export.Rows, out)
	}
	return export, nil
}

func (s *ReportService) resolvedAt(row domain.TicketRow) *time.Time {
	switch s.cfg.ResolvedTimestampField {
	case domain.ResolvedFromUpdatedAt:
		return row.UpdatedAt
	default:
		return row.ClosedAt
	}
}

func (s *ReportService) orMissing(val *string) string {
	if val == nil || *val == "" {
		return s.missing
	}
	return *val
}
