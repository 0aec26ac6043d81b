package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/locale"
	apperrors "github.com/spec-kit/failtrack/pkg/util"
)

func newReportFixture(category domain.Category, loc *time.Location) (*ReportService, *fakeTicketRepo) {
	repo := newFakeTicketRepo()
	svc := NewReportService(ReportDependencies{
		Config:                categoryConfig(category),
		TicketRepo:            repo,
		Months:                locale.NewResolver(),
		Location:              loc,
		MissingRefPlaceholder: "N/A",
	})
	return svc, repo
}

func TestAvailablePeriods(t *testing.T) {
	svc, repo := newReportFixture(domain.CategoryMaintenance, time.UTC)
	repo.seed(time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), nil)
	repo.seed(time.Date(2024, 3, 28, 10, 0, 0, 0, time.UTC), nil)
	repo.seed(time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC), nil)

	buckets, err := svc.AvailablePeriods(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.ReportBucket{
		{Year: 2024, Month: 4, MonthName: "abril", RecordCount: 1},
		{Year: 2024, Month: 3, MonthName: "marzo", RecordCount: 2},
	}
	if len(buckets) != len(want) {
		t.Fatalf("buckets = %+v", buckets)
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Errorf("buckets[%d] = %+v, want %+v", i, buckets[i], want[i])
		}
	}
}

func TestAvailablePeriods_OrderAcrossYears(t *testing.T) {
	svc, repo := newReportFixture(domain.CategoryTooling, time.UTC)
	for _, ts := range []time.Time{
		time.Date(2023, 12, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 2, 5, 0, 0, 0, 0, time.UTC),
	} {
		repo.seed(ts, nil)
	}

	buckets, err := svc.AvailablePeriods(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := make([][2]int, 0, len(buckets))
	total := 0
	for _, b := range buckets {
		got = append(got, [2]int{b.Year, b.Month})
		total += b.RecordCount
	}
	want := [][2]int{{2024, 1}, {2023, 12}, {2023, 2}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order = %v, want %v", got, want)
			break
		}
	}
	if total != 3 {
		t.Errorf("counts sum to %d, want 3", total)
	}
}

func TestAvailablePeriods_UsesReportTimeZone(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	svc, repo := newReportFixture(domain.CategoryTooling, loc)
	// 2024-04-01 03:00 UTC is still March 31 in CST.
	repo.seed(time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC), nil)

	buckets, err := svc.AvailablePeriods(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 1 || buckets[0].Month != 3 {
		t.Errorf("buckets = %+v, want a single March bucket", buckets)
	}
}

func TestAvailablePeriods_Empty(t *testing.T) {
	svc, _ := newReportFixture(domain.CategoryMaintenance, time.UTC)
	buckets, err := svc.AvailablePeriods(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 0 {
		t.Errorf("buckets = %+v", buckets)
	}
}

type failingMonths struct{}

func (failingMonths) MonthName(string, int) (string, error) { return "", errors.New("no table") }

func TestAvailablePeriods_MonthNameFailure(t *testing.T) {
	repo := newFakeTicketRepo()
	repo.seed(t0, nil)
	svc := NewReportService(ReportDependencies{Config: categoryConfig(domain.CategoryMaintenance), TicketRepo: repo, Months: failingMonths{}})
	if _, err := svc.AvailablePeriods(context.Background()); !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Errorf("err = %v, want INTERNAL_ERROR", err)
	}
}

func TestExportPeriod(t *testing.T) {
	created := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	updated := created.Add(2 * time.Hour)
	closed := created.Add(5 * time.Hour)

	for _, tc := range []struct {
		category     domain.Category
		wantResolved time.Time
		wantSheet    string
	}{
		{domain.CategoryMaintenance, updated, "Mantenimiento"},
		{domain.CategoryTooling, closed, "Herramentales"},
	} {
		t.Run(string(tc.category), func(t *testing.T) {
			svc, repo := newReportFixture(tc.category, time.UTC)
			repo.seed(created.AddDate(0, 0, 10), func(tk *domain.Ticket) { tk.ApplicantName = "later" })
			repo.seed(created, func(tk *domain.Ticket) {
				tk.ApplicantName = "A. Perez"
				tk.FaultDescription = strPtr("Fuga")
				tk.UpdatedAt = &updated
				tk.ClosedAt = &closed
			})
			repo.seed(created.AddDate(0, 1, 0), nil)

			exp, err := svc.ExportPeriod(context.Background(), 2024, 3)
			if err != nil {
				t.Fatal(err)
			}
			if len(exp.Rows) != 2 {
				t.Fatalf("rows = %d, want 2", len(exp.Rows))
			}
			first := exp.Rows[0]
			if first.ApplicantName != "A. Perez" || exp.Rows[1].ApplicantName != "later" {
				t.Errorf("rows not ordered oldest first: %+v", exp.Rows)
			}
			if first.LineName != "N/A" || first.MachineName != "N/A" || first.StatusName != "N/A" {
				t.Errorf("missing references not replaced: %+v", first)
			}
			if first.ResolvedAt == nil || !first.ResolvedAt.Equal(tc.wantResolved) {
				t.Errorf("resolvedAt = %v, want %v", first.ResolvedAt, tc.wantResolved)
			}
			if exp.SheetName != tc.wantSheet || exp.Headers[0] != "ID" {
				t.Errorf("presentation = %q %v", exp.SheetName, exp.Headers)
			}
			if exp.FileName() != "Reporte_"+tc.wantSheet+"_2024_03.xlsx" {
				t.Errorf("file name = %q", exp.FileName())
			}
		})
	}
}

func TestExportPeriod_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty period", func(t *testing.T) {
		svc, repo := newReportFixture(domain.CategoryMaintenance, time.UTC)
		repo.seed(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), nil)
		_, err := svc.ExportPeriod(ctx, 2024, 5)
		if !apperrors.HasCode(err, apperrors.CodeExportEmpty) || !apperrors.IsNotFound(err) {
			t.Errorf("err = %v, want EXPORT_EMPTY", err)
		}
	})

	t.Run("invalid month", func(t *testing.T) {
		svc, _ := newReportFixture(domain.CategoryMaintenance, time.UTC)
		for _, month := range []int{0, 13} {
			if _, err := svc.ExportPeriod(ctx, 2024, month); !apperrors.HasCode(err, apperrors.CodeValidationFailed) {
				t.Errorf("month %d: err = %v", month, err)
			}
		}
	})

	t.Run("store down", func(t *testing.T) {
		svc, repo := newReportFixture(domain.CategoryTooling, time.UTC)
		repo.err = errStoreDown
		_, err := svc.ExportPeriod(ctx, 2024, 3)
		if !apperrors.HasCode(err, apperrors.CodeUnavailable) {
			t.Errorf("err = %v, want UNAVAILABLE", err)
		}
		if _, err := svc.AvailablePeriods(ctx); !apperrors.HasCode(err, apperrors.CodeUnavailable) {
			t.Errorf("periods err = %v, want UNAVAILABLE", err)
		}
	})
}
