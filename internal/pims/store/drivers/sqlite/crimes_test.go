package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/store"
)

func newCrimeReport(id, caseNumber, reportedBy string, createdAt time.Time) domain.CrimeReport {
	return domain.CrimeReport{
		ID:          id,
		CaseNumber:  caseNumber,
		Title:       "Shop burglary",
		Description: "Forced entry overnight",
		District:    "Karachi South",
		Address:     "Zamzama Blvd",
		CrimeType:   domain.CrimeBurglary,
		Severity:    domain.SeverityHigh,
		ReportedBy:  reportedBy,
		Status:      domain.CrimeReported,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestCrimeReportsCRUD(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	reporter := seedUser(t, st, "u1")

	created := newCrimeReport("c1", "FIR-20250801-000001", reporter.ID, time.Now().UTC())
	require.NoError(t, st.CrimeReports().CreateCrimeReport(ctx, created))

	t.Run("get by id", func(t *testing.T) {
		got, err := st.CrimeReports().GetCrimeReportByID(ctx, "c1")
		require.NoError(t, err)
		require.Equal(t, created.CaseNumber, got.CaseNumber)
		require.Equal(t, reporter.ID, got.ReportedBy)
		require.Empty(t, got.AssignedTo)
		require.Nil(t, got.ClosedAt)
	})

	t.Run("duplicate case number is ErrAlreadyExists", func(t *testing.T) {
		dup := newCrimeReport("c2", "FIR-20250801-000001", reporter.ID, time.Now().UTC())
		require.ErrorIs(t, st.CrimeReports().CreateCrimeReport(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("update assigns and closes", func(t *testing.T) {
		closedAt := time.Date(2025, 8, 2, 17, 0, 0, 0, time.UTC)
		updated := created
		updated.AssignedTo = reporter.ID
		updated.Status = domain.CrimeClosed
		updated.UpdatedAt = closedAt
		updated.ClosedAt = &closedAt
		require.NoError(t, st.CrimeReports().UpdateCrimeReport(ctx, updated))

		got, err := st.CrimeReports().GetCrimeReportByID(ctx, "c1")
		require.NoError(t, err)
		require.Equal(t, reporter.ID, got.AssignedTo)
		require.Equal(t, domain.CrimeClosed, got.Status)
		require.NotNil(t, got.ClosedAt)
		require.WithinDuration(t, closedAt, *got.ClosedAt, time.Second)
	})

	t.Run("update missing record is ErrNotFound", func(t *testing.T) {
		missing := newCrimeReport("nope", "FIR-X", reporter.ID, time.Now().UTC())
		require.ErrorIs(t, st.CrimeReports().UpdateCrimeReport(ctx, missing), store.ErrNotFound)
	})
}

func TestCrimeReportsListFilters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	reporter := seedUser(t, st, "u1")
	base := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)

	reports := []domain.CrimeReport{
		newCrimeReport("c1", "FIR-1", reporter.ID, base),
		newCrimeReport("c2", "FIR-2", reporter.ID, base.Add(time.Minute)),
		newCrimeReport("c3", "FIR-3", reporter.ID, base.Add(2*time.Minute)),
	}
	reports[1].District = "Hyderabad"
	reports[2].CrimeType = domain.CrimeTheft
	reports[2].Severity = domain.SeverityLow
	reports[2].Status = domain.CrimeUnderInvestigation
	for _, c := range reports {
		require.NoError(t, st.CrimeReports().CreateCrimeReport(ctx, c))
	}

	t.Run("no filter returns all, newest first", func(t *testing.T) {
		got, err := st.CrimeReports().ListCrimeReports(ctx, store.CrimeFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, "c3", got[0].ID)
	})

	t.Run("by district", func(t *testing.T) {
		got, err := st.CrimeReports().ListCrimeReports(ctx, store.CrimeFilter{District: "Hyderabad"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "c2", got[0].ID)
	})

	t.Run("combined filters", func(t *testing.T) {
		got, err := st.CrimeReports().ListCrimeReports(ctx, store.CrimeFilter{
			Status:    domain.CrimeUnderInvestigation,
			CrimeType: domain.CrimeTheft,
			Severity:  domain.SeverityLow,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "c3", got[0].ID)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		got, err := st.CrimeReports().ListCrimeReports(ctx, store.CrimeFilter{District: "Sukkur"})
		require.NoError(t, err)
		require.Empty(t, got)
	})
}
