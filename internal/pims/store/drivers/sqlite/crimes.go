package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/store"
)

type crimeReportsRepo struct {
	db dbtx
}

const crimeColumns = `id, case_number, title, description, district, address,
	crime_type, severity, reported_by, assigned_to, status, created_at, updated_at, closed_at`

func scanCrimeReport(scan func(dest ...any) error) (domain.CrimeReport, error) {
	var (
		c          domain.CrimeReport
		assignedTo sql.NullString
		closedAt   sql.NullTime
	)
	err := scan(
		&c.ID, &c.CaseNumber, &c.Title, &c.Description, &c.District, &c.Address,
		&c.CrimeType, &c.Severity, &c.ReportedBy, &assignedTo, &c.Status,
		&c.CreatedAt, &c.UpdatedAt, &closedAt,
	)
	if err != nil {
		return domain.CrimeReport{}, mapNotFound(err)
	}
	if assignedTo.Valid {
		c.AssignedTo = assignedTo.String
	}
	c.ClosedAt = timePtr(closedAt)
	return c, nil
}

func (r *crimeReportsRepo) ListCrimeReports(
	ctx context.Context,
	f store.CrimeFilter,
) ([]domain.CrimeReport, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.District != "" {
		conds = append(conds, "district = ?")
		args = append(args, f.District)
	}
	if f.CrimeType != "" {
		conds = append(conds, "crime_type = ?")
		args = append(args, f.CrimeType)
	}
	if f.Severity != "" {
		conds = append(conds, "severity = ?")
		args = append(args, f.Severity)
	}

	query := `SELECT ` + crimeColumns + ` FROM crime_reports`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CrimeReport
	for rows.Next() {
		c, err := scanCrimeReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *crimeReportsRepo) GetCrimeReportByID(
	ctx context.Context,
	id string,
) (domain.CrimeReport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+crimeColumns+` FROM crime_reports WHERE id = ?`, id)
	return scanCrimeReport(row.Scan)
}

func (r *crimeReportsRepo) CreateCrimeReport(ctx context.Context, c domain.CrimeReport) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO crime_reports (id, case_number, title, description, district, address,
		     crime_type, severity, reported_by, assigned_to, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.CaseNumber, c.Title, c.Description, c.District, c.Address,
		c.CrimeType, c.Severity, c.ReportedBy, nullString(c.AssignedTo), c.Status,
		c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *crimeReportsRepo) UpdateCrimeReport(ctx context.Context, c domain.CrimeReport) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE crime_reports
		 SET title = ?, description = ?, district = ?, address = ?, crime_type = ?,
		     severity = ?, assigned_to = ?, status = ?, updated_at = ?, closed_at = ?
		 WHERE id = ?`,
		c.Title, c.Description, c.District, c.Address, c.CrimeType,
		c.Severity, nullString(c.AssignedTo), c.Status, c.UpdatedAt,
		nullTime(c.ClosedAt), c.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res, nil)
}
