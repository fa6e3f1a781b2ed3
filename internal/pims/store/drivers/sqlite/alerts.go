package sqlite

import (
	"context"
	"encoding/json"

	"github.com/sindh-police/spims/internal/pims/domain"
)

type alertsRepo struct {
	db dbtx
}

const alertColumns = `id, title, description, alert_type, severity, districts,
	issued_by, status, created_at, updated_at`

func scanAlert(scan func(dest ...any) error) (domain.Alert, error) {
	var (
		a         domain.Alert
		districts string
	)
	err := scan(
		&a.ID, &a.Title, &a.Description, &a.AlertType, &a.Severity, &districts,
		&a.IssuedBy, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Alert{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(districts), &a.Districts); err != nil {
		return domain.Alert{}, err
	}
	return a, nil
}

func (r *alertsRepo) ListAlerts(
	ctx context.Context,
	status string,
	limit, offset int,
) ([]domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM alerts
		 WHERE status = ?
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *alertsRepo) CountAlerts(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alerts WHERE status = ?`, status).Scan(&count)
	return count, err
}

func (r *alertsRepo) GetAlertByID(ctx context.Context, id string) (domain.Alert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE id = ?`, id)
	return scanAlert(row.Scan)
}

func (r *alertsRepo) CreateAlert(ctx context.Context, a domain.Alert) error {
	districts, err := json.Marshal(a.Districts)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO alerts (id, title, description, alert_type, severity, districts,
		     issued_by, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Description, a.AlertType, a.Severity, string(districts),
		a.IssuedBy, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *alertsRepo) UpdateAlertStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id)
	return requireRowAffected(res, err)
}

func (r *alertsRepo) DeleteAlert(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = ?`, id)
	return requireRowAffected(res, err)
}
