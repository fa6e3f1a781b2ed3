package sqlite

import (
	"context"

	"github.com/sindh-police/spims/internal/pims/domain"
)

type personnelRepo struct {
	db dbtx
}

const personnelColumns = `id, full_name, rank, badge_number, district, station,
	date_of_joining, current_assignment, contact_number, is_active, created_at, updated_at`

func scanPersonnel(scan func(dest ...any) error) (domain.Personnel, error) {
	var p domain.Personnel
	err := scan(
		&p.ID, &p.FullName, &p.Rank, &p.BadgeNumber, &p.District, &p.Station,
		&p.DateOfJoining, &p.CurrentAssignment, &p.ContactNumber, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Personnel{}, mapNotFound(err)
	}
	return p, nil
}

func (r *personnelRepo) ListPersonnel(ctx context.Context) ([]domain.Personnel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+personnelColumns+` FROM personnel ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Personnel
	for rows.Next() {
		p, err := scanPersonnel(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *personnelRepo) GetPersonnelByID(ctx context.Context, id string) (domain.Personnel, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+personnelColumns+` FROM personnel WHERE id = ?`, id)
	return scanPersonnel(row.Scan)
}

func (r *personnelRepo) GetPersonnelByBadge(
	ctx context.Context,
	badgeNumber string,
) (domain.Personnel, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+personnelColumns+` FROM personnel WHERE badge_number = ?`, badgeNumber)
	return scanPersonnel(row.Scan)
}

func (r *personnelRepo) CreatePersonnel(ctx context.Context, p domain.Personnel) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO personnel (id, full_name, rank, badge_number, district, station,
		     date_of_joining, current_assignment, contact_number, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FullName, p.Rank, p.BadgeNumber, p.District, p.Station,
		p.DateOfJoining, p.CurrentAssignment, p.ContactNumber, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *personnelRepo) UpdatePersonnel(ctx context.Context, p domain.Personnel) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE personnel
		 SET full_name = ?, rank = ?, badge_number = ?, district = ?, station = ?,
		     date_of_joining = ?, current_assignment = ?, contact_number = ?,
		     is_active = ?, updated_at = ?
		 WHERE id = ?`,
		p.FullName, p.Rank, p.BadgeNumber, p.District, p.Station,
		p.DateOfJoining, p.CurrentAssignment, p.ContactNumber, p.IsActive,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res, nil)
}

func (r *personnelRepo) DeletePersonnel(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM personnel WHERE id = ?`, id)
	return requireRowAffected(res, err)
}
