package sqlite

import (
	"context"
	"encoding/json"

	"github.com/sindh-police/spims/internal/pims/domain"
)

type activitiesRepo struct {
	db dbtx
}

func (r *activitiesRepo) CreateActivity(ctx context.Context, a domain.Activity) error {
	details := a.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO activities (id, user_id, action, entity_type, entity_id,
		     details, ip_address, user_agent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Action, a.EntityType, a.EntityID,
		string(raw), a.IPAddress, a.UserAgent, a.CreatedAt,
	)
	return err
}

func (r *activitiesRepo) ListRecentActivities(
	ctx context.Context,
	limit int,
) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, entity_type, entity_id, details,
		     ip_address, user_agent, created_at
		 FROM activities
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		var (
			a   domain.Activity
			raw string
		)
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Action, &a.EntityType, &a.EntityID,
			&raw, &a.IPAddress, &a.UserAgent, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &a.Details); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
