package domain

import "time"

// Activity entity types.
const (
	EntityUser        = "User"
	EntityPersonnel   = "Personnel"
	EntityAlert       = "Alert"
	EntityCrimeReport = "CrimeReport"
	EntitySystem      = "System"
)

// Activity is an audit-trail entry. Recording is best effort: a failed write
// is logged locally and never blocks or fails the request that caused it.
type Activity struct {
	ID         string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Details    map[string]any
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}
