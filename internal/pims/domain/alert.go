package domain

import "time"

// Alert types.
const (
	AlertCrime     = "crime"
	AlertMissing   = "missing"
	AlertWanted    = "wanted"
	AlertGeneral   = "general"
	AlertEmergency = "emergency"
)

// Alert statuses.
const (
	AlertActive   = "active"
	AlertResolved = "resolved"
	AlertArchived = "archived"
)

// ValidAlertType reports whether t is a known alert type.
func ValidAlertType(t string) bool {
	switch t {
	case AlertCrime, AlertMissing, AlertWanted, AlertGeneral, AlertEmergency:
		return true
	}
	return false
}

// ValidAlertStatus reports whether s is a known alert status.
func ValidAlertStatus(s string) bool {
	switch s {
	case AlertActive, AlertResolved, AlertArchived:
		return true
	}
	return false
}

// Alert is a district-wide emergency broadcast.
type Alert struct {
	ID          string
	Title       string
	Description string
	AlertType   string
	Severity    string
	Districts   []string
	IssuedBy    string // user id
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
