package domain

import "time"

// Crime types.
const (
	CrimeTheft            = "theft"
	CrimeBurglary         = "burglary"
	CrimeAssault          = "assault"
	CrimeMurder           = "murder"
	CrimeFraud            = "fraud"
	CrimeCyber            = "cyber_crime"
	CrimeDrugOffense      = "drug_offense"
	CrimeTrafficViolation = "traffic_violation"
	CrimePublicDisorder   = "public_disorder"
	CrimeOther            = "other"
)

// Severities, shared with alerts.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Crime report statuses.
const (
	CrimeReported           = "reported"
	CrimeUnderInvestigation = "under_investigation"
	CrimeResolved           = "resolved"
	CrimeClosed             = "closed"
)

// ValidCrimeType reports whether t is a known crime type.
func ValidCrimeType(t string) bool {
	switch t {
	case CrimeTheft, CrimeBurglary, CrimeAssault, CrimeMurder, CrimeFraud,
		CrimeCyber, CrimeDrugOffense, CrimeTrafficViolation, CrimePublicDisorder, CrimeOther:
		return true
	}
	return false
}

// ValidSeverity reports whether s is a known severity.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ValidCrimeStatus reports whether s is a known report status.
func ValidCrimeStatus(s string) bool {
	switch s {
	case CrimeReported, CrimeUnderInvestigation, CrimeResolved, CrimeClosed:
		return true
	}
	return false
}

// CrimeReport is a registered case.
type CrimeReport struct {
	ID          string
	CaseNumber  string // unique
	Title       string
	Description string
	District    string
	Address     string
	CrimeType   string
	Severity    string
	ReportedBy  string // user id of the reporting officer
	AssignedTo  string // user id, optional
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
}
