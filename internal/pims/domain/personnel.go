package domain

import "time"

// Personnel ranks, lowest to highest.
const (
	RankConstable     = "constable"
	RankHeadConstable = "head_constable"
	RankASI           = "asi"
	RankSI            = "si"
	RankInspector     = "inspector"
	RankDSP           = "dsp"
	RankSSP           = "ssp"
	RankDIG           = "dig"
	RankIG            = "ig"
	RankAddlIG        = "addl_ig"
)

// ValidRank reports whether rank is a known personnel rank.
func ValidRank(rank string) bool {
	switch rank {
	case RankConstable, RankHeadConstable, RankASI, RankSI, RankInspector,
		RankDSP, RankSSP, RankDIG, RankIG, RankAddlIG:
		return true
	}
	return false
}

// Personnel is a service record for an officer, distinct from the User
// account that may or may not exist for them.
type Personnel struct {
	ID                string
	FullName          string
	Rank              string
	BadgeNumber       string // unique
	District          string
	Station           string
	DateOfJoining     time.Time
	CurrentAssignment string
	ContactNumber     string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
