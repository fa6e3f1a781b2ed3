package domain

import (
	"sort"
	"strings"
)

// Canonical role names. Input is case-insensitive and canonicalized to
// uppercase for storage and comparison.
const (
	RoleIG        = "IG"
	RoleDIG       = "DIG"
	RoleAIG       = "AIG"
	RoleSSP       = "SSP"
	RoleDSP       = "DSP"
	RoleInspector = "INSPECTOR"
	RoleConstable = "CONSTABLE"
)

// RolePolicy maps a role to its registration quota and dashboard route.
// Limit 0 means unlimited.
type RolePolicy struct {
	Name      string
	Limit     int
	Dashboard string
}

// RolePolicies is the immutable role configuration table. It is constructed
// once at startup and injected wherever registration or routing decisions
// are made; nothing mutates it at runtime.
type RolePolicies struct {
	byName map[string]RolePolicy
}

// DefaultRolePolicies returns the fixed rank structure: a single IG, capped
// command ranks, and unlimited field ranks.
func DefaultRolePolicies() *RolePolicies {
	policies := []RolePolicy{
		{Name: RoleIG, Limit: 1, Dashboard: "/ig-dashboard"},
		{Name: RoleDIG, Limit: 10, Dashboard: "/dig-dashboard"},
		{Name: RoleAIG, Limit: 15, Dashboard: "/aig-dashboard"},
		{Name: RoleSSP, Limit: 50, Dashboard: "/ssp-dashboard"},
		{Name: RoleDSP, Limit: 100, Dashboard: "/dsp-dashboard"},
		{Name: RoleInspector, Limit: 0, Dashboard: "/inspector-dashboard"},
		{Name: RoleConstable, Limit: 0, Dashboard: "/constable-dashboard"},
	}

	byName := make(map[string]RolePolicy, len(policies))
	for _, p := range policies {
		byName[p.Name] = p
	}
	return &RolePolicies{byName: byName}
}

// CanonicalRole normalizes user input ("Inspector", " ig ") to the stored
// uppercase form.
func CanonicalRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

// Lookup returns the policy for a role (input in any case) and whether the
// role is a member of the fixed set.
func (p *RolePolicies) Lookup(role string) (RolePolicy, bool) {
	policy, ok := p.byName[CanonicalRole(role)]
	return policy, ok
}

// Names returns the canonical role names in sorted order.
func (p *RolePolicies) Names() []string {
	names := make([]string, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
