package team

import "strings"

// Team is a legacy roster-based team entity.
type Team struct {
	ID       string
	Name     string
	IsActive bool
}

// Member is one roster row of a legacy team.
type Member struct {
	ID           string
	TeamID       string
	CompetitorID string
	MecaID       string
	Role         string
	Status       string
}

const MemberStatusActive = "active"

// AffiliationSource distinguishes the two team universes that feed standings.
type AffiliationSource string

const (
	// SourceLegacy is an explicit roster-based team entity.
	SourceLegacy AffiliationSource = "legacy"
	// SourceMembership is an ad-hoc team derived from an active membership
	// plan; it has no team entity of its own.
	SourceMembership AffiliationSource = "membership"
)

// Affiliation is one team a competitor competes for. For legacy teams TeamID
// is the team entity id; for membership-derived teams it is the membership
// row id, used only as a stable grouping key. Identity across the two
// universes is the normalized team name, a deliberate historical shim that
// downstream standings depend on.
type Affiliation struct {
	TeamID   string
	MemberID string
	TeamName string
	Source   AffiliationSource
}

// IsLegacy reports whether the affiliation points at a real team entity.
// Only legacy affiliations are persisted as result links.
func (a Affiliation) IsLegacy() bool {
	return a.Source == SourceLegacy
}

// NormalizedName is the case- and whitespace-insensitive identity used to
// merge legacy and membership-derived teams.
func (a Affiliation) NormalizedName() string {
	return NormalizeName(a.TeamName)
}

// NormalizeName lower-cases and trims a team name for identity comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
