package membership

import "strings"

// Category groups membership plans. Retail, manufacturer, and team plans all
// carry an implicit team.
type Category string

const (
	CategoryRetail       Category = "retail"
	CategoryManufacturer Category = "manufacturer"
	CategoryTeam         Category = "team"
	CategoryCompetitor   Category = "competitor"
)

const StatusActive = "active"

// Membership is one membership plan row, joined with its plan config and the
// holder's profile fields needed for team naming.
type Membership struct {
	ID           string
	UserID       string
	MecaID       string
	Status       string
	PlanName     string
	Category     Category
	TeamName     string
	BusinessName string
	HasTeamAddon bool
	FirstName    string
	LastName     string
	FullName     string
}

// IsTeamLike reports whether the membership carries an implicit team: a
// retail/manufacturer/team category, a plan name containing "Team", or an
// explicit team add-on.
func (m Membership) IsTeamLike() bool {
	switch m.Category {
	case CategoryRetail, CategoryManufacturer, CategoryTeam:
		return true
	}
	if strings.Contains(m.PlanName, "Team") {
		return true
	}
	return m.HasTeamAddon
}

// HolderName returns the member's display name, preferring first+last.
func (m Membership) HolderName() string {
	first := strings.TrimSpace(m.FirstName)
	last := strings.TrimSpace(m.LastName)
	if first != "" && last != "" {
		return first + " " + last
	}
	if full := strings.TrimSpace(m.FullName); full != "" {
		return full
	}
	return strings.TrimSpace(first + " " + last)
}
