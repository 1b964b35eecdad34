package result

import (
	"strings"
	"time"
)

// NonMemberMecaID marks a guest competitor without a MECA membership.
// Historical imports also used "0" for the same purpose.
const (
	NonMemberMecaID     = "999999"
	LegacyNonMemberMeca = "0"
)

// CompetitionResult is one competitor's scored entry in one class at one event.
type CompetitionResult struct {
	ID                 string
	EventID            string
	SeasonID           string
	CompetitorID       string // empty for unregistered/guest competitors
	CompetitorName     string
	MecaID             string // NonMemberMecaID sentinel for guests
	ClassID            string
	ClassName          string
	Format             string
	Score              float64
	Placement          int // 1-based within (event, class); 0 until computed
	PointsEarned       int
	CreatedBy          string
	UpdatedBy          string
	ModificationReason string
	RevisionCount      int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsMemberID reports whether a MECA ID refers to a real member rather than
// the guest sentinel.
func IsMemberID(mecaID string) bool {
	mecaID = strings.TrimSpace(mecaID)
	return mecaID != "" && mecaID != NonMemberMecaID && mecaID != LegacyNonMemberMeca
}

// IsGuest reports whether the row belongs to a guest competitor.
func (r CompetitionResult) IsGuest() bool {
	return !IsMemberID(r.MecaID)
}

// CompetitorKey identifies the same competitor across rows: the MECA ID for
// members, the display name for guests.
func (r CompetitionResult) CompetitorKey() string {
	if r.IsGuest() {
		return "guest:" + r.CompetitorName
	}
	return "meca:" + strings.TrimSpace(r.MecaID)
}
