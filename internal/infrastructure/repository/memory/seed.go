package memory

import (
	"time"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/season"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
)

const (
	SeasonID2026 = "season-2026"

	EventIDSpringShow   = "ev-spring-show-2026"
	EventIDSummerSlam   = "ev-summer-slam-2026"
	EventIDWorldsDay1   = "ev-world-finals-2026-d1"
	EventIDWorldsDay2   = "ev-world-finals-2026-d2"
	FinalsGroupIDWorlds = "world-finals-2026"
)

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:        SeasonID2026,
			Name:      "2026 Season",
			IsCurrent: true,
			StartsAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndsAt:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedEvents() []event.Event {
	return []event.Event{
		{
			ID:               EventIDSpringShow,
			SeasonID:         SeasonID2026,
			Name:             "Spring Sound Showdown",
			Date:             time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
			Kind:             event.KindNormal,
			PointsMultiplier: 1,
		},
		{
			ID:               EventIDSummerSlam,
			SeasonID:         SeasonID2026,
			Name:             "Summer Slam 2X",
			Date:             time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC),
			Kind:             event.KindNormal,
			PointsMultiplier: 2,
		},
		{
			ID:               EventIDWorldsDay1,
			SeasonID:         SeasonID2026,
			Name:             "World Finals Day 1",
			Date:             time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
			Kind:             event.KindWorldFinals,
			PointsMultiplier: 4,
			FinalsGroupID:    FinalsGroupIDWorlds,
			FinalsDay:        1,
		},
		{
			ID:               EventIDWorldsDay2,
			SeasonID:         SeasonID2026,
			Name:             "World Finals Day 2",
			Date:             time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
			Kind:             event.KindWorldFinals,
			PointsMultiplier: 4,
			FinalsGroupID:    FinalsGroupIDWorlds,
			FinalsDay:        2,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-bass-heads", Name: "Bass Heads", IsActive: true},
		{ID: "team-db-drag", Name: "Team dB Drag", IsActive: true},
		{ID: "team-retired", Name: "Retired Crew", IsActive: false},
	}
}

func SeedTeamMembers() []team.Member {
	return []team.Member{
		{ID: "tm-01", TeamID: "team-bass-heads", CompetitorID: "comp-01", MecaID: "100001", Role: "captain", Status: team.MemberStatusActive},
		{ID: "tm-02", TeamID: "team-bass-heads", CompetitorID: "comp-02", MecaID: "100002", Role: "member", Status: team.MemberStatusActive},
		{ID: "tm-03", TeamID: "team-db-drag", CompetitorID: "comp-03", MecaID: "100003", Role: "captain", Status: team.MemberStatusActive},
		{ID: "tm-04", TeamID: "team-retired", CompetitorID: "comp-04", MecaID: "100004", Role: "member", Status: team.MemberStatusActive},
	}
}

func SeedMemberships() []membership.Membership {
	return []membership.Membership{
		{
			ID:        "mem-01",
			UserID:    "user-01",
			MecaID:    "100001",
			Status:    membership.StatusActive,
			PlanName:  "Competitor Annual",
			Category:  membership.CategoryCompetitor,
			FirstName: "Dana",
			LastName:  "Brooks",
		},
		{
			ID:        "mem-02",
			UserID:    "user-02",
			MecaID:    "100002",
			Status:    membership.StatusActive,
			PlanName:  "Competitor Annual",
			Category:  membership.CategoryCompetitor,
			FirstName: "Luis",
			LastName:  "Ortega",
		},
		{
			ID:        "mem-03",
			UserID:    "user-03",
			MecaID:    "100003",
			Status:    membership.StatusActive,
			PlanName:  "Team Plan",
			Category:  membership.CategoryTeam,
			TeamName:  "Team dB Drag",
			FirstName: "Priya",
			LastName:  "Nair",
		},
		{
			ID:           "mem-04",
			UserID:       "user-04",
			MecaID:       "100005",
			Status:       membership.StatusActive,
			PlanName:     "Retail Shop Plan",
			Category:     membership.CategoryRetail,
			BusinessName: "Loud & Clear Audio",
			FirstName:    "Sam",
			LastName:     "Whitfield",
		},
		{
			ID:        "mem-05",
			UserID:    "user-05",
			MecaID:    "100006",
			Status:    membership.StatusActive,
			PlanName:  "Competitor Annual",
			Category:  membership.CategoryCompetitor,
			FirstName: "Erin",
			LastName:  "Cole",
		},
	}
}

func SeedResults() []result.CompetitionResult {
	created := time.Date(2026, 3, 21, 18, 0, 0, 0, time.UTC)
	row := func(id, eventID, competitorID, name, mecaID, classID, className, format string, score float64, placement, points int) result.CompetitionResult {
		return result.CompetitionResult{
			ID:             id,
			EventID:        eventID,
			SeasonID:       SeasonID2026,
			CompetitorID:   competitorID,
			CompetitorName: name,
			MecaID:         mecaID,
			ClassID:        classID,
			ClassName:      className,
			Format:         format,
			Score:          score,
			Placement:      placement,
			PointsEarned:   points,
			CreatedBy:      "seed",
			RevisionCount:  0,
			CreatedAt:      created,
			UpdatedAt:      created,
		}
	}

	return []result.CompetitionResult{
		row("res-001", EventIDSpringShow, "comp-01", "Dana Brooks", "100001", "cls-spl-1", "Street 1", "SPL", 148.2, 1, 5),
		row("res-002", EventIDSpringShow, "comp-02", "Luis Ortega", "100002", "cls-spl-1", "Street 1", "SPL", 146.9, 2, 4),
		row("res-003", EventIDSpringShow, "", "Walk-In Guest", result.NonMemberMecaID, "cls-spl-1", "Street 1", "SPL", 145.0, 3, 0),
		row("res-004", EventIDSpringShow, "comp-03", "Priya Nair", "100003", "cls-sql-1", "Stock SQ", "SQL", 87.5, 1, 5),
		row("res-005", EventIDSummerSlam, "comp-01", "Dana Brooks", "100001", "cls-spl-1", "Street 1", "SPL", 149.0, 1, 10),
		row("res-006", EventIDSummerSlam, "comp-03", "Priya Nair", "100003", "cls-spl-1", "Street 1", "SPL", 147.7, 2, 8),
		row("res-007", EventIDWorldsDay1, "comp-01", "Dana Brooks", "100001", "cls-spl-1", "Street 1", "SPL", 150.1, 1, 20),
		row("res-008", EventIDWorldsDay1, "comp-03", "Priya Nair", "100003", "cls-spl-1", "Street 1", "SPL", 149.4, 2, 19),
		row("res-009", EventIDWorldsDay2, "comp-01", "Dana Brooks", "100001", "cls-spl-1", "Street 1", "SPL", 149.8, 2, 19),
		row("res-010", EventIDWorldsDay2, "comp-03", "Priya Nair", "100003", "cls-spl-1", "Street 1", "SPL", 150.6, 1, 20),
		row("res-011", EventIDWorldsDay1, "comp-05", "Erin Cole", "100006", "cls-mk-1", "Masters Kilo", "MK", 152.3, 1, 20),
	}
}
