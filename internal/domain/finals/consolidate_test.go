package finals

import (
	"testing"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
)

func allActive(string) bool { return true }

func TestConsolidate_KeepsBestScoreAcrossDays(t *testing.T) {
	t.Parallel()

	rows := []result.CompetitionResult{
		{ID: "r1", EventID: "day1", MecaID: "1001", CompetitorName: "Ana", ClassID: "c1", Score: 90.1},
		{ID: "r2", EventID: "day2", MecaID: "1001", CompetitorName: "Ana", ClassID: "c1", Score: 91.3},
		{ID: "r3", EventID: "day1", MecaID: "1002", CompetitorName: "Bo", ClassID: "c1", Score: 92.0},
	}
	days := map[string]int{"day1": 1, "day2": 2}

	got := Consolidate(rows, days, 1, allActive)
	if len(got) != 2 {
		t.Fatalf("expected 2 consolidated rows, got %d", len(got))
	}

	byMeca := make(map[string]result.CompetitionResult, len(got))
	for _, row := range got {
		byMeca[row.MecaID] = row
	}

	ana := byMeca["1001"]
	if ana.Score != 91.3 {
		t.Errorf("kept score %v for 1001, want 91.3", ana.Score)
	}
	if ana.Placement != 2 {
		t.Errorf("placement for 1001 = %d, want 2", ana.Placement)
	}
	if bo := byMeca["1002"]; bo.Placement != 1 || bo.PointsEarned != 5 {
		t.Errorf("unexpected leader row: %+v", bo)
	}
	if ana.PointsEarned != 4 {
		t.Errorf("points for 1001 = %d, want 4", ana.PointsEarned)
	}
}

func TestConsolidate_EqualScoresKeepEarliestDay(t *testing.T) {
	t.Parallel()

	rows := []result.CompetitionResult{
		{ID: "later", EventID: "day2", MecaID: "1001", CompetitorName: "Ana", ClassID: "c1", Score: 88.8},
		{ID: "earlier", EventID: "day1", MecaID: "1001", CompetitorName: "Ana", ClassID: "c1", Score: 88.8},
	}
	days := map[string]int{"day1": 1, "day2": 2}

	got := Consolidate(rows, days, 1, allActive)
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].ID != "earlier" {
		t.Errorf("kept row %q, want the earlier day's row", got[0].ID)
	}
}

func TestConsolidate_GuestsGroupedByNameAndEarnNothing(t *testing.T) {
	t.Parallel()

	rows := []result.CompetitionResult{
		{ID: "g1", EventID: "day1", MecaID: result.NonMemberMecaID, CompetitorName: "Guest One", ClassID: "c1", Score: 95},
		{ID: "g2", EventID: "day2", MecaID: result.NonMemberMecaID, CompetitorName: "Guest One", ClassID: "c1", Score: 97},
		{ID: "g3", EventID: "day1", MecaID: result.NonMemberMecaID, CompetitorName: "Guest Two", ClassID: "c1", Score: 80},
	}
	days := map[string]int{"day1": 1, "day2": 2}

	got := Consolidate(rows, days, 4, allActive)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows (Guest One's two days collapse to one), got %d", len(got))
	}

	for _, row := range got {
		if row.PointsEarned != 0 {
			t.Errorf("guest row %q earned %d points, want 0", row.ID, row.PointsEarned)
		}
	}
	if got[0].ID != "g2" || got[0].Placement != 1 {
		t.Errorf("unexpected first row: %+v", got[0])
	}
}

func TestConsolidate_RanksEachClassIndependently(t *testing.T) {
	t.Parallel()

	rows := []result.CompetitionResult{
		{ID: "a", EventID: "d1", MecaID: "1", CompetitorName: "A", ClassID: "spl-1", Score: 140},
		{ID: "b", EventID: "d1", MecaID: "2", CompetitorName: "B", ClassID: "spl-2", Score: 150},
		{ID: "c", EventID: "d2", MecaID: "3", CompetitorName: "C", ClassID: "spl-1", Score: 141},
	}
	days := map[string]int{"d1": 1, "d2": 2}

	got := Consolidate(rows, days, 2, allActive)
	placements := make(map[string]int, len(got))
	pointsByID := make(map[string]int, len(got))
	for _, row := range got {
		placements[row.ID] = row.Placement
		pointsByID[row.ID] = row.PointsEarned
	}

	if placements["b"] != 1 || placements["c"] != 1 || placements["a"] != 2 {
		t.Errorf("unexpected placements: %v", placements)
	}
	if pointsByID["c"] != 10 || pointsByID["a"] != 8 {
		t.Errorf("unexpected points at 2x: %v", pointsByID)
	}
}
