// Package finals collapses multi-day finals results into one ranking per
// class. State and world finals span several calendar days; a competitor may
// score in the same class on each day, but only their best qualifying score
// counts in the final ranking.
package finals

import (
	"sort"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/points"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
)

// Consolidate reduces every row of one finals group to at most one row per
// (competitor, class), keeping the highest score. Ties keep the
// earliest-seen row in day order, so nothing is dropped silently. Surviving
// rows are re-ranked per class by score descending with contiguous 1-based
// placements, and points are recomputed from the group's shared multiplier.
//
// dayByEvent maps event id to its day number within the group. activeMember
// reports whether a MECA ID currently holds an active membership; guests are
// never active.
func Consolidate(
	rows []result.CompetitionResult,
	dayByEvent map[string]int,
	multiplier float64,
	activeMember func(mecaID string) bool,
) []result.CompetitionResult {
	if len(rows) == 0 {
		return nil
	}

	ordered := make([]result.CompetitionResult, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return dayByEvent[ordered[i].EventID] < dayByEvent[ordered[j].EventID]
	})

	type groupKey struct {
		competitor string
		class      string
	}
	best := make(map[groupKey]result.CompetitionResult, len(ordered))
	order := make([]groupKey, 0, len(ordered))

	for _, row := range ordered {
		key := groupKey{competitor: row.CompetitorKey(), class: classKey(row)}
		current, seen := best[key]
		if !seen {
			best[key] = row
			order = append(order, key)
			continue
		}
		// Strictly better scores win; equal scores keep the earlier day.
		if row.Score > current.Score {
			best[key] = row
		}
	}

	byClass := make(map[string][]result.CompetitionResult)
	classOrder := make([]string, 0)
	for _, key := range order {
		row := best[key]
		if _, seen := byClass[key.class]; !seen {
			classOrder = append(classOrder, key.class)
		}
		byClass[key.class] = append(byClass[key.class], row)
	}

	out := make([]result.CompetitionResult, 0, len(order))
	for _, class := range classOrder {
		classRows := byClass[class]
		sort.SliceStable(classRows, func(i, j int) bool {
			return classRows[i].Score > classRows[j].Score
		})
		for i := range classRows {
			classRows[i].Placement = i + 1
			active := !classRows[i].IsGuest() && activeMember != nil && activeMember(classRows[i].MecaID)
			classRows[i].PointsEarned = points.Award(classRows[i].Placement, multiplier, active)
		}
		out = append(out, classRows...)
	}

	return out
}

func classKey(row result.CompetitionResult) string {
	if row.ClassID != "" {
		return row.ClassID
	}
	return row.ClassName
}
