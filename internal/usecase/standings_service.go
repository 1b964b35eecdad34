package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/finals"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/resultteam"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/season"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
)

// LeaderboardFormats is the fixed set of judged formats, in display order.
var LeaderboardFormats = []string{"SPL", "SQL", "SSI", "MK"}

const (
	defaultLeaderboardLimit = 100
	defaultFormatLimit      = 50
	defaultClassLimit       = 50
	defaultTeamLimit        = 50
)

type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	MecaID         string  `json:"meca_id"`
	CompetitorName string  `json:"competitor_name"`
	TotalPoints    int     `json:"total_points"`
	EventCount     int     `json:"event_count"`
	ResultCount    int     `json:"result_count"`
	BestScore      float64 `json:"best_score"`
}

type Leaderboard struct {
	SeasonID string             `json:"season_id"`
	Entries  []LeaderboardEntry `json:"entries"`
	Total    int                `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

type TeamStanding struct {
	Rank          int    `json:"rank"`
	TeamName      string `json:"team_name"`
	TotalPoints   int    `json:"total_points"`
	MemberCount   int    `json:"member_count"`
	EventCount    int    `json:"event_count"`
	HasTeamEntity bool   `json:"has_team_entity"`
}

type FormatSummary struct {
	Format          string `json:"format"`
	CompetitorCount int    `json:"competitor_count"`
	ResultCount     int    `json:"result_count"`
	ClassCount      int    `json:"class_count"`
	TotalPoints     int    `json:"total_points"`
}

type CompetitorStats struct {
	SeasonID       string         `json:"season_id"`
	MecaID         string         `json:"meca_id"`
	CompetitorName string         `json:"competitor_name"`
	TotalPoints    int            `json:"total_points"`
	EventCount     int            `json:"event_count"`
	ResultCount    int            `json:"result_count"`
	FirstPlaces    int            `json:"first_places"`
	Podiums        int            `json:"podiums"`
	BestScore      float64        `json:"best_score"`
	AverageScore   float64        `json:"average_score"`
	PointsByFormat map[string]int `json:"points_by_format"`
}

type ClassSummary struct {
	ClassName       string `json:"class_name"`
	Format          string `json:"format"`
	ResultCount     int    `json:"result_count"`
	CompetitorCount int    `json:"competitor_count"`
}

// StandingsService aggregates competition results into season, format,
// class, team, and competitor views. Multi-day finals results are
// consolidated to one row per competitor per class before any points are
// summed; all other rows use their stored points.
type StandingsService struct {
	resultRepo     result.Repository
	eventRepo      event.Repository
	seasonRepo     season.Repository
	teamRepo       team.Repository
	membershipRepo membership.Repository
	linkRepo       resultteam.Repository
	logger         *logging.Logger
}

func NewStandingsService(
	resultRepo result.Repository,
	eventRepo event.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	membershipRepo membership.Repository,
	linkRepo resultteam.Repository,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		resultRepo:     resultRepo,
		eventRepo:      eventRepo,
		seasonRepo:     seasonRepo,
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		linkRepo:       linkRepo,
		logger:         logger,
	}
}

type LeaderboardQuery struct {
	SeasonID string
	Limit    int
	Offset   int
}

func (s *StandingsService) SeasonLeaderboard(ctx context.Context, query LeaderboardQuery) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.SeasonLeaderboard")
	defer span.End()

	limit := query.Limit
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	seasonID, rows, err := s.effectiveSeasonResults(ctx, query.SeasonID)
	if err != nil {
		return Leaderboard{}, err
	}

	entries := rankEntries(aggregateCompetitors(rows))
	return paginateLeaderboard(seasonID, entries, limit, offset), nil
}

func (s *StandingsService) LeaderboardByFormat(ctx context.Context, seasonID, format string, limit int) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.LeaderboardByFormat")
	defer span.End()

	format = strings.ToUpper(strings.TrimSpace(format))
	if !isKnownFormat(format) {
		return Leaderboard{}, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, format)
	}
	if limit <= 0 {
		limit = defaultFormatLimit
	}

	seasonID, rows, err := s.effectiveSeasonResults(ctx, seasonID)
	if err != nil {
		return Leaderboard{}, err
	}

	filtered := rows[:0:0]
	for _, row := range rows {
		if strings.EqualFold(row.Format, format) {
			filtered = append(filtered, row)
		}
	}

	entries := rankEntries(aggregateCompetitors(filtered))
	return paginateLeaderboard(seasonID, entries, limit, 0), nil
}

func (s *StandingsService) LeaderboardByClass(ctx context.Context, seasonID, className string, limit int) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.LeaderboardByClass")
	defer span.End()

	className = strings.TrimSpace(className)
	if className == "" {
		return Leaderboard{}, fmt.Errorf("%w: class name is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultClassLimit
	}

	seasonID, rows, err := s.effectiveSeasonResults(ctx, seasonID)
	if err != nil {
		return Leaderboard{}, err
	}

	filtered := rows[:0:0]
	for _, row := range rows {
		if strings.EqualFold(row.ClassName, className) {
			filtered = append(filtered, row)
		}
	}

	entries := rankEntries(aggregateCompetitors(filtered))
	return paginateLeaderboard(seasonID, entries, limit, 0), nil
}

// TeamStandings merges both team universes by normalized team name: points
// flow in through persisted legacy links and through membership-derived
// teams resolved at read time.
func (s *StandingsService) TeamStandings(ctx context.Context, seasonID string, limit int) ([]TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.TeamStandings")
	defer span.End()

	if limit <= 0 {
		limit = defaultTeamLimit
	}

	_, rows, err := s.effectiveSeasonResults(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	links, err := s.linkRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list result team links: %w", err)
	}
	teamIDsByResult := make(map[string][]string, len(links))
	for _, link := range links {
		teamIDsByResult[link.ResultID] = append(teamIDsByResult[link.ResultID], link.TeamID)
	}

	teams, err := s.teamRepo.ListActiveTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active teams: %w", err)
	}
	teamNameByID := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNameByID[t.ID] = t.Name
	}

	memberships, err := s.membershipRepo.ListActiveTeamLike(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team memberships: %w", err)
	}
	membershipTeamByMeca := make(map[string]string, len(memberships))
	for _, m := range memberships {
		if result.IsMemberID(m.MecaID) {
			membershipTeamByMeca[m.MecaID] = MembershipTeamName(m)
		}
	}

	type teamAccumulator struct {
		displayName string
		legacy      bool
		points      int
		members     map[string]struct{}
		events      map[string]struct{}
	}
	accumulators := make(map[string]*teamAccumulator)

	record := func(name string, legacy bool, row result.CompetitionResult) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := team.NormalizeName(name)
		acc, ok := accumulators[key]
		if !ok {
			acc = &teamAccumulator{
				displayName: name,
				members:     make(map[string]struct{}),
				events:      make(map[string]struct{}),
			}
			accumulators[key] = acc
		}
		// Legacy entity names are authoritative for display.
		if legacy && !acc.legacy {
			acc.displayName = name
			acc.legacy = true
		}
		acc.points += row.PointsEarned
		acc.members[row.CompetitorKey()] = struct{}{}
		acc.events[row.EventID] = struct{}{}
	}

	for _, row := range rows {
		if row.IsGuest() {
			continue
		}
		seen := make(map[string]struct{}, 2)
		for _, teamID := range teamIDsByResult[row.ID] {
			name, ok := teamNameByID[teamID]
			if !ok {
				continue
			}
			key := team.NormalizeName(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			record(name, true, row)
		}
		if name, ok := membershipTeamByMeca[row.MecaID]; ok {
			if _, dup := seen[team.NormalizeName(name)]; !dup {
				record(name, false, row)
			}
		}
	}

	out := make([]TeamStanding, 0, len(accumulators))
	for _, acc := range accumulators {
		out = append(out, TeamStanding{
			TeamName:      acc.displayName,
			TotalPoints:   acc.points,
			MemberCount:   len(acc.members),
			EventCount:    len(acc.events),
			HasTeamEntity: acc.legacy,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return team.NormalizeName(out[i].TeamName) < team.NormalizeName(out[j].TeamName)
	})
	rank := 0
	lastPoints := -1
	for i := range out {
		if out[i].TotalPoints != lastPoints {
			rank++
			lastPoints = out[i].TotalPoints
		}
		out[i].Rank = rank
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *StandingsService) FormatSummaries(ctx context.Context, seasonID string) ([]FormatSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.FormatSummaries")
	defer span.End()

	_, rows, err := s.effectiveSeasonResults(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	type formatAccumulator struct {
		competitors map[string]struct{}
		classes     map[string]struct{}
		results     int
		points      int
	}
	byFormat := make(map[string]*formatAccumulator, len(LeaderboardFormats))
	for _, format := range LeaderboardFormats {
		byFormat[format] = &formatAccumulator{
			competitors: make(map[string]struct{}),
			classes:     make(map[string]struct{}),
		}
	}

	for _, row := range rows {
		acc, ok := byFormat[strings.ToUpper(strings.TrimSpace(row.Format))]
		if !ok {
			continue
		}
		acc.results++
		acc.points += row.PointsEarned
		acc.competitors[row.CompetitorKey()] = struct{}{}
		acc.classes[strings.ToLower(row.ClassName)] = struct{}{}
	}

	out := make([]FormatSummary, 0, len(LeaderboardFormats))
	for _, format := range LeaderboardFormats {
		acc := byFormat[format]
		out = append(out, FormatSummary{
			Format:          format,
			CompetitorCount: len(acc.competitors),
			ResultCount:     acc.results,
			ClassCount:      len(acc.classes),
			TotalPoints:     acc.points,
		})
	}

	return out, nil
}

// CompetitorStats returns nil without error when the competitor has no
// results in the season.
func (s *StandingsService) CompetitorStats(ctx context.Context, seasonID, mecaID string) (*CompetitorStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.CompetitorStats")
	defer span.End()

	mecaID = strings.TrimSpace(mecaID)
	if !result.IsMemberID(mecaID) {
		return nil, fmt.Errorf("%w: a member meca id is required", ErrInvalidInput)
	}

	resolvedSeasonID, rows, err := s.effectiveSeasonResults(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	stats := CompetitorStats{
		SeasonID:       resolvedSeasonID,
		MecaID:         mecaID,
		PointsByFormat: make(map[string]int, len(LeaderboardFormats)),
	}
	events := make(map[string]struct{})
	scoreSum := 0.0

	for _, row := range rows {
		if strings.TrimSpace(row.MecaID) != mecaID {
			continue
		}
		stats.ResultCount++
		stats.TotalPoints += row.PointsEarned
		stats.CompetitorName = row.CompetitorName
		stats.PointsByFormat[strings.ToUpper(strings.TrimSpace(row.Format))] += row.PointsEarned
		events[row.EventID] = struct{}{}
		scoreSum += row.Score
		if row.Score > stats.BestScore {
			stats.BestScore = row.Score
		}
		if row.Placement == 1 {
			stats.FirstPlaces++
		}
		if row.Placement >= 1 && row.Placement <= 3 {
			stats.Podiums++
		}
	}

	if stats.ResultCount == 0 {
		return nil, nil
	}

	stats.EventCount = len(events)
	stats.AverageScore = scoreSum / float64(stats.ResultCount)
	return &stats, nil
}

// ClassesWithResults lists the classes that have at least one result this
// season, optionally restricted to one judged format.
func (s *StandingsService) ClassesWithResults(ctx context.Context, seasonID, format string) ([]ClassSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ClassesWithResults")
	defer span.End()

	format = strings.ToUpper(strings.TrimSpace(format))
	if format != "" && !isKnownFormat(format) {
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, format)
	}

	_, rows, err := s.effectiveSeasonResults(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	type classAccumulator struct {
		name        string
		format      string
		results     int
		competitors map[string]struct{}
	}
	byClass := make(map[string]*classAccumulator)
	for _, row := range rows {
		if format != "" && !strings.EqualFold(row.Format, format) {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(row.ClassName))
		if key == "" {
			continue
		}
		acc, ok := byClass[key]
		if !ok {
			acc = &classAccumulator{
				name:        strings.TrimSpace(row.ClassName),
				format:      strings.ToUpper(strings.TrimSpace(row.Format)),
				competitors: make(map[string]struct{}),
			}
			byClass[key] = acc
		}
		acc.results++
		acc.competitors[row.CompetitorKey()] = struct{}{}
	}

	out := make([]ClassSummary, 0, len(byClass))
	for _, acc := range byClass {
		out = append(out, ClassSummary{
			ClassName:       acc.name,
			Format:          acc.format,
			ResultCount:     acc.results,
			CompetitorCount: len(acc.competitors),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Format != out[j].Format {
			return out[i].Format < out[j].Format
		}
		return out[i].ClassName < out[j].ClassName
	})

	return out, nil
}

// FinalsGroupResults returns the consolidated view of a multi-day finals
// group: one row per competitor per class, re-ranked within each class.
func (s *StandingsService) FinalsGroupResults(ctx context.Context, groupID string) ([]result.CompetitionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.FinalsGroupResults")
	defer span.End()

	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return nil, fmt.Errorf("%w: finals group id is required", ErrInvalidInput)
	}

	events, err := s.eventRepo.ListByFinalsGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list finals group events: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: finals group=%s", ErrNotFound, groupID)
	}

	dayByEvent := make(map[string]int, len(events))
	multiplier := events[0].Multiplier()
	var rows []result.CompetitionResult
	for _, e := range events {
		dayByEvent[e.ID] = e.FinalsDay
		eventRows, err := s.resultRepo.List(ctx, result.Filter{EventID: e.ID})
		if err != nil {
			return nil, fmt.Errorf("list results event=%s: %w", e.ID, err)
		}
		rows = append(rows, eventRows...)
	}

	activeMember, err := s.activeMemberFunc(ctx)
	if err != nil {
		return nil, err
	}

	consolidated := finals.Consolidate(rows, dayByEvent, multiplier, activeMember)
	sort.SliceStable(consolidated, func(i, j int) bool {
		if consolidated[i].ClassName != consolidated[j].ClassName {
			return consolidated[i].ClassName < consolidated[j].ClassName
		}
		return consolidated[i].Placement < consolidated[j].Placement
	})

	return consolidated, nil
}

// effectiveSeasonResults loads the season's results with multi-day finals
// groups already consolidated. An empty season id means the current season.
func (s *StandingsService) effectiveSeasonResults(ctx context.Context, seasonID string) (string, []result.CompetitionResult, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		current, exists, err := s.seasonRepo.GetCurrent(ctx)
		if err != nil {
			return "", nil, fmt.Errorf("get current season: %w", err)
		}
		if !exists {
			return "", nil, fmt.Errorf("%w: no current season", ErrNotFound)
		}
		seasonID = current.ID
	} else {
		_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
		if err != nil {
			return "", nil, fmt.Errorf("get season: %w", err)
		}
		if !exists {
			return "", nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
		}
	}

	rows, err := s.resultRepo.List(ctx, result.Filter{SeasonID: seasonID})
	if err != nil {
		return "", nil, fmt.Errorf("list season results: %w", err)
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("list events: %w", err)
	}
	eventByID := make(map[string]event.Event, len(events))
	for _, e := range events {
		eventByID[e.ID] = e
	}

	plain := make([]result.CompetitionResult, 0, len(rows))
	byGroup := make(map[string][]result.CompetitionResult)
	for _, row := range rows {
		e, ok := eventByID[row.EventID]
		if ok && e.IsMultiDayFinals() {
			byGroup[e.FinalsGroupID] = append(byGroup[e.FinalsGroupID], row)
			continue
		}
		plain = append(plain, row)
	}

	if len(byGroup) == 0 {
		return seasonID, plain, nil
	}

	activeMember, err := s.activeMemberFunc(ctx)
	if err != nil {
		return "", nil, err
	}

	groupIDs := make([]string, 0, len(byGroup))
	for groupID := range byGroup {
		groupIDs = append(groupIDs, groupID)
	}
	sort.Strings(groupIDs)

	for _, groupID := range groupIDs {
		groupRows := byGroup[groupID]
		dayByEvent := make(map[string]int)
		multiplier := 1.0
		for _, e := range events {
			if e.FinalsGroupID == groupID {
				dayByEvent[e.ID] = e.FinalsDay
				multiplier = e.Multiplier()
			}
		}
		plain = append(plain, finals.Consolidate(groupRows, dayByEvent, multiplier, activeMember)...)
	}

	return seasonID, plain, nil
}

func (s *StandingsService) activeMemberFunc(ctx context.Context) (func(string) bool, error) {
	activeIDs, err := s.membershipRepo.ListActiveMecaIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active meca ids: %w", err)
	}
	active := make(map[string]struct{}, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = struct{}{}
	}
	return func(mecaID string) bool {
		_, ok := active[strings.TrimSpace(mecaID)]
		return ok
	}, nil
}

func aggregateCompetitors(rows []result.CompetitionResult) []LeaderboardEntry {
	type competitorAccumulator struct {
		entry  LeaderboardEntry
		events map[string]struct{}
	}
	byMeca := make(map[string]*competitorAccumulator)

	for _, row := range rows {
		if row.IsGuest() {
			continue
		}
		mecaID := strings.TrimSpace(row.MecaID)
		acc, ok := byMeca[mecaID]
		if !ok {
			acc = &competitorAccumulator{
				entry:  LeaderboardEntry{MecaID: mecaID},
				events: make(map[string]struct{}),
			}
			byMeca[mecaID] = acc
		}
		acc.entry.CompetitorName = row.CompetitorName
		acc.entry.TotalPoints += row.PointsEarned
		acc.entry.ResultCount++
		if row.Score > acc.entry.BestScore {
			acc.entry.BestScore = row.Score
		}
		acc.events[row.EventID] = struct{}{}
	}

	out := make([]LeaderboardEntry, 0, len(byMeca))
	for _, acc := range byMeca {
		acc.entry.EventCount = len(acc.events)
		out = append(out, acc.entry)
	}
	return out
}

// rankEntries orders by total points, breaking ties by meca id then name,
// and assigns dense ranks so equal totals share a displayed rank.
func rankEntries(entries []LeaderboardEntry) []LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].MecaID != entries[j].MecaID {
			return entries[i].MecaID < entries[j].MecaID
		}
		return entries[i].CompetitorName < entries[j].CompetitorName
	})

	rank := 0
	lastPoints := -1
	for i := range entries {
		if entries[i].TotalPoints != lastPoints {
			rank++
			lastPoints = entries[i].TotalPoints
		}
		entries[i].Rank = rank
	}

	return entries
}

func paginateLeaderboard(seasonID string, entries []LeaderboardEntry, limit, offset int) Leaderboard {
	total := len(entries)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return Leaderboard{
		SeasonID: seasonID,
		Entries:  append([]LeaderboardEntry(nil), entries[offset:end]...),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
}

func isKnownFormat(format string) bool {
	for _, known := range LeaderboardFormats {
		if known == format {
			return true
		}
	}
	return false
}
