package usecase

import (
	"context"
	"strconv"

	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/cache"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
)

// StandingsProvider is the read surface the cache wraps.
type StandingsProvider interface {
	SeasonLeaderboard(ctx context.Context, query LeaderboardQuery) (Leaderboard, error)
	LeaderboardByFormat(ctx context.Context, seasonID, format string, limit int) (Leaderboard, error)
	LeaderboardByClass(ctx context.Context, seasonID, className string, limit int) (Leaderboard, error)
	TeamStandings(ctx context.Context, seasonID string, limit int) ([]TeamStanding, error)
	FormatSummaries(ctx context.Context, seasonID string) ([]FormatSummary, error)
	CompetitorStats(ctx context.Context, seasonID, mecaID string) (*CompetitorStats, error)
	ClassesWithResults(ctx context.Context, seasonID, format string) ([]ClassSummary, error)
	FinalsGroupResults(ctx context.Context, groupID string) ([]result.CompetitionResult, error)
}

// CachedStandingsService is a read-through cache over the aggregator. Every
// cached value is immutable once stored and rebuildable from the database,
// so a cache fault just means one recomputation. Concurrent misses on the
// same key collapse to a single load.
type CachedStandingsService struct {
	next   StandingsProvider
	store  *cache.Store
	logger *logging.Logger
}

func NewCachedStandingsService(next StandingsProvider, store *cache.Store, logger *logging.Logger) *CachedStandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedStandingsService{
		next:   next,
		store:  store,
		logger: logger,
	}
}

func (s *CachedStandingsService) SeasonLeaderboard(ctx context.Context, query LeaderboardQuery) (Leaderboard, error) {
	key := standingsKey("standings:leaderboard", query.SeasonID, strconv.Itoa(query.Limit), strconv.Itoa(query.Offset))
	return getOrLoadValue(ctx, s.store, key, func(ctx context.Context) (Leaderboard, error) {
		return s.next.SeasonLeaderboard(ctx, query)
	})
}

func (s *CachedStandingsService) LeaderboardByFormat(ctx context.Context, seasonID, format string, limit int) (Leaderboard, error) {
	key := standingsKey("standings:format", seasonID, format, strconv.Itoa(limit))
	return getOrLoadValue(ctx, s.store, key, func(ctx context.Context) (Leaderboard, error) {
		return s.next.LeaderboardByFormat(ctx, seasonID, format, limit)
	})
}

func (s *CachedStandingsService) LeaderboardByClass(ctx context.Context, seasonID, className string, limit int) (Leaderboard, error) {
	key := standingsKey("standings:class", seasonID, className, strconv.Itoa(limit))
	return getOrLoadValue(ctx, s.store, key, func(ctx context.Context) (Leaderboard, error) {
		return s.next.LeaderboardByClass(ctx, seasonID, className, limit)
	})
}

func (s *CachedStandingsService) TeamStandings(ctx context.Context, seasonID string, limit int) ([]TeamStanding, error) {
	key := standingsKey("standings:teams", seasonID, strconv.Itoa(limit))
	return getOrLoadSlice(ctx, s.store, key, func(ctx context.Context) ([]TeamStanding, error) {
		return s.next.TeamStandings(ctx, seasonID, limit)
	})
}

func (s *CachedStandingsService) FormatSummaries(ctx context.Context, seasonID string) ([]FormatSummary, error) {
	key := standingsKey("standings:format-summaries", seasonID)
	return getOrLoadSlice(ctx, s.store, key, func(ctx context.Context) ([]FormatSummary, error) {
		return s.next.FormatSummaries(ctx, seasonID)
	})
}

func (s *CachedStandingsService) CompetitorStats(ctx context.Context, seasonID, mecaID string) (*CompetitorStats, error) {
	key := standingsKey("standings:competitor", seasonID, mecaID)
	return getOrLoadValue(ctx, s.store, key, func(ctx context.Context) (*CompetitorStats, error) {
		return s.next.CompetitorStats(ctx, seasonID, mecaID)
	})
}

func (s *CachedStandingsService) ClassesWithResults(ctx context.Context, seasonID, format string) ([]ClassSummary, error) {
	key := standingsKey("standings:classes", seasonID, format)
	return getOrLoadSlice(ctx, s.store, key, func(ctx context.Context) ([]ClassSummary, error) {
		return s.next.ClassesWithResults(ctx, seasonID, format)
	})
}

func (s *CachedStandingsService) FinalsGroupResults(ctx context.Context, groupID string) ([]result.CompetitionResult, error) {
	key := standingsKey("standings:finals-group", groupID)
	return getOrLoadSlice(ctx, s.store, key, func(ctx context.Context) ([]result.CompetitionResult, error) {
		return s.next.FinalsGroupResults(ctx, groupID)
	})
}

// Clear drops every cached standings view. Called after any result write.
func (s *CachedStandingsService) Clear(ctx context.Context) {
	s.store.Clear(ctx)
}

// Warm precomputes the hot views for the current season so the first reader
// after a clear doesn't pay for aggregation. Partial failure is logged and
// tolerated; the next read recomputes whatever is missing.
func (s *CachedStandingsService) Warm(ctx context.Context) error {
	warmers := pool.New().WithErrors().WithContext(ctx)

	warmers.Go(func(ctx context.Context) error {
		_, err := s.SeasonLeaderboard(ctx, LeaderboardQuery{})
		return err
	})
	warmers.Go(func(ctx context.Context) error {
		_, err := s.TeamStandings(ctx, "", 0)
		return err
	})
	warmers.Go(func(ctx context.Context) error {
		_, err := s.FormatSummaries(ctx, "")
		return err
	})
	warmers.Go(func(ctx context.Context) error {
		_, err := s.ClassesWithResults(ctx, "", "")
		return err
	})
	for _, format := range LeaderboardFormats {
		format := format
		warmers.Go(func(ctx context.Context) error {
			_, err := s.LeaderboardByFormat(ctx, "", format, 0)
			return err
		})
	}

	if err := warmers.Wait(); err != nil {
		s.logger.WarnContext(ctx, "standings cache warm incomplete", "error", err)
		return err
	}

	s.logger.InfoContext(ctx, "standings cache warmed", "entries", s.store.Len())
	return nil
}

// standingsKey joins key parts with ':' using a pooled buffer; standings
// keys are built on every request.
func standingsKey(prefix string, parts ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(prefix)
	for _, part := range parts {
		_ = buf.WriteByte(':')
		_, _ = buf.WriteString(part)
	}
	return buf.String()
}

func getOrLoadValue[T any](ctx context.Context, store *cache.Store, key string, load func(context.Context) (T, error)) (T, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}

func getOrLoadSlice[T any](ctx context.Context, store *cache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	items, _ := v.([]T)
	return append([]T(nil), items...), nil
}
