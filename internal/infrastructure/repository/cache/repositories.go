// Package cache decorates read-mostly repositories with the in-process
// cache store. Standings aggregation hits seasons, events, teams, and
// memberships on every request; one cached load per TTL is enough.
package cache

import (
	"context"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/season"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
	basecache "github.com/mecajames/NewMECAV2-sub004/internal/platform/cache"
)

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id string) (season.Season, bool, error) {
	key := "season:id:" + id
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) GetCurrent(ctx context.Context) (season.Season, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:current", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetCurrent(ctx)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

type cachedSeason struct {
	value  season.Season
	exists bool
}

type EventRepository struct {
	next  event.Repository
	cache *basecache.Store
}

func NewEventRepository(next event.Repository, cache *basecache.Store) *EventRepository {
	return &EventRepository{next: next, cache: cache}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	v, err := r.cache.GetOrLoad(ctx, "event:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]event.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]event.Event)
	return append([]event.Event(nil), items...), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	key := "event:id:" + id
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedEvent{value: item, exists: exists}, nil
	})
	if err != nil {
		return event.Event{}, false, err
	}

	cached, _ := v.(cachedEvent)
	return cached.value, cached.exists, nil
}

func (r *EventRepository) ListByFinalsGroup(ctx context.Context, groupID string) ([]event.Event, error) {
	key := "event:finals-group:" + groupID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByFinalsGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return append([]event.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]event.Event)
	return append([]event.Event(nil), items...), nil
}

type cachedEvent struct {
	value  event.Event
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListActiveTeams(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:active", func(ctx context.Context) (any, error) {
		items, err := r.next.ListActiveTeams(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) ListActiveTeamsByCompetitor(ctx context.Context, competitorID string) ([]team.Team, error) {
	key := "team:competitor:" + competitorID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListActiveTeamsByCompetitor(ctx, competitorID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) ListActiveMembers(ctx context.Context) ([]team.Member, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:members", func(ctx context.Context) (any, error) {
		items, err := r.next.ListActiveMembers(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Member)
	return append([]team.Member(nil), items...), nil
}

type MembershipRepository struct {
	next  membership.Repository
	cache *basecache.Store
}

func NewMembershipRepository(next membership.Repository, cache *basecache.Store) *MembershipRepository {
	return &MembershipRepository{next: next, cache: cache}
}

func (r *MembershipRepository) GetActiveTeamLikeByMecaID(ctx context.Context, mecaID string) (membership.Membership, bool, error) {
	key := "membership:team-like:" + mecaID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetActiveTeamLikeByMecaID(ctx, mecaID)
		if err != nil {
			return nil, err
		}
		return cachedMembership{value: item, exists: exists}, nil
	})
	if err != nil {
		return membership.Membership{}, false, err
	}

	cached, _ := v.(cachedMembership)
	return cached.value, cached.exists, nil
}

func (r *MembershipRepository) ListActiveTeamLike(ctx context.Context) ([]membership.Membership, error) {
	v, err := r.cache.GetOrLoad(ctx, "membership:team-like:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListActiveTeamLike(ctx)
		if err != nil {
			return nil, err
		}
		return append([]membership.Membership(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]membership.Membership)
	return append([]membership.Membership(nil), items...), nil
}

func (r *MembershipRepository) ListActiveMecaIDs(ctx context.Context) ([]string, error) {
	v, err := r.cache.GetOrLoad(ctx, "membership:active-meca-ids", func(ctx context.Context) (any, error) {
		ids, err := r.next.ListActiveMecaIDs(ctx)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), ids...), nil
	})
	if err != nil {
		return nil, err
	}

	ids, _ := v.([]string)
	return append([]string(nil), ids...), nil
}

type cachedMembership struct {
	value  membership.Membership
	exists bool
}
