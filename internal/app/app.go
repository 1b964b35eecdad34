package app

import (
	"context"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/mecajames/NewMECAV2-sub004/internal/config"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/event"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/membership"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/resultteam"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/season"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
	cachedrepo "github.com/mecajames/NewMECAV2-sub004/internal/infrastructure/repository/cache"
	"github.com/mecajames/NewMECAV2-sub004/internal/infrastructure/repository/memory"
	"github.com/mecajames/NewMECAV2-sub004/internal/infrastructure/repository/postgres"
	"github.com/mecajames/NewMECAV2-sub004/internal/interfaces/httpapi"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/cache"
	idgen "github.com/mecajames/NewMECAV2-sub004/internal/platform/id"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
	"github.com/mecajames/NewMECAV2-sub004/internal/usecase"
)

// Application bundles the HTTP server with the pieces the process
// lifecycle needs to reach after startup.
type Application struct {
	Server    *http.Server
	Standings *usecase.CachedStandingsService

	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	seasons     season.Repository
	events      event.Repository
	teams       team.Repository
	memberships membership.Repository
	results     result.Repository
	links       resultteam.Repository
}

// Build wires repositories, services, and the router. With DB_URL set the
// repositories run on Postgres; without it the service runs fully in memory
// on seed data, which is how local development and tests operate.
func Build(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var db *sqlx.DB
	var repos repositories
	if cfg.DBURL != "" {
		opened, err := openDB(cfg)
		if err != nil {
			return nil, crerr.Wrap(err, "open database")
		}
		db = opened
		repos = repositories{
			seasons:     postgres.NewSeasonRepository(db),
			events:      postgres.NewEventRepository(db),
			teams:       postgres.NewTeamRepository(db),
			memberships: postgres.NewMembershipRepository(db),
			results:     postgres.NewResultRepository(db),
			links:       postgres.NewResultTeamRepository(db),
		}
		logger.Info("repositories wired", "backend", "postgres", "db", dbNameFromURL(cfg.DBURL))
	} else {
		repos = repositories{
			seasons:     memory.NewSeasonRepository(memory.SeedSeasons()),
			events:      memory.NewEventRepository(memory.SeedEvents()),
			teams:       memory.NewTeamRepository(memory.SeedTeams(), memory.SeedTeamMembers()),
			memberships: memory.NewMembershipRepository(memory.SeedMemberships()),
			results:     memory.NewResultRepository(memory.SeedResults()),
			links:       memory.NewResultTeamRepository(nil),
		}
		logger.Info("repositories wired", "backend", "memory")
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.seasons = cachedrepo.NewSeasonRepository(repos.seasons, store)
		repos.events = cachedrepo.NewEventRepository(repos.events, store)
		repos.teams = cachedrepo.NewTeamRepository(repos.teams, store)
		repos.memberships = cachedrepo.NewMembershipRepository(repos.memberships, store)
	}

	ids := idgen.NewRandomGenerator()
	resolver := usecase.NewTeamResolverService(repos.teams, repos.memberships)
	linker := usecase.NewResultTeamLinkService(resolver, repos.results, repos.links, ids, logger)
	linker.DefaultBatchSize = cfg.SyncBatchSize
	linker.DefaultMaxWorkers = cfg.SyncMaxWorkers
	standings := usecase.NewStandingsService(repos.results, repos.events, repos.seasons, repos.teams, repos.memberships, repos.links, logger)
	cachedStandings := usecase.NewCachedStandingsService(standings, cache.NewStore(cfg.CacheTTL), logger)
	linker.Invalidator = cachedStandings
	results := usecase.NewResultService(repos.results, repos.events, repos.memberships, repos.links, linker, cachedStandings, ids, logger)
	qualification := usecase.NewQualificationService(repos.results, repos.events, repos.seasons, cfg.QualifyingPoints)

	handler := httpapi.NewHandler(cachedStandings, results, qualification, linker, cachedStandings, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Application{
		Server:    server,
		Standings: cachedStandings,
		db:        db,
		logger:    logger,
	}, nil
}

// RunCacheWarmer rebuilds the hot standings views on a fixed interval
// until the context is cancelled. A zero interval disables the loop.
func (a *Application) RunCacheWarmer(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	if err := a.Standings.Warm(ctx); err != nil {
		a.logger.WarnContext(ctx, "initial cache warm failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.Standings.Warm(ctx); err != nil {
				a.logger.WarnContext(ctx, "cache warm failed", "error", err)
			}
		}
	}
}

func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
