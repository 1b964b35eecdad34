package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/resultteam"
	"github.com/mecajames/NewMECAV2-sub004/internal/domain/team"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/id"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
)

const (
	defaultSyncBatchSize  = 500
	maxSyncWorkers        = 4
	defaultSyncMaxWorkers = 2
)

// ResultTeamLinkService reconciles competition results with the teams their
// competitors belong to. Links are only persisted for legacy teams;
// membership-derived teams have no entity to link against and are resolved
// at read time instead.
type ResultTeamLinkService struct {
	resolver   *TeamResolverService
	resultRepo result.Repository
	linkRepo   resultteam.Repository
	idGen      id.Generator
	logger     *logging.Logger

	// DefaultBatchSize and DefaultMaxWorkers apply when a SyncAllInput
	// leaves the corresponding field zero. Zero values fall back to the
	// package defaults.
	DefaultBatchSize  int
	DefaultMaxWorkers int

	// Invalidator drops cached standings after link writes. Team
	// standings read link rows, so every write path must clear. Nil
	// disables invalidation.
	Invalidator StandingsInvalidator
}

func (s *ResultTeamLinkService) invalidate(ctx context.Context) {
	if s.Invalidator != nil {
		s.Invalidator.Clear(ctx)
	}
}

func NewResultTeamLinkService(
	resolver *TeamResolverService,
	resultRepo result.Repository,
	linkRepo resultteam.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *ResultTeamLinkService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultTeamLinkService{
		resolver:   resolver,
		resultRepo: resultRepo,
		linkRepo:   linkRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

// AutoLink links one result to its competitor's legacy teams. Calling it
// again for the same result is a no-op: existing (result, team) pairs are
// skipped on insert.
func (s *ResultTeamLinkService) AutoLink(ctx context.Context, row result.CompetitionResult) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultTeamLinkService.AutoLink")
	defer span.End()

	if row.ID == "" {
		return 0, fmt.Errorf("%w: result id is required", ErrInvalidInput)
	}

	affs, err := s.resolver.ResolveForCompetitor(ctx, row.CompetitorID, row.MecaID)
	if err != nil {
		return 0, fmt.Errorf("resolve teams for result=%s: %w", row.ID, err)
	}

	links, err := s.buildLinks(row, affs)
	if err != nil {
		return 0, err
	}
	if len(links) == 0 {
		return 0, nil
	}

	if err := s.linkRepo.CreateBatch(ctx, links); err != nil {
		return 0, fmt.Errorf("create result team links result=%s: %w", row.ID, err)
	}
	s.invalidate(ctx)

	return len(links), nil
}

type SyncAllInput struct {
	SeasonID   string
	BatchSize  int
	MaxWorkers int
}

// SyncAllResult reports what actually happened: Processed counts every
// examined result, Linked counts link rows written, Errors counts rows or
// batches that failed. Failures never abort the run.
type SyncAllResult struct {
	Processed   int `json:"processed"`
	Linked      int `json:"linked"`
	Errors      int `json:"errors"`
	BatchCount  int `json:"batch_count"`
	WorkerCount int `json:"worker_count"`
}

// SyncAll backfills links for every result in scope. Lookup maps for both
// team universes are built up front so each row is an in-memory lookup, then
// batches run on a bounded worker pool.
func (s *ResultTeamLinkService) SyncAll(ctx context.Context, input SyncAllInput) (SyncAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultTeamLinkService.SyncAll")
	defer span.End()

	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = s.DefaultBatchSize
	}
	if batchSize <= 0 {
		batchSize = defaultSyncBatchSize
	}
	workers := input.MaxWorkers
	if workers <= 0 {
		workers = s.DefaultMaxWorkers
	}
	workerCount := normalizeSyncWorkerCount(workers)

	dir, err := s.resolver.BuildDirectory(ctx)
	if err != nil {
		return SyncAllResult{}, fmt.Errorf("build team directory: %w", err)
	}

	rows, err := s.resultRepo.List(ctx, result.Filter{SeasonID: input.SeasonID})
	if err != nil {
		return SyncAllResult{}, fmt.Errorf("list results for sync: %w", err)
	}

	batches := make([][]result.CompetitionResult, 0, len(rows)/batchSize+1)
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batches = append(batches, rows[start:end])
	}

	out := SyncAllResult{
		Processed:   len(rows),
		BatchCount:  len(batches),
		WorkerCount: workerCount,
	}
	if len(batches) == 0 {
		return out, nil
	}

	var linked atomic.Int64
	var errCount atomic.Int64

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, batch := range batches {
		batch := batch
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			n, failed := s.syncBatch(ctx, dir, batch)
			linked.Add(int64(n))
			errCount.Add(int64(failed))
		}); err != nil {
			wg.Done()
			return SyncAllResult{}, fmt.Errorf("submit batch to worker pool: %w", err)
		}
	}
	wg.Wait()

	out.Linked = int(linked.Load())
	out.Errors = int(errCount.Load())
	if out.Linked > 0 {
		s.invalidate(ctx)
	}

	s.logger.InfoContext(ctx, "result team sync finished",
		"processed", out.Processed,
		"linked", out.Linked,
		"errors", out.Errors,
		"batches", out.BatchCount,
	)

	return out, nil
}

// syncBatch returns links written and error count. A failed batch insert is
// retried link by link so one bad row doesn't discard the rest.
func (s *ResultTeamLinkService) syncBatch(ctx context.Context, dir *TeamDirectory, batch []result.CompetitionResult) (int, int) {
	links := make([]resultteam.Link, 0, len(batch))
	failed := 0

	for _, row := range batch {
		affs := dir.Lookup(row.CompetitorID, row.MecaID)
		rowLinks, err := s.buildLinks(row, affs)
		if err != nil {
			s.logger.WarnContext(ctx, "skip result during team sync", "result_id", row.ID, "error", err)
			failed++
			continue
		}
		links = append(links, rowLinks...)
	}

	if len(links) == 0 {
		return 0, failed
	}

	if err := s.linkRepo.CreateBatch(ctx, links); err != nil {
		s.logger.WarnContext(ctx, "batch link insert failed, retrying per link", "links", len(links), "error", err)
		written := 0
		for _, link := range links {
			if err := s.linkRepo.CreateBatch(ctx, []resultteam.Link{link}); err != nil {
				failed++
				continue
			}
			written++
		}
		return written, failed
	}

	return len(links), failed
}

func (s *ResultTeamLinkService) buildLinks(row result.CompetitionResult, affs []team.Affiliation) ([]resultteam.Link, error) {
	links := make([]resultteam.Link, 0, len(affs))
	for _, aff := range affs {
		if !aff.IsLegacy() {
			continue
		}
		linkID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate link id: %w", err)
		}
		links = append(links, resultteam.Link{
			ID:           linkID,
			ResultID:     row.ID,
			TeamID:       aff.TeamID,
			CompetitorID: row.CompetitorID,
		})
	}
	return links, nil
}

func normalizeSyncWorkerCount(value int) int {
	if value <= 0 {
		return defaultSyncMaxWorkers
	}
	if value > maxSyncWorkers {
		return maxSyncWorkers
	}
	return value
}
