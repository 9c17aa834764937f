package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gridirondata/ncaafb-etl/internal/checkpoint"
	"github.com/gridirondata/ncaafb-etl/internal/domain/player"
	"github.com/gridirondata/ncaafb-etl/internal/domain/season"
	"github.com/gridirondata/ncaafb-etl/internal/domain/team"
	"github.com/gridirondata/ncaafb-etl/internal/etl/fetch"
	"github.com/gridirondata/ncaafb-etl/internal/etl/normalize"
	"github.com/gridirondata/ncaafb-etl/internal/etl/payload"
	idgen "github.com/gridirondata/ncaafb-etl/internal/platform/id"
	"github.com/gridirondata/ncaafb-etl/internal/platform/logging"
)

// Pipeline stages, in execution order. Each stage checkpoints its
// output before the next begins, so a run can resume from any stage
// using the checkpointed inputs.
const (
	StageEnsureSchema    = "ensure-schema"
	StageDiscoverTeams   = "discover-team-ids"
	StageDiscoverSeasons = "discover-seasons"
	StageLoadSeasons     = "load-seasons"
	StageFetchRosters    = "fetch-rosters"
	StageLoadRosters     = "load-rosters"
	StageFetchProfiles   = "fetch-player-profiles"
	StageLoadStatistics  = "load-player-statistics"
	StageFetchRankings   = "fetch-rankings"
	StageLoadRankings    = "load-rankings"
)

var stageOrder = []string{
	StageEnsureSchema,
	StageDiscoverTeams,
	StageDiscoverSeasons,
	StageLoadSeasons,
	StageFetchRosters,
	StageLoadRosters,
	StageFetchProfiles,
	StageLoadStatistics,
	StageFetchRankings,
	StageLoadRankings,
}

// Checkpoint artifact names shared across stages.
const (
	ckptTeamIDs        = "team_ids"
	ckptSeasonsDoc     = "seasons_doc"
	ckptRosterResults  = "roster_results"
	ckptPlayerIDs      = "player_ids"
	ckptProfileResults = "profile_results"
	ckptRankingsDoc    = "rankings_doc"
	ckptRankingsSeason = "rankings_season"
)

// ResourceClient is the provider API surface the pipeline consumes.
type ResourceClient interface {
	LeagueHierarchy(ctx context.Context) (payload.Document, error)
	Seasons(ctx context.Context) (payload.Document, error)
	TeamRoster(ctx context.Context, teamID string) (payload.Document, error)
	PlayerProfile(ctx context.Context, playerID string) (payload.Document, error)
	Rankings(ctx context.Context, pollAlias string, year int) (payload.Document, error)
}

// RelationLoader persists normalized rows, one transaction per stage.
type RelationLoader interface {
	LoadSeasons(ctx context.Context, seasons []season.Season) error
	LoadRosterRelations(ctx context.Context, venues []team.Venue, conferences []team.Conference, divisions []team.Division, teams []team.Team, coaches []team.Coach, players []player.Player) error
	LoadStatistics(ctx context.Context, stats []player.SeasonStatistic) error
	LoadRankings(ctx context.Context, rankings []season.Ranking) error
}

// SchemaEnsurer bootstraps the target store before the first load.
type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

type PipelineConfig struct {
	Client      ResourceClient
	Loader      RelationLoader
	Schema      SchemaEnsurer
	Checkpoints *checkpoint.Store
	Logger      *logging.Logger
	IDs         idgen.Generator

	// Retryable classifies provider errors worth backing off on; it is
	// injected so the orchestrator stays transport-agnostic.
	Retryable func(error) bool

	TeamMatchPolicy  normalize.TeamMatchPolicy
	RankingsPoll     string
	RankingsYear     int
	FetchMaxRetries  int
	FetchBackoffBase time.Duration
}

type PipelineService struct {
	cfg    PipelineConfig
	logger *logging.Logger
}

func NewPipelineService(cfg PipelineConfig) (*PipelineService, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("%w: resource client is required", ErrInvalidInput)
	}
	if cfg.Loader == nil {
		return nil, fmt.Errorf("%w: relation loader is required", ErrInvalidInput)
	}
	if cfg.Checkpoints == nil {
		return nil, fmt.Errorf("%w: checkpoint store is required", ErrInvalidInput)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.IDs == nil {
		cfg.IDs = idgen.NewRandomGenerator()
	}
	if cfg.TeamMatchPolicy == "" {
		cfg.TeamMatchPolicy = normalize.PolicyCurrentTeam
	}
	if cfg.FetchMaxRetries < 0 {
		cfg.FetchMaxRetries = 0
	}
	if cfg.FetchBackoffBase <= 0 {
		cfg.FetchBackoffBase = time.Second
	}
	return &PipelineService{cfg: cfg, logger: cfg.Logger}, nil
}

// Run executes the full pipeline from the first stage.
func (s *PipelineService) Run(ctx context.Context) error {
	return s.runFrom(ctx, stageOrder[0])
}

// Resume re-runs the pipeline starting at the named stage, feeding it
// the checkpointed outputs of earlier stages.
func (s *PipelineService) Resume(ctx context.Context, fromStage string) error {
	if !ValidStage(fromStage) {
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, fromStage)
	}
	return s.runFrom(ctx, fromStage)
}

// Stages returns the stage names in execution order.
func Stages() []string {
	out := make([]string, len(stageOrder))
	copy(out, stageOrder)
	return out
}

func ValidStage(name string) bool {
	for _, stage := range stageOrder {
		if stage == name {
			return true
		}
	}
	return false
}

func (s *PipelineService) runFrom(ctx context.Context, fromStage string) error {
	logger := s.logger
	if runID, err := s.cfg.IDs.NewID(); err == nil {
		logger = logger.With("run_id", runID)
	}

	started := false
	for _, stage := range stageOrder {
		if stage == fromStage {
			started = true
		}
		if !started {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrStageFailed, stage, err)
		}

		startedAt := time.Now()
		logger.InfoContext(ctx, "pipeline stage started", "stage", stage)
		if err := s.runStage(ctx, stage); err != nil {
			logger.ErrorContext(ctx, "pipeline stage failed", "stage", stage, "error", err)
			return fmt.Errorf("%w: %s: %w", ErrStageFailed, stage, err)
		}
		logger.InfoContext(ctx, "pipeline stage finished", "stage", stage, "took", time.Since(startedAt))
	}
	return nil
}

func (s *PipelineService) runStage(ctx context.Context, stage string) error {
	ctx, span := startUsecaseSpan(ctx, "pipeline."+stage)
	defer span.End()

	switch stage {
	case StageEnsureSchema:
		return s.ensureSchema(ctx)
	case StageDiscoverTeams:
		return s.discoverTeamIDs(ctx)
	case StageDiscoverSeasons:
		return s.discoverSeasons(ctx)
	case StageLoadSeasons:
		return s.loadSeasons(ctx)
	case StageFetchRosters:
		return s.fetchRosters(ctx)
	case StageLoadRosters:
		return s.loadRosters(ctx)
	case StageFetchProfiles:
		return s.fetchProfiles(ctx)
	case StageLoadStatistics:
		return s.loadStatistics(ctx)
	case StageFetchRankings:
		return s.fetchRankings(ctx)
	case StageLoadRankings:
		return s.loadRankings(ctx)
	default:
		return fmt.Errorf("unknown stage %q", stage)
	}
}

func (s *PipelineService) ensureSchema(ctx context.Context) error {
	if s.cfg.Schema == nil {
		s.logger.InfoContext(ctx, "schema bootstrap skipped: no schema manager configured")
		return nil
	}
	return s.cfg.Schema.EnsureSchema(ctx)
}

func (s *PipelineService) discoverTeamIDs(ctx context.Context) error {
	doc, err := s.cfg.Client.LeagueHierarchy(ctx)
	if err != nil {
		return fmt.Errorf("fetch league hierarchy: %w", err)
	}
	ids := normalize.ExtractTeamIDs(doc)
	if len(ids) == 0 {
		return fmt.Errorf("league hierarchy contained no team ids")
	}
	s.logger.InfoContext(ctx, "team ids discovered", "count", len(ids))
	return s.cfg.Checkpoints.SaveObject(ckptTeamIDs, ids)
}

func (s *PipelineService) discoverSeasons(ctx context.Context) error {
	doc, err := s.cfg.Client.Seasons(ctx)
	if err != nil {
		return fmt.Errorf("fetch seasons: %w", err)
	}
	return s.cfg.Checkpoints.SaveObject(ckptSeasonsDoc, doc)
}

func (s *PipelineService) loadSeasons(ctx context.Context) error {
	var doc payload.Document
	if err := s.cfg.Checkpoints.LoadObject(ckptSeasonsDoc, &doc); err != nil {
		return err
	}

	batch := normalize.NewBatch()
	batch.AddSeasons(doc)
	if err := s.cfg.Loader.LoadSeasons(ctx, batch.Seasons); err != nil {
		return fmt.Errorf("load seasons: %w", err)
	}
	s.logger.InfoContext(ctx, "seasons loaded", "count", len(batch.Seasons))
	return nil
}

func (s *PipelineService) fetchRosters(ctx context.Context) error {
	var ids []string
	if err := s.cfg.Checkpoints.LoadObject(ckptTeamIDs, &ids); err != nil {
		return err
	}

	opts := fetch.RosterOptions(s.cfg.Retryable, s.logger)
	opts.MaxRetries = s.cfg.FetchMaxRetries
	opts.BackoffBase = s.cfg.FetchBackoffBase

	results, err := fetch.Run(ctx, ids, s.cfg.Client.TeamRoster, opts)
	if err != nil {
		return fmt.Errorf("fetch rosters: %w", err)
	}
	return s.cfg.Checkpoints.SaveObject(ckptRosterResults, results)
}

func (s *PipelineService) loadRosters(ctx context.Context) error {
	var results []fetch.Result
	if err := s.cfg.Checkpoints.LoadObject(ckptRosterResults, &results); err != nil {
		return err
	}

	batch := normalize.NewBatch()
	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
			continue
		}
		batch.AddRoster(res.Doc)
	}

	if err := s.cfg.Loader.LoadRosterRelations(ctx, batch.Venues, batch.Conferences, batch.Divisions, batch.Teams, batch.Coaches, batch.Players); err != nil {
		return fmt.Errorf("load roster relations: %w", err)
	}
	s.logger.InfoContext(ctx, "rosters loaded",
		"teams", len(batch.Teams), "players", len(batch.Players),
		"coaches", len(batch.Coaches), "venues", len(batch.Venues),
		"failed_rosters", failed)

	playerIDs := make([]string, 0, len(batch.Players))
	for _, p := range batch.Players {
		playerIDs = append(playerIDs, p.ID)
	}
	return s.cfg.Checkpoints.SaveObject(ckptPlayerIDs, playerIDs)
}

func (s *PipelineService) fetchProfiles(ctx context.Context) error {
	var ids []string
	if err := s.cfg.Checkpoints.LoadObject(ckptPlayerIDs, &ids); err != nil {
		return err
	}

	opts := fetch.ProfileOptions(s.cfg.Retryable, s.logger)
	opts.MaxRetries = s.cfg.FetchMaxRetries
	opts.BackoffBase = s.cfg.FetchBackoffBase

	results, err := fetch.Run(ctx, ids, s.cfg.Client.PlayerProfile, opts)
	if err != nil {
		return fmt.Errorf("fetch player profiles: %w", err)
	}
	return s.cfg.Checkpoints.SaveObject(ckptProfileResults, results)
}

func (s *PipelineService) loadStatistics(ctx context.Context) error {
	var results []fetch.Result
	if err := s.cfg.Checkpoints.LoadObject(ckptProfileResults, &results); err != nil {
		return err
	}

	batch := normalize.NewBatch()
	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
			continue
		}
		batch.AddProfile(res.Doc, s.cfg.TeamMatchPolicy)
	}

	if err := s.cfg.Loader.LoadStatistics(ctx, batch.Statistics); err != nil {
		return fmt.Errorf("load player statistics: %w", err)
	}
	s.logger.InfoContext(ctx, "player statistics loaded",
		"rows", len(batch.Statistics), "failed_profiles", failed)
	return nil
}

func (s *PipelineService) fetchRankings(ctx context.Context) error {
	seasonID, year, err := s.resolveRankingsSeason()
	if err != nil {
		return err
	}

	doc, err := s.cfg.Client.Rankings(ctx, s.cfg.RankingsPoll, year)
	if err != nil {
		return fmt.Errorf("fetch rankings year=%d: %w", year, err)
	}
	if err := s.cfg.Checkpoints.SaveObject(ckptRankingsDoc, doc); err != nil {
		return err
	}
	return s.cfg.Checkpoints.SaveObject(ckptRankingsSeason, seasonID)
}

func (s *PipelineService) loadRankings(ctx context.Context) error {
	var doc payload.Document
	if err := s.cfg.Checkpoints.LoadObject(ckptRankingsDoc, &doc); err != nil {
		return err
	}
	var seasonID string
	if err := s.cfg.Checkpoints.LoadObject(ckptRankingsSeason, &seasonID); err != nil {
		return err
	}

	batch := normalize.NewBatch()
	batch.AddRankings(doc, seasonID)
	if err := s.cfg.Loader.LoadRankings(ctx, batch.Rankings); err != nil {
		return fmt.Errorf("load rankings: %w", err)
	}
	s.logger.InfoContext(ctx, "rankings loaded", "rows", len(batch.Rankings), "season_id", seasonID)
	return nil
}

// resolveRankingsSeason picks the season whose rankings to fetch from
// the checkpointed season list: the configured year when set, otherwise
// the most recent year on record. Regular-season entries win when a
// year has several types.
func (s *PipelineService) resolveRankingsSeason() (string, int, error) {
	var doc payload.Document
	if err := s.cfg.Checkpoints.LoadObject(ckptSeasonsDoc, &doc); err != nil {
		return "", 0, err
	}

	batch := normalize.NewBatch()
	batch.AddSeasons(doc)
	if len(batch.Seasons) == 0 {
		return "", 0, fmt.Errorf("no seasons available to resolve rankings target")
	}

	var best *season.Season
	for i := range batch.Seasons {
		candidate := &batch.Seasons[i]
		if candidate.Year == nil {
			continue
		}
		if s.cfg.RankingsYear > 0 && *candidate.Year != s.cfg.RankingsYear {
			continue
		}
		if best == nil {
			best = candidate
			continue
		}
		switch {
		case *candidate.Year > *best.Year:
			best = candidate
		case *candidate.Year == *best.Year && isRegularSeason(candidate) && !isRegularSeason(best):
			best = candidate
		}
	}
	if best == nil {
		return "", 0, fmt.Errorf("no season matches rankings year %d", s.cfg.RankingsYear)
	}
	return best.ID, *best.Year, nil
}

func isRegularSeason(s *season.Season) bool {
	return s.TypeCode != nil && *s.TypeCode == "REG"
}
