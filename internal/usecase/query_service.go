package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gridirondata/ncaafb-etl/internal/domain/player"
	"github.com/gridirondata/ncaafb-etl/internal/domain/season"
	"github.com/gridirondata/ncaafb-etl/internal/domain/team"
	"github.com/gridirondata/ncaafb-etl/internal/platform/cache"
	"github.com/gridirondata/ncaafb-etl/internal/platform/logging"
)

// hotReadTTL bounds staleness of the cached landing-page reads. The
// store only changes when a pipeline run completes, so a short TTL is
// plenty.
const hotReadTTL = 30 * time.Second

// TeamSummary is a team joined with its conference and home venue.
type TeamSummary struct {
	team.Team
	ConferenceName *string `db:"conference_name" json:"conference_name"`
	VenueName      *string `db:"venue_name" json:"venue_name"`
	VenueCity      *string `db:"venue_city" json:"venue_city"`
	VenueState     *string `db:"venue_state" json:"venue_state"`
}

// RankingEntry is a ranking row joined with the ranked team's name.
type RankingEntry struct {
	season.Ranking
	TeamMarket *string `db:"team_market" json:"team_market"`
	TeamName   *string `db:"team_name" json:"team_name"`
}

// CoachEntry is a coach row joined with the coached team's name.
type CoachEntry struct {
	team.Coach
	TeamMarket *string `db:"team_market" json:"team_market"`
	TeamName   *string `db:"team_name" json:"team_name"`
}

// StoreSummary carries the row counts the dashboard landing page shows.
type StoreSummary struct {
	Seasons     int `db:"seasons" json:"seasons"`
	Conferences int `db:"conferences" json:"conferences"`
	Teams       int `db:"teams" json:"teams"`
	Players     int `db:"players" json:"players"`
	Coaches     int `db:"coaches" json:"coaches"`
	Venues      int `db:"venues" json:"venues"`
	Rankings    int `db:"rankings" json:"rankings"`
}

// PlayerFilter narrows player listings.
type PlayerFilter struct {
	TeamID      string `validate:"omitempty,max=64"`
	Position    string `validate:"omitempty,max=16"`
	Eligibility string `validate:"omitempty,max=16"`
	Limit       int    `validate:"gte=0,lte=1000"`
}

// TeamFilter narrows team listings.
type TeamFilter struct {
	ConferenceID string `validate:"omitempty,max=64"`
	Limit        int    `validate:"gte=0,lte=500"`
}

type TeamReader interface {
	List(ctx context.Context, conferenceID string, limit int) ([]TeamSummary, error)
	GetByID(ctx context.Context, teamID string) (TeamSummary, error)
}

type PlayerReader interface {
	List(ctx context.Context, filter PlayerFilter) ([]player.Player, error)
	GetByID(ctx context.Context, playerID string) (player.Player, error)
	StatisticsByPlayer(ctx context.Context, playerID string) ([]player.SeasonStatistic, error)
}

type RankingReader interface {
	Current(ctx context.Context) ([]RankingEntry, error)
	HistoryByTeam(ctx context.Context, teamID string) ([]RankingEntry, error)
}

type SeasonReader interface {
	List(ctx context.Context) ([]season.Season, error)
}

type VenueReader interface {
	List(ctx context.Context, limit int) ([]team.Venue, error)
}

type CoachReader interface {
	List(ctx context.Context, teamID string) ([]CoachEntry, error)
}

type SummaryReader interface {
	Counts(ctx context.Context) (StoreSummary, error)
}

// PlayerDetail is a player with their per-season statistics.
type PlayerDetail struct {
	player.Player
	Statistics []player.SeasonStatistic `json:"statistics"`
}

// QueryService serves the read-side dashboard API from the relational
// store. It never writes.
type QueryService struct {
	teams    TeamReader
	players  PlayerReader
	rankings RankingReader
	seasons  SeasonReader
	venues   VenueReader
	coaches  CoachReader
	summary  SummaryReader
	validate *validator.Validate
	hot      *cache.Store
	logger   *logging.Logger
}

func NewQueryService(teams TeamReader, players PlayerReader, rankings RankingReader, seasons SeasonReader, venues VenueReader, coaches CoachReader, summary SummaryReader, logger *logging.Logger) *QueryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &QueryService{
		teams:    teams,
		players:  players,
		rankings: rankings,
		seasons:  seasons,
		venues:   venues,
		coaches:  coaches,
		summary:  summary,
		validate: validator.New(),
		hot:      cache.NewStore(hotReadTTL),
		logger:   logger,
	}
}

func (s *QueryService) ListTeams(ctx context.Context, filter TeamFilter) ([]TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "query.ListTeams")
	defer span.End()

	if err := s.validate.Struct(filter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.Limit == 0 {
		filter.Limit = 200
	}
	return s.teams.List(ctx, filter.ConferenceID, filter.Limit)
}

func (s *QueryService) GetTeam(ctx context.Context, teamID string) (TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "query.GetTeam")
	defer span.End()

	if teamID == "" {
		return TeamSummary{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	return s.teams.GetByID(ctx, teamID)
}

func (s *QueryService) ListPlayers(ctx context.Context, filter PlayerFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "query.ListPlayers")
	defer span.End()

	if err := s.validate.Struct(filter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.Limit == 0 {
		filter.Limit = 200
	}
	return s.players.List(ctx, filter)
}

func (s *QueryService) GetPlayer(ctx context.Context, playerID string) (PlayerDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "query.GetPlayer")
	defer span.End()

	if playerID == "" {
		return PlayerDetail{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	row, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return PlayerDetail{}, err
	}
	stats, err := s.players.StatisticsByPlayer(ctx, playerID)
	if err != nil {
		return PlayerDetail{}, err
	}
	return PlayerDetail{Player: row, Statistics: stats}, nil
}

func (s *QueryService) ListSeasons(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "query.ListSeasons")
	defer span.End()

	return s.seasons.List(ctx)
}

func (s *QueryService) CurrentRankings(ctx context.Context) ([]RankingEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "query.CurrentRankings")
	defer span.End()

	value, err := s.hot.GetOrLoad(ctx, "rankings:current", func(ctx context.Context) (any, error) {
		return s.rankings.Current(ctx)
	})
	if err != nil {
		return nil, err
	}
	rows, _ := value.([]RankingEntry)
	return rows, nil
}

func (s *QueryService) TeamRankingHistory(ctx context.Context, teamID string) ([]RankingEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "query.TeamRankingHistory")
	defer span.End()

	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	return s.rankings.HistoryByTeam(ctx, teamID)
}

func (s *QueryService) ListVenues(ctx context.Context, limit int) ([]team.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "query.ListVenues")
	defer span.End()

	if limit < 0 || limit > 500 {
		return nil, fmt.Errorf("%w: limit out of range", ErrInvalidInput)
	}
	if limit == 0 {
		limit = 100
	}
	return s.venues.List(ctx, limit)
}

func (s *QueryService) ListCoaches(ctx context.Context, teamID string) ([]CoachEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "query.ListCoaches")
	defer span.End()

	return s.coaches.List(ctx, teamID)
}

func (s *QueryService) Summary(ctx context.Context) (StoreSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "query.Summary")
	defer span.End()

	value, err := s.hot.GetOrLoad(ctx, "summary", func(ctx context.Context) (any, error) {
		return s.summary.Counts(ctx)
	})
	if err != nil {
		return StoreSummary{}, err
	}
	summary, _ := value.(StoreSummary)
	return summary, nil
}
