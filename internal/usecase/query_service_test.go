package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gridirondata/ncaafb-etl/internal/domain/player"
	"github.com/gridirondata/ncaafb-etl/internal/domain/season"
	"github.com/gridirondata/ncaafb-etl/internal/domain/team"
	"github.com/gridirondata/ncaafb-etl/internal/platform/logging"
)

type fakeTeamReader struct {
	lastConference string
	lastLimit      int
}

func (r *fakeTeamReader) List(ctx context.Context, conferenceID string, limit int) ([]TeamSummary, error) {
	r.lastConference = conferenceID
	r.lastLimit = limit
	return []TeamSummary{{Team: team.Team{ID: "T1"}}}, nil
}

func (r *fakeTeamReader) GetByID(ctx context.Context, teamID string) (TeamSummary, error) {
	if teamID != "T1" {
		return TeamSummary{}, ErrNotFound
	}
	return TeamSummary{Team: team.Team{ID: "T1"}}, nil
}

type fakePlayerReader struct {
	lastFilter PlayerFilter
}

func (r *fakePlayerReader) List(ctx context.Context, filter PlayerFilter) ([]player.Player, error) {
	r.lastFilter = filter
	return []player.Player{{ID: "P1"}}, nil
}

func (r *fakePlayerReader) GetByID(ctx context.Context, playerID string) (player.Player, error) {
	return player.Player{ID: playerID}, nil
}

func (r *fakePlayerReader) StatisticsByPlayer(ctx context.Context, playerID string) ([]player.SeasonStatistic, error) {
	return []player.SeasonStatistic{{PlayerID: playerID}, {PlayerID: playerID}}, nil
}

type fakeRankingReader struct{}

func (fakeRankingReader) Current(ctx context.Context) ([]RankingEntry, error) {
	return []RankingEntry{{Ranking: season.Ranking{}}}, nil
}

func (fakeRankingReader) HistoryByTeam(ctx context.Context, teamID string) ([]RankingEntry, error) {
	return nil, nil
}

type fakeSeasonReader struct{}

func (fakeSeasonReader) List(ctx context.Context) ([]season.Season, error) {
	return []season.Season{{ID: "S1"}}, nil
}

type fakeVenueReader struct {
	lastLimit int
}

func (r *fakeVenueReader) List(ctx context.Context, limit int) ([]team.Venue, error) {
	r.lastLimit = limit
	return nil, nil
}

type fakeCoachReader struct{}

func (fakeCoachReader) List(ctx context.Context, teamID string) ([]CoachEntry, error) {
	return nil, nil
}

type fakeSummaryReader struct{}

func (fakeSummaryReader) Counts(ctx context.Context) (StoreSummary, error) {
	return StoreSummary{Teams: 130, Players: 9000}, nil
}

func newTestQueryService(t *testing.T) (*QueryService, *fakeTeamReader, *fakePlayerReader, *fakeVenueReader) {
	t.Helper()
	teams := &fakeTeamReader{}
	players := &fakePlayerReader{}
	venues := &fakeVenueReader{}
	svc := NewQueryService(teams, players, fakeRankingReader{}, fakeSeasonReader{}, venues, fakeCoachReader{}, fakeSummaryReader{}, logging.NewNop())
	return svc, teams, players, venues
}

func TestListTeamsAppliesDefaultLimit(t *testing.T) {
	svc, teams, _, _ := newTestQueryService(t)

	rows, err := svc.ListTeams(context.Background(), TeamFilter{ConferenceID: "C1"})
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 team, got %d", len(rows))
	}
	if teams.lastConference != "C1" || teams.lastLimit != 200 {
		t.Fatalf("filter not forwarded: conference=%q limit=%d", teams.lastConference, teams.lastLimit)
	}
}

func TestListTeamsRejectsOversizedLimit(t *testing.T) {
	svc, _, _, _ := newTestQueryService(t)

	_, err := svc.ListTeams(context.Background(), TeamFilter{Limit: 5000})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetTeamRequiresID(t *testing.T) {
	svc, _, _, _ := newTestQueryService(t)

	if _, err := svc.GetTeam(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.GetTeam(context.Background(), "T9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPlayersValidatesFilter(t *testing.T) {
	svc, _, players, _ := newTestQueryService(t)

	if _, err := svc.ListPlayers(context.Background(), PlayerFilter{Limit: 100000}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if _, err := svc.ListPlayers(context.Background(), PlayerFilter{TeamID: "T1", Position: "QB"}); err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if players.lastFilter.TeamID != "T1" || players.lastFilter.Position != "QB" {
		t.Fatalf("filter not forwarded: %+v", players.lastFilter)
	}
	if players.lastFilter.Limit != 200 {
		t.Fatalf("default limit not applied, got %d", players.lastFilter.Limit)
	}
}

func TestGetPlayerComposesStatistics(t *testing.T) {
	svc, _, _, _ := newTestQueryService(t)

	detail, err := svc.GetPlayer(context.Background(), "P1")
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if detail.ID != "P1" {
		t.Fatalf("unexpected player id %q", detail.ID)
	}
	if len(detail.Statistics) != 2 {
		t.Fatalf("expected 2 statistics rows, got %d", len(detail.Statistics))
	}

	if _, err := svc.GetPlayer(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}
}

func TestListVenuesLimitBounds(t *testing.T) {
	svc, _, _, venues := newTestQueryService(t)

	if _, err := svc.ListVenues(context.Background(), 10000); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.ListVenues(context.Background(), 0); err != nil {
		t.Fatalf("ListVenues: %v", err)
	}
	if venues.lastLimit != 100 {
		t.Fatalf("default limit not applied, got %d", venues.lastLimit)
	}
}

func TestSummaryPassthrough(t *testing.T) {
	svc, _, _, _ := newTestQueryService(t)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Teams != 130 || summary.Players != 9000 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
