package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/gridirondata/ncaafb-etl/internal/platform/querybuilder"
	"github.com/gridirondata/ncaafb-etl/internal/usecase"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

var teamSummaryColumns = []string{
	"t.team_id", "t.market", "t.name", "t.alias", "t.founded", "t.mascot",
	"t.fight_song", "t.championships_won", "t.conference_id", "t.division_id", "t.venue_id",
	"c.name AS conference_name",
	"v.name AS venue_name", "v.city AS venue_city", "v.state AS venue_state",
}

const teamSummaryFrom = "teams t LEFT JOIN conferences c ON c.conference_id = t.conference_id LEFT JOIN venues v ON v.venue_id = t.venue_id"

func (r *TeamRepository) List(ctx context.Context, conferenceID string, limit int) ([]usecase.TeamSummary, error) {
	builder := qb.Select(teamSummaryColumns...).
		From(teamSummaryFrom).
		OrderBy("t.market", "t.name").
		Limit(limit)
	if conferenceID != "" {
		builder.Where(qb.Eq("t.conference_id", conferenceID))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []usecase.TeamSummary
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}
	return rows, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (usecase.TeamSummary, error) {
	query, args, err := qb.Select(teamSummaryColumns...).
		From(teamSummaryFrom).
		Where(qb.Eq("t.team_id", teamID)).
		ToSQL()
	if err != nil {
		return usecase.TeamSummary{}, fmt.Errorf("build select team query: %w", err)
	}

	var row usecase.TeamSummary
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return usecase.TeamSummary{}, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
		}
		return usecase.TeamSummary{}, fmt.Errorf("select team: %w", err)
	}
	return row, nil
}
