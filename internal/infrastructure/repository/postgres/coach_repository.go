package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/gridirondata/ncaafb-etl/internal/platform/querybuilder"
	"github.com/gridirondata/ncaafb-etl/internal/usecase"
)

type CoachRepository struct {
	db *sqlx.DB
}

func NewCoachRepository(db *sqlx.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) List(ctx context.Context, teamID string) ([]usecase.CoachEntry, error) {
	builder := qb.Select(
		"c.coach_id", "c.full_name", "c.position", "c.team_id",
		"t.market AS team_market", "t.name AS team_name",
	).
		From("coaches c LEFT JOIN teams t ON t.team_id = c.team_id").
		OrderBy("t.market", "c.full_name")
	if teamID != "" {
		builder.Where(qb.Eq("c.team_id", teamID))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select coaches query: %w", err)
	}

	var rows []usecase.CoachEntry
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select coaches: %w", err)
	}
	return rows, nil
}
