package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/gridirondata/ncaafb-etl/internal/platform/querybuilder"
	"github.com/gridirondata/ncaafb-etl/internal/usecase"
)

type RankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

var rankingEntryColumns = []string{
	"r.poll_id", "r.poll_name", "r.season_id", "r.week", "r.effective_time",
	"r.team_id", "r.rank_position", "r.prev_rank", "r.points", "r.fp_votes",
	"r.wins", "r.losses", "r.ties",
	"t.market AS team_market", "t.name AS team_name",
}

const rankingEntryFrom = "rankings r LEFT JOIN teams t ON t.team_id = r.team_id"

// Current returns the most recent poll week on record.
func (r *RankingRepository) Current(ctx context.Context) ([]usecase.RankingEntry, error) {
	query, args, err := qb.Select(rankingEntryColumns...).
		From(rankingEntryFrom).
		Where(qb.Expr("r.week = (SELECT MAX(week) FROM rankings)")).
		OrderBy("r.rank_position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select current rankings query: %w", err)
	}

	var rows []usecase.RankingEntry
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select current rankings: %w", err)
	}
	return rows, nil
}

// HistoryByTeam returns a team's poll appearances, newest week first.
func (r *RankingRepository) HistoryByTeam(ctx context.Context, teamID string) ([]usecase.RankingEntry, error) {
	query, args, err := qb.Select(rankingEntryColumns...).
		From(rankingEntryFrom).
		Where(qb.Eq("r.team_id", teamID)).
		OrderBy("r.week DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select ranking history query: %w", err)
	}

	var rows []usecase.RankingEntry
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ranking history: %w", err)
	}
	return rows, nil
}
