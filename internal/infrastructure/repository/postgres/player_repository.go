package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridirondata/ncaafb-etl/internal/domain/player"
	qb "github.com/gridirondata/ncaafb-etl/internal/platform/querybuilder"
	"github.com/gridirondata/ncaafb-etl/internal/usecase"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter usecase.PlayerFilter) ([]player.Player, error) {
	builder := qb.Select(player.PlayerColumns...).
		From("players").
		OrderBy("last_name", "first_name").
		Limit(filter.Limit)
	if filter.TeamID != "" {
		builder.Where(qb.Eq("team_id", filter.TeamID))
	}
	if filter.Position != "" {
		builder.Where(qb.Eq("position", filter.Position))
	}
	if filter.Eligibility != "" {
		builder.Where(qb.Eq("eligibility", filter.Eligibility))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []player.Player
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	return rows, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, error) {
	query, args, err := qb.Select(player.PlayerColumns...).
		From("players").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build select player query: %w", err)
	}

	var row player.Player
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("player %s: %w", playerID, ErrNotFound)
		}
		return player.Player{}, fmt.Errorf("select player: %w", err)
	}
	return row, nil
}

func (r *PlayerRepository) StatisticsByPlayer(ctx context.Context, playerID string) ([]player.SeasonStatistic, error) {
	query, args, err := qb.Select(player.SeasonStatisticColumns...).
		From("player_statistics").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("season_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player statistics query: %w", err)
	}

	var rows []player.SeasonStatistic
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player statistics: %w", err)
	}
	return rows, nil
}
