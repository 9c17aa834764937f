package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridirondata/ncaafb-etl/internal/domain/team"
	qb "github.com/gridirondata/ncaafb-etl/internal/platform/querybuilder"
)

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// List returns venues largest first, the order the capacity dashboard
// chart expects.
func (r *VenueRepository) List(ctx context.Context, limit int) ([]team.Venue, error) {
	query, args, err := qb.Select(team.VenueColumns...).
		From("venues").
		OrderBy("capacity DESC NULLS LAST").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select venues query: %w", err)
	}

	var rows []team.Venue
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	return rows, nil
}
