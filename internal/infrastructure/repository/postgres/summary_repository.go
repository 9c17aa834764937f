package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridirondata/ncaafb-etl/internal/usecase"
)

type SummaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) Counts(ctx context.Context) (usecase.StoreSummary, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM seasons) AS seasons,
		(SELECT COUNT(*) FROM conferences) AS conferences,
		(SELECT COUNT(*) FROM teams) AS teams,
		(SELECT COUNT(*) FROM players) AS players,
		(SELECT COUNT(*) FROM coaches) AS coaches,
		(SELECT COUNT(*) FROM venues) AS venues,
		(SELECT COUNT(*) FROM rankings) AS rankings`

	var out usecase.StoreSummary
	if err := r.db.GetContext(ctx, &out, query); err != nil {
		return usecase.StoreSummary{}, fmt.Errorf("select store summary: %w", err)
	}
	return out, nil
}
