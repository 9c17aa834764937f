package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/gridirondata/ncaafb-etl/internal/checkpoint"
	"github.com/gridirondata/ncaafb-etl/internal/domain/player"
	"github.com/gridirondata/ncaafb-etl/internal/domain/season"
	"github.com/gridirondata/ncaafb-etl/internal/domain/team"
	"github.com/gridirondata/ncaafb-etl/internal/platform/logging"
	qb "github.com/gridirondata/ncaafb-etl/internal/platform/querybuilder"
)

// insertChunkSize bounds rows per INSERT so wide relations stay well
// under the Postgres placeholder limit.
const insertChunkSize = 500

// Loader appends normalized rows to the relational store. Relations
// that belong to the same pipeline stage are written inside a single
// transaction, then mirrored to the checkpoint store as CSV. Keyed
// relations insert first-seen-wins; batch-local de-duplication is the
// normalizer's job.
type Loader struct {
	db     *sqlx.DB
	mirror *checkpoint.Store
	logger *logging.Logger
}

func NewLoader(db *sqlx.DB, mirror *checkpoint.Store, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{db: db, mirror: mirror, logger: logger}
}

// LoadSeasons writes the seasons relation.
func (l *Loader) LoadSeasons(ctx context.Context, seasons []season.Season) error {
	rows := make([][]any, 0, len(seasons))
	for _, s := range seasons {
		rows = append(rows, s.Row())
	}
	return l.loadStage(ctx, []relationBatch{
		{table: "seasons", columns: season.SeasonColumns, rows: rows, conflictKey: "season_id"},
	})
}

// LoadRosterRelations writes every relation produced by roster
// normalization as one transaction: venues, conferences, divisions,
// teams, coaches, players.
func (l *Loader) LoadRosterRelations(ctx context.Context, venues []team.Venue, conferences []team.Conference, divisions []team.Division, teams []team.Team, coaches []team.Coach, players []player.Player) error {
	batches := []relationBatch{
		{table: "venues", columns: team.VenueColumns, rows: anyRows(venues), conflictKey: "venue_id"},
		{table: "conferences", columns: team.ConferenceColumns, rows: anyRows(conferences), conflictKey: "conference_id"},
		{table: "divisions", columns: team.DivisionColumns, rows: anyRows(divisions), conflictKey: "division_id"},
		{table: "teams", columns: team.TeamColumns, rows: anyRows(teams), conflictKey: "team_id"},
		{table: "coaches", columns: team.CoachColumns, rows: anyRows(coaches), conflictKey: "coach_id"},
		{table: "players", columns: player.PlayerColumns, rows: anyRows(players), conflictKey: "player_id"},
	}
	return l.loadStage(ctx, batches)
}

// LoadStatistics writes the player_statistics relation.
func (l *Loader) LoadStatistics(ctx context.Context, stats []player.SeasonStatistic) error {
	return l.loadStage(ctx, []relationBatch{
		{table: "player_statistics", columns: player.SeasonStatisticColumns, rows: anyRows(stats)},
	})
}

// LoadRankings writes the rankings relation.
func (l *Loader) LoadRankings(ctx context.Context, rankings []season.Ranking) error {
	return l.loadStage(ctx, []relationBatch{
		{table: "rankings", columns: season.RankingColumns, rows: anyRows(rankings)},
	})
}

type relationBatch struct {
	table   string
	columns []string
	rows    [][]any

	// conflictKey names the primary key for first-seen-wins inserts
	// across runs. Relations without a natural key stay append-only.
	conflictKey string
}

type rowProvider interface {
	Row() []any
}

func anyRows[T rowProvider](items []T) [][]any {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, item.Row())
	}
	return rows
}

func (l *Loader) loadStage(ctx context.Context, batches []relationBatch) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin stage transaction: %w", err)
	}

	for _, batch := range batches {
		if err := insertRows(ctx, tx, batch); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stage transaction: %w", err)
	}

	for _, batch := range batches {
		l.logger.InfoContext(ctx, "relation loaded", "table", batch.table, "rows", len(batch.rows))
	}
	l.mirrorStage(ctx, batches)
	return nil
}

// mirrorStage writes one CSV checkpoint artifact per relation, row for
// row with what was just committed.
func (l *Loader) mirrorStage(ctx context.Context, batches []relationBatch) {
	if l.mirror == nil {
		return
	}
	for _, batch := range batches {
		if err := l.mirror.SaveTable(batch.table, batch.columns, csvRows(batch.rows)); err != nil {
			// Mirrors are a convenience artifact; the database commit
			// already succeeded.
			l.logger.WarnContext(ctx, "write csv mirror failed", "table", batch.table, "error", err)
		}
	}
}

func insertRows(ctx context.Context, tx *sqlx.Tx, batch relationBatch) error {
	for start := 0; start < len(batch.rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(batch.rows) {
			end = len(batch.rows)
		}

		builder := qb.InsertInto(batch.table).Columns(batch.columns...)
		for _, row := range batch.rows[start:end] {
			builder.Values(row...)
		}
		if batch.conflictKey != "" {
			builder.Suffix("ON CONFLICT (" + batch.conflictKey + ") DO NOTHING")
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert for %s: %w", batch.table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", batch.table, err)
		}
	}
	return nil
}

func csvRows(rows [][]any) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, len(row))
		for i, value := range row {
			record[i] = csvValue(value)
		}
		out = append(out, record)
	}
	return out
}

func csvValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case int:
		return strconv.Itoa(v)
	case *int:
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	case *float64:
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
