package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gridirondata/ncaafb-etl/internal/platform/logging"
)

const schemaVersion = 1

// SchemaManager bootstraps the target database: it creates the
// database when absent and applies the DDL once, gated by a marker row
// in schema_version.
type SchemaManager struct {
	adminURL string
	dbURL    string
	dbName   string
	logger   *logging.Logger
}

func NewSchemaManager(adminURL, dbURL, dbName string, logger *logging.Logger) *SchemaManager {
	if logger == nil {
		logger = logging.Default()
	}
	return &SchemaManager{adminURL: adminURL, dbURL: dbURL, dbName: dbName, logger: logger}
}

// EnsureDatabase creates the target database when it does not exist.
// Postgres has no CREATE DATABASE IF NOT EXISTS, so it probes
// pg_database first.
func (m *SchemaManager) EnsureDatabase(ctx context.Context) error {
	admin, err := sqlx.ConnectContext(ctx, "postgres", m.adminURL)
	if err != nil {
		return fmt.Errorf("connect admin database: %w", err)
	}
	defer admin.Close()

	var exists bool
	if err := admin.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", m.dbName); err != nil {
		return fmt.Errorf("probe database %s: %w", m.dbName, err)
	}
	if exists {
		return nil
	}

	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(m.dbName)); err != nil {
		return fmt.Errorf("create database %s: %w", m.dbName, err)
	}
	m.logger.InfoContext(ctx, "database created", "name", m.dbName)
	return nil
}

// Connect opens the target database.
func (m *SchemaManager) Connect(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", m.dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect database %s: %w", m.dbName, err)
	}
	return db, nil
}

// ApplySchema runs the DDL statement by statement. Individual failures
// are logged and skipped so re-runs against a partially existing schema
// proceed; the marker row is written once the pass completes and gates
// subsequent runs entirely.
func (m *SchemaManager) ApplySchema(ctx context.Context, db *sqlx.DB, schemaSQL string) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var applied bool
	if err := db.GetContext(ctx, &applied, "SELECT EXISTS(SELECT 1 FROM schema_version WHERE version = $1)", schemaVersion); err != nil {
		return fmt.Errorf("probe schema_version: %w", err)
	}
	if applied {
		m.logger.InfoContext(ctx, "schema already applied", "version", schemaVersion)
		return nil
	}

	statements := SplitStatements(schemaSQL)
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			m.logger.WarnContext(ctx, "schema statement failed, continuing", "error", err)
		}
	}

	if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES ($1)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	m.logger.InfoContext(ctx, "schema applied", "version", schemaVersion, "statements", len(statements))
	return nil
}

// SplitStatements breaks a DDL script into executable statements,
// dropping comment-only lines and empty fragments.
func SplitStatements(schemaSQL string) []string {
	var cleaned []string
	for _, line := range strings.Split(schemaSQL, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	parts := strings.Split(strings.Join(cleaned, "\n"), ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		stmt := strings.TrimSpace(part)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
