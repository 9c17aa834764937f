package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/gridirondata/ncaafb-etl/external/sportradar"
	"github.com/gridirondata/ncaafb-etl/internal/checkpoint"
	"github.com/gridirondata/ncaafb-etl/internal/config"
	"github.com/gridirondata/ncaafb-etl/internal/etl/normalize"
	"github.com/gridirondata/ncaafb-etl/internal/infrastructure/repository/postgres"
	"github.com/gridirondata/ncaafb-etl/internal/interfaces/httpapi"
	"github.com/gridirondata/ncaafb-etl/internal/platform/logging"
	"github.com/gridirondata/ncaafb-etl/internal/platform/resilience"
	"github.com/gridirondata/ncaafb-etl/internal/usecase"
)

// NewHTTPServer wires the read-side API: repositories over db, the
// query service, and the router.
func NewHTTPServer(db *sqlx.DB, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle is required")
	}

	querySvc := usecase.NewQueryService(
		postgres.NewTeamRepository(db),
		postgres.NewPlayerRepository(db),
		postgres.NewRankingRepository(db),
		postgres.NewSeasonRepository(db),
		postgres.NewVenueRepository(db),
		postgres.NewCoachRepository(db),
		postgres.NewSummaryRepository(db),
		logger,
	)

	handler := httpapi.NewHandler(querySvc, logger)
	swaggerEnabled := cfg.AppEnv != config.EnvProd
	router := httpapi.NewRouter(handler, logger, swaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// NewPipeline wires the ETL pipeline: provider client, target database,
// checkpoint store, and loader. It creates the target database if
// missing and connects before the first stage runs; schema DDL itself
// is applied by the pipeline's ensure-schema stage.
func NewPipeline(ctx context.Context, cfg config.Config, logger *logging.Logger, schemaSQL string) (*usecase.PipelineService, *sqlx.DB, error) {
	schema := postgres.NewSchemaManager(cfg.DBAdminURL, cfg.DBURL, cfg.DBName, logger)
	if err := schema.EnsureDatabase(ctx); err != nil {
		return nil, nil, fmt.Errorf("ensure database: %w", err)
	}
	db, err := schema.Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	checkpoints, err := checkpoint.NewStore(cfg.CheckpointDir)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	client, err := sportradar.NewClient(sportradar.ClientConfig{
		BaseURL:           cfg.SportradarBaseURL,
		APIKey:            cfg.SportradarAPIKey,
		Timeout:           cfg.SportradarTimeout,
		RequestsPerSecond: cfg.SportradarRequestsPerSecond,
		Burst:             cfg.SportradarBurst,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SportradarCircuitEnabled,
			FailureThreshold: cfg.SportradarCircuitFailureCount,
			OpenTimeout:      cfg.SportradarCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SportradarCircuitHalfOpenReq,
		},
	})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("build provider client: %w", err)
	}

	policy, err := normalize.ParseTeamMatchPolicy(cfg.TeamMatchPolicy)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	pipeline, err := usecase.NewPipelineService(usecase.PipelineConfig{
		Client:      client,
		Loader:      postgres.NewLoader(db, checkpoints, logger),
		Schema:      &schemaApplier{schema: schema, db: db, schemaSQL: schemaSQL},
		Checkpoints: checkpoints,
		Logger:      logger,
		Retryable: func(err error) bool {
			return errors.Is(err, sportradar.ErrRateLimited)
		},
		TeamMatchPolicy:  policy,
		RankingsPoll:     cfg.RankingsPoll,
		RankingsYear:     cfg.RankingsYear,
		FetchMaxRetries:  cfg.FetchMaxRetries,
		FetchBackoffBase: cfg.FetchBackoffBase,
	})
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return pipeline, db, nil
}

// Connect opens the target database for read-side consumers.
func Connect(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", dbNameFromURL(cfg.DBURL), err)
	}
	return db, nil
}

// schemaApplier adapts the schema manager to the pipeline's bootstrap
// stage: the database already exists and is connected by the time the
// stage runs, so only the DDL application remains.
type schemaApplier struct {
	schema    *postgres.SchemaManager
	db        *sqlx.DB
	schemaSQL string
}

func (a *schemaApplier) EnsureSchema(ctx context.Context) error {
	return a.schema.ApplySchema(ctx, a.db, a.schemaSQL)
}
