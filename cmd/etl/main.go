package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gridirondata/ncaafb-etl/internal/app"
	"github.com/gridirondata/ncaafb-etl/internal/config"
	"github.com/gridirondata/ncaafb-etl/internal/platform/logging"
	"github.com/gridirondata/ncaafb-etl/internal/usecase"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var schemaPath string

	root := &cobra.Command{
		Use:           "etl",
		Short:         "NCAAFB data pipeline: fetch, normalize, and load college football data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&schemaPath, "schema", "db/schema.sql", "path to the schema DDL applied by the ensure-schema stage")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the full pipeline from the first stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd.Context(), schemaPath, "")
		},
	}

	var fromStage string
	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume the pipeline from a named stage using checkpointed inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(fromStage) == "" {
				return fmt.Errorf("--from is required; stages: %s", strings.Join(usecase.Stages(), ", "))
			}
			return runPipeline(cmd.Context(), schemaPath, fromStage)
		},
	}
	resumeCmd.Flags().StringVar(&fromStage, "from", "", "stage to resume from")

	stagesCmd := &cobra.Command{
		Use:   "stages",
		Short: "List pipeline stages in execution order",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, stage := range usecase.Stages() {
				fmt.Fprintln(cmd.OutOrStdout(), stage)
			}
		},
	}

	root.AddCommand(runCmd, resumeCmd, stagesCmd)
	return root
}

func runPipeline(parent context.Context, schemaPath, fromStage string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	schemaSQL, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("read schema file %s: %w", schemaPath, err)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, db, err := app.NewPipeline(ctx, cfg, logger, string(schemaSQL))
	if err != nil {
		return err
	}
	defer db.Close()

	if fromStage != "" {
		logger.InfoContext(ctx, "resuming pipeline", "from_stage", fromStage)
		return pipeline.Resume(ctx, fromStage)
	}
	logger.InfoContext(ctx, "starting pipeline run")
	return pipeline.Run(ctx)
}
