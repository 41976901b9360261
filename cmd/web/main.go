package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/ternak-atlas/pkg/server"
	"github.com/de-tools/ternak-atlas/pkg/services/config"
	"github.com/de-tools/ternak-atlas/pkg/services/participant"
	"github.com/de-tools/ternak-atlas/pkg/services/report"
	"github.com/de-tools/ternak-atlas/pkg/services/stats"
	"github.com/de-tools/ternak-atlas/pkg/store/sqldb"
	sqlparticipant "github.com/de-tools/ternak-atlas/pkg/store/sqldb/participant"
	sqlreport "github.com/de-tools/ternak-atlas/pkg/store/sqldb/report"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Ternak Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML/TOML/JSON config file; TERNAK_* environment variables override it")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.Level()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings := cfg.StoreSettings()
	db, err := sqldb.NewDB(settings)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", settings.Driver, err)
	}
	defer db.Close()

	participantStore, err := sqlparticipant.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create participant store: %w", err)
	}
	reportStore, err := sqlreport.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	participants := participant.NewService(participantStore)
	reports := report.NewService(participantStore, reportStore, report.WithTransactions(db))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, string(settings.Driver)),
	)

	zerolog.Ctx(ctx).Info().
		Str("driver", string(settings.Driver)).
		Str("target", settings.Target()).
		Msg("store opened")

	statsCtx, stopStats := context.WithCancel(ctx)
	defer stopStats()
	runner := stats.NewRunner(reports, registry, stats.RunnerConfig{
		RefreshInterval: cfg.Stats.RefreshInterval,
	})
	go runner.Run(statsCtx)

	api := server.NewWebAPI(logger, server.Config{
		Addr: cfg.Addr(),
		Dependencies: server.Dependencies{
			Participants: participants,
			Reports:      reports,
			Metrics:      registry,
		},
	})
	return api.Start()
}
