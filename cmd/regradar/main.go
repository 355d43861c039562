package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"RegRadar/internal/app"
	"RegRadar/internal/config"
	"RegRadar/internal/logging"
	"RegRadar/internal/usecase"
)

var (
	flagDBPath   string
	flagLogLevel string

	flagDaysBack int
	flagPageSize int
	flagSources  []string

	flagAddr string
)

var rootCmd = &cobra.Command{
	Use:   "regradar",
	Short: "Aggregate federal, state and local regulatory updates",
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch regulatory updates from the configured API sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if !cfg.AnyCredential() {
			return fmt.Errorf("no API keys configured; set one or more of:\n" +
				"  REGULATIONS_GOV_API_KEY  - https://api.data.gov/signup/\n" +
				"  NYS_LEGISLATURE_API_KEY  - https://legislation.nysenate.gov/\n" +
				"  NYC_OPEN_DATA_APP_TOKEN  - https://data.cityofnewyork.us/")
		}

		logger := logging.New(cfg.Logging.Level)
		application, err := app.New(cfg, logger)
		if err != nil {
			return err
		}
		defer application.Close()

		summary, err := application.Aggregate(cmd.Context(), usecase.RunOptions{
			Sources:  flagSources,
			DaysBack: flagDaysBack,
			PageSize: flagPageSize,
		})
		if err != nil {
			return err
		}

		for _, res := range summary.Results {
			logger.Info("source done", "source", res.Source, "fetched", res.Fetched, "stored", res.Stored)
		}
		logger.Info("aggregation complete", "db", cfg.Database.Path)
		return nil
	},
}

var briefsCmd = &cobra.Command{
	Use:   "briefs",
	Short: "Generate AI compliance briefs for regulations lacking one",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := logging.New(cfg.Logging.Level)

		application, err := app.New(cfg, logger)
		if err != nil {
			return err
		}
		defer application.Close()

		count, err := application.GenerateBriefs(cmd.Context())
		if err != nil {
			return err
		}

		logger.Info("brief generation complete", "generated", count)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browse interface over stored regulations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := logging.New(cfg.Logging.Level)

		application, err := app.New(cfg, logger)
		if err != nil {
			return err
		}
		defer application.Close()

		addr := flagAddr
		if addr == "" {
			addr = cfg.Web.Addr
		}
		logger.Info("serving", "addr", addr)
		return application.Serve(addr)
	},
}

func loadConfig() config.Config {
	cfg := config.Load()
	if flagDBPath != "" {
		cfg.Database.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "path to the SQLite database (overrides REGULATIONS_DB_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	fetchCmd.Flags().IntVar(&flagDaysBack, "days-back", 0, "number of days to look back (default 7)")
	fetchCmd.Flags().IntVar(&flagPageSize, "page-size", 0, "max results per source per keyword (default 10)")
	fetchCmd.Flags().StringSliceVar(&flagSources, "sources", nil, "sources to fetch (default: all configured)")

	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default :8080)")

	rootCmd.AddCommand(fetchCmd, briefsCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
