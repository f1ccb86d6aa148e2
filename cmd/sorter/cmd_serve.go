package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/muliwe/package-sorter/internal/classifier"
	"github.com/muliwe/package-sorter/internal/config"
	"github.com/muliwe/package-sorter/internal/logger"
	"github.com/muliwe/package-sorter/internal/metrics"
	"github.com/muliwe/package-sorter/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sorting HTTP API",
		Long: `Run the sorting HTTP API.

Settings come from defaults, the optional --config YAML file and SORTER_*
environment variables (e.g. SORTER_SERVER_ADDR, SORTER_LOG_LEVEL). PORT
overrides the listen port.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			srv, err := buildServer(cfg)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().String("config", "", "Path to a YAML config file")
	return cmd
}

// buildServer wires the API from cfg
func buildServer(cfg *config.Config) (*server.Server, error) {
	log := logger.NewOperational(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	mcfg := metrics.DefaultConfig()
	mcfg.Namespace = cfg.Metrics.Namespace
	m := metrics.New(mcfg)

	var decisions *logger.Logger
	if cfg.DecisionLog.Enabled {
		var err error
		decisions, err = logger.New(logger.Config{
			LogDir:   cfg.DecisionLog.Dir,
			FileName: cfg.DecisionLog.FileName,
			Stdout:   cfg.DecisionLog.Stdout,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize decision log")
		}
		log.Info("decision log enabled", "path", decisions.LogPath())
	}

	clf := classifier.New(classifier.Config{Recorder: m})
	h := server.NewHandler(clf, decisions, log)
	return server.New(cfg.Server, h, m, log), nil
}
