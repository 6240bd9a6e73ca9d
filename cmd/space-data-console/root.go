package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/i474232898/space-data-console/internal/config"
	"github.com/i474232898/space-data-console/internal/console"
	"github.com/i474232898/space-data-console/internal/geo"
	"github.com/i474232898/space-data-console/internal/plot"
	"github.com/i474232898/space-data-console/internal/space"
	"github.com/i474232898/space-data-console/internal/space/endpoints"
	"github.com/i474232898/space-data-console/internal/store"
	"github.com/i474232898/space-data-console/internal/transport"
)

var (
	cfg     *config.AppConfig
	catalog []*space.Descriptor
	logs    *store.FileLog
	logger  = zerolog.New(
		zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
)

// rootCmd runs the interactive menu when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "space-data-console",
	Short: "Browse NASA open data from the terminal",
	Long: `space-data-console queries NASA's public APIs (APOD, Mars rover photos,
Earth imagery, near-Earth objects, the Satellite Situation Center, EONET and
DONKI), prints a summary of each response and can append every shown record
to a per-endpoint log that can be replayed later.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		term := console.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
		pipeline := newPipeline(term)
		return console.NewMenu(term, pipeline, catalog, logger).Loop(cmd.Context())
	},
}

// ExecuteContext adds all child commands to the root command and runs it.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(logger)
	if err != nil {
		return err
	}
	cfg = c
	logger = logger.Level(cfg.Level())

	catalog, err = endpoints.Catalog(endpoints.Options{
		NASABaseURL:  cfg.NASABaseURL,
		EONETBaseURL: cfg.EONETBaseURL,
		SSCBaseURL:   cfg.SSCBaseURL,
		SSCWindow:    cfg.SSCWindow,
		Geocoding:    cfg.GeocoderAPIKey != "",
	})
	if err != nil {
		return err
	}

	logs = store.NewFileLog(cfg.LogDir)
	logger.Debug().Str("dir", cfg.LogDir).Int("endpoints", len(catalog)).Msg("configuration loaded")
	return nil
}

func newPipeline(term space.Console) *space.Pipeline {
	client := transport.New(transport.Config{
		Timeout:                cfg.HTTPTimeout,
		MaxConsecutiveFailures: uint32(cfg.CircuitMaxFailures),
		UserAgent:              "space-data-console",
	}, logger)

	opts := []space.Option{
		space.WithLogger(logger),
		space.WithVisualizer(plot.NewGnuplot()),
	}
	if cfg.GeocoderAPIKey != "" {
		opts = append(opts, space.WithGeocoder(geo.NewGoogleGeocoder(cfg.GeocoderAPIKey)))
	}
	return space.NewPipeline(client, logs, term, cfg.APIKey, opts...)
}

func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
