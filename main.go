package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/trendpulse/viral-engine/actions"
	"github.com/trendpulse/viral-engine/cache"
	"github.com/trendpulse/viral-engine/client"
	"github.com/trendpulse/viral-engine/config"
	"github.com/trendpulse/viral-engine/detector"
	"github.com/trendpulse/viral-engine/model"
	"github.com/trendpulse/viral-engine/server"
)

var (
	configPath string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "viral-engine",
		Short: "YouTube rising-video and viral-shorts detection engine",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(serveCmd(), risingCmd(), shortsCmd(), trendingCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// buildEngine wires the cache, client, detector and action layer from
// configuration and connects the YouTube client.
func buildEngine(ctx context.Context) (*actions.Actions, *cache.Cache, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	ytClient, err := client.NewYouTubeDataClient(cfg.YouTubeAPIKey, cfg.Region, cfg.Language)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := ytClient.Connect(ctx); err != nil {
		return nil, nil, nil, err
	}

	opts := detector.Options{
		RisingWindow:     cfg.RisingWindow,
		RisingMaxResults: cfg.RisingMaxResults,
		RisingTTL:        cfg.RisingTTL,
		ShortsWindow:     cfg.ShortsWindow,
		ShortsMaxResults: cfg.ShortsMaxResults,
		ShortsTTL:        cfg.ShortsTTL,
		TrendingTTL:      cfg.TrendingTTL,
		TierRules:        cfg.TierRules,
	}
	if len(cfg.DefaultKeywords) > 0 {
		opts.Keywords = detector.NewRandomKeywordSource(cfg.DefaultKeywords)
	}

	c := cache.New()
	d := detector.New(ytClient, c, opts)
	return actions.New(d, c), c, cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine, c, cfg, err := buildEngine(ctx)
			if err != nil {
				return err
			}

			go c.RunJanitor(ctx, cfg.JanitorInterval)

			srv := server.New(cfg.ListenAddr, engine)
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				log.Info().Msg("Shutting down")
				return srv.Shutdown(context.Background())
			}
		},
	}
}

func risingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rising <keyword>",
		Short: "Detect rising videos for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, _, _, err := buildEngine(ctx)
			if err != nil {
				return err
			}

			result, err := engine.GetRisingVideos(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func shortsCmd() *cobra.Command {
	var tiers []string
	cmd := &cobra.Command{
		Use:   "shorts [keyword]",
		Short: "Detect viral short-form videos",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, _, _, err := buildEngine(ctx)
			if err != nil {
				return err
			}

			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}

			var tierFilter []model.ViralTier
			for _, t := range tiers {
				switch tier := model.ViralTier(strings.TrimSpace(t)); tier {
				case model.TierMega, model.TierHigh, model.TierRising:
					tierFilter = append(tierFilter, tier)
				default:
					return fmt.Errorf("unknown tier: %s", t)
				}
			}

			result, err := engine.GetViralShorts(ctx, keyword, tierFilter)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringSliceVar(&tiers, "tiers", nil, "Only include these viral tiers (mega,high,rising)")
	return cmd
}

func trendingCmd() *cobra.Command {
	var categoryID string
	var maxResults int64
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Fetch the trending chart for a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, _, _, err := buildEngine(ctx)
			if err != nil {
				return err
			}

			videos, err := engine.GetTrendingVideos(ctx, categoryID, maxResults)
			if err != nil {
				return err
			}
			return printJSON(videos)
		},
	}
	cmd.Flags().StringVar(&categoryID, "category", "0", "YouTube video category ID (0 = all)")
	cmd.Flags().Int64Var(&maxResults, "max", 10, "Maximum number of videos")
	return cmd
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
