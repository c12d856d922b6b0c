// Package cli wires the caller-facing command surface: search over the
// aggregated sources and per-property analysis. It is a thin caller of the
// core pipeline, not a presentation framework.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/aggregator"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/cache"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/config"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/source"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// app carries the wired pipeline shared by subcommands.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	searchStore cache.Store
	detailStore cache.Store
	fileStore   *cache.FileStore
}

// NewRootCmd creates the root command and wires configuration, logging,
// and the cache tiers for its subcommands.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:     "rwadealtracker",
		Short:   "Real-estate deal aggregation and investment analysis",
		Long:    "RwaDealTracker: aggregate property listings across sources and compute standardized investment metrics",
		Version: ver,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to config file (YAML)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass both cache tiers")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "search cache TTL in seconds (0 = use config default)")

	cmd.AddCommand(newSearchCmd(a), newAnalyzeCmd(a), newCacheCmd(a))

	return cmd
}

// setup loads configuration and builds the logger and cache tiers.
func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if ttl, _ := cmd.Flags().GetInt("cache-ttl"); ttl > 0 {
		cfg.Cache.SearchTTLSeconds = ttl
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger = logger.Level(zerolog.DebugLevel)
	}
	a.logger = logger

	noCache, _ := cmd.Flags().GetBool("no-cache")
	if noCache || !cfg.Cache.Enabled {
		a.searchStore = cache.Disabled{}
		a.detailStore = cache.Disabled{}
		return nil
	}

	// Search results in the volatile tier, detail fetches in the
	// persistent one.
	a.searchStore = cache.NewMemoryStore()

	dir, err := cfg.CacheDir()
	if err != nil {
		return err
	}
	fileStore, err := cache.NewFileStore(dir)
	if err != nil {
		return err
	}
	a.fileStore = fileStore
	a.detailStore = fileStore

	return nil
}

// aggregatorFor builds the aggregator over the configured sources, or the
// offline demo set when demo mode is requested.
func (a *app) aggregatorFor(demo bool) (*aggregator.Aggregator, error) {
	var adapters []source.Adapter

	switch {
	case demo:
		adapters = demoAdapters()
	default:
		if a.cfg.Sources.Residential.BaseURL != "" {
			adapters = append(adapters, source.NewFeedAdapter(
				"HomeScout", source.KindResidential,
				a.cfg.Sources.Residential.BaseURL,
				time.Duration(a.cfg.Sources.Residential.TimeoutSeconds)*time.Second,
			))
		}
		if a.cfg.Sources.Commercial.BaseURL != "" {
			adapters = append(adapters, source.NewFeedAdapter(
				"DealPoint", source.KindCommercial,
				a.cfg.Sources.Commercial.BaseURL,
				time.Duration(a.cfg.Sources.Commercial.TimeoutSeconds)*time.Second,
			))
		}
	}

	if len(adapters) == 0 {
		return nil, fmt.Errorf("no sources configured; set sources.*.base_url in the config file or pass --demo")
	}

	return aggregator.New(
		a.searchStore, a.detailStore,
		a.cfg.Cache.SearchTTLSeconds, a.cfg.Cache.DetailTTLSeconds,
		adapters...,
	), nil
}
