package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspsearch/config"
	"github.com/katalvlaran/tspsearch/distance"
	"github.com/katalvlaran/tspsearch/logging"
)

// app carries what the persistent flags resolve into.
type app struct {
	configPath string
	envFiles   []string
	logLevel   string
	offline    bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "tspsearch",
		Short:         "Solve small TSP instances with Greedy, UCS and A* search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file (defaults are built in)")
	pf.StringSliceVar(&a.envFiles, "env", []string{".env"}, ".env files to load; missing files are skipped")
	pf.StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	pf.BoolVar(&a.offline, "offline", false, "never query the routing service; use the geodesic estimate")

	root.AddCommand(
		newSolveCmd(a),
		newCompareCmd(a),
		newServeCmd(a),
		newCacheCmd(a),
		newConfigCmd(a),
	)

	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, a.envFiles...)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{
		Level:   level,
		JSON:    cfg.Log.JSON,
		Service: "tspsearch",
		Output:  cmd.ErrOrStderr(),
	})

	return nil
}

// openCache opens the configured distance cache. It returns nil, nil when
// caching is disabled.
func (a *app) openCache() (*distance.BadgerCache, error) {
	if !a.cfg.Cache.Enabled {
		return nil, nil
	}
	cache, err := distance.OpenBadger(distance.BadgerConfig{
		Path:     a.cfg.Cache.Path,
		InMemory: a.cfg.Cache.InMemory,
		Logger:   a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("open distance cache: %w", err)
	}

	return cache, nil
}

// newBuilder wires the distance source chain: memo, cache, routing
// service, then the geodesic estimate.
func (a *app) newBuilder(cache *distance.BadgerCache, onLookup func(distance.Source)) *distance.Builder {
	bc := distance.BuilderConfig{
		Fallback:    distance.Geodesic{Multiplier: a.cfg.Geodesic.Multiplier},
		Concurrency: a.cfg.OSRM.Concurrency,
		OnLookup:    onLookup,
		Logger:      a.log,
	}
	if cache != nil {
		bc.Cache = cache
	}
	if a.cfg.OSRM.Enabled && !a.offline {
		bc.Primary = distance.NewOSRM(distance.OSRMConfig{
			BaseURL:  a.cfg.OSRM.BaseURL,
			Timeout:  a.cfg.OSRM.Timeout,
			Interval: a.cfg.OSRM.Interval,
		})
	}

	return distance.NewBuilder(bc)
}

// citySource is the shared --scenario / --random selection.
type citySource struct {
	scenario int
	random   int
	seed     uint64
}

func (s *citySource) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&s.scenario, "scenario", config.DefaultScenarioID, "scenario id from the config")
	f.IntVar(&s.random, "random", 0, "use N random cities instead of a scenario")
	f.Uint64Var(&s.seed, "seed", 1, "seed for --random")
}

func (s *citySource) cities(cfg *config.Config) ([]distance.City, error) {
	if s.random > 0 {
		if s.random < 2 {
			return nil, errors.New("--random needs at least 2 cities")
		}
		return distance.RandomCities(s.random, s.seed), nil
	}
	sc, ok := cfg.Scenario(s.scenario)
	if !ok {
		return nil, fmt.Errorf("scenario %d not found (have %v)", s.scenario, cfg.ScenarioIDs())
	}

	return sc.Cities, nil
}

// closeCache logs instead of failing; the command's own result wins.
func (a *app) closeCache(cache *distance.BadgerCache) {
	if cache == nil {
		return
	}
	if err := cache.Close(); err != nil {
		a.log.Warn("close distance cache", "error", err)
	}
}
