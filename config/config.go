// Package config loads runtime settings for the CLI and HTTP API.
//
// Precedence, lowest first: built-in defaults, YAML file, .env file,
// process environment (TSP_* variables). The result is validated once with
// go-playground/validator before it is handed out.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tspsearch/distance"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full settings tree.
type Config struct {
	Server    ServerConfig   `yaml:"server"`
	OSRM      OSRMConfig     `yaml:"osrm"`
	Cache     CacheConfig    `yaml:"cache"`
	Geodesic  GeodesicConfig `yaml:"geodesic"`
	Search    SearchConfig   `yaml:"search"`
	Log       LogConfig      `yaml:"log"`
	Scenarios []Scenario     `yaml:"scenarios" validate:"min=1,dive"`
}

// ServerConfig is the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`
	// MaxCities caps session city lists; state-space search is exponential.
	MaxCities int `yaml:"max_cities" validate:"min=2,max=64"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

// OSRMConfig is the routing service.
type OSRMConfig struct {
	Enabled  bool          `yaml:"enabled"`
	BaseURL  string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout  time.Duration `yaml:"timeout" validate:"min=0"`
	Interval time.Duration `yaml:"interval"`
	// Concurrency bounds parallel requests while building a matrix.
	Concurrency int `yaml:"concurrency" validate:"min=1,max=32"`
}

// CacheConfig is the persistent distance cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// GeodesicConfig is the fallback estimate.
type GeodesicConfig struct {
	Multiplier float64 `yaml:"multiplier" validate:"gte=1"`
}

// SearchConfig holds solve defaults.
type SearchConfig struct {
	Strategy      string `yaml:"strategy" validate:"oneof=greedy ucs best-first astar"`
	Formulation   string `yaml:"formulation" validate:"oneof=state-space constructive"`
	Start         int    `yaml:"start" validate:"min=0"`
	MaxExpansions int    `yaml:"max_expansions" validate:"min=0"`
	// StepDelay paces printed or streamed traces; the solver never sleeps.
	StepDelay time.Duration `yaml:"step_delay" validate:"min=0"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// Scenario is a named, ordered city list.
type Scenario struct {
	ID     int             `yaml:"id" json:"id" validate:"min=1"`
	Name   string          `yaml:"name" json:"name" validate:"required"`
	Cities []distance.City `yaml:"cities" json:"cities" validate:"min=2,dive"`
}

// Scenario returns the scenario with the given id.
func (c *Config) Scenario(id int) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.ID == id {
			s.Cities = append([]distance.City(nil), s.Cities...)
			return s, true
		}
	}

	return Scenario{}, false
}

// ScenarioIDs returns the ids in ascending order.
func (c *Config) ScenarioIDs() []int {
	ids := make([]int, len(c.Scenarios))
	for i, s := range c.Scenarios {
		ids[i] = s.ID
	}
	sort.Ints(ids)

	return ids
}

var validate = validator.New()

// Validate checks field constraints and scenario id uniqueness.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.OSRM.Enabled && c.OSRM.BaseURL == "" {
		return fmt.Errorf("%w: osrm.base_url is required when osrm is enabled", ErrInvalid)
	}
	if c.Cache.Enabled && !c.Cache.InMemory && c.Cache.Path == "" {
		return fmt.Errorf("%w: cache.path is required for a persistent cache", ErrInvalid)
	}
	seen := make(map[int]struct{}, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: duplicate scenario id %d", ErrInvalid, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	return nil
}

// Load reads path (optional), then envFiles (missing files are skipped),
// then the process environment, and validates the result.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WriteDefault writes the default configuration as YAML.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// applyEnv overlays TSP_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("TSP_SERVER_HOST", &c.Server.Host)
	num("TSP_SERVER_PORT", &c.Server.Port)
	num("TSP_MAX_CITIES", &c.Server.MaxCities)
	flag("TSP_OSRM_ENABLED", &c.OSRM.Enabled)
	str("TSP_OSRM_URL", &c.OSRM.BaseURL)
	dur("TSP_OSRM_TIMEOUT", &c.OSRM.Timeout)
	dur("TSP_OSRM_INTERVAL", &c.OSRM.Interval)
	flag("TSP_CACHE_ENABLED", &c.Cache.Enabled)
	str("TSP_CACHE_PATH", &c.Cache.Path)
	flag("TSP_CACHE_IN_MEMORY", &c.Cache.InMemory)
	str("TSP_STRATEGY", &c.Search.Strategy)
	str("TSP_FORMULATION", &c.Search.Formulation)
	dur("TSP_STEP_DELAY", &c.Search.StepDelay)
	str("TSP_LOG_LEVEL", &c.Log.Level)
	flag("TSP_LOG_JSON", &c.Log.JSON)
	if v, ok := lookup("TSP_GEODESIC_MULTIPLIER"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("TSP_GEODESIC_MULTIPLIER: %w", err))
		} else {
			c.Geodesic.Multiplier = f
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}
