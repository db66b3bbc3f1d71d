package server

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/tspsearch/config"
	"github.com/katalvlaran/tspsearch/distance"
	"github.com/katalvlaran/tspsearch/logging"
	"github.com/katalvlaran/tspsearch/matrix"
	"github.com/katalvlaran/tspsearch/tsp"
)

// MatrixBuilder resolves a city list into a distance matrix.
type MatrixBuilder interface {
	Build(ctx context.Context, cities []distance.City) (*matrix.Dense, distance.BuildStats, error)
}

// CacheAdmin is the optional cache surface exposed over HTTP.
type CacheAdmin interface {
	Stats() (distance.CacheStats, error)
	Clear() error
}

// Handlers serves the API. Every handler works on the caller's session;
// there is no process-wide city list.
type Handlers struct {
	cfg      *config.Config
	builder  MatrixBuilder
	cache    CacheAdmin
	metrics  *Metrics
	sessions *sessionStore
	log      *slog.Logger
}

// Deps wires NewHandlers.
type Deps struct {
	Config  *config.Config
	Builder MatrixBuilder
	// Cache may be nil; /api/cache/* then answers 503.
	Cache   CacheAdmin
	Metrics *Metrics
	Logger  *slog.Logger
}

// NewHandlers validates deps and applies defaults.
func NewHandlers(d Deps) (*Handlers, error) {
	if d.Config == nil || d.Builder == nil {
		return nil, errors.New("server: config and builder are required")
	}
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}
	cfg := d.Config
	initial := func() (int, []distance.City) {
		s, ok := cfg.Scenario(config.DefaultScenarioID)
		if !ok {
			s = cfg.Scenarios[0]
		}

		return s.ID, append([]distance.City(nil), s.Cities...)
	}

	return &Handlers{
		cfg:      cfg,
		builder:  d.Builder,
		cache:    d.Cache,
		metrics:  d.Metrics,
		sessions: newSessionStore(sessionTTL, initial),
		log:      logging.OrNop(d.Logger),
	}, nil
}

func (h *Handlers) citiesResponse(id string, s *session) CitiesResponse {
	cities, scenario := s.snapshot()

	return CitiesResponse{Success: true, Session: id, Scenario: scenario, Cities: cities}
}

// HandleListCities handles GET /api/cities.
func (h *Handlers) HandleListCities(c *gin.Context) {
	id, s := h.sessions.sessionFrom(c)
	c.JSON(http.StatusOK, h.citiesResponse(id, s))
}

// HandleAddCity handles POST /api/cities. A city with an existing name is
// replaced in place.
func (h *Handlers) HandleAddCity(c *gin.Context) {
	id, s := h.sessions.sessionFrom(c)

	var req AddCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing or invalid city data", Code: "INVALID_REQUEST"})
		return
	}
	city := distance.City{Name: req.Name, Lat: *req.Lat, Lng: *req.Lng}
	if err := s.upsert(city, h.cfg.Server.MaxCities); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "at most " + strconv.Itoa(h.cfg.Server.MaxCities) + " cities per session",
			Code:  "TOO_MANY_CITIES",
		})
		return
	}
	h.log.Debug("city added", "session", id, "city", city.Name)
	c.JSON(http.StatusOK, h.citiesResponse(id, s))
}

// HandleDeleteCity handles DELETE /api/cities/:name.
func (h *Handlers) HandleDeleteCity(c *gin.Context) {
	id, s := h.sessions.sessionFrom(c)
	if err := s.remove(c.Param("name")); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "City not found", Code: "CITY_NOT_FOUND"})
		return
	}
	c.JSON(http.StatusOK, h.citiesResponse(id, s))
}

// HandleListScenarios handles GET /api/scenarios.
func (h *Handlers) HandleListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "scenarios": h.cfg.Scenarios})
}

// HandleSwitchScenario handles POST /api/scenario/:id.
func (h *Handlers) HandleSwitchScenario(c *gin.Context) {
	id, s := h.sessions.sessionFrom(c)
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "scenario id must be an integer", Code: "INVALID_REQUEST"})
		return
	}
	sc, ok := h.cfg.Scenario(n)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Scenario " + c.Param("id") + " not found", Code: "SCENARIO_NOT_FOUND"})
		return
	}
	s.replace(sc.ID, sc.Cities)
	h.log.Info("scenario switched", "session", id, "scenario", sc.ID, "cities", len(sc.Cities))
	c.JSON(http.StatusOK, h.citiesResponse(id, s))
}

// HandleReset handles POST /api/reset.
func (h *Handlers) HandleReset(c *gin.Context) {
	id, s := h.sessions.sessionFrom(c)
	s.replace(h.sessions.initial())
	c.JSON(http.StatusOK, h.citiesResponse(id, s))
}

// HandleSolve handles POST /api/solve.
func (h *Handlers) HandleSolve(c *gin.Context) {
	id, s := h.sessions.sessionFrom(c)
	logger := h.log.With("session", id, "handler", "HandleSolve")

	var req SolveRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	opts, err := h.options(req.Algorithm, req.Formulation)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "UNSUPPORTED_ALGORITHM"})
		return
	}
	cities, _ := s.snapshot()
	if len(cities) < 2 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "at least two cities are required", Code: "TOO_FEW_CITIES"})
		return
	}

	ctx := c.Request.Context()
	m, stats, err := h.builder.Build(ctx, cities)
	if err != nil {
		logger.Error("distance matrix failed", "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: "DISTANCE_FAILED"})
		return
	}

	names := distance.Names(cities)
	var (
		rec    *tsp.Recorder
		onStep tsp.StepFunc
	)
	if !req.NoTrace {
		rec = tsp.NewRecorder()
		onStep = rec.Record
	}
	res, err := tsp.SolveContext(ctx, m, names, req.Start, onStep, opts)
	if err != nil {
		h.metrics.ObserveSolve(res, outcomeFor(err))
		status, code := statusFor(err)
		logger.Warn("solve failed", "strategy", opts.Strategy, "error", err)
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}
	if res.Exhausted() {
		h.metrics.ObserveSolve(res, outcomeExhausted)
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "search exhausted without a tour", Code: "EXHAUSTED"})
		return
	}
	h.metrics.ObserveSolve(res, outcomeOK)

	_, _, display := FormatElapsed(res.Elapsed)
	resp := SolveResponse{
		Success:       true,
		Algorithm:     res.Strategy.String(),
		Title:         res.Strategy.Title(),
		Formulation:   res.Formulation.String(),
		Heuristic:     res.Heuristic.String(),
		Route:         tsp.RouteNames(res.Route, names),
		RouteIndices:  res.Route,
		TotalDistance: res.Cost,
		Steps:         []tsp.Step{},
		Time:          res.Elapsed.Seconds(),
		TimeDisplay:   display,
		NodesExplored: res.NodesExplored,
		Operations:    res.Operations,
		Distances:     stats,
	}
	if rec != nil {
		resp.Steps = rec.Steps()
	}
	logger.Info("solve finished",
		"strategy", res.Strategy, "formulation", res.Formulation,
		"distance_km", res.Cost, "nodes", res.NodesExplored, "ops", res.Operations, "time", display)
	c.JSON(http.StatusOK, resp)
}

// HandleCompare handles POST /api/compare.
func (h *Handlers) HandleCompare(c *gin.Context) {
	id, s := h.sessions.sessionFrom(c)
	logger := h.log.With("session", id, "handler", "HandleCompare")

	var req CompareRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	opts, err := h.options("", req.Formulation)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "UNSUPPORTED_ALGORITHM"})
		return
	}
	cities, _ := s.snapshot()
	if len(cities) < 2 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "at least two cities are required", Code: "TOO_FEW_CITIES"})
		return
	}

	ctx := c.Request.Context()
	m, _, err := h.builder.Build(ctx, cities)
	if err != nil {
		logger.Error("distance matrix failed", "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: "DISTANCE_FAILED"})
		return
	}
	names := distance.Names(cities)
	cmp, err := tsp.Compare(ctx, m, names, req.Start, opts)
	if err != nil {
		status, code := statusFor(err)
		logger.Warn("compare failed", "error", err)
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	resp := CompareResponse{Success: true, Results: make(map[string]CompareEntry, len(cmp.Results))}
	if cmp.OptimalKnown {
		opt := cmp.Optimal
		resp.Optimal = &opt
	}
	for _, r := range cmp.Results {
		h.metrics.ObserveSolve(r, outcomeOK)
		value, unit, display := FormatElapsed(r.Elapsed)
		entry := CompareEntry{
			Distance:    round(r.Cost, 2),
			Time:        value,
			TimeUnit:    unit,
			TimeDisplay: display,
			Nodes:       r.NodesExplored,
			Operations:  r.Operations,
			Route:       tsp.RouteNames(r.Route, names),
		}
		if gap := cmp.Gap(r); !math.IsNaN(gap) {
			entry.Gap = &gap
		}
		title := r.Strategy.Title()
		resp.Order = append(resp.Order, title)
		resp.Results[title] = entry
		logger.Info("strategy compared", "strategy", r.Strategy, "distance_km", r.Cost, "nodes", r.NodesExplored, "time", display)
	}
	c.JSON(http.StatusOK, resp)
}

// HandleCacheStats handles GET /api/cache/stats.
func (h *Handlers) HandleCacheStats(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "distance cache disabled", Code: "CACHE_DISABLED"})
		return
	}
	st, err := h.cache.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "CACHE_FAILED"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// HandleCacheClear handles POST /api/cache/clear.
func (h *Handlers) HandleCacheClear(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "distance cache disabled", Code: "CACHE_DISABLED"})
		return
	}
	if err := h.cache.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "CACHE_FAILED"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Sessions: h.sessions.len()})
}

// options merges request names with configured defaults.
func (h *Handlers) options(algorithm, formulation string) (tsp.Options, error) {
	if algorithm == "" {
		algorithm = h.cfg.Search.Strategy
	}
	if formulation == "" {
		formulation = h.cfg.Search.Formulation
	}
	st, err := tsp.ParseStrategy(algorithm)
	if err != nil {
		return tsp.Options{}, err
	}
	f, err := tsp.ParseFormulation(formulation)
	if err != nil {
		return tsp.Options{}, err
	}

	return tsp.Options{Strategy: st, Formulation: f, MaxExpansions: h.cfg.Search.MaxExpansions}, nil
}

// bindOptional binds a JSON body when one is present; an empty body keeps
// the zero value.
func bindOptional(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}

	return c.ShouldBindJSON(dst)
}

// statusFor maps solver errors onto HTTP statuses and codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, tsp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, tsp.ErrExpansionLimit):
		return http.StatusUnprocessableEntity, "EXPANSION_LIMIT"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return 499, "CANCELLED"
	default:
		return http.StatusInternalServerError, "SOLVE_FAILED"
	}
}

func outcomeFor(err error) string {
	if errors.Is(err, tsp.ErrInvalidInput) {
		return outcomeInvalid
	}

	return outcomeAborted
}
