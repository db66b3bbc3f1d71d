package distance_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspsearch/distance"
)

var (
	hanoi  = distance.City{Name: "Hà Nội", Lat: 21.0285, Lng: 105.8542}
	hcmc   = distance.City{Name: "TP.HCM", Lat: 10.8231, Lng: 106.6297}
	hue    = distance.City{Name: "Huế", Lat: 16.4637, Lng: 107.5909}
	cities = []distance.City{hanoi, hue, hcmc}
)

func TestHaversine(t *testing.T) {
	t.Parallel()
	km := distance.Haversine(hanoi.Lat, hanoi.Lng, hcmc.Lat, hcmc.Lng)
	assert.InDelta(t, 1137, km, 10)
	assert.Zero(t, distance.Haversine(1, 2, 1, 2))
	assert.InDelta(t, km, distance.Haversine(hcmc.Lat, hcmc.Lng, hanoi.Lat, hanoi.Lng), 1e-9)
}

func TestGeodesic(t *testing.T) {
	t.Parallel()
	base := distance.Haversine(hanoi.Lat, hanoi.Lng, hue.Lat, hue.Lng)

	km, err := distance.Geodesic{}.Distance(context.Background(), hanoi, hue)
	require.NoError(t, err)
	assert.InDelta(t, base*distance.DefaultRoadFactor, km, 1e-9)

	km, err = distance.Geodesic{Multiplier: 2}.Distance(context.Background(), hanoi, hue)
	require.NoError(t, err)
	assert.InDelta(t, base*2, km, 1e-9)
}

func TestCity_Validate(t *testing.T) {
	t.Parallel()
	require.NoError(t, hanoi.Validate())
	require.ErrorIs(t, distance.City{Name: "x", Lat: 91}.Validate(), distance.ErrInvalidCoordinate)
	require.ErrorIs(t, distance.City{Lat: 1}.Validate(), distance.ErrInvalidCoordinate)
	assert.Equal(t, []string{"Hà Nội", "Huế", "TP.HCM"}, distance.Names(cities))
}

// osrmServer answers every route with metres = 1000 × (len(path) mod 97).
func osrmServer(t *testing.T, hits *atomic.Int32, code string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "false", r.URL.Query().Get("overview"))
		assert.True(t, strings.HasPrefix(r.URL.Path, "/route/v1/driving/"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"code":%q,"routes":[{"distance":%d}]}`, code, 1000*(len(r.URL.Path)%97))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestOSRM_Distance(t *testing.T) {
	t.Parallel()
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":1650500.0}]}`)
	}))
	defer srv.Close()

	o := distance.NewOSRM(distance.OSRMConfig{BaseURL: srv.URL + "/route/v1/driving/", Interval: -1})
	km, err := o.Distance(context.Background(), hanoi, hcmc)
	require.NoError(t, err)
	assert.InDelta(t, 1650.5, km, 1e-9)
	assert.Equal(t, "/route/v1/driving/105.8542,21.0285;106.6297,10.8231", <-paths)
}

func TestOSRM_Failures(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32

	noRoute := osrmServer(t, &hits, "NoRoute")
	o := distance.NewOSRM(distance.OSRMConfig{BaseURL: noRoute.URL + "/route/v1/driving", Interval: -1})
	_, err := o.Distance(context.Background(), hanoi, hcmc)
	require.ErrorIs(t, err, distance.ErrNoRoute)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "busy", http.StatusTooManyRequests)
	}))
	defer down.Close()
	o = distance.NewOSRM(distance.OSRMConfig{BaseURL: down.URL, Interval: -1})
	_, err = o.Distance(context.Background(), hanoi, hcmc)
	require.ErrorIs(t, err, distance.ErrUpstream)

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()
	o = distance.NewOSRM(distance.OSRMConfig{BaseURL: slow.URL, Timeout: 20 * time.Millisecond, Interval: -1})
	_, err = o.Distance(context.Background(), hanoi, hcmc)
	require.Error(t, err)
}

func TestBuilder_PrimaryThenMemo(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := osrmServer(t, &hits, "Ok")
	var lookups atomic.Int32

	b := distance.NewBuilder(distance.BuilderConfig{
		Primary:     distance.NewOSRM(distance.OSRMConfig{BaseURL: srv.URL + "/route/v1/driving", Interval: -1}),
		Concurrency: 3,
		OnLookup:    func(distance.Source) { lookups.Add(1) },
	})

	m, st, err := b.Build(context.Background(), cities)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Pairs)
	assert.Equal(t, 6, st.Primary)
	assert.Equal(t, int32(6), hits.Load())
	assert.Equal(t, int32(6), lookups.Load())
	for i := 0; i < 3; i++ {
		v, err := m.At(i, i)
		require.NoError(t, err)
		assert.Zero(t, v)
	}

	again, st, err := b.Build(context.Background(), cities)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Memo)
	assert.Equal(t, int32(6), hits.Load(), "memo answers without calling the provider")
	assert.Equal(t, m.Data(), again.Data())

	b.Forget()
	_, st, err = b.Build(context.Background(), cities)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Primary)
}

func TestBuilder_FallbackAndCache(t *testing.T) {
	t.Parallel()
	cache, err := distance.OpenBadger(distance.BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	failing := distance.ProviderFunc(func(context.Context, distance.City, distance.City) (float64, error) {
		return 0, errors.New("router down")
	})
	b := distance.NewBuilder(distance.BuilderConfig{Primary: failing, Cache: cache})

	m, st, err := b.Build(context.Background(), cities)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Fallback)
	want, _ := distance.Geodesic{}.Distance(context.Background(), hanoi, hue)
	got, err := m.At(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)

	// A fresh builder sharing the cache reads every entry back.
	b2 := distance.NewBuilder(distance.BuilderConfig{Primary: failing, Cache: cache})
	m2, st, err := b2.Build(context.Background(), cities)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Cache)
	assert.Equal(t, m.Data(), m2.Data())

	stats, err := cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Entries)
	assert.Equal(t, uint64(6), stats.Hits)
	assert.Equal(t, uint64(6), stats.Misses)

	require.NoError(t, cache.Clear())
	stats, err = cache.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Entries)
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()
	b := distance.NewBuilder(distance.BuilderConfig{})

	_, _, err := b.Build(context.Background(), nil)
	require.ErrorIs(t, err, distance.ErrNoCities)
	_, _, err = b.Build(context.Background(), []distance.City{hanoi, hanoi})
	require.ErrorIs(t, err, distance.ErrDuplicateCity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = b.Build(ctx, cities)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBadgerCache_RoundTrip(t *testing.T) {
	t.Parallel()
	cache, err := distance.OpenBadger(distance.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Get("A", "B")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put("A", "B", 12.5))
	km, ok, err := cache.Get("A", "B")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12.5, km)

	_, ok, err = cache.Get("B", "A")
	require.NoError(t, err)
	assert.False(t, ok, "entries are directional")
	assert.Equal(t, "A__to__B", distance.CacheKey("A", "B"))

	_, err = distance.OpenBadger(distance.BadgerConfig{})
	require.Error(t, err)
}

func TestRandomCities(t *testing.T) {
	t.Parallel()
	a := distance.RandomCities(8, 7)
	b := distance.RandomCities(8, 7)
	require.Len(t, a, 8)
	assert.Equal(t, a, b)
	assert.Equal(t, "C01", a[0].Name)
	for _, c := range a {
		require.NoError(t, c.Validate())
	}
	assert.NotEqual(t, a, distance.RandomCities(8, 8))
}
