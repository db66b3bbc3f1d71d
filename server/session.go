package server

import (
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/katalvlaran/tspsearch/distance"
)

// SessionHeader carries the session id in both directions.
const SessionHeader = "X-Session-ID"

var (
	errCityNotFound  = errors.New("city not found")
	errTooManyCities = errors.New("too many cities")
)

// session is one client's working city list.
type session struct {
	mu       sync.Mutex
	scenario int
	cities   []distance.City
	seen     time.Time
}

// snapshot returns a copy of the city list and the scenario id.
func (s *session) snapshot() ([]distance.City, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]distance.City(nil), s.cities...), s.scenario
}

// upsert replaces a same-named city or appends a new one.
func (s *session) upsert(c distance.City, max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cities {
		if s.cities[i].Name == c.Name {
			s.cities[i] = c
			return nil
		}
	}
	if len(s.cities) >= max {
		return errTooManyCities
	}
	s.cities = append(s.cities, c)

	return nil
}

func (s *session) remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cities {
		if s.cities[i].Name == name {
			s.cities = append(s.cities[:i], s.cities[i+1:]...)
			return nil
		}
	}

	return errCityNotFound
}

func (s *session) replace(scenario int, cities []distance.City) {
	s.mu.Lock()
	s.scenario = scenario
	s.cities = append([]distance.City(nil), cities...)
	s.mu.Unlock()
}

// sessionStore owns every live session. Sessions idle for longer than ttl
// are dropped lazily on access.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	initial  func() (int, []distance.City)
	now      func() time.Time
}

func newSessionStore(ttl time.Duration, initial func() (int, []distance.City)) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		initial:  initial,
		now:      time.Now,
	}
}

// get returns the session for id. An empty, unknown or expired id gets a new
// session under a freshly issued id; client-chosen ids are never adopted.
func (st *sessionStore) get(id string) (string, *session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	st.pruneLocked(now)

	if s, ok := st.sessions[id]; ok && id != "" {
		s.seen = now
		return id, s
	}
	id = uuid.NewString()
	scenario, cities := st.initial()
	s := &session{scenario: scenario, seen: now}
	s.cities = append([]distance.City(nil), cities...)
	st.sessions[id] = s

	return id, s
}

func (st *sessionStore) pruneLocked(now time.Time) {
	if st.ttl <= 0 {
		return
	}
	for id, s := range st.sessions {
		if now.Sub(s.seen) > st.ttl {
			delete(st.sessions, id)
		}
	}
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	return len(st.sessions)
}

// sessionFrom resolves the request's session and echoes its id.
func (st *sessionStore) sessionFrom(c *gin.Context) (string, *session) {
	id, s := st.get(c.GetHeader(SessionHeader))
	c.Header(SessionHeader, id)

	return id, s
}
