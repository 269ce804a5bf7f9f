package wizard

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/petportal/booking-api/pkg/metrics"
)

type ManagerConfig struct {
	// SessionTTL is how long an idle session survives before its draft is
	// discarded. Refreshed on every access.
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	Session         SessionConfig
}

func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		SessionTTL:      30 * time.Minute,
		CleanupInterval: 10 * time.Minute,
		Session: SessionConfig{
			LoadTimeout: 10 * time.Second,
			ResetDelay:  3 * time.Second,
		},
	}
}

// Manager owns the live wizard sessions. Drafts live only in memory: an
// abandoned wizard simply ages out of the cache.
type Manager struct {
	sessions *cache.Cache
	source   Source
	booker   Booker
	clock    Clock
	cfg      ManagerConfig
	m        *metrics.Metrics
}

func NewManager(source Source, booker Booker, clock Clock, cfg ManagerConfig, m *metrics.Metrics) *Manager {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Manager{
		sessions: cache.New(cfg.SessionTTL, cfg.CleanupInterval),
		source:   source,
		booker:   booker,
		clock:    clock,
		cfg:      cfg,
		m:        m,
	}
}

// Open creates a session for the owner and starts the clinic and pet loads.
func (mgr *Manager) Open(ownerID uuid.UUID) *Session {
	s := NewSession(ownerID, mgr.source, mgr.booker, mgr.clock, mgr.cfg.Session, mgr.m)
	mgr.sessions.SetDefault(s.ID.String(), s)
	s.Start()
	if mgr.m != nil {
		mgr.m.SessionsOpened.Inc()
	}
	return s
}

// Get returns the owner's session and refreshes its TTL. Sessions are
// scoped to the owner that opened them.
func (mgr *Manager) Get(id, ownerID uuid.UUID) (*Session, error) {
	v, ok := mgr.sessions.Get(id.String())
	if !ok {
		return nil, ErrSessionNotFound
	}
	s := v.(*Session)
	if s.OwnerID != ownerID {
		return nil, ErrSessionNotFound
	}
	mgr.sessions.SetDefault(s.ID.String(), s)
	return s, nil
}

// Discard drops the session and its draft outright.
func (mgr *Manager) Discard(id, ownerID uuid.UUID) error {
	if _, err := mgr.Get(id, ownerID); err != nil {
		return err
	}
	mgr.sessions.Delete(id.String())
	if mgr.m != nil {
		mgr.m.SessionsDiscarded.Inc()
	}
	return nil
}
