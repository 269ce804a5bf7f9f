package wizard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(f *fixture, cfg ManagerConfig) *Manager {
	return NewManager(f.source, f.booker, f.clock, cfg, nil)
}

func TestManagerOpenAndGet(t *testing.T) {
	f := newFixture()
	mgr := newTestManager(f, DefaultManagerConfig())
	ownerID := uuid.New()

	s := mgr.Open(ownerID)
	require.NotNil(t, s)
	assert.Equal(t, ownerID, s.OwnerID)

	got, err := mgr.Get(s.ID, ownerID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestManagerGetUnknownSession(t *testing.T) {
	f := newFixture()
	mgr := newTestManager(f, DefaultManagerConfig())

	_, err := mgr.Get(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerSessionIsOwnerScoped(t *testing.T) {
	f := newFixture()
	mgr := newTestManager(f, DefaultManagerConfig())

	s := mgr.Open(uuid.New())

	// Another owner cannot see or discard the session.
	_, err := mgr.Get(s.ID, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Discard(s.ID, uuid.New()), ErrSessionNotFound)
}

func TestManagerDiscard(t *testing.T) {
	f := newFixture()
	mgr := newTestManager(f, DefaultManagerConfig())
	ownerID := uuid.New()

	s := mgr.Open(ownerID)
	require.NoError(t, mgr.Discard(s.ID, ownerID))

	_, err := mgr.Get(s.ID, ownerID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Discard(s.ID, ownerID), ErrSessionNotFound)
}

func TestManagerSessionExpires(t *testing.T) {
	f := newFixture()
	cfg := DefaultManagerConfig()
	cfg.SessionTTL = 20 * time.Millisecond
	cfg.CleanupInterval = 5 * time.Millisecond
	mgr := newTestManager(f, cfg)
	ownerID := uuid.New()

	s := mgr.Open(ownerID)

	// An abandoned session ages out together with its draft. Polling Get
	// would refresh the TTL, so wait out the expiry in one shot.
	time.Sleep(60 * time.Millisecond)
	_, err := mgr.Get(s.ID, ownerID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
