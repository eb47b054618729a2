package session

import (
	"context"
	"sync"
	"time"

	"hotelsa/models"
	"hotelsa/services/flags"
	"hotelsa/services/identity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager tracks the live app sessions, at most one per device.
type Manager struct {
	identities identity.Backend
	flags      flags.Store
	logger     *zap.Logger
	idleTTL    time.Duration

	mu       sync.RWMutex
	sessions map[string]*AppSession // by session ID
	byDevice map[string]string      // device ID -> session ID
}

func NewManager(identities identity.Backend, store flags.Store, idleTTL time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		identities: identities,
		flags:      store,
		logger:     logger,
		idleTTL:    idleTTL,
		sessions:   make(map[string]*AppSession),
		byDevice:   make(map[string]string),
	}
}

// Start opens an app session for device, replacing any session the device
// already had. The onboarding flag is read once here; if it cannot be read
// the device is shown onboarding again.
func (m *Manager) Start(ctx context.Context, device models.Device) (*AppSession, error) {
	onboarded, err := flags.OnboardingComplete(ctx, m.flags, device.DeviceID)
	if err != nil {
		m.logger.Warn("Start: onboarding flag unavailable", zap.String("deviceID", device.DeviceID), zap.Error(err))
		onboarded = false
	}

	provider := m.identities.Session(device.DeviceID)
	s := newAppSession(uuid.NewString(), device, provider, m.flags, onboarded, m.logger)
	go s.run()
	s.attach()

	m.mu.Lock()
	var previous *AppSession
	if oldID, ok := m.byDevice[device.DeviceID]; ok {
		previous = m.sessions[oldID]
		delete(m.sessions, oldID)
	}
	m.sessions[s.ID] = s
	m.byDevice[device.DeviceID] = s.ID
	m.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
	m.logger.Info("App session started",
		zap.String("sessionID", s.ID),
		zap.String("deviceID", device.DeviceID),
		zap.Bool("onboardingComplete", onboarded))
	return s, nil
}

// Get returns a live session.
func (m *Manager) Get(id string) (*AppSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// End closes the session. It reports whether the session was live.
func (m *Manager) End(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		m.remove(s)
	}
	m.mu.Unlock()
	if ok {
		s.Close()
	}
	return ok
}

// remove drops s from the indexes. Caller holds m.mu.
func (m *Manager) remove(s *AppSession) {
	delete(m.sessions, s.ID)
	if m.byDevice[s.Device.DeviceID] == s.ID {
		delete(m.byDevice, s.Device.DeviceID)
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes sessions idle since before now-idleTTL and returns how many
// it closed.
func (m *Manager) Sweep(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-m.idleTTL)

	m.mu.Lock()
	var idle []*AppSession
	for _, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			idle = append(idle, s)
			m.remove(s)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	if len(idle) > 0 {
		m.logger.Info("Idle app sessions closed", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// RunSweeper sweeps idle sessions every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}

// CloseAll ends every session. Used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := make([]*AppSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.sessions = make(map[string]*AppSession)
	m.byDevice = make(map[string]string)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}
