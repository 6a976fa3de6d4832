package session

import (
	"context"
	"errors"
	"sync"

	"fitflow/internal/domain"
	"fitflow/internal/service"
)

// --- Error Definitions ---
var (
	ErrSessionInProgress = errors.New("a workout is already in progress")
	ErrNoActiveSession   = errors.New("no workout in progress")
)

// Manager owns the live workout engines, at most one per authenticated
// user. It resolves the (plan, day) pair against the store at start time
// and hands the finalized summary back to the store at finish time.
type Manager struct {
	mu     sync.Mutex
	store  service.StoreService
	active map[string]*runningWorkout
}

type runningWorkout struct {
	engine *Engine
	cancel context.CancelFunc
}

// NewManager creates a Manager backed by store.
func NewManager(store service.StoreService) *Manager {
	return &Manager{
		store:  store,
		active: make(map[string]*runningWorkout),
	}
}

// Start begins a workout for email over the given plan day. Refuses when a
// workout is already running for that user or when the plan/day no longer
// resolves (deleted since the screen was opened).
func (m *Manager) Start(email, planID, dayID string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.active[email]; ok {
		return Snapshot{}, ErrSessionInProgress
	}

	plan, day, err := m.store.ResolveDay(planID, dayID)
	if err != nil {
		return Snapshot{}, err
	}
	engine, err := NewEngine(*plan, *day)
	if err != nil {
		return Snapshot{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.active[email] = &runningWorkout{engine: engine, cancel: cancel}
	go engine.Run(ctx)

	return engine.Snapshot(), nil
}

// Get returns the running engine for email.
func (m *Manager) Get(email string) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rw, ok := m.active[email]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return rw.engine, nil
}

// Finish finalizes the user's workout, persists the summary through the
// store and tears the engine down. The engine is kept when Finish is an
// invalid transition, and torn down once the summary is produced even if
// persistence fails (the store logs and keeps memory authoritative).
func (m *Manager) Finish(ctx context.Context, email string) (domain.WorkoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rw, ok := m.active[email]
	if !ok {
		return domain.WorkoutSession{}, ErrNoActiveSession
	}

	summary, err := rw.engine.Finish()
	if err != nil {
		return domain.WorkoutSession{}, err
	}
	rw.cancel()
	delete(m.active, email)

	if err := m.store.SaveSession(ctx, summary); err != nil {
		return domain.WorkoutSession{}, err
	}
	return summary, nil
}

// Abort tears down the user's workout without emitting a session record.
// Used for navigation away and logout.
func (m *Manager) Abort(email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rw, ok := m.active[email]
	if !ok {
		return ErrNoActiveSession
	}
	rw.cancel()
	delete(m.active, email)
	return nil
}

// Shutdown cancels every running workout timer. Called on server teardown
// so no ticker outlives its owning context.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for email, rw := range m.active {
		rw.cancel()
		delete(m.active, email)
	}
}
