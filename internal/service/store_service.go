package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"fitflow/internal/domain"
	"fitflow/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrDuplicateEmail       = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrNotAuthenticated     = errors.New("no authenticated user")
	ErrPlanNotFound         = errors.New("plan or day not found")
)

// StoreService owns authentication, per-user data isolation and durable
// persistence. One instance is constructed at process start and injected
// into every consumer; there is no ambient singleton.
type StoreService interface {
	Register(ctx context.Context, name, email, password string) (*domain.UserAccount, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error

	UpdateProfile(ctx context.Context, profile domain.UserProfile) error
	AddPlan(ctx context.Context, plan domain.WorkoutPlan) error
	DeletePlan(ctx context.Context, id string) error
	SetActivePlan(ctx context.Context, id string) error
	SaveSession(ctx context.Context, session domain.WorkoutSession) error

	// State returns a snapshot of the full user state.
	State() domain.UserState
	// ResolveDay looks up a plan/day pair for the session engine.
	// Returns ErrPlanNotFound when either does not resolve, e.g. the plan
	// was deleted after the workout screen was opened.
	ResolveDay(planID, dayID string) (*domain.WorkoutPlan, *domain.WorkoutDay, error)
}

// storeService implements StoreService. All mutations hold the mutex; the
// semantics stay those of the single-threaded original (last write wins,
// no transactions across keys).
type storeService struct {
	mu sync.Mutex

	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	dataRepo    repository.UserDataRepository
	codec       CredentialCodec

	registeredUsers  []domain.UserAccount
	currentUserEmail string
	isAuthenticated  bool
	profile          *domain.UserProfile
	plans            []domain.WorkoutPlan
	sessions         []domain.WorkoutSession
}

// NewStoreService constructs the store and hydrates it from durable
// storage: the registered-user list always, plus the data blob of the
// persisted session pointer when it names a known user. A stale pointer
// (user no longer registered) is cleared. Malformed persisted data never
// fails startup; the affected fields reset to empty defaults.
func NewStoreService(
	ctx context.Context,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	dataRepo repository.UserDataRepository,
	codec CredentialCodec,
) (StoreService, error) {
	s := &storeService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		dataRepo:    dataRepo,
		codec:       codec,
		plans:       []domain.WorkoutPlan{},
		sessions:    []domain.WorkoutSession{},
	}

	users, err := userRepo.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrMalformedData) {
			return nil, err
		}
		log.Printf("WARN: registered-user list is malformed, resetting to empty")
		users = []domain.UserAccount{}
	}
	s.registeredUsers = users

	email, err := sessionRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s, nil
		}
		return nil, err
	}

	account := s.findAccount(email)
	if account == nil {
		// Session pointer survives from a user that no longer exists.
		if err := sessionRepo.Clear(ctx); err != nil {
			log.Printf("WARN: failed to clear stale session pointer: %v", err)
		}
		return s, nil
	}

	s.currentUserEmail = email
	s.isAuthenticated = true
	s.loadUserData(ctx, account)
	return s, nil
}

// loadUserData swaps in the persisted blob for account, falling back to
// profile defaults when the blob is missing or malformed. Caller holds no
// lock yet (construction) or the lock (login).
func (s *storeService) loadUserData(ctx context.Context, account *domain.UserAccount) {
	data, err := s.dataRepo.Load(ctx, account.Email)
	if err != nil {
		if errors.Is(err, repository.ErrMalformedData) {
			log.Printf("WARN: persisted data for %s is malformed, resetting", account.Email)
		} else if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("WARN: failed to load data for %s: %v", account.Email, err)
		}
		data = &domain.UserData{}
	}

	if data.Profile == nil {
		p := domain.DefaultProfile(account.Name)
		data.Profile = &p
	}
	if data.Plans == nil {
		data.Plans = []domain.WorkoutPlan{}
	}
	if data.Sessions == nil {
		data.Sessions = []domain.WorkoutSession{}
	}

	s.profile = data.Profile
	s.plans = data.Plans
	s.sessions = data.Sessions
}

// persistUserData writes the authenticated user's blob. Best effort: a
// failed write is logged and in-memory state stays authoritative for the
// rest of the process lifetime.
func (s *storeService) persistUserData(ctx context.Context) {
	if !s.isAuthenticated {
		return
	}
	data := &domain.UserData{
		Profile:  s.profile,
		Plans:    s.plans,
		Sessions: s.sessions,
	}
	if err := s.dataRepo.Save(ctx, s.currentUserEmail, data); err != nil {
		log.Printf("ERROR: failed to persist data for %s: %v", s.currentUserEmail, err)
	}
}

func (s *storeService) findAccount(email string) *domain.UserAccount {
	for i := range s.registeredUsers {
		if s.registeredUsers[i].Email == email {
			return &s.registeredUsers[i]
		}
	}
	return nil
}

func (s *storeService) Register(ctx context.Context, name, email, password string) (*domain.UserAccount, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email, and password cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(email) != nil {
		return nil, ErrDuplicateEmail
	}

	stored, err := s.codec.Encode(password)
	if err != nil {
		return nil, err
	}

	account := domain.UserAccount{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: stored,
	}
	users := append(append([]domain.UserAccount{}, s.registeredUsers...), account)

	// The user list is the source of truth for authentication; if it
	// cannot be written the registration did not happen.
	if err := s.userRepo.Save(ctx, users); err != nil {
		return nil, err
	}
	s.registeredUsers = users

	profile := domain.DefaultProfile(name)
	s.currentUserEmail = email
	s.isAuthenticated = true
	s.profile = &profile
	s.plans = []domain.WorkoutPlan{}
	s.sessions = []domain.WorkoutSession{}

	if err := s.sessionRepo.Set(ctx, email); err != nil {
		log.Printf("ERROR: failed to persist session pointer: %v", err)
	}
	s.persistUserData(ctx)

	return &account, nil
}

func (s *storeService) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.findAccount(email)
	if account == nil || !s.codec.Verify(account.Password, password) {
		// No state change and no hint about which field was wrong.
		return ErrAuthenticationFailed
	}

	s.currentUserEmail = email
	s.isAuthenticated = true
	s.loadUserData(ctx, account)

	if err := s.sessionRepo.Set(ctx, email); err != nil {
		log.Printf("ERROR: failed to persist session pointer: %v", err)
	}
	return nil
}

func (s *storeService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessionRepo.Clear(ctx); err != nil {
		log.Printf("ERROR: failed to clear session pointer: %v", err)
	}

	// The durable blob stays; only the in-memory view is reset.
	s.currentUserEmail = ""
	s.isAuthenticated = false
	s.profile = nil
	s.plans = []domain.WorkoutPlan{}
	s.sessions = []domain.WorkoutSession{}
	return nil
}

func (s *storeService) UpdateProfile(ctx context.Context, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isAuthenticated {
		return ErrNotAuthenticated
	}
	if profile.Equipment == nil {
		profile.Equipment = []string{}
	}
	s.profile = &profile
	s.persistUserData(ctx)
	return nil
}

func (s *storeService) AddPlan(ctx context.Context, plan domain.WorkoutPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isAuthenticated {
		return ErrNotAuthenticated
	}

	existing := make([]domain.WorkoutPlan, len(s.plans))
	copy(existing, s.plans)
	if plan.IsActive {
		for i := range existing {
			existing[i].IsActive = false
		}
	}
	s.plans = append([]domain.WorkoutPlan{plan}, existing...)
	s.persistUserData(ctx)
	return nil
}

func (s *storeService) DeletePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isAuthenticated {
		return ErrNotAuthenticated
	}

	// Sessions referencing the deleted plan are kept; readers treat the
	// unresolved reference as not-found.
	kept := make([]domain.WorkoutPlan, 0, len(s.plans))
	for _, p := range s.plans {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.plans = kept
	s.persistUserData(ctx)
	return nil
}

func (s *storeService) SetActivePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isAuthenticated {
		return ErrNotAuthenticated
	}

	found := false
	for i := range s.plans {
		if s.plans[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		// Unknown id is a no-op: the active set stays as it was.
		return nil
	}
	for i := range s.plans {
		s.plans[i].IsActive = s.plans[i].ID == id
	}
	s.persistUserData(ctx)
	return nil
}

func (s *storeService) SaveSession(ctx context.Context, session domain.WorkoutSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isAuthenticated {
		return ErrNotAuthenticated
	}
	s.sessions = append([]domain.WorkoutSession{session}, s.sessions...)
	s.persistUserData(ctx)
	return nil
}

func (s *storeService) State() domain.UserState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.UserState{
		RegisteredUsers:  append([]domain.UserAccount{}, s.registeredUsers...),
		CurrentUserEmail: s.currentUserEmail,
		IsAuthenticated:  s.isAuthenticated,
		Plans:            append([]domain.WorkoutPlan{}, s.plans...),
		Sessions:         append([]domain.WorkoutSession{}, s.sessions...),
	}
	if s.profile != nil {
		p := *s.profile
		state.Profile = &p
	}
	return state
}

func (s *storeService) ResolveDay(planID, dayID string) (*domain.WorkoutPlan, *domain.WorkoutDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID != planID {
			continue
		}
		plan := s.plans[i]
		day := plan.Day(dayID)
		if day == nil {
			return nil, nil, ErrPlanNotFound
		}
		dayCopy := *day
		return &plan, &dayCopy, nil
	}
	return nil, nil, ErrPlanNotFound
}
