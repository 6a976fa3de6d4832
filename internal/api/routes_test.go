package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitflow/internal/api"
	"fitflow/internal/domain"
	"fitflow/internal/repository"
	"fitflow/internal/service"
	"fitflow/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// In-memory repositories for full-router tests.

type memUserRepo struct{ users []domain.UserAccount }

func (r *memUserRepo) Load(context.Context) ([]domain.UserAccount, error) {
	return append([]domain.UserAccount{}, r.users...), nil
}
func (r *memUserRepo) Save(_ context.Context, users []domain.UserAccount) error {
	r.users = append([]domain.UserAccount{}, users...)
	return nil
}

type memSessionRepo struct{ email string }

func (r *memSessionRepo) Get(context.Context) (string, error) {
	if r.email == "" {
		return "", repository.ErrNotFound
	}
	return r.email, nil
}
func (r *memSessionRepo) Set(_ context.Context, email string) error { r.email = email; return nil }
func (r *memSessionRepo) Clear(context.Context) error               { r.email = ""; return nil }

type memDataRepo struct{ blobs map[string]*domain.UserData }

func (r *memDataRepo) Load(_ context.Context, email string) (*domain.UserData, error) {
	data, ok := r.blobs[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *data
	return &clone, nil
}
func (r *memDataRepo) Save(_ context.Context, email string, data *domain.UserData) error {
	clone := *data
	r.blobs[email] = &clone
	return nil
}

type testApp struct {
	router   *gin.Engine
	store    service.StoreService
	workouts *session.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := service.NewCredentialCodec("plaintext")
	require.NoError(t, err)
	store, err := service.NewStoreService(
		context.Background(),
		&memUserRepo{},
		&memSessionRepo{},
		&memDataRepo{blobs: make(map[string]*domain.UserData)},
		codec,
	)
	require.NoError(t, err)

	workouts := session.NewManager(store)
	t.Cleanup(workouts.Shutdown)

	router := gin.New()
	api.SetupRoutes(router, "test-secret", time.Hour, store, workouts, nil, service.NewExerciseService())
	return &testApp{router: router, store: store, workouts: workouts}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) register(t *testing.T, name, email, password string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func planBody() gin.H {
	return gin.H{
		"name":     "Upper Lower",
		"isActive": true,
		"days": []gin.H{
			{
				"name": "Day A - Upper",
				"exercises": []gin.H{
					{"exerciseName": "Bench Press", "sets": 2, "reps": "8-12", "weight": 50, "restSeconds": 60},
				},
			},
		},
	}
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	app := newTestApp(t)

	token := app.register(t, "Ana", "ana@example.com", "secret1")

	w := app.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Impostor", "email": "ana@example.com", "password": "other1",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, app.store.State().IsAuthenticated)

	w = app.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestStateRequiresMatchingActiveSession(t *testing.T) {
	app := newTestApp(t)

	anaToken := app.register(t, "Ana", "ana@example.com", "secret1")
	_ = app.register(t, "Bob", "bob@example.com", "secret2")

	// Bob is the active device session now; Ana's token is stale.
	w := app.do(t, http.MethodGet, "/api/v1/state", anaToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStateRedactsCredentials(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "Ana", "ana@example.com", "secret1")

	w := app.do(t, http.MethodGet, "/api/v1/state", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "secret1")

	var state struct {
		Profile struct {
			Goal string `json:"goal"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Equal(t, "hypertrophy", state.Profile.Goal)
}

func TestPlanLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "Ana", "ana@example.com", "secret1")

	w := app.do(t, http.MethodPost, "/api/v1/plans", token, planBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var plan domain.WorkoutPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.NotEmpty(t, plan.ID)
	require.True(t, plan.IsActive)

	w = app.do(t, http.MethodPost, "/api/v1/plans/missing/activate", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.True(t, app.store.State().Plans[0].IsActive, "unknown id changes nothing")

	w = app.do(t, http.MethodDelete, "/api/v1/plans/"+plan.ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, app.store.State().Plans)
}

func TestGenerateUnavailableWithoutConfiguredGenerator(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "Ana", "ana@example.com", "secret1")

	w := app.do(t, http.MethodPost, "/api/v1/plans/generate", token, nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWorkoutFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "Ana", "ana@example.com", "secret1")

	w := app.do(t, http.MethodPost, "/api/v1/plans", token, planBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var plan domain.WorkoutPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

	w = app.do(t, http.MethodPost, "/api/v1/workouts/start", token, gin.H{
		"planId": "missing", "dayId": "missing",
	})
	require.Equal(t, http.StatusNotFound, w.Code, "deleted plan refuses to start")

	w = app.do(t, http.MethodPost, "/api/v1/workouts/start", token, gin.H{
		"planId": plan.ID, "dayId": plan.Days[0].ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Finish before completing every set is rejected.
	w = app.do(t, http.MethodPost, "/api/v1/workouts/current/finish", token, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/workouts/current/sets/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Equal(t, []int{1}, snap.SetsCompleted)
	require.True(t, snap.IsResting)

	// Completing a set mid-rest is an invalid transition.
	w = app.do(t, http.MethodPost, "/api/v1/workouts/current/sets/complete", token, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/workouts/current/rest/skip", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/workouts/current/sets/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/workouts/current/finish", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var summary domain.WorkoutSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 1, summary.CompletedExercises)
	require.Equal(t, 1, summary.TotalExercises)

	require.Len(t, app.store.State().Sessions, 1)

	w = app.do(t, http.MethodGet, "/api/v1/workouts/current", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestExerciseCatalog(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "Ana", "ana@example.com", "secret1")

	w := app.do(t, http.MethodGet, "/api/v1/exercises", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var catalog []domain.Exercise
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	require.NotEmpty(t, catalog)

	w = app.do(t, http.MethodGet, "/api/v1/exercises/"+catalog[0].ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/exercises/nope", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/state", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/state", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
