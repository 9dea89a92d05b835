package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/models"
	"github.com/hirenest/jobboard-api/internal/notify"
	"github.com/hirenest/jobboard-api/internal/services"
)

// Stubs embed the store interfaces and override only what a test reaches.
// An unstubbed call panics, which is exactly what we want to see.

type stubPlans struct {
	services.PlanStore
	listByUser func(ctx context.Context, userID uuid.UUID) ([]models.Plan, error)
}

func (s stubPlans) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Plan, error) {
	return s.listByUser(ctx, userID)
}

type stubApps struct {
	services.ApplicationStore
	find   func(ctx context.Context, userID, postID uuid.UUID) (*models.Application, error)
	create func(ctx context.Context, app *models.Application, class models.JobClass) error
}

func (s stubApps) Find(ctx context.Context, userID, postID uuid.UUID) (*models.Application, error) {
	return s.find(ctx, userID, postID)
}

func (s stubApps) CreateWithDebit(ctx context.Context, app *models.Application, class models.JobClass) error {
	return s.create(ctx, app, class)
}

type stubJobs struct {
	services.JobStore
	resolve func(ctx context.Context, id uuid.UUID) (*models.Posting, models.JobClass, error)
}

func (s stubJobs) Resolve(ctx context.Context, id uuid.UUID) (*models.Posting, models.JobClass, error) {
	return s.resolve(ctx, id)
}

type stubUsers struct {
	services.UserStore
}

func (stubUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	// Notification lookups fail closed; the service logs and moves on.
	return nil, apperr.NotFound("user not found")
}

type noopNotifier struct{}

func (noopNotifier) Email(notify.Email) {}
func (noopNotifier) Push(notify.Push)   {}

func newTestRouter(t *testing.T, plans services.PlanStore, apps services.ApplicationStore, jobs services.JobStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	appSvc := services.NewApplicationService(plans, apps, jobs, stubUsers{}, noopNotifier{}, log)
	return NewRouter(
		NewApplicationHandler(appSvc),
		NewFreeJobHandler(services.NewFreeJobService(plans, jobs, stubUsers{}, noopNotifier{}, log)),
		NewInterviewHandler(services.NewInterviewService(nil, jobs, stubUsers{}, nil, noopNotifier{}, log)),
		NewNotificationHandler(services.NewNotificationService(nil, stubUsers{}, jobs, apps, log)),
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func activePlan(userID uuid.UUID) models.Plan {
	return models.Plan{
		ID:            uuid.New(),
		UserID:        userID,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(time.Hour),
		ApplyPaidJobs: 1,
		ApplyFreeJobs: 1,
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, stubPlans{}, stubApps{}, stubJobs{})

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestApplyRejectsMissingFields(t *testing.T) {
	router := newTestRouter(t, stubPlans{}, stubApps{}, stubJobs{})

	w := doJSON(t, router, http.MethodPost, "/applied-jobs", gin.H{"user_id": uuid.New().String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user_id and post_id are required")
}

func TestApplySuccess(t *testing.T) {
	userID, postID := uuid.New(), uuid.New()
	plans := stubPlans{listByUser: func(ctx context.Context, id uuid.UUID) ([]models.Plan, error) {
		return []models.Plan{activePlan(userID)}, nil
	}}
	apps := stubApps{
		find: func(ctx context.Context, _, _ uuid.UUID) (*models.Application, error) {
			return nil, apperr.NotFound("no application found for this job")
		},
		create: func(ctx context.Context, app *models.Application, class models.JobClass) error {
			return nil
		},
	}
	jobs := stubJobs{resolve: func(ctx context.Context, id uuid.UUID) (*models.Posting, models.JobClass, error) {
		return &models.Posting{ID: postID, OwnerID: uuid.New(), JobTitle: "Go Engineer"}, models.JobClassPaid, nil
	}}
	router := newTestRouter(t, plans, apps, jobs)

	w := doJSON(t, router, http.MethodPost, "/applied-jobs", gin.H{
		"user_id": userID.String(),
		"post_id": postID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Job application successful")
}

func TestApplyConflictStays400(t *testing.T) {
	userID, postID := uuid.New(), uuid.New()
	plans := stubPlans{listByUser: func(ctx context.Context, id uuid.UUID) ([]models.Plan, error) {
		return []models.Plan{activePlan(userID)}, nil
	}}
	apps := stubApps{find: func(ctx context.Context, _, _ uuid.UUID) (*models.Application, error) {
		return &models.Application{ID: uuid.New(), UserID: userID, PostID: postID}, nil
	}}
	jobs := stubJobs{resolve: func(ctx context.Context, id uuid.UUID) (*models.Posting, models.JobClass, error) {
		return &models.Posting{ID: postID}, models.JobClassPaid, nil
	}}
	router := newTestRouter(t, plans, apps, jobs)

	w := doJSON(t, router, http.MethodPost, "/applied-jobs", gin.H{
		"user_id": userID.String(),
		"post_id": postID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "the API contract keeps conflicts at 400")
	assert.Contains(t, w.Body.String(), "already applied")
}

func TestApplyInsufficientBalance400(t *testing.T) {
	userID, postID := uuid.New(), uuid.New()
	drained := activePlan(userID)
	drained.ApplyPaidJobs = 0
	plans := stubPlans{listByUser: func(ctx context.Context, id uuid.UUID) ([]models.Plan, error) {
		return []models.Plan{drained}, nil
	}}
	apps := stubApps{find: func(ctx context.Context, _, _ uuid.UUID) (*models.Application, error) {
		return nil, apperr.NotFound("no application found for this job")
	}}
	jobs := stubJobs{resolve: func(ctx context.Context, id uuid.UUID) (*models.Posting, models.JobClass, error) {
		return &models.Posting{ID: postID}, models.JobClassPaid, nil
	}}
	router := newTestRouter(t, plans, apps, jobs)

	w := doJSON(t, router, http.MethodPost, "/applied-jobs", gin.H{
		"user_id": userID.String(),
		"post_id": postID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "sufficient plan balance")
}

func TestWithdrawUnknownApplication404(t *testing.T) {
	apps := stubApps{find: func(ctx context.Context, _, _ uuid.UUID) (*models.Application, error) {
		return nil, apperr.NotFound("no application found for this job")
	}}
	router := newTestRouter(t, stubPlans{}, apps, stubJobs{})

	w := doJSON(t, router, http.MethodDelete, "/applied-jobs", gin.H{
		"user_id": uuid.New().String(),
		"post_id": uuid.New().String(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidatePairResponses(t *testing.T) {
	userID, postID := uuid.New(), uuid.New()
	found := stubApps{find: func(ctx context.Context, _, _ uuid.UUID) (*models.Application, error) {
		return &models.Application{ID: uuid.New()}, nil
	}}
	router := newTestRouter(t, stubPlans{}, found, stubJobs{})

	w := doJSON(t, router, http.MethodPost, "/applied-jobs/validate", gin.H{
		"user_id": userID.String(),
		"post_id": postID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true}`, w.Body.String())

	missing := stubApps{find: func(ctx context.Context, _, _ uuid.UUID) (*models.Application, error) {
		return nil, apperr.NotFound("no application found for this job")
	}}
	router = newTestRouter(t, stubPlans{}, missing, stubJobs{})

	w = doJSON(t, router, http.MethodPost, "/applied-jobs/validate", gin.H{
		"user_id": userID.String(),
		"post_id": postID.String(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"valid":false}`, w.Body.String())
}

func TestSetStatusInvalidAction400(t *testing.T) {
	router := newTestRouter(t, stubPlans{}, stubApps{}, stubJobs{})

	w := doJSON(t, router, http.MethodPatch, "/applied-jobs/"+uuid.New().String()+"/status", gin.H{
		"action": "promote",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid action")
}
