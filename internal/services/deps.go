package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hirenest/jobboard-api/internal/models"
	"github.com/hirenest/jobboard-api/internal/notify"
)

// Storage capabilities the services depend on. The repository package
// implements all of them; tests substitute in-memory fakes.

type PlanStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Plan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
}

type ApplicationStore interface {
	CreateWithDebit(ctx context.Context, app *models.Application, class models.JobClass) error
	DeleteWithRefund(ctx context.Context, userID, postID, planID uuid.UUID, class models.JobClass) error
	Delete(ctx context.Context, userID, postID uuid.UUID) error
	Find(ctx context.Context, userID, postID uuid.UUID) (*models.Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Application, error)
	ListAll(ctx context.Context) ([]models.Application, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByPost(ctx context.Context, postID uuid.UUID) (int64, error)
	ListShortlistedByPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.Application, error)
	CountShortlistedByPosts(ctx context.Context, postIDs []uuid.UUID) (int64, error)
	ListUnseenByPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	MarkSeenByPost(ctx context.Context, postID uuid.UUID) error
}

type JobStore interface {
	Resolve(ctx context.Context, id uuid.UUID) (*models.Posting, models.JobClass, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Job, []models.FreeJob, error)
	ListPaidIDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	AllIDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListFree(ctx context.Context) ([]models.FreeJob, error)
	CreateFreeWithDebit(ctx context.Context, job *models.FreeJob) error
}

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
	ListCandidateTokens(ctx context.Context) ([]string, error)
}

type InterviewStore interface {
	Create(ctx context.Context, interview *models.Interview) error
	Update(ctx context.Context, id uuid.UUID, meetDetails string, ts time.Time) (*models.Interview, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Interview, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Interview, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.Interview, error)
}

type NotificationStore interface {
	Create(ctx context.Context, log *models.NotificationLog) error
	ListAll(ctx context.Context) ([]models.NotificationLog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.NotificationLog, error)
	ListUnreadByEmail(ctx context.Context, email string) ([]models.NotificationLog, error)
	ListUnreadByUser(ctx context.Context, userID uuid.UUID, types []string) ([]models.NotificationLog, error)
	MarkRead(ctx context.Context, logID uuid.UUID, email string) error
}

// Notifier is the outbound side-effect sink. Both calls are fire-and-forget
// from the caller's perspective.
type Notifier interface {
	Email(e notify.Email)
	Push(p notify.Push)
}
