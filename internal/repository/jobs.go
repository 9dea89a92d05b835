package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/cache"
	"github.com/hirenest/jobboard-api/internal/models"
)

// Jobs resolves postings across the two disjoint stores. The paid store is
// always queried first; the free store only answers when the paid one does
// not. Resolution results are immutable, so they are safe to cache.
type Jobs struct {
	db    *gorm.DB
	cache *cache.Cache // nil disables caching
	ttl   time.Duration
	log   *zap.Logger
}

func NewJobs(db *gorm.DB, c *cache.Cache, ttl time.Duration, log *zap.Logger) *Jobs {
	return &Jobs{db: db, cache: c, ttl: ttl, log: log}
}

type resolvedJob struct {
	Posting models.Posting  `json:"posting"`
	Class   models.JobClass `json:"class"`
}

// Resolve finds a posting by id in either store and reports which store
// answered. Returns NotFound when neither has it.
func (r *Jobs) Resolve(ctx context.Context, id uuid.UUID) (*models.Posting, models.JobClass, error) {
	key := cache.JobResolveKey(id.String())

	if r.cache != nil {
		var cached resolvedJob
		if err := r.cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached.Posting, cached.Class, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			r.log.Warn("job cache read failed", zap.Error(err))
		}
	}

	posting, class, err := r.resolveFromStores(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if r.cache != nil {
		if err := r.cache.SetJSON(ctx, key, resolvedJob{Posting: *posting, Class: class}, r.ttl); err != nil {
			r.log.Warn("job cache write failed", zap.Error(err))
		}
	}
	return posting, class, nil
}

func (r *Jobs) resolveFromStores(ctx context.Context, id uuid.UUID) (*models.Posting, models.JobClass, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err == nil {
		return &models.Posting{
			ID:             job.ID,
			OwnerID:        job.UserID,
			JobTitle:       job.JobTitle,
			JobType:        job.JobType,
			JobDescription: job.JobDescription,
			OfferedSalary:  job.OfferedSalary,
			CompanyName:    job.CompanyName,
			City:           job.City,
			Country:        job.Country,
		}, models.JobClassPaid, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperr.Internal("failed to fetch job", err)
	}

	var freeJob models.FreeJob
	err = r.db.WithContext(ctx).First(&freeJob, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperr.NotFound("job not found")
	}
	if err != nil {
		return nil, "", apperr.Internal("failed to fetch free job", err)
	}
	return &models.Posting{
		ID:             freeJob.ID,
		OwnerID:        freeJob.UserID,
		JobTitle:       freeJob.JobTitle,
		JobType:        freeJob.JobType,
		JobDescription: freeJob.JobDescription,
		OfferedSalary:  freeJob.OfferedSalary,
		CompanyName:    freeJob.CompanyName,
		City:           freeJob.City,
		Country:        freeJob.Country,
	}, models.JobClassFree, nil
}

// ListByOwner returns everything an employer has posted, from both stores.
func (r *Jobs) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Job, []models.FreeJob, error) {
	var jobs []models.Job
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&jobs).Error; err != nil {
		return nil, nil, apperr.Internal("failed to list jobs", err)
	}
	var freeJobs []models.FreeJob
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&freeJobs).Error; err != nil {
		return nil, nil, apperr.Internal("failed to list free jobs", err)
	}
	return jobs, freeJobs, nil
}

// ListPaidIDsByOwner returns ids of paid postings owned by the employer.
// Shortlist views only consider the paid store.
func (r *Jobs) ListPaidIDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperr.Internal("failed to list job ids", err)
	}
	return ids, nil
}

// AllIDsByOwner returns ids of every posting the employer owns, across
// both stores.
func (r *Jobs) AllIDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := r.ListPaidIDsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	var freeIDs []uuid.UUID
	err = r.db.WithContext(ctx).Model(&models.FreeJob{}).
		Where("user_id = ?", userID).
		Pluck("id", &freeIDs).Error
	if err != nil {
		return nil, apperr.Internal("failed to list free job ids", err)
	}
	return append(ids, freeIDs...), nil
}

func (r *Jobs) ListFree(ctx context.Context) ([]models.FreeJob, error) {
	var freeJobs []models.FreeJob
	if err := r.db.WithContext(ctx).Find(&freeJobs).Error; err != nil {
		return nil, apperr.Internal("failed to list free jobs", err)
	}
	return freeJobs, nil
}

// CreateFreeWithDebit publishes a free job and debits the plan's posting
// credit in one transaction. Same conditional-decrement shape as the apply
// path: the plan row is only touched while its counter is positive.
func (r *Jobs) CreateFreeWithDebit(ctx context.Context, job *models.FreeJob) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Plan{}).
			Where("id = ? AND free_jobs > 0", job.PlanID).
			UpdateColumn("free_jobs", gorm.Expr("free_jobs - 1"))
		if res.Error != nil {
			return apperr.Internal("failed to debit plan", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.InsufficientBalance("no free jobs available in the selected plan")
		}

		if err := tx.Create(job).Error; err != nil {
			return apperr.Internal("failed to create free job", err)
		}
		return nil
	})
}
