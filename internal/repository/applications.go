package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/models"
)

type Applications struct {
	db *gorm.DB
}

func NewApplications(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

// CreateWithDebit inserts the application and debits the selected plan's
// counter in one transaction. The decrement is conditional on the counter
// still being positive, so two racing applies cannot overdraw a plan; the
// unique index on (user_id, post_id) rejects a racing duplicate insert.
// Both effects commit together or not at all.
func (r *Applications) CreateWithDebit(ctx context.Context, app *models.Application, class models.JobClass) error {
	if app.PlanID == nil {
		return apperr.Internal("application has no plan", nil)
	}
	counter := counterColumn(class)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Plan{}).
			Where("id = ? AND "+counter+" > 0", *app.PlanID).
			UpdateColumn(counter, gorm.Expr(counter+" - 1"))
		if res.Error != nil {
			return apperr.Internal("failed to debit plan", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.InsufficientBalance("user does not have sufficient plan balance")
		}

		if err := tx.Create(app).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("user has already applied for this job")
			}
			return apperr.Internal("failed to create application", err)
		}
		return nil
	})
}

// DeleteWithRefund removes the application and credits the plan counter
// back in one transaction. The delete runs first and the refund only
// happens when it removed a row, so two racing withdrawals of the same
// application cannot both credit the plan. Used only inside the refund
// window; the refund is not capped.
func (r *Applications) DeleteWithRefund(ctx context.Context, userID, postID, planID uuid.UUID, class models.JobClass) error {
	counter := counterColumn(class)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Application{})
		if res.Error != nil {
			return apperr.Internal("failed to delete application", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("no application found for this job")
		}

		upd := tx.Model(&models.Plan{}).
			Where("id = ?", planID).
			UpdateColumn(counter, gorm.Expr(counter+" + 1"))
		if upd.Error != nil {
			return apperr.Internal("failed to refund plan", upd.Error)
		}
		if upd.RowsAffected == 0 {
			return apperr.NotFound("plan not found")
		}
		return nil
	})
}

// Delete removes the application without touching any plan counter.
func (r *Applications) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Application{}).Error
	if err != nil {
		return apperr.Internal("failed to delete application", err)
	}
	return nil
}

func (r *Applications) Find(ctx context.Context, userID, postID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		First(&app, "user_id = ? AND post_id = ?", userID, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no application found for this job")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch application", err)
	}
	return &app, nil
}

func (r *Applications) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("applied job not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch application", err)
	}
	return &app, nil
}

func (r *Applications) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("failed to list applications", err)
	}
	return apps, nil
}

func (r *Applications) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("failed to list applications", err)
	}
	return apps, nil
}

func (r *Applications) ListAll(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("failed to list applications", err)
	}
	return apps, nil
}

func (r *Applications) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, apperr.Internal("failed to count applications", err)
	}
	return count, nil
}

func (r *Applications) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, apperr.Internal("failed to count applications", err)
	}
	return count, nil
}

// ListShortlistedByPosts returns shortlisted applications for any of the
// given postings.
func (r *Applications) ListShortlistedByPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Where("post_id IN ? AND status = ?", postIDs, models.StatusShortlisted).
		Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("failed to list shortlisted applications", err)
	}
	return apps, nil
}

func (r *Applications) CountShortlistedByPosts(ctx context.Context, postIDs []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("post_id IN ? AND status = ?", postIDs, models.StatusShortlisted).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Internal("failed to count shortlisted applications", err)
	}
	return count, nil
}

// ListUnseenByPosts returns not-yet-seen applications for the given
// postings (employer notification feed).
func (r *Applications) ListUnseenByPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Where("post_id IN ? AND seen = false", postIDs).
		Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("failed to list unseen applications", err)
	}
	return apps, nil
}

func (r *Applications) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return apperr.Internal("failed to update status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("applied job not found")
	}
	return nil
}

// MarkSeenByPost flags the application for a posting as seen. Keyed by
// post_id alone; the endpoint carries no applicant parameter, and only a
// single record is flipped per call.
func (r *Applications) MarkSeenByPost(ctx context.Context, postID uuid.UUID) error {
	first := r.db.Model(&models.Application{}).
		Select("id").
		Where("post_id = ?", postID).
		Limit(1)
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = (?)", first).
		Update("seen", true)
	if res.Error != nil {
		return apperr.Internal("failed to update seen status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("record not found")
	}
	return nil
}
