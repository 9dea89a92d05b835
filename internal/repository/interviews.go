package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/models"
)

type Interviews struct {
	db *gorm.DB
}

func NewInterviews(db *gorm.DB) *Interviews {
	return &Interviews{db: db}
}

func (r *Interviews) Create(ctx context.Context, interview *models.Interview) error {
	if err := r.db.WithContext(ctx).Create(interview).Error; err != nil {
		return apperr.Internal("failed to create interview", err)
	}
	return nil
}

// Update rewrites the meet details and timestamp, returning the updated
// record.
func (r *Interviews) Update(ctx context.Context, id uuid.UUID, meetDetails string, ts time.Time) (*models.Interview, error) {
	res := r.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"meet_details":        meetDetails,
			"interview_timestamp": ts,
		})
	if res.Error != nil {
		return nil, apperr.Internal("failed to update interview", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("interview not found")
	}
	return r.GetByID(ctx, id)
}

// Delete removes the interview and returns the deleted record so callers
// can still notify both parties.
func (r *Interviews) Delete(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	interview, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Interview{}, "id = ?", id).Error; err != nil {
		return nil, apperr.Internal("failed to delete interview", err)
	}
	return interview, nil
}

func (r *Interviews) GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.WithContext(ctx).First(&interview, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("interview not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch interview", err)
	}
	return &interview, nil
}

func (r *Interviews) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Interview, error) {
	var interviews []models.Interview
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&interviews).Error; err != nil {
		return nil, apperr.Internal("failed to list interviews", err)
	}
	return interviews, nil
}

func (r *Interviews) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.Interview, error) {
	var interviews []models.Interview
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Find(&interviews).Error; err != nil {
		return nil, apperr.Internal("failed to list interviews", err)
	}
	return interviews, nil
}
