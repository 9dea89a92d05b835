package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/models"
)

type Plans struct {
	db *gorm.DB
}

func NewPlans(db *gorm.DB) *Plans {
	return &Plans{db: db}
}

// ListByUser returns the user's plans in a stable enumeration order.
// The apply path picks the first eligible plan from this list, so the
// order is part of the contract: insertion order, oldest first.
func (r *Plans) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&plans).Error
	if err != nil {
		return nil, apperr.Internal("failed to list plans", err)
	}
	return plans, nil
}

func (r *Plans) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("plan not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch plan", err)
	}
	return &plan, nil
}

// counterColumn maps a job class to the plan column it debits.
func counterColumn(class models.JobClass) string {
	if class == models.JobClassPaid {
		return "apply_paid_jobs"
	}
	return "apply_free_jobs"
}
