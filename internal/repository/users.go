package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/models"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (r *Users) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch user", err)
	}
	return &user, nil
}

func (r *Users) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}
	return users, nil
}

// ListCandidateTokens returns device tokens of every candidate that has
// one registered. Used for the new-job broadcast.
func (r *Users) ListCandidateTokens(ctx context.Context) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND device_token <> ''", "candidate").
		Pluck("device_token", &tokens).Error
	if err != nil {
		return nil, apperr.Internal("failed to list device tokens", err)
	}
	return tokens, nil
}
