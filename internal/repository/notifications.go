package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/models"
)

type NotificationLogs struct {
	db *gorm.DB
}

func NewNotificationLogs(db *gorm.DB) *NotificationLogs {
	return &NotificationLogs{db: db}
}

// Create writes the log row and one email-status row per recipient.
func (r *NotificationLogs) Create(ctx context.Context, log *models.NotificationLog) error {
	if len(log.EmailStatus) == 0 {
		for _, email := range log.Emails {
			log.EmailStatus = append(log.EmailStatus, models.NotificationEmailStatus{
				Email: email,
			})
		}
	}
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return apperr.Internal("failed to create notification log", err)
	}
	return nil
}

func (r *NotificationLogs) ListAll(ctx context.Context) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := r.db.WithContext(ctx).Preload("EmailStatus").Find(&logs).Error
	if err != nil {
		return nil, apperr.Internal("failed to list notification logs", err)
	}
	return logs, nil
}

func (r *NotificationLogs) GetByID(ctx context.Context, id uuid.UUID) (*models.NotificationLog, error) {
	var log models.NotificationLog
	err := r.db.WithContext(ctx).Preload("EmailStatus").First(&log, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("notification log not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch notification log", err)
	}
	return &log, nil
}

// ListUnreadByEmail returns logs that still have an unread status row for
// the given address.
func (r *NotificationLogs) ListUnreadByEmail(ctx context.Context, email string) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := r.db.WithContext(ctx).
		Joins("JOIN notification_email_statuses s ON s.notification_log_id = notification_logs.id").
		Where("s.email = ? AND s.read = false", email).
		Preload("EmailStatus").
		Find(&logs).Error
	if err != nil {
		return nil, apperr.Internal("failed to list unread notifications", err)
	}
	return logs, nil
}

// ListUnreadByUser returns unread logs of the given types addressed to the
// user (user_ids is an array column).
func (r *NotificationLogs) ListUnreadByUser(ctx context.Context, userID uuid.UUID, types []string) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := r.db.WithContext(ctx).
		Joins("JOIN notification_email_statuses s ON s.notification_log_id = notification_logs.id").
		Where("? = ANY(user_ids) AND notification_type IN ? AND s.read = false", userID.String(), types).
		Preload("EmailStatus").
		Distinct("notification_logs.*").
		Find(&logs).Error
	if err != nil {
		return nil, apperr.Internal("failed to list unread notifications", err)
	}
	return logs, nil
}

// MarkRead flips the read flag for one recipient of one log.
func (r *NotificationLogs) MarkRead(ctx context.Context, logID uuid.UUID, email string) error {
	// Make sure the log itself exists so the caller gets the right 404.
	if _, err := r.GetByID(ctx, logID); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&models.NotificationEmailStatus{}).
		Where("notification_log_id = ? AND email = ?", logID, email).
		Update("read", true)
	if res.Error != nil {
		return apperr.Internal("failed to update read status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("email not found in notification log")
	}
	return nil
}
