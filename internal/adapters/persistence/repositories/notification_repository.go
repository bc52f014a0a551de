package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sena-biblioteca/internal/adapters/persistence/models"
)

// NotificationRepository handles notification records written by the
// reminder job
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a notification record
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// GetByUser lists a user's notifications, newest first
func (r *NotificationRepository) GetByUser(ctx context.Context, userID uint, limit int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// ExistsSince reports whether a notification of the given kind was
// already sent for a loan after the given moment. The reminder job uses
// this to send at most one reminder per loan per day.
func (r *NotificationRepository) ExistsSince(ctx context.Context, loanID uint, kind string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("loan_id = ? AND kind = ? AND sent_at >= ?", loanID, kind, since).
		Count(&count).Error
	return count > 0, err
}
