package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/adapters/persistence/repositories"
	"sena-biblioteca/internal/core/domain"
)

func newReminderService(db *gorm.DB) *ReminderService {
	return NewReminderService(
		repositories.NewLoanRepository(db),
		repositories.NewNotificationRepository(db),
		NewNotificationService(),
	)
}

func TestReminderRunRecordsNotifications(t *testing.T) {
	db := setupTestDB(t)
	svc := newReminderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "3030303030")
	late := seedBook(t, db, "REM-001", 1)
	soon := seedBook(t, db, "REM-002", 1)

	now := time.Now()
	require.NoError(t, db.Create(&models.Loan{
		RefCode: "rem-late", UserID: user.ID, BookID: late.ID,
		StartDate: now.AddDate(0, 0, -10), DueDate: now.AddDate(0, 0, -2),
		Status: string(domain.LoanStatusActive), Duration: "3days",
	}).Error)
	require.NoError(t, db.Create(&models.Loan{
		RefCode: "rem-soon", UserID: user.ID, BookID: soon.ID,
		StartDate: now, DueDate: now.Add(30 * time.Hour),
		Status: string(domain.LoanStatusActive), Duration: "3days",
	}).Error)

	require.NoError(t, svc.Run(ctx))

	var notifications []models.Notification
	require.NoError(t, db.Order("kind ASC").Find(&notifications).Error)
	require.Len(t, notifications, 2)

	kinds := map[string]bool{}
	for _, n := range notifications {
		kinds[n.Kind] = true
		assert.Equal(t, user.ID, n.UserID)
		assert.NotEmpty(t, n.Message)
	}
	assert.True(t, kinds[models.NotificationOverdue])
	assert.True(t, kinds[models.NotificationDueSoon])
}

func TestReminderRunIsIdempotentPerDay(t *testing.T) {
	db := setupTestDB(t)
	svc := newReminderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "3131313131")
	book := seedBook(t, db, "REM-003", 1)

	now := time.Now()
	require.NoError(t, db.Create(&models.Loan{
		RefCode: "rem-dup", UserID: user.ID, BookID: book.ID,
		StartDate: now.AddDate(0, 0, -5), DueDate: now.AddDate(0, 0, -1),
		Status: string(domain.LoanStatusActive), Duration: "3days",
	}).Error)

	require.NoError(t, svc.Run(ctx))
	require.NoError(t, svc.Run(ctx))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReminderSkipsReturnedLoans(t *testing.T) {
	db := setupTestDB(t)
	svc := newReminderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "3232323232")
	book := seedBook(t, db, "REM-004", 1)

	now := time.Now()
	returnDate := now.AddDate(0, 0, -1)
	require.NoError(t, db.Create(&models.Loan{
		RefCode: "rem-done", UserID: user.ID, BookID: book.ID,
		StartDate: now.AddDate(0, 0, -10), DueDate: now.AddDate(0, 0, -3),
		ReturnDate: &returnDate,
		Status:     string(domain.LoanStatusReturned), Duration: "3days",
	}).Error)

	require.NoError(t, svc.Run(ctx))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
