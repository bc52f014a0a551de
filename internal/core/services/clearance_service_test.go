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

func newClearanceService(db *gorm.DB) *ClearanceService {
	return NewClearanceService(
		repositories.NewLoanRepository(db),
		repositories.NewUserRepository(db),
	)
}

func TestClearanceNoLoans(t *testing.T) {
	db := setupTestDB(t)
	svc := newClearanceService(db)

	user := seedUser(t, db, "2020202020")

	report, err := svc.Evaluate(context.Background(), user.ID)
	require.NoError(t, err)

	assert.True(t, report.IsCleared)
	assert.Empty(t, report.PendingLoans)
	assert.Empty(t, report.ReturnedLoans)
	assert.Equal(t, user.DocumentID, report.User.DocumentID)
}

func TestClearanceUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newClearanceService(db)

	_, err := svc.Evaluate(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestClearancePartitionsLoans(t *testing.T) {
	db := setupTestDB(t)
	svc := newClearanceService(db)

	user := seedUser(t, db, "2121212121")
	bookA := seedBook(t, db, "CLR-001", 1)
	bookB := seedBook(t, db, "CLR-002", 1)
	bookC := seedBook(t, db, "CLR-003", 1)

	now := time.Now()
	returnDate := now.AddDate(0, 0, -5)

	require.NoError(t, db.Create(&models.Loan{
		RefCode: "clr-active", UserID: user.ID, BookID: bookA.ID,
		StartDate: now, DueDate: now.AddDate(0, 0, 5),
		Status: string(domain.LoanStatusActive), Duration: "15days",
	}).Error)
	require.NoError(t, db.Create(&models.Loan{
		RefCode: "clr-overdue", UserID: user.ID, BookID: bookB.ID,
		StartDate: now.AddDate(0, 0, -10), DueDate: now.AddDate(0, 0, -2),
		Status: string(domain.LoanStatusActive), Duration: "3days",
	}).Error)
	require.NoError(t, db.Create(&models.Loan{
		RefCode: "clr-returned", UserID: user.ID, BookID: bookC.ID,
		StartDate: now.AddDate(0, 0, -20), DueDate: now.AddDate(0, 0, -15),
		ReturnDate: &returnDate,
		Status:     string(domain.LoanStatusReturned), Duration: "3days",
	}).Error)

	report, err := svc.Evaluate(context.Background(), user.ID)
	require.NoError(t, err)

	assert.False(t, report.IsCleared)
	assert.Equal(t, 1, report.ActiveCount)
	assert.Equal(t, 1, report.OverdueCount)
	assert.Equal(t, 1, report.ReturnedCount)
	assert.Len(t, report.PendingLoans, 2)
	assert.Len(t, report.ReturnedLoans, 1)

	statuses := map[string]bool{}
	for _, row := range report.PendingLoans {
		statuses[row.Status] = true
	}
	assert.True(t, statuses[string(domain.LoanStatusActive)])
	assert.True(t, statuses[string(domain.LoanStatusOverdue)])
}

func TestClearanceAfterReturningEverything(t *testing.T) {
	db := setupTestDB(t)
	loanSvc := newLoanService(db)
	svc := newClearanceService(db)
	ctx := context.Background()

	user := seedUser(t, db, "2222222222")
	book := seedBook(t, db, "CLR-004", 1)

	loan, err := loanSvc.Create(ctx, &CreateLoanInput{UserID: user.ID, BookID: book.ID, Duration: "3days"})
	require.NoError(t, err)

	report, err := svc.Evaluate(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, report.IsCleared)

	_, err = loanSvc.Return(ctx, loan.ID)
	require.NoError(t, err)

	report, err = svc.Evaluate(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, report.IsCleared)
	assert.Equal(t, 1, report.ReturnedCount)
}
