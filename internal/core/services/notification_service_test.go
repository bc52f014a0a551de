package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/core/domain"
)

func activeLoanDue(id uint, due time.Time) *models.Loan {
	return &models.Loan{
		ID:      id,
		DueDate: due,
		Status:  string(domain.LoanStatusActive),
	}
}

func TestDaysUntilDueRoundsUp(t *testing.T) {
	svc := NewNotificationService()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	// A day and a half away still counts as two days
	loan := activeLoanDue(1, now.Add(36*time.Hour))
	assert.Equal(t, 2, svc.DaysUntilDue(loan, now))

	loan = activeLoanDue(2, now.Add(24*time.Hour))
	assert.Equal(t, 1, svc.DaysUntilDue(loan, now))

	loan = activeLoanDue(3, now.Add(-30*time.Hour))
	assert.Equal(t, -1, svc.DaysUntilDue(loan, now))
}

func TestFindOverdueSortsByDueDate(t *testing.T) {
	svc := NewNotificationService()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	loans := []*models.Loan{
		activeLoanDue(1, now.AddDate(0, 0, -1)),
		activeLoanDue(2, now.AddDate(0, 0, -7)),
		activeLoanDue(3, now.AddDate(0, 0, 3)),
		{ID: 4, DueDate: now.AddDate(0, 0, -30), Status: string(domain.LoanStatusReturned)},
	}

	overdue := svc.FindOverdue(loans, now)
	require.Len(t, overdue, 2)
	assert.Equal(t, uint(2), overdue[0].ID)
	assert.Equal(t, uint(1), overdue[1].ID)
}

func TestFindDueSoonWindow(t *testing.T) {
	svc := NewNotificationService()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	loans := []*models.Loan{
		activeLoanDue(1, now.Add(20*time.Hour)),  // 1 day out
		activeLoanDue(2, now.Add(44*time.Hour)),  // 2 days out
		activeLoanDue(3, now.Add(80*time.Hour)),  // beyond the window
		activeLoanDue(4, now.Add(-2*time.Hour)),  // already overdue
	}

	dueSoon := svc.FindDueSoon(loans, now)
	require.Len(t, dueSoon, 2)
	assert.Equal(t, uint(1), dueSoon[0].ID)
	assert.Equal(t, uint(2), dueSoon[1].ID)
}

func TestReminderMessages(t *testing.T) {
	svc := NewNotificationService()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	loan := activeLoanDue(1, now.AddDate(0, 0, -2))
	loan.Book = &models.Book{Title: "El coronel no tiene quien le escriba"}

	msg := svc.OverdueMessage(loan, now)
	assert.Contains(t, msg, "El coronel no tiene quien le escriba")
	assert.Contains(t, msg, "2")

	soon := activeLoanDue(2, now.Add(40*time.Hour))
	soon.Book = &models.Book{Title: "La vorágine"}

	msg = svc.DueSoonMessage(soon, now)
	assert.Contains(t, msg, "La vorágine")
}
