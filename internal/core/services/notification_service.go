package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/core/domain"
)

// DueSoonWindowDays is how many days before the due date a loan starts
// counting as due soon
const DueSoonWindowDays = 2

// NotificationService decides which loans deserve a reminder. It is a
// pure advisor over loan rows; persistence and delivery belong to the
// reminder job.
type NotificationService struct{}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// DaysUntilDue returns whole days until the due date, rounding partial
// days up. Negative when the due date has passed.
func (s *NotificationService) DaysUntilDue(loan *models.Loan, now time.Time) int {
	hours := loan.DueDate.Sub(now).Hours()
	return int(math.Ceil(hours / 24))
}

// FindOverdue filters active loans that are past due, sorted by due
// date ascending so the longest overdue loan comes first.
func (s *NotificationService) FindOverdue(loans []*models.Loan, now time.Time) []*models.Loan {
	var overdue []*models.Loan
	for _, loan := range loans {
		if loan.EffectiveStatus(now) == domain.LoanStatusOverdue {
			overdue = append(overdue, loan)
		}
	}
	sort.Slice(overdue, func(i, j int) bool {
		return overdue[i].DueDate.Before(overdue[j].DueDate)
	})
	return overdue
}

// FindDueSoon filters active loans due within the reminder window. A
// loan already overdue is not due soon.
func (s *NotificationService) FindDueSoon(loans []*models.Loan, now time.Time) []*models.Loan {
	var dueSoon []*models.Loan
	for _, loan := range loans {
		if loan.EffectiveStatus(now) != domain.LoanStatusActive {
			continue
		}
		d := s.DaysUntilDue(loan, now)
		if d > 0 && d <= DueSoonWindowDays {
			dueSoon = append(dueSoon, loan)
		}
	}
	sort.Slice(dueSoon, func(i, j int) bool {
		return dueSoon[i].DueDate.Before(dueSoon[j].DueDate)
	})
	return dueSoon
}

// OverdueMessage builds the reminder text for an overdue loan
func (s *NotificationService) OverdueMessage(loan *models.Loan, now time.Time) string {
	title := "el libro"
	if loan.Book != nil {
		title = fmt.Sprintf("%q", loan.Book.Title)
	}
	daysLate := -s.DaysUntilDue(loan, now)
	return fmt.Sprintf("El préstamo de %s venció hace %d día(s). Por favor devuélvelo a la biblioteca.", title, daysLate)
}

// DueSoonMessage builds the reminder text for a loan about to expire
func (s *NotificationService) DueSoonMessage(loan *models.Loan, now time.Time) string {
	title := "el libro"
	if loan.Book != nil {
		title = fmt.Sprintf("%q", loan.Book.Title)
	}
	return fmt.Sprintf("El préstamo de %s vence en %d día(s). Recuerda devolverlo a tiempo.", title, s.DaysUntilDue(loan, now))
}
