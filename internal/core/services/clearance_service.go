package services

import (
	"context"
	"time"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/adapters/persistence/repositories"
	"sena-biblioteca/internal/core/domain"
)

// ClearanceService produces the paz y salvo report: whether a user has
// anything pending with the library
type ClearanceService struct {
	loanRepo *repositories.LoanRepository
	userRepo repositories.UserRepository
}

// NewClearanceService creates a new clearance service
func NewClearanceService(loanRepo *repositories.LoanRepository, userRepo repositories.UserRepository) *ClearanceService {
	return &ClearanceService{loanRepo: loanRepo, userRepo: userRepo}
}

// ClearanceLoan is one loan row in the clearance report, carrying the
// effective (derived) status
type ClearanceLoan struct {
	ID         uint       `json:"id"`
	RefCode    string     `json:"ref_code"`
	BookTitle  string     `json:"book_title"`
	StartDate  time.Time  `json:"start_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
}

// ClearanceReport is the full clearance verdict for a user
type ClearanceReport struct {
	User           *models.UserResponse `json:"user"`
	IsCleared      bool                 `json:"is_cleared"`
	ActiveCount    int                  `json:"active_count"`
	OverdueCount   int                  `json:"overdue_count"`
	ReturnedCount  int                  `json:"returned_count"`
	PendingLoans   []ClearanceLoan      `json:"pending_loans"`
	ReturnedLoans  []ClearanceLoan      `json:"returned_loans"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

// Evaluate builds the clearance report for a user. A user is cleared
// when no loan is active or overdue at evaluation time.
func (s *ClearanceService) Evaluate(ctx context.Context, userID uint) (*ClearanceReport, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &ClearanceReport{
		User:          user.ToResponse(),
		PendingLoans:  []ClearanceLoan{},
		ReturnedLoans: []ClearanceLoan{},
		GeneratedAt:   now,
	}

	for _, loan := range loans {
		row := ClearanceLoan{
			ID:         loan.ID,
			RefCode:    loan.RefCode,
			StartDate:  loan.StartDate,
			DueDate:    loan.DueDate,
			ReturnDate: loan.ReturnDate,
			Status:     string(loan.EffectiveStatus(now)),
		}
		if loan.Book != nil {
			row.BookTitle = loan.Book.Title
		}

		switch loan.EffectiveStatus(now) {
		case domain.LoanStatusActive:
			report.ActiveCount++
			report.PendingLoans = append(report.PendingLoans, row)
		case domain.LoanStatusOverdue:
			report.OverdueCount++
			report.PendingLoans = append(report.PendingLoans, row)
		case domain.LoanStatusReturned:
			report.ReturnedCount++
			report.ReturnedLoans = append(report.ReturnedLoans, row)
		}
	}

	report.IsCleared = report.ActiveCount == 0 && report.OverdueCount == 0

	return report, nil
}
