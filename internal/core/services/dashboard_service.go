package services

import (
	"context"
	"time"

	"sena-biblioteca/internal/adapters/persistence/repositories"
	"sena-biblioteca/internal/core/domain"
)

// DashboardService aggregates the numbers shown on the admin home page
type DashboardService struct {
	bookRepo *repositories.BookRepository
	loanRepo *repositories.LoanRepository
	userRepo repositories.UserRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	bookRepo *repositories.BookRepository,
	loanRepo *repositories.LoanRepository,
	userRepo repositories.UserRepository,
) *DashboardService {
	return &DashboardService{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		userRepo: userRepo,
	}
}

// DashboardStats represents the dashboard counters. LoanedBooks counts
// all stored-active loans; OverdueBooks is the derived subset past due.
type DashboardStats struct {
	TotalBooks      int64 `json:"total_books"`
	LoanedBooks     int64 `json:"loaned_books"`
	OverdueBooks    int64 `json:"overdue_books"`
	RegisteredUsers int64 `json:"registered_users"`
}

// GetStats computes the dashboard counters
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	totalBooks, err := s.bookRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	loanedBooks, err := s.loanRepo.CountByStatus(ctx, string(domain.LoanStatusActive))
	if err != nil {
		return nil, err
	}

	overdueBooks, err := s.loanRepo.CountOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	registeredUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalBooks:      totalBooks,
		LoanedBooks:     loanedBooks,
		OverdueBooks:    overdueBooks,
		RegisteredUsers: registeredUsers,
	}, nil
}
