package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/adapters/persistence/repositories"
	"sena-biblioteca/internal/core/domain"
	"sena-biblioteca/internal/pkg/workdays"
)

// LoanService handles the loan lifecycle business logic
type LoanService struct {
	loanRepo *repositories.LoanRepository
	bookRepo *repositories.BookRepository
	userRepo repositories.UserRepository
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo *repositories.LoanRepository,
	bookRepo *repositories.BookRepository,
	userRepo repositories.UserRepository,
) *LoanService {
	return &LoanService{
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		userRepo: userRepo,
	}
}

// CreateLoanInput represents create loan input. The borrower may be
// identified by internal ID or by document number; DocumentID wins when
// both are set.
type CreateLoanInput struct {
	UserID     uint   `json:"user_id"`
	DocumentID string `json:"document_id"`
	BookID     uint   `json:"book_id" validate:"required"`
	Duration   string `json:"duration" validate:"required"`
}

func (s *LoanService) resolveBorrower(ctx context.Context, input *CreateLoanInput) (*models.User, error) {
	if input.DocumentID != "" {
		return s.userRepo.GetByDocumentID(ctx, input.DocumentID)
	}
	return s.userRepo.GetByID(ctx, input.UserID)
}

// Create registers a new loan. The eligibility rules are checked up
// front for a precise error, then the repository re-validates stock and
// book availability inside the write transaction, so two concurrent
// requests for the last copy cannot both succeed.
func (s *LoanService) Create(ctx context.Context, input *CreateLoanInput) (*models.Loan, error) {
	duration := domain.LoanDuration(input.Duration)
	if !duration.Valid() {
		return nil, domain.ErrInvalidDuration
	}

	user, err := s.resolveBorrower(ctx, input)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, domain.ErrUserInactive
	}

	history, err := s.loanRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	standing := domain.EvaluateBorrower(snapshots(history), now)
	if !standing.IsInGoodStanding {
		return nil, domain.ErrUserDelinquent
	}
	if !standing.CanBorrow {
		return nil, domain.ErrLoanLimitReached
	}

	book, err := s.bookRepo.GetByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}
	if book.StockAvailable <= 0 {
		return nil, domain.ErrBookUnavailable
	}
	if active, err := s.loanRepo.GetActiveByBook(ctx, book.ID); err != nil {
		return nil, err
	} else if active != nil {
		return nil, domain.ErrBookAlreadyOnLoan
	}

	loan := &models.Loan{
		RefCode:   uuid.New().String(),
		UserID:    user.ID,
		BookID:    book.ID,
		StartDate: now,
		DueDate:   workdays.AddWorkingDays(now, duration.WorkingDays()),
		Status:    string(domain.LoanStatusActive),
		Duration:  string(duration),
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	log.Printf("📚 Loan %s created: book %d -> user %s (due %s)",
		loan.RefCode, book.ID, user.DocumentID, loan.DueDate.Format("2006-01-02"))

	return s.loanRepo.GetByID(ctx, loan.ID)
}

// Return closes an active loan and restores the book stock
func (s *LoanService) Return(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.MarkReturned(ctx, loanID, time.Now())
	if err != nil {
		return nil, err
	}

	log.Printf("📗 Loan %s returned (book %d back in stock)", loan.RefCode, loan.BookID)

	return s.loanRepo.GetByID(ctx, loan.ID)
}

// GetByID gets a loan by ID
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	return s.loanRepo.GetByID(ctx, id)
}

// GetByUser gets a user's loan history, most recent first
func (s *LoanService) GetByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.loanRepo.GetByUser(ctx, userID)
}

// List lists the general loan log with pagination, newest first
func (s *LoanService) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	return s.loanRepo.List(ctx, offset, limit)
}

// ListOverdue lists loans past their due date, soonest expired first
func (s *LoanService) ListOverdue(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListOverdue(ctx, time.Now())
}

// EligibilityReport is the combined verdict for a prospective loan
type EligibilityReport struct {
	domain.BorrowerStanding
	BookAvailable bool `json:"book_available"`
	Eligible      bool `json:"eligible"`
}

// CheckEligibility evaluates whether a user may borrow a given book
// right now, without creating anything. BookID zero checks the user
// side only.
func (s *LoanService) CheckEligibility(ctx context.Context, userID uint, bookID uint) (*EligibilityReport, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	history, err := s.loanRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	standing := domain.EvaluateBorrower(snapshots(history), time.Now())

	report := &EligibilityReport{
		BorrowerStanding: standing,
		BookAvailable:    true,
		Eligible:         standing.CanBorrow,
	}

	if bookID != 0 {
		book, err := s.bookRepo.GetByID(ctx, bookID)
		if err != nil {
			return nil, err
		}
		active, err := s.loanRepo.GetActiveByBook(ctx, bookID)
		if err != nil {
			return nil, err
		}
		report.BookAvailable = book.StockAvailable > 0 && active == nil
		report.Eligible = report.Eligible && report.BookAvailable
	}

	return report, nil
}

// CheckEligibilityByDocument resolves the user by document number first,
// for the front-desk flow where only the ID card is at hand
func (s *LoanService) CheckEligibilityByDocument(ctx context.Context, documentID string, bookID uint) (*EligibilityReport, error) {
	user, err := s.userRepo.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return s.CheckEligibility(ctx, user.ID, bookID)
}

func snapshots(loans []*models.Loan) []domain.LoanSnapshot {
	out := make([]domain.LoanSnapshot, 0, len(loans))
	for _, loan := range loans {
		out = append(out, loan.Snapshot())
	}
	return out
}
