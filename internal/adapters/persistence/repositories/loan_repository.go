package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/core/domain"
)

// LoanRepository handles loan data access. Loan creation and return are
// each a single database transaction so the loan record and the book
// stock counter can never drift apart.
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create persists a new loan and decrements the book stock in one
// transaction. The conditional stock update serializes concurrent
// creates on the same book: whichever transaction wins the row lock
// commits first, and the loser sees either zero stock or the freshly
// inserted active loan and rolls back.
func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guarded decrement. RowsAffected == 0 means the book is gone
		// or has no stock left.
		res := tx.Model(&models.Book{}).
			Where("id = ? AND stock_available > 0", loan.BookID).
			UpdateColumn("stock_available", gorm.Expr("stock_available - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Book{}).Where("id = ?", loan.BookID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrBookNotFound
			}
			return domain.ErrBookUnavailable
		}

		// One active loan per book. Checked after the decrement so the
		// book row lock has already serialized us against other creates.
		var active int64
		if err := tx.Model(&models.Loan{}).
			Where("book_id = ? AND status = ?", loan.BookID, string(domain.LoanStatusActive)).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrBookAlreadyOnLoan
		}

		return tx.Create(loan).Error
	})
}

// MarkReturned flips an active loan to returned and restores the book
// stock, in one transaction. Returning a loan that is not active fails
// with ErrLoanNotActive; the stock increment is done on the store side,
// never from a caller-held snapshot.
func (r *LoanRepository) MarkReturned(ctx context.Context, loanID uint, now time.Time) (*models.Loan, error) {
	var loan models.Loan

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Loan{}).
			Where("id = ? AND status = ?", loanID, string(domain.LoanStatusActive)).
			Updates(map[string]interface{}{
				"status":      string(domain.LoanStatusReturned),
				"return_date": now,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.First(&loan, loanID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrLoanNotFound
				}
				return err
			}
			return domain.ErrLoanNotActive
		}

		if err := tx.First(&loan, loanID).Error; err != nil {
			return err
		}

		inc := tx.Model(&models.Book{}).
			Where("id = ?", loan.BookID).
			UpdateColumn("stock_available", gorm.Expr("stock_available + 1"))
		if inc.Error != nil {
			return inc.Error
		}
		if inc.RowsAffected == 0 {
			// Loan flipped but its book is missing; roll everything back
			return domain.ErrInconsistentWrite
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

// GetByID gets a loan by ID with relations
func (r *LoanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		First(&loan, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// GetByUser gets a user's full loan history, most recent first
func (r *LoanRepository) GetByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("User").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&loans).Error
	return loans, err
}

// GetActiveByBook returns the active loan for a book, or nil when the
// book is not on loan. A loan inserted by Create is observed here
// immediately (read-after-write within the same store).
func (r *LoanRepository) GetActiveByBook(ctx context.Context, bookID uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND status = ?", bookID, string(domain.LoanStatusActive)).
		First(&loan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loan, nil
}

// List lists all loans with pagination, newest first (the general loan log)
func (r *LoanRepository) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

// ListOverdue lists active loans whose due date has passed, soonest
// expired first (the alerts feed — a distinct view from List)
func (r *LoanRepository) ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Where("status = ? AND due_date < ?", string(domain.LoanStatusActive), now).
		Order("due_date ASC").
		Find(&loans).Error
	return loans, err
}

// ListActive lists all active loans with relations, for the reminder job
func (r *LoanRepository) ListActive(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Where("status = ?", string(domain.LoanStatusActive)).
		Order("due_date ASC").
		Find(&loans).Error
	return loans, err
}

// CountByStatus counts loans with the given stored status
func (r *LoanRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountOverdue counts active loans past their due date
func (r *LoanRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ? AND due_date < ?", string(domain.LoanStatusActive), now).
		Count(&count).Error
	return count, err
}
