package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/core/domain"
)

// BookRepository handles book data access. Stock is mutated only by the
// loan lifecycle (see LoanRepository); the Update path deliberately
// never touches stock_available.
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create creates a new book
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetByID gets a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetByInternalCode gets a book by its internal code
func (r *BookRepository) GetByInternalCode(ctx context.Context, code string) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("internal_code = ?", code).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Update updates book fields except the stock counter
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Model(book).
		Omit("stock_available").
		Updates(book).Error
}

// Delete soft deletes a book
func (r *BookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Book{}, id).Error
}

// List lists books with pagination, ordered by title, optionally
// filtered by category
func (r *BookRepository) List(ctx context.Context, offset, limit int, category string) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Book{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("title ASC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error

	return books, total, err
}

// Search finds books whose title, author or internal code contains the
// term (case-insensitive)
func (r *BookRepository) Search(ctx context.Context, term string, limit int) ([]*models.Book, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*models.Book{}, nil
	}

	pattern := "%" + strings.ToLower(term) + "%"

	var books []*models.Book
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(internal_code) LIKE ?",
			pattern, pattern, pattern).
		Order("title ASC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

// Count counts all books
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&count).Error
	return count, err
}
