package services

import (
	"context"
	"log"
	"strings"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/adapters/persistence/repositories"
	"sena-biblioteca/internal/core/domain"
)

// BookService handles catalog book management
type BookService struct {
	bookRepo *repositories.BookRepository
	loanRepo *repositories.LoanRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo *repositories.BookRepository, loanRepo *repositories.LoanRepository) *BookService {
	return &BookService{bookRepo: bookRepo, loanRepo: loanRepo}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	Title          string `json:"title" validate:"required,min=1,max=200"`
	Author         string `json:"author" validate:"required"`
	ISBN           string `json:"isbn"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	InternalCode   string `json:"internal_code" validate:"required"`
	CoverURL       string `json:"cover_url"`
	StockAvailable int    `json:"stock_available" validate:"gte=0"`
}

// Create registers a new book in the catalog
func (s *BookService) Create(ctx context.Context, input *CreateBookInput) (*models.Book, error) {
	code := strings.TrimSpace(input.InternalCode)

	if _, err := s.bookRepo.GetByInternalCode(ctx, code); err == nil {
		return nil, domain.ErrInternalCodeTaken
	}

	book := &models.Book{
		Title:          strings.TrimSpace(input.Title),
		Author:         strings.TrimSpace(input.Author),
		ISBN:           input.ISBN,
		Description:    input.Description,
		Category:       input.Category,
		InternalCode:   code,
		CoverURL:       input.CoverURL,
		StockAvailable: input.StockAvailable,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	log.Printf("📖 Book registered: %s (%s)", book.Title, book.InternalCode)

	return book, nil
}

// UpdateBookInput represents update book input; zero values are ignored.
// Stock is excluded on purpose: only the loan lifecycle moves it.
type UpdateBookInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CoverURL    string `json:"cover_url"`
}

// Update updates book catalog fields
func (s *BookService) Update(ctx context.Context, id uint, input *UpdateBookInput) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		book.Title = strings.TrimSpace(input.Title)
	}
	if input.Author != "" {
		book.Author = strings.TrimSpace(input.Author)
	}
	if input.ISBN != "" {
		book.ISBN = input.ISBN
	}
	if input.Description != "" {
		book.Description = input.Description
	}
	if input.Category != "" {
		book.Category = input.Category
	}
	if input.CoverURL != "" {
		book.CoverURL = input.CoverURL
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// Delete soft deletes a book. A book currently on loan cannot be
// removed.
func (s *BookService) Delete(ctx context.Context, id uint) error {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.loanRepo.GetActiveByBook(ctx, book.ID)
	if err != nil {
		return err
	}
	if active != nil {
		return domain.ErrBookOnLoan
	}

	return s.bookRepo.Delete(ctx, id)
}

// GetByID gets a book by ID
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

// List lists books with pagination, optionally filtered by category
func (s *BookService) List(ctx context.Context, offset, limit int, category string) ([]*models.Book, int64, error) {
	return s.bookRepo.List(ctx, offset, limit, category)
}

// Search finds books by title, author or internal code
func (s *BookService) Search(ctx context.Context, term string, limit int) ([]*models.Book, error) {
	return s.bookRepo.Search(ctx, term, limit)
}
