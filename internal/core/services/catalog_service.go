package services

import (
	"context"
	"strings"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/adapters/persistence/repositories"
)

// CatalogService manages the category and author master data
type CatalogService struct {
	categoryRepo *repositories.CategoryRepository
	authorRepo   *repositories.AuthorRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(categoryRepo *repositories.CategoryRepository, authorRepo *repositories.AuthorRepository) *CatalogService {
	return &CatalogService{categoryRepo: categoryRepo, authorRepo: authorRepo}
}

// CategoryInput represents category input
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

// CreateCategory creates a category
func (s *CatalogService) CreateCategory(ctx context.Context, input *CategoryInput) (*models.Category, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Group:       input.Group,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates a category
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, input *CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Group = input.Group
	category.Description = input.Description

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories lists all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// AuthorInput represents author input
type AuthorInput struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	Biography string `json:"biography"`
}

// CreateAuthor creates an author
func (s *CatalogService) CreateAuthor(ctx context.Context, input *AuthorInput) (*models.Author, error) {
	author := &models.Author{
		Name:      strings.TrimSpace(input.Name),
		Biography: input.Biography,
	}
	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// UpdateAuthor updates an author
func (s *CatalogService) UpdateAuthor(ctx context.Context, id uint, input *AuthorInput) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.Name = strings.TrimSpace(input.Name)
	author.Biography = input.Biography

	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// DeleteAuthor deletes an author
func (s *CatalogService) DeleteAuthor(ctx context.Context, id uint) error {
	if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.authorRepo.Delete(ctx, id)
}

// ListAuthors lists all authors
func (s *CatalogService) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	return s.authorRepo.List(ctx)
}
