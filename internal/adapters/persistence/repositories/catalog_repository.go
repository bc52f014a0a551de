package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/core/domain"
)

// CategoryRepository handles category master data
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetByID gets a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetByName gets a category by name
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Update updates a category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete soft deletes a category
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

// List lists all categories ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// Count counts all categories, used by the seeder to skip reseeding
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}

// AuthorRepository handles author master data
type AuthorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Create creates a new author
func (r *AuthorRepository) Create(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// GetByID gets an author by ID
func (r *AuthorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, err
	}
	return &author, nil
}

// Update updates an author
func (r *AuthorRepository) Update(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Save(author).Error
}

// Delete soft deletes an author
func (r *AuthorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Author{}, id).Error
}

// List lists all authors ordered by name
func (r *AuthorRepository) List(ctx context.Context) ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.WithContext(ctx).Order("name ASC").Find(&authors).Error
	return authors, err
}
