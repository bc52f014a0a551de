package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/core/domain"
)

// userRepository implements UserRepository with GORM
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByDocumentID gets a user by their identity document number
func (r *userRepository) GetByDocumentID(ctx context.Context, documentID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("document_id = ?", documentID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete soft deletes a user
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

// List lists users with pagination, ordered by name
func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error

	return users, total, err
}

// Search finds active users whose name or document ID starts with the
// given prefix. Used by the front-desk lookup when registering a loan.
func (r *userRepository) Search(ctx context.Context, prefix string, limit int) ([]*models.User, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []*models.User{}, nil
	}

	pattern := strings.ToLower(prefix) + "%"

	var users []*models.User
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.UserStatusActive)).
		Where("LOWER(name) LIKE ? OR LOWER(document_id) LIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ExistsByDocumentID checks if a document ID is already registered
func (r *userRepository) ExistsByDocumentID(ctx context.Context, documentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("document_id = ?", documentID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if an email is already registered
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// Count counts all users
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
