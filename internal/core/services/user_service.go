package services

import (
	"context"
	"log"
	"strings"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/adapters/persistence/repositories"
	"sena-biblioteca/internal/core/domain"
	"sena-biblioteca/internal/pkg/password"
)

// UserService handles member and staff management
type UserService struct {
	userRepo repositories.UserRepository
	loanRepo *repositories.LoanRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, loanRepo *repositories.LoanRepository) *UserService {
	return &UserService{userRepo: userRepo, loanRepo: loanRepo}
}

// CreateUserInput represents create user input. Password is accepted
// only for back-office roles.
type CreateUserInput struct {
	Name        string `json:"name" validate:"required,min=3,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	DocumentID  string `json:"document_id" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Formation   string `json:"formation"`
	GroupNumber string `json:"group_number"`
	Password    string `json:"password"`
}

// Create registers a new user. The document ID is the natural key: a
// duplicate is rejected before insert, and the unique index backs that
// check up.
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	role := domain.Role(input.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	documentID := strings.TrimSpace(input.DocumentID)

	exists, err := s.userRepo.ExistsByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDocumentIDTaken
	}

	user := &models.User{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       input.Phone,
		DocumentID:  documentID,
		Role:        string(role),
		Formation:   input.Formation,
		GroupNumber: input.GroupNumber,
		Status:      string(domain.UserStatusActive),
	}

	if role == domain.RoleAdmin {
		if !password.Validate(input.Password) {
			return nil, domain.ErrWeakPassword
		}
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (document %s, role %s)", user.Name, user.DocumentID, user.Role)

	return user, nil
}

// UpdateUserInput represents update user input; zero values are ignored
type UpdateUserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Formation   string `json:"formation"`
	GroupNumber string `json:"group_number"`
	Status      string `json:"status"`
}

// Update updates a user's profile fields. The document ID and role are
// immutable through this path.
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = strings.TrimSpace(input.Name)
	}
	if input.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(input.Email))
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Formation != "" {
		user.Formation = input.Formation
	}
	if input.GroupNumber != "" {
		user.GroupNumber = input.GroupNumber
	}
	if input.Status != "" {
		if input.Status != string(domain.UserStatusActive) && input.Status != string(domain.UserStatusInactive) {
			return nil, domain.ErrInvalidUserStatus
		}
		user.Status = input.Status
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete soft deletes a user. A user with pending loans cannot be
// removed.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	loans, err := s.loanRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, loan := range loans {
		if loan.Status == string(domain.LoanStatusActive) {
			return domain.ErrUserHasPendingLoans
		}
	}

	return s.userRepo.Delete(ctx, id)
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByDocumentID gets a user by their document number
func (s *UserService) GetByDocumentID(ctx context.Context, documentID string) (*models.User, error) {
	return s.userRepo.GetByDocumentID(ctx, strings.TrimSpace(documentID))
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// Search finds active users by name or document prefix
func (s *UserService) Search(ctx context.Context, prefix string, limit int) ([]*models.User, error) {
	return s.userRepo.Search(ctx, prefix, limit)
}

// GetWithLoans returns a user together with their loan history
func (s *UserService) GetWithLoans(ctx context.Context, id uint) (*models.User, []*models.Loan, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	loans, err := s.loanRepo.GetByUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return user, loans, nil
}
