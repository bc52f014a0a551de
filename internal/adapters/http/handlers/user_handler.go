package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/core/domain"
	"sena-biblioteca/internal/core/services"
	"sena-biblioteca/internal/pkg/pagination"
	"sena-biblioteca/internal/pkg/response"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService      *services.UserService
	clearanceService *services.ClearanceService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, clearanceService *services.ClearanceService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		clearanceService: clearanceService,
	}
}

// Create handles user registration
// @Summary Create user
// @Description Register a new library user
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if input.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if input.DocumentID == "" {
		return response.BadRequest(c, "Document ID is required")
	}
	if input.Role == "" {
		return response.BadRequest(c, "Role is required")
	}

	user, err := h.userService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Role must be student, teacher or admin")
		case errors.Is(err, domain.ErrDocumentIDTaken):
			return response.Conflict(c, "A user with this document ID already exists")
		case errors.Is(err, domain.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	return response.Created(c, "User created successfully", user.ToResponse())
}

// Update handles user profile update
// @Summary Update user
// @Description Update a user's profile fields
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "User data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrInvalidUserStatus):
			return response.BadRequest(c, "Status must be active or inactive")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated successfully", user.ToResponse())
}

// Delete handles user removal
// @Summary Delete user
// @Description Remove a user with no active loans
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.Delete(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrUserHasPendingLoans):
			return response.Conflict(c, "User has active loans and cannot be removed")
		default:
			return response.InternalServerError(c, "Failed to delete user")
		}
	}

	return response.Success(c, "User deleted successfully", nil)
}

// GetByID handles getting a single user with their loan history
// @Summary Get user
// @Description Get a user by ID together with their loan history
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, loans, err := h.userService.GetWithLoans(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	now := time.Now()
	loanItems := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		loanItems = append(loanItems, loan.ToResponse(now))
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user":  user.ToResponse(),
		"loans": loanItems,
	})
}

// GetByDocumentID handles front-desk lookup by document number
// @Summary Get user by document
// @Description Find a user by their identity document number
// @Tags Users
// @Accept json
// @Produce json
// @Param documentId path string true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/document/{documentId} [get]
func (h *UserHandler) GetByDocumentID(c *fiber.Ctx) error {
	documentID := c.Params("documentId")
	if documentID == "" {
		return response.BadRequest(c, "Document ID is required")
	}

	user, err := h.userService.GetByDocumentID(c.Context(), documentID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user.ToResponse())
}

// List handles user listing
// @Summary List users
// @Description List users with pagination, ordered by name
// @Tags Users
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	items := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, user.ToResponse())
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(items, params, total))
}

// Search handles front-desk user search
// @Summary Search users
// @Description Find active users by name or document prefix
// @Tags Users
// @Accept json
// @Produce json
// @Param q query string true "Search prefix"
// @Success 200 {object} response.Response
// @Router /users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	prefix := c.Query("q")
	if prefix == "" {
		return response.BadRequest(c, "Search prefix is required")
	}

	users, err := h.userService.Search(c.Context(), prefix, pagination.DefaultLimit)
	if err != nil {
		return response.InternalServerError(c, "Failed to search users")
	}

	items := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, user.ToResponse())
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": items,
		"count": len(items),
	})
}

// Clearance handles the paz y salvo report
// @Summary User clearance
// @Description Report whether a user has pending loans with the library
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/clearance [get]
func (h *UserHandler) Clearance(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	report, err := h.clearanceService.Evaluate(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to evaluate clearance")
	}

	return response.Success(c, "Clearance evaluated successfully", report)
}
