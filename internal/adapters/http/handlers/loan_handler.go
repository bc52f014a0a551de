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

// LoanHandler handles loan lifecycle endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest represents create loan request body
type CreateLoanRequest struct {
	UserID     uint   `json:"user_id"`
	DocumentID string `json:"document_id"`
	BookID     uint   `json:"book_id"`
	Duration   string `json:"duration"`
}

// Create handles loan registration
// @Summary Create loan
// @Description Register a new loan for a user and book
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body CreateLoanRequest true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.UserID == 0 && req.DocumentID == "" {
		return response.BadRequest(c, "User ID or document ID is required")
	}
	if req.BookID == 0 {
		return response.BadRequest(c, "Book ID is required")
	}
	if req.Duration == "" {
		return response.BadRequest(c, "Duration is required")
	}

	loan, err := h.loanService.Create(c.Context(), &services.CreateLoanInput{
		UserID:     req.UserID,
		DocumentID: req.DocumentID,
		BookID:     req.BookID,
		Duration:   req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDuration):
			return response.BadRequest(c, "Duration must be 3days or 15days")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrUserInactive):
			return response.UnprocessableEntity(c, "User account is inactive")
		case errors.Is(err, domain.ErrUserDelinquent):
			return response.UnprocessableEntity(c, "User has overdue loans pending return")
		case errors.Is(err, domain.ErrLoanLimitReached):
			return response.UnprocessableEntity(c, "User has reached the active loan limit")
		case errors.Is(err, domain.ErrBookUnavailable):
			return response.UnprocessableEntity(c, "Book has no stock available")
		case errors.Is(err, domain.ErrBookAlreadyOnLoan):
			return response.Conflict(c, "Book is already on loan")
		default:
			return response.InternalServerError(c, "Failed to create loan")
		}
	}

	return response.Created(c, "Loan created successfully", loan.ToResponse(time.Now()))
}

// Return handles loan return
// @Summary Return loan
// @Description Mark an active loan as returned and restore book stock
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/return [post]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Return(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrLoanNotActive):
			return response.Conflict(c, "Loan is already returned")
		case errors.Is(err, domain.ErrInconsistentWrite):
			return response.InternalServerError(c, "Loan and book records are out of sync")
		default:
			return response.InternalServerError(c, "Failed to return loan")
		}
	}

	return response.Success(c, "Loan returned successfully", loan.ToResponse(time.Now()))
}

// GetByID handles getting a single loan
// @Summary Get loan
// @Description Get a loan by ID with user and book details
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", loan.ToResponse(time.Now()))
}

// List handles the general loan log listing
// @Summary List loans
// @Description List all loans with pagination, newest first
// @Tags Loans
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.loanService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	now := time.Now()
	items := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		items = append(items, loan.ToResponse(now))
	}

	return response.Success(c, "Loans retrieved successfully", pagination.NewResponse(items, params, total))
}

// ListOverdue handles the overdue alerts feed
// @Summary List overdue loans
// @Description List active loans past their due date, soonest expired first
// @Tags Loans
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /loans/overdue [get]
func (h *LoanHandler) ListOverdue(c *fiber.Ctx) error {
	loans, err := h.loanService.ListOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list overdue loans")
	}

	now := time.Now()
	items := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		items = append(items, loan.ToResponse(now))
	}

	return response.Success(c, "Overdue loans retrieved successfully", fiber.Map{
		"loans": items,
		"count": len(items),
	})
}

// CheckEligibility handles the pre-loan eligibility check
// @Summary Check loan eligibility
// @Description Check whether a user may borrow a given book right now
// @Tags Loans
// @Accept json
// @Produce json
// @Param user_id query int false "User ID"
// @Param document_id query string false "Document ID"
// @Param book_id query int false "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/eligibility [get]
func (h *LoanHandler) CheckEligibility(c *fiber.Ctx) error {
	documentID := c.Query("document_id")
	userID, _ := strconv.ParseUint(c.Query("user_id", "0"), 10, 32)
	if userID == 0 && documentID == "" {
		return response.BadRequest(c, "user_id or document_id is required")
	}

	bookID, _ := strconv.ParseUint(c.Query("book_id", "0"), 10, 32)

	var report *services.EligibilityReport
	var err error
	if documentID != "" {
		report, err = h.loanService.CheckEligibilityByDocument(c.Context(), documentID, uint(bookID))
	} else {
		report, err = h.loanService.CheckEligibility(c.Context(), uint(userID), uint(bookID))
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		default:
			return response.InternalServerError(c, "Failed to check eligibility")
		}
	}

	return response.Success(c, "Eligibility evaluated successfully", report)
}
