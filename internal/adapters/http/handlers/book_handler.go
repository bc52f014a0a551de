package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sena-biblioteca/internal/core/domain"
	"sena-biblioteca/internal/core/services"
	"sena-biblioteca/internal/pkg/pagination"
	"sena-biblioteca/internal/pkg/response"
)

// BookHandler handles book catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// Create handles book registration
// @Summary Create book
// @Description Register a new book in the catalog
// @Tags Books
// @Accept json
// @Produce json
// @Param body body services.CreateBookInput true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var input services.CreateBookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if input.Author == "" {
		return response.BadRequest(c, "Author is required")
	}
	if input.InternalCode == "" {
		return response.BadRequest(c, "Internal code is required")
	}
	if input.StockAvailable < 0 {
		return response.BadRequest(c, "Stock cannot be negative")
	}

	book, err := h.bookService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInternalCodeTaken) {
			return response.Conflict(c, "A book with this internal code already exists")
		}
		return response.InternalServerError(c, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", book)
}

// Update handles book update
// @Summary Update book
// @Description Update catalog fields of a book (stock excluded)
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param body body services.UpdateBookInput true "Book data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	var input services.UpdateBookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to update book")
	}

	return response.Success(c, "Book updated successfully", book)
}

// Delete handles book removal
// @Summary Delete book
// @Description Remove a book that is not currently on loan
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	if err := h.bookService.Delete(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrBookOnLoan):
			return response.Conflict(c, "Book is on loan and cannot be removed")
		default:
			return response.InternalServerError(c, "Failed to delete book")
		}
	}

	return response.Success(c, "Book deleted successfully", nil)
}

// GetByID handles getting a single book
// @Summary Get book
// @Description Get a book by ID
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.bookService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", book)
}

// List handles book listing
// @Summary List books
// @Description List books with pagination, optionally filtered by category
// @Tags Books
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param category query string false "Category filter"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	category := c.Query("category")

	books, total, err := h.bookService.List(c.Context(), params.Offset, params.Limit, category)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", pagination.NewResponse(books, params, total))
}

// Search handles book search
// @Summary Search books
// @Description Search books by title, author or internal code
// @Tags Books
// @Accept json
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} response.Response
// @Router /books/search [get]
func (h *BookHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return response.BadRequest(c, "Search term is required")
	}

	books, err := h.bookService.Search(c.Context(), term, pagination.DefaultLimit)
	if err != nil {
		return response.InternalServerError(c, "Failed to search books")
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books": books,
		"count": len(books),
	})
}
