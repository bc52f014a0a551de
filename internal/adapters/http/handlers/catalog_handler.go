package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sena-biblioteca/internal/core/domain"
	"sena-biblioteca/internal/core/services"
	"sena-biblioteca/internal/pkg/response"
)

// CatalogHandler handles category and author master data endpoints
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories handles category listing
// @Summary List categories
// @Description List all book categories ordered by name
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}

	return response.Success(c, "Categories retrieved successfully", categories)
}

// CreateCategory handles category creation
// @Summary Create category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body services.CategoryInput true "Category data"
// @Success 201 {object} response.Response
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	category, err := h.catalogService.CreateCategory(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create category")
	}

	return response.Created(c, "Category created successfully", category)
}

// UpdateCategory handles category update
// @Summary Update category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param body body services.CategoryInput true "Category data"
// @Success 200 {object} response.Response
// @Router /categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	category, err := h.catalogService.UpdateCategory(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to update category")
	}

	return response.Success(c, "Category updated successfully", category)
}

// DeleteCategory handles category removal
// @Summary Delete category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Router /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	if err := h.catalogService.DeleteCategory(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to delete category")
	}

	return response.Success(c, "Category deleted successfully", nil)
}

// ListAuthors handles author listing
// @Summary List authors
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /authors [get]
func (h *CatalogHandler) ListAuthors(c *fiber.Ctx) error {
	authors, err := h.catalogService.ListAuthors(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list authors")
	}

	return response.Success(c, "Authors retrieved successfully", authors)
}

// CreateAuthor handles author creation
// @Summary Create author
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body services.AuthorInput true "Author data"
// @Success 201 {object} response.Response
// @Router /authors [post]
func (h *CatalogHandler) CreateAuthor(c *fiber.Ctx) error {
	var input services.AuthorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	author, err := h.catalogService.CreateAuthor(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create author")
	}

	return response.Created(c, "Author created successfully", author)
}

// UpdateAuthor handles author update
// @Summary Update author
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Param body body services.AuthorInput true "Author data"
// @Success 200 {object} response.Response
// @Router /authors/{id} [put]
func (h *CatalogHandler) UpdateAuthor(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid author ID")
	}

	var input services.AuthorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	author, err := h.catalogService.UpdateAuthor(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrAuthorNotFound) {
			return response.NotFound(c, "Author not found")
		}
		return response.InternalServerError(c, "Failed to update author")
	}

	return response.Success(c, "Author updated successfully", author)
}

// DeleteAuthor handles author removal
// @Summary Delete author
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} response.Response
// @Router /authors/{id} [delete]
func (h *CatalogHandler) DeleteAuthor(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid author ID")
	}

	if err := h.catalogService.DeleteAuthor(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrAuthorNotFound) {
			return response.NotFound(c, "Author not found")
		}
		return response.InternalServerError(c, "Failed to delete author")
	}

	return response.Success(c, "Author deleted successfully", nil)
}
