package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sena-biblioteca/internal/adapters/persistence/repositories"
	"sena-biblioteca/internal/core/services"
	"sena-biblioteca/internal/pkg/pagination"
	"sena-biblioteca/internal/pkg/response"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notifyRepo      *repositories.NotificationRepository
	reminderService *services.ReminderService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifyRepo *repositories.NotificationRepository, reminderService *services.ReminderService) *NotificationHandler {
	return &NotificationHandler{
		notifyRepo:      notifyRepo,
		reminderService: reminderService,
	}
}

// GetByUser lists a user's reminder notifications
// @Summary List user notifications
// @Description List reminder notifications sent to a user, newest first
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /users/{id}/notifications [get]
func (h *NotificationHandler) GetByUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	notifications, err := h.notifyRepo.GetByUser(c.Context(), uint(id), pagination.MaxLimit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// GetMine lists the signed-in user's reminder notifications
// @Summary List my notifications
// @Description List reminder notifications sent to the authenticated user, newest first
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) GetMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Invalid session")
	}

	notifications, err := h.notifyRepo.GetByUser(c.Context(), userID, pagination.MaxLimit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// RunSweep triggers the reminder sweep manually
// @Summary Run reminder sweep
// @Description Scan active loans and record due reminders now
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/sweep [post]
func (h *NotificationHandler) RunSweep(c *fiber.Ctx) error {
	if err := h.reminderService.Run(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to run reminder sweep")
	}

	return response.Success(c, "Reminder sweep completed", nil)
}
