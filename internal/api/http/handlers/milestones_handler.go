package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/taskboard/internal/api/dto"
	"github.com/spec-kit/taskboard/internal/auth"
	"github.com/spec-kit/taskboard/internal/service"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

// MilestonesHandler exposes milestone CRUD under a task.
type MilestonesHandler struct {
	tasks *service.TaskService
}

// NewMilestonesHandler constructs handler.
func NewMilestonesHandler(taskService *service.TaskService) *MilestonesHandler {
	return &MilestonesHandler{tasks: taskService}
}

// Save handles PUT /save-milestone/:taskID/:milestoneID.
func (h *MilestonesHandler) Save(c *fiber.Ctx) error {
	taskID, milestoneID := utils.CopyString(c.Params("taskID")), utils.CopyString(c.Params("milestoneID"))
	if !isSafeSegment(taskID) || !isSafeSegment(milestoneID) {
		return fiber.NewError(http.StatusBadRequest, "invalid task ID or milestone ID")
	}
	username, ok := auth.UsernameFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.tasks.SaveMilestone(c.UserContext(), username, req.ToDomain(taskID, milestoneID)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "milestone saved", "id": milestoneID, "taskId": taskID})
}

// List handles GET /load-milestones/:taskID.
func (h *MilestonesHandler) List(c *fiber.Ctx) error {
	taskID := utils.CopyString(c.Params("taskID"))
	if !isSafeSegment(taskID) {
		return fiber.NewError(http.StatusBadRequest, "invalid task ID")
	}
	username, ok := auth.UsernameFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	milestones, err := h.tasks.LoadMilestones(c.UserContext(), username, taskID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMilestoneResponses(milestones))
}

// Load handles GET /load-milestone/:taskID/:milestoneID.
func (h *MilestonesHandler) Load(c *fiber.Ctx) error {
	taskID, milestoneID := utils.CopyString(c.Params("taskID")), utils.CopyString(c.Params("milestoneID"))
	if !isSafeSegment(taskID) || !isSafeSegment(milestoneID) {
		return fiber.NewError(http.StatusBadRequest, "invalid task ID or milestone ID")
	}
	username, ok := auth.UsernameFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	milestone, err := h.tasks.LoadMilestone(c.UserContext(), username, taskID, milestoneID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMilestoneResponse(milestone))
}

// Delete handles DELETE /delete-milestone/:taskID/:milestoneID.
func (h *MilestonesHandler) Delete(c *fiber.Ctx) error {
	taskID, milestoneID := utils.CopyString(c.Params("taskID")), utils.CopyString(c.Params("milestoneID"))
	if !isSafeSegment(taskID) || !isSafeSegment(milestoneID) {
		return fiber.NewError(http.StatusBadRequest, "invalid task ID or milestone ID")
	}
	username, ok := auth.UsernameFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.tasks.DeleteMilestone(c.UserContext(), username, taskID, milestoneID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "milestone deleted", "id": milestoneID, "taskId": taskID})
}
