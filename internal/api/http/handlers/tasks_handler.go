package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/taskboard/internal/api/dto"
	"github.com/spec-kit/taskboard/internal/auth"
	"github.com/spec-kit/taskboard/internal/repository"
	"github.com/spec-kit/taskboard/internal/service"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

// TasksHandler exposes task CRUD and the filtered summary listing.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: taskService}
}

// Save handles PUT /save-task/:taskID.
func (h *TasksHandler) Save(c *fiber.Ctx) error {
	// Fiber reuses the bytes behind c.Params between requests; anything
	// retained past the handler must be copied.
	taskID := utils.CopyString(c.Params("taskID"))
	if !isSafeSegment(taskID) {
		return fiber.NewError(http.StatusBadRequest, "invalid task ID")
	}
	username, ok := auth.UsernameFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.tasks.SaveTask(c.UserContext(), username, req.ToDomain(taskID)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "task saved", "id": taskID})
}

// Load handles GET /load-task/:taskID.
func (h *TasksHandler) Load(c *fiber.Ctx) error {
	taskID := utils.CopyString(c.Params("taskID"))
	if !isSafeSegment(taskID) {
		return fiber.NewError(http.StatusBadRequest, "invalid task ID")
	}
	username, ok := auth.UsernameFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	task, err := h.tasks.LoadTask(c.UserContext(), username, taskID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTaskResponse(task))
}

// Delete handles DELETE /delete-task/:taskID.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	taskID := utils.CopyString(c.Params("taskID"))
	if !isSafeSegment(taskID) {
		return fiber.NewError(http.StatusBadRequest, "invalid task ID")
	}
	username, ok := auth.UsernameFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.tasks.DeleteTask(c.UserContext(), username, taskID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "task deleted", "id": taskID})
}

// ListSummaries handles GET /load-tasks-summary.
func (h *TasksHandler) ListSummaries(c *fiber.Ctx) error {
	username, ok := auth.UsernameFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter, err := parseSummaryFilter(c)
	if err != nil {
		return err
	}

	summaries, err := h.tasks.ListSummaries(c.UserContext(), username, filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTaskSummaryResponses(summaries))
}

// parseSummaryFilter maps the listing query parameters onto a filter. Range
// bounds accept plain dates; a to-date is extended to the end of its day.
func parseSummaryFilter(c *fiber.Ctx) (repository.SummaryFilter, error) {
	filter := repository.SummaryFilter{
		Search:     c.Query("q"),
		Categories: splitCSV(c.Query("categories")),
		Statuses:   splitCSV(c.Query("statuses")),
		SortBy:     c.Query("sortBy", repository.SortByUpdatedAt),
	}

	ranges := []struct {
		fromParam, toParam string
		from, to           **time.Time
	}{
		{"createdRF", "createdRT", &filter.CreatedFrom, &filter.CreatedTo},
		{"updatedRF", "updatedRT", &filter.UpdatedFrom, &filter.UpdatedTo},
		{"deadlineRF", "deadlineRT", &filter.DeadlineFrom, &filter.DeadlineTo},
		{"finishedRF", "finishedRT", &filter.FinishedFrom, &filter.FinishedTo},
	}
	for _, r := range ranges {
		from, err := parseDateParam(c.Query(r.fromParam), false)
		if err != nil {
			return repository.SummaryFilter{}, fiber.NewError(http.StatusBadRequest, "invalid date in "+r.fromParam)
		}
		to, err := parseDateParam(c.Query(r.toParam), true)
		if err != nil {
			return repository.SummaryFilter{}, fiber.NewError(http.StatusBadRequest, "invalid date in "+r.toParam)
		}
		*r.from = from
		*r.to = to
	}

	return filter, nil
}

func parseDateParam(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
