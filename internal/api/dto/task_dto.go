package dto

import (
	"time"

	"github.com/spec-kit/taskboard/internal/domain"
)

// TaskRequest is the body of PUT /save-task/:taskID. The ID comes from the
// path and the creator from the verified token, never from the body.
type TaskRequest struct {
	Title       string     `json:"title"`
	From        string     `json:"from"`
	Priority    int        `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
	FinishDate  *time.Time `json:"finishDate"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	Categories  []string   `json:"categories"`
	Attachments []string   `json:"attachments"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// ToDomain builds the domain task for the given ID.
func (r TaskRequest) ToDomain(id string) *domain.Task {
	task := &domain.Task{
		ID:          id,
		Title:       r.Title,
		From:        r.From,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
		FinishDate:  r.FinishDate,
		Status:      r.Status,
		Description: r.Description,
		Notes:       r.Notes,
		Categories:  r.Categories,
		Attachments: r.Attachments,
	}
	if r.UpdatedAt != nil {
		task.UpdatedAt = *r.UpdatedAt
	}
	if task.Categories == nil {
		task.Categories = []string{}
	}
	if task.Attachments == nil {
		task.Attachments = []string{}
	}
	return task
}

// TaskResponse is the full task representation.
type TaskResponse struct {
	ID          string     `json:"id"`
	Creator     string     `json:"creator"`
	Title       string     `json:"title"`
	From        string     `json:"from"`
	Priority    int        `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
	FinishDate  *time.Time `json:"finishDate"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	Categories  []string   `json:"categories"`
	Attachments []string   `json:"attachments"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTaskResponse maps a domain task.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Creator:     task.Creator,
		Title:       task.Title,
		From:        task.From,
		Priority:    task.Priority,
		Deadline:    task.Deadline,
		FinishDate:  task.FinishDate,
		Status:      task.Status,
		Description: task.Description,
		Notes:       task.Notes,
		Categories:  task.Categories,
		Attachments: task.Attachments,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// TaskSummaryResponse is the trimmed listing projection.
type TaskSummaryResponse struct {
	ID         string     `json:"id"`
	Creator    string     `json:"creator"`
	Title      string     `json:"title"`
	From       string     `json:"from"`
	Priority   int        `json:"priority"`
	Deadline   *time.Time `json:"deadline"`
	FinishDate *time.Time `json:"finishDate"`
	Status     string     `json:"status"`
	Categories []string   `json:"categories"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewTaskSummaryResponses maps a summary slice.
func NewTaskSummaryResponses(summaries []domain.TaskSummary) []TaskSummaryResponse {
	result := make([]TaskSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, TaskSummaryResponse{
			ID:         s.ID,
			Creator:    s.Creator,
			Title:      s.Title,
			From:       s.From,
			Priority:   s.Priority,
			Deadline:   s.Deadline,
			FinishDate: s.FinishDate,
			Status:     s.Status,
			Categories: s.Categories,
			UpdatedAt:  s.UpdatedAt,
		})
	}
	return result
}
