package dto

import (
	"time"

	"github.com/spec-kit/taskboard/internal/domain"
)

// MilestoneRequest is the body of PUT /save-milestone/:taskID/:milestoneID.
type MilestoneRequest struct {
	Title      string     `json:"title"`
	Deadline   *time.Time `json:"deadline"`
	FinishDate *time.Time `json:"finishDate"`
	Status     string     `json:"status"`
	ParentID   *string    `json:"parentId"`
	Notes      string     `json:"notes"`
	UpdatedAt  *time.Time `json:"updatedAt"`
}

// ToDomain builds the domain milestone for the given IDs.
func (r MilestoneRequest) ToDomain(taskID, id string) *domain.Milestone {
	milestone := &domain.Milestone{
		ID:         id,
		TaskID:     taskID,
		Title:      r.Title,
		Deadline:   r.Deadline,
		FinishDate: r.FinishDate,
		Status:     r.Status,
		ParentID:   r.ParentID,
		Notes:      r.Notes,
	}
	if r.UpdatedAt != nil {
		milestone.UpdatedAt = *r.UpdatedAt
	}
	return milestone
}

// MilestoneResponse is the milestone representation.
type MilestoneResponse struct {
	ID         string     `json:"id"`
	TaskID     string     `json:"taskId"`
	Title      string     `json:"title"`
	Deadline   *time.Time `json:"deadline"`
	FinishDate *time.Time `json:"finishDate"`
	Status     string     `json:"status"`
	ParentID   *string    `json:"parentId"`
	Notes      string     `json:"notes"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewMilestoneResponse maps a domain milestone.
func NewMilestoneResponse(milestone *domain.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:         milestone.ID,
		TaskID:     milestone.TaskID,
		Title:      milestone.Title,
		Deadline:   milestone.Deadline,
		FinishDate: milestone.FinishDate,
		Status:     milestone.Status,
		ParentID:   milestone.ParentID,
		Notes:      milestone.Notes,
		UpdatedAt:  milestone.UpdatedAt,
	}
}

// NewMilestoneResponses maps a milestone slice.
func NewMilestoneResponses(milestones []domain.Milestone) []MilestoneResponse {
	result := make([]MilestoneResponse, 0, len(milestones))
	for i := range milestones {
		result = append(result, NewMilestoneResponse(&milestones[i]))
	}
	return result
}
