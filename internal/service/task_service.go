package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taskboard/internal/domain"
	"github.com/spec-kit/taskboard/internal/events"
	"github.com/spec-kit/taskboard/internal/repository"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

// TaskService enforces ownership over task and milestone operations. The
// creator argument is always the authenticated username supplied by the HTTP
// boundary, never caller input.
type TaskService struct {
	tasks      repository.TaskRepository
	milestones repository.MilestoneRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewTaskService builds the service.
func NewTaskService(tasks repository.TaskRepository, milestones repository.MilestoneRepository, dispatcher events.Dispatcher) *TaskService {
	return &TaskService{
		tasks:      tasks,
		milestones: milestones,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// SaveTask inserts or replaces a task owned by creator.
func (s *TaskService) SaveTask(ctx context.Context, creator string, task *domain.Task) error {
	task.Creator = creator
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = s.now()
	}

	if err := s.tasks.Upsert(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotOwner) {
			return apperrors.NewForbidden("task belongs to another user")
		}
		return apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, events.EventTaskSaved, task.ID, creator)
	return nil
}

// LoadTask returns a task owned by creator.
func (s *TaskService) LoadTask(ctx context.Context, creator, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, creator, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", map[string]any{"task_id": taskID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return task, nil
}

// DeleteTask removes a task and, via cascade, its milestones.
func (s *TaskService) DeleteTask(ctx context.Context, creator, taskID string) error {
	removed, err := s.tasks.Delete(ctx, creator, taskID)
	if err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	if !removed {
		return apperrors.NewForbidden("task not found or not owned by caller")
	}

	s.publish(ctx, events.EventTaskDeleted, taskID, creator)
	return nil
}

// ListSummaries returns the filtered task listing for creator.
func (s *TaskService) ListSummaries(ctx context.Context, creator string, filter repository.SummaryFilter) ([]domain.TaskSummary, error) {
	summaries, err := s.tasks.ListSummaries(ctx, creator, filter)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return summaries, nil
}

// SaveMilestone inserts or replaces a milestone under a task owned by creator.
func (s *TaskService) SaveMilestone(ctx context.Context, creator string, milestone *domain.Milestone) error {
	if err := s.requireOwnership(ctx, creator, milestone.TaskID, true); err != nil {
		return err
	}
	if milestone.UpdatedAt.IsZero() {
		milestone.UpdatedAt = s.now()
	}

	if err := s.milestones.Upsert(ctx, milestone); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

// LoadMilestones lists milestones of a task owned by creator.
func (s *TaskService) LoadMilestones(ctx context.Context, creator, taskID string) ([]domain.Milestone, error) {
	if err := s.requireOwnership(ctx, creator, taskID, false); err != nil {
		return nil, err
	}

	milestones, err := s.milestones.ListByTask(ctx, taskID)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return milestones, nil
}

// LoadMilestone returns a single milestone of a task owned by creator.
func (s *TaskService) LoadMilestone(ctx context.Context, creator, taskID, milestoneID string) (*domain.Milestone, error) {
	if err := s.requireOwnership(ctx, creator, taskID, false); err != nil {
		return nil, err
	}

	milestone, err := s.milestones.GetByID(ctx, taskID, milestoneID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("milestone", map[string]any{"milestone_id": milestoneID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return milestone, nil
}

// DeleteMilestone removes a milestone unless other milestones still name it
// as their parent.
func (s *TaskService) DeleteMilestone(ctx context.Context, creator, taskID, milestoneID string) error {
	if err := s.requireOwnership(ctx, creator, taskID, true); err != nil {
		return err
	}

	hasChildren, err := s.milestones.HasChildren(ctx, taskID, milestoneID)
	if err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	if hasChildren {
		return apperrors.NewConflict("MILESTONE_HAS_CHILDREN",
			"cannot delete milestone: it is a parent to other milestones", nil)
	}

	removed, err := s.milestones.Delete(ctx, taskID, milestoneID)
	if err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	if !removed {
		return apperrors.NewNotFound("milestone", map[string]any{"milestone_id": milestoneID})
	}
	return nil
}

// requireOwnership verifies the task exists and belongs to creator. Writes
// report a foreign task as forbidden, reads as not found.
func (s *TaskService) requireOwnership(ctx context.Context, creator, taskID string, write bool) error {
	owned, err := s.tasks.OwnedBy(ctx, taskID, creator)
	if err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	if owned {
		return nil
	}
	if write {
		return apperrors.NewForbidden("task not found or not owned by caller")
	}
	return apperrors.NewNotFound("task", map[string]any{"task_id": taskID})
}

func (s *TaskService) publish(ctx context.Context, eventType events.EventType, taskID, creator string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TaskID:    taskID,
		Creator:   creator,
		Timestamp: s.now(),
	})
}
