package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/taskboard/internal/domain"
)

// MilestoneRepository encapsulates milestone persistence. Task ownership is
// the caller's concern; these operations are already scoped to a task.
type MilestoneRepository interface {
	Upsert(ctx context.Context, milestone *domain.Milestone) error
	GetByID(ctx context.Context, taskID, id string) (*domain.Milestone, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.Milestone, error)
	Delete(ctx context.Context, taskID, id string) (bool, error)
	HasChildren(ctx context.Context, taskID, id string) (bool, error)
}

type milestoneRepository struct {
	pool *pgxpool.Pool
}

// NewMilestoneRepository instantiates repository.
func NewMilestoneRepository(pool *pgxpool.Pool) MilestoneRepository {
	return &milestoneRepository{pool: pool}
}

func (r *milestoneRepository) Upsert(ctx context.Context, milestone *domain.Milestone) error {
	const query = `
        INSERT INTO milestones (id, task_id, title, deadline, finish_date, status, parent_id, notes, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (id, task_id) DO UPDATE SET
            title=EXCLUDED.title, deadline=EXCLUDED.deadline, finish_date=EXCLUDED.finish_date,
            status=EXCLUDED.status, parent_id=EXCLUDED.parent_id, notes=EXCLUDED.notes,
            updated_at=EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		milestone.ID,
		milestone.TaskID,
		milestone.Title,
		milestone.Deadline,
		milestone.FinishDate,
		milestone.Status,
		milestone.ParentID,
		milestone.Notes,
		milestone.UpdatedAt,
	)
	return err
}

func (r *milestoneRepository) GetByID(ctx context.Context, taskID, id string) (*domain.Milestone, error) {
	const query = `
        SELECT id, task_id, title, deadline, finish_date, status, parent_id, notes, updated_at
        FROM milestones WHERE id=$1 AND task_id=$2`

	var milestone domain.Milestone
	if err := r.pool.QueryRow(ctx, query, id, taskID).Scan(
		&milestone.ID,
		&milestone.TaskID,
		&milestone.Title,
		&milestone.Deadline,
		&milestone.FinishDate,
		&milestone.Status,
		&milestone.ParentID,
		&milestone.Notes,
		&milestone.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *milestoneRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Milestone, error) {
	const query = `
        SELECT id, task_id, title, deadline, finish_date, status, parent_id, notes, updated_at
        FROM milestones WHERE task_id=$1
        ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Milestone
	for rows.Next() {
		var milestone domain.Milestone
		if err := rows.Scan(
			&milestone.ID,
			&milestone.TaskID,
			&milestone.Title,
			&milestone.Deadline,
			&milestone.FinishDate,
			&milestone.Status,
			&milestone.ParentID,
			&milestone.Notes,
			&milestone.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, milestone)
	}
	return result, rows.Err()
}

func (r *milestoneRepository) Delete(ctx context.Context, taskID, id string) (bool, error) {
	const query = `DELETE FROM milestones WHERE id=$1 AND task_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, taskID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *milestoneRepository) HasChildren(ctx context.Context, taskID, id string) (bool, error) {
	const query = `SELECT 1 FROM milestones WHERE task_id=$1 AND parent_id=$2 LIMIT 1`

	var one int
	err := r.pool.QueryRow(ctx, query, taskID, id).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
