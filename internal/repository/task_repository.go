package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/taskboard/internal/domain"
)

// ErrNotOwner is returned when a write touches a task created by somebody
// else.
var ErrNotOwner = errors.New("task not owned by caller")

// Sort orders accepted by the summary listing.
const (
	SortByUpdatedAt = "updatedAt"
	SortByDeadline  = "deadline"
	SortByPriority  = "priority"
	SortByFrom      = "from"
)

// SummaryFilter captures the query parameters of the filtered task listing.
type SummaryFilter struct {
	Search       string
	Categories   []string
	Statuses     []string
	SortBy       string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	UpdatedFrom  *time.Time
	UpdatedTo    *time.Time
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
	FinishedFrom *time.Time
	FinishedTo   *time.Time
}

// TaskRepository encapsulates task persistence.
type TaskRepository interface {
	Upsert(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, creator, id string) (*domain.Task, error)
	OwnedBy(ctx context.Context, id, creator string) (bool, error)
	Delete(ctx context.Context, creator, id string) (bool, error)
	ListSummaries(ctx context.Context, creator string, filter SummaryFilter) ([]domain.TaskSummary, error)
	DistinctStatuses(ctx context.Context, creator string) ([]string, error)
	DistinctFromValues(ctx context.Context, creator string) ([]string, error)
	DistinctCategories(ctx context.Context, creator string) ([]string, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Upsert(ctx context.Context, task *domain.Task) error {
	// The creator guard on the conflict branch means a save against a foreign
	// task updates zero rows instead of stealing it.
	const query = `
        INSERT INTO tasks (id, creator, title, from_value, priority, deadline, finish_date,
                           status, description, notes, categories, attachments, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        ON CONFLICT (id) DO UPDATE SET
            title=EXCLUDED.title, from_value=EXCLUDED.from_value, priority=EXCLUDED.priority,
            deadline=EXCLUDED.deadline, finish_date=EXCLUDED.finish_date, status=EXCLUDED.status,
            description=EXCLUDED.description, notes=EXCLUDED.notes, categories=EXCLUDED.categories,
            attachments=EXCLUDED.attachments, updated_at=EXCLUDED.updated_at
        WHERE tasks.creator = EXCLUDED.creator`

	cmd, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Creator,
		task.Title,
		task.From,
		task.Priority,
		task.Deadline,
		task.FinishDate,
		task.Status,
		task.Description,
		task.Notes,
		task.Categories,
		task.Attachments,
		task.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotOwner
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, creator, id string) (*domain.Task, error) {
	const query = `
        SELECT id, creator, title, from_value, priority, deadline, finish_date,
               status, description, notes, categories, attachments, created_at, updated_at
        FROM tasks WHERE id=$1 AND creator=$2`

	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id, creator).Scan(
		&task.ID,
		&task.Creator,
		&task.Title,
		&task.From,
		&task.Priority,
		&task.Deadline,
		&task.FinishDate,
		&task.Status,
		&task.Description,
		&task.Notes,
		&task.Categories,
		&task.Attachments,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) OwnedBy(ctx context.Context, id, creator string) (bool, error) {
	const query = `SELECT 1 FROM tasks WHERE id=$1 AND creator=$2`

	var one int
	err := r.pool.QueryRow(ctx, query, id, creator).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *taskRepository) Delete(ctx context.Context, creator, id string) (bool, error) {
	// Milestones go with the task via ON DELETE CASCADE.
	const query = `DELETE FROM tasks WHERE id=$1 AND creator=$2`

	cmd, err := r.pool.Exec(ctx, query, id, creator)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *taskRepository) ListSummaries(ctx context.Context, creator string, filter SummaryFilter) ([]domain.TaskSummary, error) {
	query, args := buildSummaryQuery(creator, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskSummary
	for rows.Next() {
		var summary domain.TaskSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Creator,
			&summary.Title,
			&summary.From,
			&summary.Priority,
			&summary.Deadline,
			&summary.FinishDate,
			&summary.Status,
			&summary.Categories,
			&summary.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	return result, rows.Err()
}

// buildSummaryQuery assembles the conditional listing statement. Every value
// travels as a bind parameter; the clause text itself never contains caller
// input.
func buildSummaryQuery(creator string, filter SummaryFilter) (string, []any) {
	base := `SELECT id, creator, title, from_value, priority, deadline, finish_date, status, categories, updated_at
             FROM tasks`
	args := []any{creator}
	clauses := []string{"creator=$1"}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(from_value) LIKE %s)", placeholder, placeholder))
	}
	if len(filter.Categories) > 0 {
		args = append(args, filter.Categories)
		clauses = append(clauses, fmt.Sprintf("categories && $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	clauses, args = appendRange(clauses, args, "created_at", filter.CreatedFrom, filter.CreatedTo)
	clauses, args = appendRange(clauses, args, "updated_at", filter.UpdatedFrom, filter.UpdatedTo)
	clauses, args = appendRange(clauses, args, "deadline", filter.DeadlineFrom, filter.DeadlineTo)
	clauses, args = appendRange(clauses, args, "finish_date", filter.FinishedFrom, filter.FinishedTo)

	var order string
	switch filter.SortBy {
	case SortByDeadline:
		order = "ORDER BY deadline ASC NULLS LAST"
	case SortByPriority:
		order = "ORDER BY priority ASC"
	case SortByFrom:
		order = "ORDER BY from_value ASC"
	default:
		order = "ORDER BY updated_at DESC"
	}

	query := fmt.Sprintf("%s WHERE %s %s", base, strings.Join(clauses, " AND "), order)
	return query, args
}

func appendRange(clauses []string, args []any, column string, from, to *time.Time) ([]string, []any) {
	if from != nil {
		args = append(args, *from)
		clauses = append(clauses, fmt.Sprintf("%s >= $%d", column, len(args)))
	}
	if to != nil {
		args = append(args, *to)
		clauses = append(clauses, fmt.Sprintf("%s <= $%d", column, len(args)))
	}
	return clauses, args
}

func (r *taskRepository) DistinctStatuses(ctx context.Context, creator string) ([]string, error) {
	const query = `
        SELECT DISTINCT status FROM tasks
        WHERE creator=$1 AND status <> ''
        ORDER BY status`
	return r.stringColumn(ctx, query, creator)
}

func (r *taskRepository) DistinctFromValues(ctx context.Context, creator string) ([]string, error) {
	const query = `
        SELECT DISTINCT from_value FROM tasks
        WHERE creator=$1 AND from_value <> ''
        ORDER BY from_value`
	return r.stringColumn(ctx, query, creator)
}

func (r *taskRepository) DistinctCategories(ctx context.Context, creator string) ([]string, error) {
	const query = `
        SELECT DISTINCT unnest(categories) AS category FROM tasks
        WHERE creator=$1
        ORDER BY category`
	return r.stringColumn(ctx, query, creator)
}

func (r *taskRepository) stringColumn(ctx context.Context, query, creator string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, creator)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
