package domain

import "time"

// Milestone belongs to a task and may reference another milestone of the same
// task as its parent. A milestone with children cannot be deleted until the
// children's parent links are removed.
type Milestone struct {
	ID         string
	TaskID     string
	Title      string
	Deadline   *time.Time
	FinishDate *time.Time
	Status     string
	ParentID   *string
	Notes      string
	UpdatedAt  time.Time
}
