package domain

import "time"

// Task is the aggregate tracked by the board. IDs are chosen by the client;
// Creator is the authenticated username and acts as the ownership key for
// every operation touching the task.
type Task struct {
	ID          string
	Creator     string
	Title       string
	From        string
	Priority    int
	Deadline    *time.Time
	FinishDate  *time.Time
	Status      string
	Description string
	Notes       string
	Categories  []string
	Attachments []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskSummary is the trimmed projection returned by the filtered listing.
type TaskSummary struct {
	ID         string
	Creator    string
	Title      string
	From       string
	Priority   int
	Deadline   *time.Time
	FinishDate *time.Time
	Status     string
	Categories []string
	UpdatedAt  time.Time
}
