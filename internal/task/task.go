package task

import (
	"time"

	"github.com/frahmantamala/project-console/internal/user"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var statuses = []string{
	string(StatusTodo),
	string(StatusInProgress),
	string(StatusInReview),
	string(StatusCompleted),
	string(StatusCancelled),
}

func (s Status) Valid() bool {
	return contains(statuses, string(s))
}

// Done reports whether no more work is expected on a task in this status.
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorities = []string{
	string(PriorityLow),
	string(PriorityMedium),
	string(PriorityHigh),
	string(PriorityUrgent),
}

func (p Priority) Valid() bool {
	return contains(priorities, string(p))
}

type Task struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Status       Status     `json:"status"`
	Priority     Priority   `json:"priority"`
	ProjectID    string     `json:"project_id"`
	AssigneeID   *string    `json:"assignee_id"`
	Assignee     *user.User `json:"assignee"`
	AssigneeName *string    `json:"assignee_name,omitempty"`
	CreatedByID  *string    `json:"created_by_id"`
	DueDate      *string    `json:"due_date"`
	IsOverdue    bool       `json:"is_overdue"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (t Task) GetID() string {
	return t.ID
}

// AssigneeLabel is the display name of the assignee, empty when unassigned.
func (t *Task) AssigneeLabel() string {
	switch {
	case t.AssigneeName != nil && *t.AssigneeName != "":
		return *t.AssigneeName
	case t.Assignee != nil:
		return t.Assignee.Name
	default:
		return ""
	}
}

type Stats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	InReview   int `json:"in_review"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Overdue    int `json:"overdue"`
}

// CompletionRate is completed over total in percent.
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

type MyTasksSummary struct {
	PendingTasks      int            `json:"pending_tasks"`
	OverdueTasks      int            `json:"overdue_tasks"`
	CompletedThisWeek int            `json:"completed_this_week"`
	TasksByPriority   map[string]int `json:"tasks_by_priority"`
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
