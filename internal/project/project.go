package project

import (
	"time"

	"github.com/frahmantamala/project-console/internal/document"
	"github.com/frahmantamala/project-console/internal/user"
)

type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

var statuses = []string{
	string(StatusPlanning),
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusArchived),
}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if string(s) == v {
			return true
		}
	}
	return false
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	Budget      float64   `json:"budget"`
	Spent       float64   `json:"spent"`
	OwnerID     string    `json:"owner_id"`
	Owner       user.User `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p Project) GetID() string {
	return p.ID
}

func (p *Project) Remaining() float64 {
	return p.Budget - p.Spent
}

// UsagePercent is spent over budget in percent; zero budgets report 0.
func (p *Project) UsagePercent() float64 {
	if p.Budget <= 0 {
		return 0
	}
	return p.Spent / p.Budget * 100
}

func (p *Project) IsOverBudget() bool {
	return p.Spent > p.Budget
}

type Member struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	UserID     string    `json:"user_id"`
	User       user.User `json:"user"`
	Role       *string   `json:"role"`
	AssignedAt time.Time `json:"assigned_at"`
}

func (m Member) GetID() string {
	return m.ID
}

// Detail is a project with its members and document links loaded.
type Detail struct {
	Project
	Members       []Member        `json:"members"`
	DocumentLinks []document.Link `json:"document_links"`
}

func (d *Detail) HasMember(userID string) bool {
	for _, m := range d.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func (d *Detail) memberIDs() map[string]bool {
	ids := make(map[string]bool, len(d.Members))
	for _, m := range d.Members {
		ids[m.UserID] = true
	}
	return ids
}
