package task

import (
	"net/url"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/query"
	"github.com/frahmantamala/project-console/internal/core/common/validation"
)

type CreateTaskDTO struct {
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	ProjectID   string    `json:"project_id"`
	AssigneeID  *string   `json:"assignee_id,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
}

func (dto CreateTaskDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(200)
	v.Field("project_id", dto.ProjectID).Required()
	validateCommon(v, dto.Description, dto.Status, dto.Priority, dto.DueDate)
	return v.Validate()
}

type UpdateTaskDTO struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	AssigneeID  *string   `json:"assignee_id,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
}

func (dto UpdateTaskDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", dto.Name).Required().MaxLength(200)
	}
	validateCommon(v, dto.Description, dto.Status, dto.Priority, dto.DueDate)
	return v.Validate()
}

func validateCommon(v *validation.ValidationBuilder, description *string, status *Status, priority *Priority, due *string) {
	v.Field("description", description).MaxLength(2000)
	if status != nil {
		v.Field("status", string(*status)).OneOf(statuses...)
	}
	if priority != nil {
		v.Field("priority", string(*priority)).OneOf(priorities...)
	}
	v.Field("due_date", due).Date()
}

type ListFilter struct {
	ProjectID  *string   `json:"project_id,omitempty"`
	AssigneeID *string   `json:"assignee_id,omitempty"`
	Status     *Status   `json:"status,omitempty"`
	Priority   *Priority `json:"priority,omitempty"`
	IsOverdue  *bool     `json:"is_overdue,omitempty"`
	query.Page
}

func (f ListFilter) Query() url.Values {
	q := query.New().
		String("project_id", f.ProjectID).
		String("assignee_id", f.AssigneeID).
		Bool("is_overdue", f.IsOverdue).
		Page(f.Page)
	if f.Status != nil {
		q.Text("status", string(*f.Status))
	}
	if f.Priority != nil {
		q.Text("priority", string(*f.Priority))
	}
	return q.Values()
}

// MyTasksFilter narrows the tasks assigned to the current user.
type MyTasksFilter struct {
	Status    *Status `json:"status,omitempty"`
	IsOverdue *bool   `json:"is_overdue,omitempty"`
}

func (f MyTasksFilter) Query() url.Values {
	q := query.New().Bool("is_overdue", f.IsOverdue)
	if f.Status != nil {
		q.Text("status", string(*f.Status))
	}
	return q.Values()
}
