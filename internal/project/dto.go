package project

import (
	"net/url"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/query"
	"github.com/frahmantamala/project-console/internal/core/common/validation"
)

type CreateProjectDTO struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Status      *Status  `json:"status,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	OwnerID     *string  `json:"owner_id,omitempty"`
}

func (dto CreateProjectDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(200)
	validateCommon(v, dto.Status, dto.StartDate, dto.EndDate, dto.Budget)
	return v.Validate()
}

type UpdateProjectDTO struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *Status  `json:"status,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	Spent       *float64 `json:"spent,omitempty"`
}

func (dto UpdateProjectDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", dto.Name).Required().MaxLength(200)
	}
	validateCommon(v, dto.Status, dto.StartDate, dto.EndDate, dto.Budget)
	v.Field("spent", dto.Spent).Min(0, errors.ErrCodeInvalidAmount)
	return v.Validate()
}

func validateCommon(v *validation.ValidationBuilder, status *Status, start, end *string, budget *float64) {
	if status != nil {
		v.Field("status", string(*status)).OneOf(statuses...)
	}
	v.Field("start_date", start).Date()
	v.Field("end_date", end).Date().NotBefore(start, "start_date")
	v.Field("budget", budget).
		Min(0, errors.ErrCodeInvalidAmount).
		Max(validation.MaxBudget, errors.ErrCodeInvalidAmount)
}

type AddMemberDTO struct {
	UserID string  `json:"user_id"`
	Role   *string `json:"role,omitempty"`
}

func (dto AddMemberDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("user_id", dto.UserID).Required()
	v.Field("role", dto.Role).MaxLength(50)
	return v.Validate()
}

type ListFilter struct {
	Status  *Status `json:"status,omitempty"`
	OwnerID *string `json:"owner_id,omitempty"`
	query.Page
}

func (f ListFilter) Query() url.Values {
	q := query.New()
	if f.Status != nil {
		q.Text("status", string(*f.Status))
	}
	return q.String("owner_id", f.OwnerID).Page(f.Page).Values()
}
