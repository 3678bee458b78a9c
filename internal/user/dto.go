package user

import (
	"net/url"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/query"
	"github.com/frahmantamala/project-console/internal/core/common/validation"
)

type CreateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     *Role  `json:"role,omitempty"`
}

func (dto CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().Email()
	v.Field("password", dto.Password).Required().Password()
	if dto.Role != nil {
		v.Field("role", string(*dto.Role)).OneOf(string(RoleAdmin), string(RoleMember))
	}
	return v.Validate()
}

type UpdateUserDTO struct {
	Name *string `json:"name,omitempty"`
	Role *Role   `json:"role,omitempty"`
}

func (dto UpdateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", dto.Name).Required().MaxLength(100)
	}
	if dto.Role != nil {
		v.Field("role", string(*dto.Role)).OneOf(string(RoleAdmin), string(RoleMember))
	}
	return v.Validate()
}

type ListFilter struct {
	IsActive *bool `json:"is_active,omitempty"`
	query.Page
}

func (f ListFilter) Query() url.Values {
	return query.New().Bool("is_active", f.IsActive).Page(f.Page).Values()
}
