package document

import (
	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/validation"
)

type CreateLinkDTO struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description,omitempty"`
}

func (dto CreateLinkDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("url", dto.URL).Required().URL()
	v.Field("description", dto.Description).MaxLength(1000)
	return v.Validate()
}

type UpdateLinkDTO struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (dto UpdateLinkDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Title != nil {
		v.Field("title", dto.Title).Required().MaxLength(200)
	}
	v.Field("description", dto.Description).MaxLength(1000)
	return v.Validate()
}
