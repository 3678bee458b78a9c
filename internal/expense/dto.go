package expense

import (
	"time"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/validation"
)

const maxAmount = validation.MaxBudget

type CreateExpenseDTO struct {
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	Category    *string    `json:"category,omitempty"`
	RecordedAt  *time.Time `json:"recorded_at,omitempty"`
}

func (dto CreateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("amount", dto.Amount).Positive(errors.ErrCodeInvalidAmount).Max(maxAmount, errors.ErrCodeInvalidAmount)
	v.Field("description", dto.Description).Required().MaxLength(500)
	v.Field("category", dto.Category).MaxLength(100)
	v.Field("recorded_at", dto.RecordedAt).Custom(notInFuture)
	return v.Validate()
}

func notInFuture(value interface{}) *errors.AppError {
	if t, ok := value.(*time.Time); ok && t != nil && t.After(time.Now()) {
		return errors.NewValidationFieldError("recorded_at", "recorded_at cannot be in the future", errors.ErrCodeInvalidDate)
	}
	return nil
}

type UpdateExpenseDTO struct {
	Amount      *float64   `json:"amount,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	RecordedAt  *time.Time `json:"recorded_at,omitempty"`
}

func (dto UpdateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Amount != nil {
		v.Field("amount", dto.Amount).Positive(errors.ErrCodeInvalidAmount).Max(maxAmount, errors.ErrCodeInvalidAmount)
	}
	if dto.Description != nil {
		v.Field("description", dto.Description).Required().MaxLength(500)
	}
	v.Field("category", dto.Category).MaxLength(100)
	v.Field("recorded_at", dto.RecordedAt).Custom(notInFuture)
	return v.Validate()
}
