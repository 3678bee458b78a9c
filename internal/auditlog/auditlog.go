package auditlog

import (
	"net/url"
	"reflect"
	"time"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/query"
	"github.com/frahmantamala/project-console/internal/core/common/validation"
)

const DefaultLimit = 50

// AuditLog is an immutable record of one action taken on a resource.
type AuditLog struct {
	ID           string                 `json:"id"`
	UserID       *string                `json:"user_id"`
	ActionType   string                 `json:"action_type"`
	ResourceType string                 `json:"resource_type"`
	ResourceID   *string                `json:"resource_id"`
	ResourceName *string                `json:"resource_name"`
	Details      map[string]interface{} `json:"details"`
	Timestamp    time.Time              `json:"timestamp"`
	IPAddress    *string                `json:"ip_address"`
}

func (a AuditLog) GetID() string {
	return a.ID
}

type ListResponse struct {
	Total int        `json:"total"`
	Items []AuditLog `json:"items"`
}

type Filter struct {
	UserID       *string `json:"user_id,omitempty"`
	ActionType   *string `json:"action_type,omitempty"`
	ResourceType *string `json:"resource_type,omitempty"`
	ResourceID   *string `json:"resource_id,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	query.Page
}

func (f Filter) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("start_date", f.StartDate).Date()
	v.Field("end_date", f.EndDate).Date().NotBefore(f.StartDate, "start_date")
	v.Field("skip", f.Skip).Min(0, errors.ErrCodeValidationFailed)
	v.Field("limit", f.Limit).Min(0, errors.ErrCodeValidationFailed).Max(1000, errors.ErrCodeValidationFailed)
	return v.Validate()
}

func (f Filter) Query() url.Values {
	return query.New().
		String("user_id", f.UserID).
		String("action_type", f.ActionType).
		String("resource_type", f.ResourceType).
		String("resource_id", f.ResourceID).
		String("start_date", f.StartDate).
		String("end_date", f.EndDate).
		Page(f.Page).
		Values()
}

// sameCriteria compares filters ignoring the page window.
func (f Filter) sameCriteria(other Filter) bool {
	f.Page, other.Page = query.Page{}, query.Page{}
	return reflect.DeepEqual(f, other)
}
