package sandbox

import (
	"net/http"

	"github.com/frahmantamala/project-console/internal/auditlog"
)

func (s *Server) listAuditLogs(w http.ResponseWriter, r *http.Request) {
	filter := auditlog.Filter{
		UserID:       optString(r, "user_id"),
		ActionType:   optString(r, "action_type"),
		ResourceType: optString(r, "resource_type"),
		ResourceID:   optString(r, "resource_id"),
		StartDate:    optString(r, "start_date"),
		EndDate:      optString(r, "end_date"),
		Page:         pageFrom(r),
	}
	if r.URL.Query().Get("limit") == "" {
		filter.Limit = auditlog.DefaultLimit
	}
	if !s.validate(w, filter.Validate()) {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []auditlog.AuditLog{}
	for _, e := range s.data.audit.newestFirst() {
		if auditMatches(*e, filter) {
			matched = append(matched, *e)
		}
	}
	s.WriteJSON(w, http.StatusOK, auditlog.ListResponse{
		Total: len(matched),
		Items: paginate(matched, filter.Page),
	})
}

func auditMatches(e auditlog.AuditLog, f auditlog.Filter) bool {
	eq := func(want, got *string) bool {
		return want == nil || (got != nil && *got == *want)
	}
	day := e.Timestamp.Format("2006-01-02")
	switch {
	case !eq(f.UserID, e.UserID):
		return false
	case f.ActionType != nil && e.ActionType != *f.ActionType:
		return false
	case f.ResourceType != nil && e.ResourceType != *f.ResourceType:
		return false
	case !eq(f.ResourceID, e.ResourceID):
		return false
	case f.StartDate != nil && day < *f.StartDate:
		return false
	case f.EndDate != nil && day > *f.EndDate:
		return false
	}
	return true
}
