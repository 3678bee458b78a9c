package sandbox

import (
	"net/http"
	"strconv"
	"strings"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/auditlog"
	"github.com/frahmantamala/project-console/internal/core/common/query"
	"github.com/frahmantamala/project-console/internal/transport/middleware"
	"github.com/frahmantamala/project-console/internal/user"
)

func principal(r *http.Request) *middleware.Principal {
	p, _ := middleware.PrincipalFrom(r.Context())
	return p
}

func isAdmin(r *http.Request) bool {
	p := principal(r)
	return p != nil && p.Role == string(user.RoleAdmin)
}

// validate answers 422 with the validation message when err is set.
func (s *Server) validate(w http.ResponseWriter, err *errors.AppError) bool {
	if err == nil {
		return true
	}
	s.WriteError(w, http.StatusUnprocessableEntity, err.GetDetailedMessage())
	return false
}

func pageFrom(r *http.Request) query.Page {
	q := r.URL.Query()
	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return query.Page{Skip: skip, Limit: limit}
}

func paginate[T any](items []T, page query.Page) []T {
	if page.Skip >= len(items) {
		return []T{}
	}
	end := page.Skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Skip:end]
}

func optString(r *http.Request, key string) *string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return &v
	}
	return nil
}

func optBool(r *http.Request, key string) *bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &v
}

// record appends an audit entry attributed to the caller. Callers hold s.mu.
func (s *Server) record(r *http.Request, action, resourceType, resourceID, resourceName string, details map[string]interface{}) {
	actor := ""
	if p := principal(r); p != nil {
		actor = p.UserID
	}
	s.recordBy(actor, r, action, resourceType, resourceID, resourceName, details)
}

func (s *Server) recordBy(actor string, r *http.Request, action, resourceType, resourceID, resourceName string, details map[string]interface{}) {
	entry := auditlog.AuditLog{
		ID:           newID(),
		ActionType:   action,
		ResourceType: resourceType,
		Details:      details,
		Timestamp:    s.now().UTC(),
	}
	if actor != "" {
		entry.UserID = &actor
	}
	if resourceID != "" {
		entry.ResourceID = &resourceID
	}
	if resourceName != "" {
		entry.ResourceName = &resourceName
	}
	if host := remoteHost(r); host != "" {
		entry.IPAddress = &host
	}
	s.data.audit.put(entry.ID, &entry)
}

func remoteHost(r *http.Request) string {
	addr := r.RemoteAddr
	if i := strings.LastIndex(addr, ":"); i > 0 {
		return addr[:i]
	}
	return addr
}
