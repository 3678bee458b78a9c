package sandbox

import (
	"net/http"

	"github.com/frahmantamala/project-console/internal/document"
	"github.com/frahmantamala/project-console/internal/project"
	"github.com/go-chi/chi"
)

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	status := optString(r, "status")
	owner := optString(r, "owner_id")

	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := []project.Project{}
	for _, p := range s.data.projects.newestFirst() {
		if status != nil && string(p.Status) != *status {
			continue
		}
		if owner != nil && p.OwnerID != *owner {
			continue
		}
		projects = append(projects, s.data.withOwner(*p))
	}
	s.WriteJSON(w, http.StatusOK, paginate(projects, pageFrom(r)))
}

func (s *Server) listOverdueProjects(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.today()
	projects := []project.Project{}
	for _, p := range s.data.projects.newestFirst() {
		if projectOverdue(*p, today) {
			projects = append(projects, s.data.withOwner(*p))
		}
	}
	s.WriteJSON(w, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var dto project.CreateProjectDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owner := principal(r).UserID
	if dto.OwnerID != nil && *dto.OwnerID != "" {
		if _, ok := s.data.accounts.get(*dto.OwnerID); !ok {
			s.WriteError(w, http.StatusBadRequest, "Owner not found")
			return
		}
		owner = *dto.OwnerID
	}

	now := s.now().UTC()
	p := &project.Project{
		ID:          newID(),
		Name:        dto.Name,
		Description: dto.Description,
		Status:      project.StatusPlanning,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}
	if dto.Budget != nil {
		p.Budget = *dto.Budget
	}
	s.data.projects.put(p.ID, p)

	s.record(r, "create", "project", p.ID, p.Name, nil)
	s.WriteJSON(w, http.StatusCreated, s.data.withOwner(*p))
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data.projects.get(chi.URLParam(r, "projectID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	s.WriteJSON(w, http.StatusOK, project.Detail{
		Project:       s.data.withOwner(*p),
		Members:       s.data.membersOf(p.ID),
		DocumentLinks: s.data.linksOf(p.ID),
	})
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var dto project.UpdateProjectDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data.projects.get(chi.URLParam(r, "projectID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = dto.Description
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}
	if dto.StartDate != nil {
		p.StartDate = dto.StartDate
	}
	if dto.EndDate != nil {
		p.EndDate = dto.EndDate
	}
	if dto.Budget != nil {
		p.Budget = *dto.Budget
	}
	if dto.Spent != nil {
		p.Spent = *dto.Spent
	}
	p.UpdatedAt = s.now().UTC()

	s.record(r, "update", "project", p.ID, p.Name, nil)
	s.WriteJSON(w, http.StatusOK, s.data.withOwner(*p))
}

// deleteProject cascades to everything hanging off the project.
func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "projectID")
	p, ok := s.data.projects.get(id)
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	for _, m := range s.data.membersOf(id) {
		s.data.members.remove(m.ID)
	}
	for _, l := range s.data.linksOf(id) {
		s.data.links.remove(l.ID)
	}
	for _, e := range s.data.expensesOf(id) {
		s.data.expenses.remove(e.ID)
	}
	for _, t := range s.data.tasks.newestFirst() {
		if t.ProjectID == id {
			s.data.tasks.remove(t.ID)
		}
	}
	s.data.projects.remove(id)

	s.record(r, "delete", "project", id, p.Name, nil)
	s.WriteNoContent(w)
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := chi.URLParam(r, "projectID")
	if _, ok := s.data.projects.get(id); !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	s.WriteJSON(w, http.StatusOK, s.data.membersOf(id))
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	var dto project.AddMemberDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data.projects.get(chi.URLParam(r, "projectID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	a, ok := s.data.accounts.get(dto.UserID)
	if !ok {
		s.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	for _, m := range s.data.membersOf(p.ID) {
		if m.UserID == dto.UserID {
			s.WriteError(w, http.StatusBadRequest, "User is already a member of this project")
			return
		}
	}

	m := &project.Member{
		ID:         newID(),
		ProjectID:  p.ID,
		UserID:     a.ID,
		User:       a.User,
		Role:       dto.Role,
		AssignedAt: s.now().UTC(),
	}
	s.data.members.put(m.ID, m)

	s.record(r, "add_member", "project", p.ID, p.Name, map[string]interface{}{"user_id": a.ID})
	s.WriteJSON(w, http.StatusCreated, m)
}

func (s *Server) removeMember(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data.projects.get(chi.URLParam(r, "projectID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	userID := chi.URLParam(r, "userID")
	for _, m := range s.data.membersOf(p.ID) {
		if m.UserID == userID {
			s.data.members.remove(m.ID)
			s.record(r, "remove_member", "project", p.ID, p.Name, map[string]interface{}{"user_id": userID})
			s.WriteNoContent(w)
			return
		}
	}
	s.WriteError(w, http.StatusNotFound, "Member not found")
}

func (s *Server) listDocumentLinks(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := chi.URLParam(r, "projectID")
	if _, ok := s.data.projects.get(id); !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	s.WriteJSON(w, http.StatusOK, s.data.linksOf(id))
}

func (s *Server) addDocumentLink(w http.ResponseWriter, r *http.Request) {
	var dto document.CreateLinkDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data.projects.get(chi.URLParam(r, "projectID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}

	now := s.now().UTC()
	creator := principal(r).UserID
	l := &document.Link{
		ID:          newID(),
		ProjectID:   p.ID,
		Title:       dto.Title,
		URL:         dto.URL,
		Description: dto.Description,
		CreatedByID: &creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.data.links.put(l.ID, l)

	s.record(r, "create", "document_link", l.ID, l.Title, map[string]interface{}{"project_id": p.ID})
	s.WriteJSON(w, http.StatusCreated, l)
}

func (s *Server) updateDocumentLink(w http.ResponseWriter, r *http.Request) {
	var dto document.UpdateLinkDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.data.links.get(chi.URLParam(r, "linkID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Document link not found")
		return
	}
	if dto.Title != nil {
		l.Title = *dto.Title
	}
	if dto.Description != nil {
		l.Description = dto.Description
	}
	l.UpdatedAt = s.now().UTC()

	s.record(r, "update", "document_link", l.ID, l.Title, nil)
	s.WriteJSON(w, http.StatusOK, l)
}

func (s *Server) deleteDocumentLink(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "linkID")
	l, ok := s.data.links.get(id)
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Document link not found")
		return
	}
	s.data.links.remove(id)

	s.record(r, "delete", "document_link", id, l.Title, nil)
	s.WriteNoContent(w)
}
