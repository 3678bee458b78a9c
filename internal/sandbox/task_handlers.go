package sandbox

import (
	"net/http"
	"time"

	"github.com/frahmantamala/project-console/internal/task"
	"github.com/go-chi/chi"
)

type taskQuery struct {
	projectID  *string
	assigneeID *string
	status     *string
	priority   *string
	overdue    *bool
}

func taskQueryFrom(r *http.Request) taskQuery {
	return taskQuery{
		projectID:  optString(r, "project_id"),
		assigneeID: optString(r, "assignee_id"),
		status:     optString(r, "status"),
		priority:   optString(r, "priority"),
		overdue:    optBool(r, "is_overdue"),
	}
}

func (q taskQuery) match(t task.Task) bool {
	switch {
	case q.projectID != nil && t.ProjectID != *q.projectID:
		return false
	case q.assigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *q.assigneeID):
		return false
	case q.status != nil && string(t.Status) != *q.status:
		return false
	case q.priority != nil && string(t.Priority) != *q.priority:
		return false
	case q.overdue != nil && t.IsOverdue != *q.overdue:
		return false
	}
	return true
}

// tasksWhere returns decorated tasks, newest first. Callers hold s.mu.
func (s *Server) tasksWhere(q taskQuery) []task.Task {
	today := s.today()
	out := []task.Task{}
	for _, t := range s.data.tasks.newestFirst() {
		if dt := s.data.withAssignee(*t, today); q.match(dt) {
			out = append(out, dt)
		}
	}
	return out
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.WriteJSON(w, http.StatusOK, paginate(s.tasksWhere(taskQueryFrom(r)), pageFrom(r)))
}

func (s *Server) myTasks(w http.ResponseWriter, r *http.Request) {
	q := taskQueryFrom(r)
	me := principal(r).UserID
	q.assigneeID = &me

	s.mu.RLock()
	defer s.mu.RUnlock()
	s.WriteJSON(w, http.StatusOK, s.tasksWhere(q))
}

func (s *Server) myTasksSummary(w http.ResponseWriter, r *http.Request) {
	me := principal(r).UserID

	s.mu.RLock()
	defer s.mu.RUnlock()

	weekAgo := s.now().AddDate(0, 0, -7)
	summary := task.MyTasksSummary{TasksByPriority: map[string]int{}}
	for _, t := range s.tasksWhere(taskQuery{assigneeID: &me}) {
		switch {
		case t.Status == task.StatusCompleted:
			if t.CompletedAt != nil && t.CompletedAt.After(weekAgo) {
				summary.CompletedThisWeek++
			}
		case !t.Status.Done():
			summary.PendingTasks++
			summary.TasksByPriority[string(t.Priority)]++
		}
		if t.IsOverdue {
			summary.OverdueTasks++
		}
	}
	s.WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) projectTaskStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.data.projects.get(id); !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}

	var stats task.Stats
	for _, t := range s.tasksWhere(taskQuery{projectID: &id}) {
		stats.Total++
		switch t.Status {
		case task.StatusTodo:
			stats.Todo++
		case task.StatusInProgress:
			stats.InProgress++
		case task.StatusInReview:
			stats.InReview++
		case task.StatusCompleted:
			stats.Completed++
		case task.StatusCancelled:
			stats.Cancelled++
		}
		if t.IsOverdue {
			stats.Overdue++
		}
	}
	s.WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var dto task.CreateTaskDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.projects.get(dto.ProjectID); !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	assignee := blankToNil(dto.AssigneeID)
	if assignee != nil {
		if _, ok := s.data.accounts.get(*assignee); !ok {
			s.WriteError(w, http.StatusBadRequest, "Assignee not found")
			return
		}
	}

	now := s.now().UTC()
	creator := principal(r).UserID
	t := &task.Task{
		ID:          newID(),
		Name:        dto.Name,
		Description: dto.Description,
		Status:      task.StatusTodo,
		Priority:    task.PriorityMedium,
		ProjectID:   dto.ProjectID,
		AssigneeID:  assignee,
		CreatedByID: &creator,
		DueDate:     blankToNil(dto.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	if dto.Priority != nil {
		t.Priority = *dto.Priority
	}
	setCompletion(t, now)
	s.data.tasks.put(t.ID, t)

	s.record(r, "create", "task", t.ID, t.Name, map[string]interface{}{"project_id": t.ProjectID})
	s.WriteJSON(w, http.StatusCreated, s.data.withAssignee(*t, s.today()))
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.data.tasks.get(chi.URLParam(r, "taskID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Task not found")
		return
	}
	s.WriteJSON(w, http.StatusOK, s.data.withAssignee(*t, s.today()))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var dto task.UpdateTaskDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.data.tasks.get(chi.URLParam(r, "taskID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Task not found")
		return
	}
	if dto.AssigneeID != nil {
		assignee := blankToNil(dto.AssigneeID)
		if assignee != nil {
			if _, ok := s.data.accounts.get(*assignee); !ok {
				s.WriteError(w, http.StatusBadRequest, "Assignee not found")
				return
			}
		}
		t.AssigneeID = assignee
	}
	if dto.Name != nil {
		t.Name = *dto.Name
	}
	if dto.Description != nil {
		t.Description = dto.Description
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	if dto.Priority != nil {
		t.Priority = *dto.Priority
	}
	if dto.DueDate != nil {
		t.DueDate = blankToNil(dto.DueDate)
	}
	now := s.now().UTC()
	setCompletion(t, now)
	t.UpdatedAt = now

	s.record(r, "update", "task", t.ID, t.Name, nil)
	s.WriteJSON(w, http.StatusOK, s.data.withAssignee(*t, s.today()))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "taskID")
	t, ok := s.data.tasks.get(id)
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Task not found")
		return
	}
	s.data.tasks.remove(id)

	s.record(r, "delete", "task", id, t.Name, nil)
	s.WriteNoContent(w)
}

// setCompletion stamps CompletedAt on entering completed and clears it on
// leaving.
func setCompletion(t *task.Task, now time.Time) {
	switch {
	case t.Status == task.StatusCompleted && t.CompletedAt == nil:
		t.CompletedAt = &now
	case t.Status != task.StatusCompleted:
		t.CompletedAt = nil
	}
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
