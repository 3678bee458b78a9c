package sandbox

import (
	"fmt"

	"github.com/frahmantamala/project-console/internal/document"
	"github.com/frahmantamala/project-console/internal/expense"
	"github.com/frahmantamala/project-console/internal/project"
	"github.com/frahmantamala/project-console/internal/task"
	"github.com/frahmantamala/project-console/internal/user"
)

// Seeded credentials.
const (
	AdminEmail     = "admin@example.com"
	AdminPassword  = "admin123"
	MemberEmail    = "member@example.com"
	MemberPassword = "member123"
)

// Seed loads sample users and a sample project. Accounts that already exist
// are left alone, so seeding twice is harmless.
func (s *Server) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []struct {
		name, email, password string
		role                  user.Role
	}{
		{"Admin", AdminEmail, AdminPassword, user.RoleAdmin},
		{"Member", MemberEmail, MemberPassword, user.RoleMember},
	}

	ids := make(map[string]string, len(users))
	for _, u := range users {
		if existing, ok := s.data.accountByEmail(u.email); ok {
			s.Logger.Debug("seed user already exists", "email", u.email)
			ids[u.email] = existing.ID
			continue
		}
		created, status, msg := s.addAccount(u.name, u.email, u.password, u.role)
		if status != 0 {
			return fmt.Errorf("seed user %s: %s", u.email, msg)
		}
		s.Logger.Info("seeded user", "email", u.email, "role", u.role)
		ids[u.email] = created.ID
	}

	if len(s.data.projects.rows) > 0 {
		return nil
	}

	admin, member := ids[AdminEmail], ids[MemberEmail]
	now := s.now().UTC()
	today := s.today()

	p := &project.Project{
		ID:        newID(),
		Name:      "Website Redesign",
		Status:    project.StatusInProgress,
		StartDate: &today,
		Budget:    5000,
		OwnerID:   admin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.data.projects.put(p.ID, p)

	memberRole := "developer"
	for _, uid := range []string{admin, member} {
		a, _ := s.data.accounts.get(uid)
		m := &project.Member{ID: newID(), ProjectID: p.ID, UserID: uid, User: a.User, AssignedAt: now}
		if uid == member {
			m.Role = &memberRole
		}
		s.data.members.put(m.ID, m)
	}

	brief := &document.Link{
		ID:          newID(),
		ProjectID:   p.ID,
		Title:       "Design brief",
		URL:         "https://example.feishu.cn/docx/design-brief",
		CreatedByID: &admin,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.data.links.put(brief.ID, brief)

	tasks := []struct {
		name     string
		status   task.Status
		priority task.Priority
		assignee string
	}{
		{"Draft sitemap", task.StatusCompleted, task.PriorityMedium, member},
		{"Build landing page", task.StatusInProgress, task.PriorityHigh, member},
		{"Review copy", task.StatusTodo, task.PriorityLow, admin},
	}
	for _, t := range tasks {
		assignee := t.assignee
		row := &task.Task{
			ID:          newID(),
			Name:        t.name,
			Status:      t.status,
			Priority:    t.priority,
			ProjectID:   p.ID,
			AssigneeID:  &assignee,
			CreatedByID: &admin,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		setCompletion(row, now)
		s.data.tasks.put(row.ID, row)
	}

	hosting := "infrastructure"
	e := &expense.Expense{
		ID:          newID(),
		ProjectID:   p.ID,
		Amount:      250,
		Description: "Hosting",
		Category:    &hosting,
		RecordedAt:  now,
		CreatedByID: &admin,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.data.expenses.put(e.ID, e)
	s.data.recomputeSpent(p.ID, now)

	s.Logger.Info("seeded sample project", "project_id", p.ID)
	return nil
}
